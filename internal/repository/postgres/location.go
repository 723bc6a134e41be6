package postgres

import (
	"context"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type locationRepo struct {
	db *pgxpool.Pool
}

func newLocationRepo(db *pgxpool.Pool) Location {
	return &locationRepo{
		db: db,
	}
}

func (r *locationRepo) Create(ctx context.Context, location model.Location) (*model.Location, error) {
	location.CreatedAt = time.Now()
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO locations(name, is_published, created_at) VALUES($1, $2, $3) RETURNING id",
		location.Name,
		location.IsPublished,
		location.CreatedAt,
	).Scan(&location.ID); err != nil {
		return nil, err
	}

	return &location, nil
}

func (r *locationRepo) SetPublished(ctx context.Context, id int64, published bool) (*model.Location, error) {
	var location model.Location
	if err := r.db.QueryRow(
		ctx,
		"UPDATE locations SET is_published = $1 WHERE id = $2 RETURNING id, name, is_published, created_at",
		published,
		id,
	).Scan(
		&location.ID,
		&location.Name,
		&location.IsPublished,
		&location.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &location, nil
}
