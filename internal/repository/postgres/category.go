package postgres

import (
	"context"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type categoryRepo struct {
	db *pgxpool.Pool
}

func newCategoryRepo(db *pgxpool.Pool) Category {
	return &categoryRepo{
		db: db,
	}
}

func (r *categoryRepo) Create(ctx context.Context, category model.Category) (*model.Category, error) {
	category.CreatedAt = time.Now()
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO categories(title, description, slug, is_published, created_at) VALUES($1, $2, $3, $4, $5) RETURNING id",
		category.Title,
		category.Description,
		category.Slug,
		category.IsPublished,
		category.CreatedAt,
	).Scan(&category.ID); err != nil {
		return nil, err
	}

	return &category, nil
}

func (r *categoryRepo) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	if err := r.db.QueryRow(
		ctx,
		"SELECT c.id, c.title, c.description, c.slug, c.is_published, c.created_at FROM categories c WHERE c.slug = $1",
		slug,
	).Scan(
		&category.ID,
		&category.Title,
		&category.Description,
		&category.Slug,
		&category.IsPublished,
		&category.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &category, nil
}

func (r *categoryRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM categories WHERE slug = $1)", slug).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *categoryRepo) SetPublished(ctx context.Context, slug string, published bool) (*model.Category, error) {
	var category model.Category
	if err := r.db.QueryRow(
		ctx,
		`UPDATE categories SET is_published = $1 WHERE slug = $2
		RETURNING id, title, description, slug, is_published, created_at`,
		published,
		slug,
	).Scan(
		&category.ID,
		&category.Title,
		&category.Description,
		&category.Slug,
		&category.IsPublished,
		&category.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &category, nil
}
