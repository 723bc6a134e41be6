package postgres

import (
	"context"

	"github.com/BloggingApp/blog-service/internal/config"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id int64) (*model.FullPost, error)
	Find(ctx context.Context, filter model.PostFilter, limit int, offset int) ([]*model.FullPost, error)
	Count(ctx context.Context, filter model.PostFilter) (int, error)
	Update(ctx context.Context, post model.Post) error
	Delete(ctx context.Context, id int64) error
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (*model.Comment, error)
	FindByID(ctx context.Context, id int64) (*model.Comment, error)
	FindPostComments(ctx context.Context, postID int64) ([]*model.FullComment, error)
	UpdateText(ctx context.Context, id int64, text string) error
	Delete(ctx context.Context, id int64) error
}

type Category interface {
	Create(ctx context.Context, category model.Category) (*model.Category, error)
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	SetPublished(ctx context.Context, slug string, published bool) (*model.Category, error)
}

type Location interface {
	Create(ctx context.Context, location model.Location) (*model.Location, error)
	SetPublished(ctx context.Context, id int64, published bool) (*model.Location, error)
}

type User interface {
	Create(ctx context.Context, user model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
}

type PostgresRepository struct {
	Post
	Comment
	Category
	Location
	User
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		Post:     newPostRepo(db),
		Comment:  newCommentRepo(db),
		Category: newCategoryRepo(db),
		Location: newLocationRepo(db),
		User:     newUserRepo(db),
	}
}

func DB(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	return pgxpool.New(ctx, cfg.ConnString())
}
