package service

import (
	"context"
	"time"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const POSTS_PER_PAGE = 10

func postsPerPage() int {
	if n := viper.GetInt("app.posts-per-page"); n > 0 {
		return n
	}
	return POSTS_PER_PAGE
}

// Broker is the part of the message queue the services talk to.
type Broker interface {
	PublishJSON(ctx context.Context, queue string, v interface{}) error
	Consume(queue string) (<-chan amqp.Delivery, error)
}

// Post read operations take the viewer (nil when anonymous) and the instant
// the request started, so one response is evaluated against one clock.
type Post interface {
	ListIndex(ctx context.Context, viewer *model.User, now time.Time, page int) (*model.Page[*model.FullPost], error)
	ListCategory(ctx context.Context, slug string, viewer *model.User, now time.Time, page int) (*model.Category, *model.Page[*model.FullPost], error)
	ListProfile(ctx context.Context, username string, viewer *model.User, now time.Time, page int) (*model.User, *model.Page[*model.FullPost], error)
	GetDetail(ctx context.Context, id int64, viewer *model.User, now time.Time) (*model.PostDetail, error)
	Create(ctx context.Context, author *model.User, input dto.PostRequest) (*model.Post, error)
	Edit(ctx context.Context, id int64, viewer *model.User, input dto.PostRequest) error
	Delete(ctx context.Context, id int64, viewer *model.User) error
}

type Comment interface {
	Create(ctx context.Context, postID int64, author *model.User, input dto.CommentRequest) (*model.Comment, error)
	Edit(ctx context.Context, postID int64, commentID int64, viewer *model.User, input dto.CommentRequest) error
	Delete(ctx context.Context, postID int64, commentID int64, viewer *model.User) error
}

type Category interface {
	Create(ctx context.Context, input dto.CreateCategoryRequest) (*model.Category, error)
	SetPublished(ctx context.Context, slug string, published bool) (*model.Category, error)
}

type Location interface {
	Create(ctx context.Context, input dto.CreateLocationRequest) (*model.Location, error)
	SetPublished(ctx context.Context, id int64, published bool) (*model.Location, error)
}

type User interface {
	CreateOrGet(ctx context.Context, id uuid.UUID, accessToken string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
}

type Service struct {
	Post
	Comment
	Category
	Location
	User

	user *userService
}

func New(logger *zap.Logger, repo *repository.Repository, broker Broker) *Service {
	users := newUserService(logger, repo, broker)
	return &Service{
		Post:     newPostService(logger, repo, broker),
		Comment:  newCommentService(logger, repo),
		Category: newCategoryService(logger, repo),
		Location: newLocationService(logger, repo),
		User:     users,
		user:     users,
	}
}

func (s *Service) StartConsumeAll(ctx context.Context) {
	go s.user.consumeUserUpdates(ctx)
}
