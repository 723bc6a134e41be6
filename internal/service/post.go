package service

import (
	"context"
	"errors"
	"time"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/policy"
	"github.com/BloggingApp/blog-service/internal/rabbitmq"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/internal/repository/postgres"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type postService struct {
	logger *zap.Logger
	repo   *repository.Repository
	broker Broker
}

func newPostService(logger *zap.Logger, repo *repository.Repository, broker Broker) Post {
	return &postService{
		logger: logger,
		repo:   repo,
		broker: broker,
	}
}

func (s *postService) ListIndex(ctx context.Context, viewer *model.User, now time.Time, page int) (*model.Page[*model.FullPost], error) {
	return s.listPosts(ctx, policy.Visible(viewer, now), page)
}

func (s *postService) ListCategory(ctx context.Context, slug string, viewer *model.User, now time.Time, page int) (*model.Category, *model.Page[*model.FullPost], error) {
	category, err := s.repo.Postgres.Category.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find category(%s) from postgres: %s", slug, err.Error())
		return nil, nil, ErrInternal
	}
	// A hidden category is missing for everyone, its authors included.
	if !category.IsPublished {
		return nil, nil, ErrNotFound
	}

	posts, err := s.listPosts(ctx, policy.InCategory(policy.Visible(viewer, now), category.ID), page)
	if err != nil {
		return nil, nil, err
	}

	return category, posts, nil
}

func (s *postService) ListProfile(ctx context.Context, username string, viewer *model.User, now time.Time, page int) (*model.User, *model.Page[*model.FullPost], error) {
	owner, err := s.repo.Postgres.User.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find user(%s) from postgres: %s", username, err.Error())
		return nil, nil, ErrInternal
	}

	posts, err := s.listPosts(ctx, policy.Profile(viewer, owner, now), page)
	if err != nil {
		return nil, nil, err
	}

	return owner, posts, nil
}

func (s *postService) listPosts(ctx context.Context, filter model.PostFilter, page int) (*model.Page[*model.FullPost], error) {
	size := postsPerPage()

	total, err := s.repo.Postgres.Post.Count(ctx, filter)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count posts from postgres: %s", err.Error())
		return nil, ErrInternal
	}

	number, offset, pages := pageBounds(page, total, size)

	posts, err := s.repo.Postgres.Post.Find(ctx, filter, size, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts page(%d) from postgres: %s", number, err.Error())
		return nil, ErrInternal
	}

	return newPage(posts, number, size, total, pages), nil
}

func (s *postService) GetDetail(ctx context.Context, id int64, viewer *model.User, now time.Time) (*model.PostDetail, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	// Hidden and missing posts must look the same to non-owners.
	if !policy.CanView(post, viewer, now) {
		return nil, ErrNotFound
	}

	comments, err := s.repo.Postgres.Comment.FindPostComments(ctx, id)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d) comments from postgres: %s", id, err.Error())
		return nil, ErrInternal
	}

	return &model.PostDetail{
		Post:     *post,
		Comments: comments,
	}, nil
}

func (s *postService) findPost(ctx context.Context, id int64) (*model.FullPost, error) {
	post, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", id, err.Error())
		return nil, ErrInternal
	}

	return post, nil
}

func (s *postService) Create(ctx context.Context, author *model.User, input dto.PostRequest) (*model.Post, error) {
	post := postFromRequest(input)
	post.AuthorID = author.ID

	createdPost, err := s.repo.Postgres.Post.Create(ctx, post)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return nil, ErrInvalidReference
		}
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", author.ID.String(), err.Error())
		return nil, ErrInternal
	}

	msg := dto.MQPostCreatedMsg{
		PostID:    createdPost.ID,
		UserID:    createdPost.AuthorID,
		PostTitle: createdPost.Title,
		PubDate:   createdPost.PubDate,
		CreatedAt: createdPost.CreatedAt,
	}
	if err := s.broker.PublishJSON(ctx, rabbitmq.POST_CREATED_QUEUE, msg); err != nil {
		s.logger.Sugar().Errorf("failed to publish post(%d) created message: %s", createdPost.ID, err.Error())
	}

	return createdPost, nil
}

func (s *postService) Edit(ctx context.Context, id int64, viewer *model.User, input dto.PostRequest) error {
	existing, err := s.findPost(ctx, id)
	if err != nil {
		return err
	}

	if policy.Authorize(viewer, existing.Post.AuthorID) == policy.Denied {
		return ErrDenied
	}

	post := postFromRequest(input)
	post.ID = id
	post.AuthorID = existing.Post.AuthorID

	if err := s.repo.Postgres.Post.Update(ctx, post); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if postgres.IsForeignKeyViolation(err) {
			return ErrInvalidReference
		}
		s.logger.Sugar().Errorf("failed to update post(%d): %s", id, err.Error())
		return ErrInternal
	}

	return nil
}

func (s *postService) Delete(ctx context.Context, id int64, viewer *model.User) error {
	existing, err := s.findPost(ctx, id)
	if err != nil {
		return err
	}

	if policy.Authorize(viewer, existing.Post.AuthorID) == policy.Denied {
		return ErrDenied
	}

	if err := s.repo.Postgres.Post.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to delete post(%d): %s", id, err.Error())
		return ErrInternal
	}

	return nil
}

func postFromRequest(input dto.PostRequest) model.Post {
	return model.Post{
		CategoryID:  input.CategoryID,
		LocationID:  input.LocationID,
		Title:       input.Title,
		Text:        input.Text,
		Image:       input.Image,
		PubDate:     input.PubDate,
		IsPublished: input.Published(),
	}
}
