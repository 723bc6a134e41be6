package service

import (
	"context"
	"errors"
	"strings"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/policy"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/internal/repository/postgres"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type commentService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newCommentService(logger *zap.Logger, repo *repository.Repository) Comment {
	return &commentService{
		logger: logger,
		repo:   repo,
	}
}

func (s *commentService) Create(ctx context.Context, postID int64, author *model.User, input dto.CommentRequest) (*model.Comment, error) {
	if _, err := s.repo.Postgres.Post.FindByID(ctx, postID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", postID, err.Error())
		return nil, ErrInternal
	}

	text, err := commentText(input)
	if err != nil {
		return nil, err
	}

	comment := model.Comment{
		PostID:   postID,
		AuthorID: author.ID,
		Text:     text,
	}

	createdComment, err := s.repo.Postgres.Comment.Create(ctx, comment)
	if err != nil {
		// the post was deleted between the lookup and the insert
		if postgres.IsForeignKeyViolation(err) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to create user(%s) comment on post(%d): %s", author.ID.String(), postID, err.Error())
		return nil, ErrInternal
	}

	return createdComment, nil
}

func (s *commentService) Edit(ctx context.Context, postID int64, commentID int64, viewer *model.User, input dto.CommentRequest) error {
	if err := s.authorize(ctx, postID, commentID, viewer); err != nil {
		return err
	}

	text, err := commentText(input)
	if err != nil {
		return err
	}

	if err := s.repo.Postgres.Comment.UpdateText(ctx, commentID, text); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to update comment(%d): %s", commentID, err.Error())
		return ErrInternal
	}

	return nil
}

func (s *commentService) Delete(ctx context.Context, postID int64, commentID int64, viewer *model.User) error {
	if err := s.authorize(ctx, postID, commentID, viewer); err != nil {
		return err
	}

	if err := s.repo.Postgres.Comment.Delete(ctx, commentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to delete comment(%d): %s", commentID, err.Error())
		return ErrInternal
	}

	return nil
}

// authorize checks the comment exists under postID and belongs to viewer.
// The post's author has no say over other people's comments.
func (s *commentService) authorize(ctx context.Context, postID int64, commentID int64, viewer *model.User) error {
	comment, err := s.repo.Postgres.Comment.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find comment(%d) from postgres: %s", commentID, err.Error())
		return ErrInternal
	}

	if comment.PostID != postID {
		return ErrNotFound
	}

	if policy.Authorize(viewer, comment.AuthorID) == policy.Denied {
		return ErrDenied
	}

	return nil
}

func commentText(input dto.CommentRequest) (string, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return "", ErrEmptyComment
	}
	return text, nil
}
