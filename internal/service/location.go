package service

import (
	"context"
	"errors"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type locationService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newLocationService(logger *zap.Logger, repo *repository.Repository) Location {
	return &locationService{
		logger: logger,
		repo:   repo,
	}
}

func (s *locationService) Create(ctx context.Context, input dto.CreateLocationRequest) (*model.Location, error) {
	location, err := s.repo.Postgres.Location.Create(ctx, model.Location{
		Name:        input.Name,
		IsPublished: input.Published(),
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to create location(%s): %s", input.Name, err.Error())
		return nil, ErrInternal
	}

	return location, nil
}

func (s *locationService) SetPublished(ctx context.Context, id int64, published bool) (*model.Location, error) {
	location, err := s.repo.Postgres.Location.SetPublished(ctx, id, published)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to set location(%d) published=%t: %s", id, published, err.Error())
		return nil, ErrInternal
	}

	return location, nil
}
