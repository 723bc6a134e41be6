package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/internal/repository/postgres"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type categoryService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newCategoryService(logger *zap.Logger, repo *repository.Repository) Category {
	return &categoryService{
		logger: logger,
		repo:   repo,
	}
}

func (s *categoryService) Create(ctx context.Context, input dto.CreateCategoryRequest) (*model.Category, error) {
	slug := input.Slug
	if slug != "" {
		if !validSlug.MatchString(slug) {
			return nil, ErrInvalidSlug
		}
	} else {
		var err error
		slug, err = s.uniqueSlug(ctx, slugify(input.Title))
		if err != nil {
			return nil, err
		}
	}

	category := model.Category{
		Title:       input.Title,
		Description: input.Description,
		Slug:        slug,
		IsPublished: input.Published(),
	}

	createdCategory, err := s.repo.Postgres.Category.Create(ctx, category)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		s.logger.Sugar().Errorf("failed to create category(%s): %s", slug, err.Error())
		return nil, ErrInternal
	}

	return createdCategory, nil
}

// uniqueSlug appends -2, -3, ... to base until no category uses it.
func (s *categoryService) uniqueSlug(ctx context.Context, base string) (string, error) {
	slug := base
	for counter := 2; ; counter++ {
		exists, err := s.repo.Postgres.Category.SlugExists(ctx, slug)
		if err != nil {
			s.logger.Sugar().Errorf("failed to check category slug(%s): %s", slug, err.Error())
			return "", ErrInternal
		}
		if !exists {
			return slug, nil
		}
		slug = base + "-" + strconv.Itoa(counter)
	}
}

func (s *categoryService) SetPublished(ctx context.Context, slug string, published bool) (*model.Category, error) {
	category, err := s.repo.Postgres.Category.SetPublished(ctx, slug, published)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to set category(%s) published=%t: %s", slug, published, err.Error())
		return nil, ErrInternal
	}

	return category, nil
}
