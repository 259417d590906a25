package category

import (
	"context"
	"strings"
	"unicode/utf8"

	"bakery-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for categories.
type Service interface {
	List(ctx context.Context) ([]*Category, error)
	Get(ctx context.Context, id int64) (*Category, error)
	Create(ctx context.Context, input CategoryInput) (*Category, error)
	Update(ctx context.Context, id int64, input CategoryInput) (*Category, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Category, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (*Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input CategoryInput) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		log.Warn("validation failed: empty name")
		return nil, ErrNameRequired
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		log.Warn("validation failed: name too long")
		return nil, ErrNameTooLong
	}

	c, err := s.repo.Create(ctx, name)
	if err != nil {
		log.Error("failed to add category", zap.Error(err))
		return nil, err
	}

	log.Info("category created", zap.Int64("category_id", c.ID))
	return c, nil
}

func (s *service) Update(ctx context.Context, id int64, input CategoryInput) (*Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return nil, ErrNameTooLong
	}

	return s.repo.Update(ctx, id, name)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		logger.FromCtx(ctx).Warn("failed to delete category",
			zap.Int64("category_id", id),
			zap.Error(err),
		)
		return err
	}
	return nil
}
