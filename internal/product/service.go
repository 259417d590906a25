package product

import (
	"context"
	"errors"
	"math"
	"strings"
	"unicode/utf8"

	"bakery-be/internal/category"
	"bakery-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// maxPrice is the exclusive upper bound of a NUMERIC(10,2) column.
var maxPrice = decimal.New(1, 8)

type Service interface {
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, input ProductInput) (*Product, error)
	Update(ctx context.Context, id int64, input ProductInput) (*Product, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo         Repository
	categoryRepo category.Repository
}

func NewService(repo Repository, categoryRepo category.Repository) Service {
	return &service{repo: repo, categoryRepo: categoryRepo}
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Get(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input ProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)

	p, err := s.validate(ctx, input)
	if err != nil {
		log.Warn("product validation failed", zap.Error(err))
		return nil, err
	}

	return s.repo.Create(ctx, p)
}

func (s *service) Update(ctx context.Context, id int64, input ProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.Int64("product_id", id),
	)

	p, err := s.validate(ctx, input)
	if err != nil {
		log.Warn("product validation failed", zap.Error(err))
		return nil, err
	}
	p.ID = id

	return s.repo.Update(ctx, p)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// validate turns input into a Product; stock defaults to zero when omitted.
func (s *service) validate(ctx context.Context, input ProductInput) (*Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if utf8.RuneCountInString(name) > category.MaxNameLength {
		return nil, ErrNameTooLong
	}
	if input.Price == nil {
		return nil, ErrPriceRequired
	}
	if input.Price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if input.Price.Round(2).GreaterThanOrEqual(maxPrice) {
		return nil, ErrPriceOutOfRange
	}

	stock := 0
	if input.Stock != nil {
		stock = *input.Stock
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}
	if stock > math.MaxInt32 {
		return nil, ErrStockOutOfRange
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, category.ErrCategoryNotFound) {
				return nil, ErrInvalidCategory
			}
			return nil, err
		}
	}

	return &Product{
		Name:       name,
		Price:      *input.Price,
		Stock:      stock,
		CategoryID: input.CategoryID,
	}, nil
}
