package order

import (
	"context"
	"errors"
	"math"

	"bakery-be/internal/logger"
	"bakery-be/internal/metrics"

	"go.uber.org/zap"
)

// Service is the order mutation workflow. Every method is scoped to the
// owner: an order belonging to someone else is reported as not found.
type Service interface {
	Create(ctx context.Context, userID int64) (*Order, error)
	List(ctx context.Context, userID int64) ([]*Order, error)
	Get(ctx context.Context, userID, orderID int64) (*Order, error)
	Delete(ctx context.Context, userID, orderID int64) error
	AddItem(ctx context.Context, userID, orderID int64, input ItemInput) (*Order, error)
	RemoveItem(ctx context.Context, userID, orderID int64, input ItemInput) (*Order, error)
	Checkout(ctx context.Context, userID, orderID int64) (*Order, error)
}

type service struct {
	repo    Repository
	metrics *metrics.Metrics
}

func NewService(repo Repository, m *metrics.Metrics) Service {
	return &service{repo: repo, metrics: m}
}

func (s *service) Create(ctx context.Context, userID int64) (*Order, error) {
	return s.repo.Create(ctx, userID)
}

func (s *service) List(ctx context.Context, userID int64) ([]*Order, error) {
	return s.repo.List(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID, orderID int64) (*Order, error) {
	o, err := s.repo.GetForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.setItems(items)

	return o, nil
}

// Delete removes a pending order and returns its reserved units to stock.
func (s *service) Delete(ctx context.Context, userID, orderID int64) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Delete"),
		zap.Int64("order_id", orderID),
	)

	err := s.repo.WithTx(ctx, func(tx Repository) error {
		o, err := tx.GetForUpdate(ctx, orderID, userID)
		if err != nil {
			return err
		}
		if o.Status != StatusPending {
			return ErrOrderNotPending
		}

		items, err := tx.ListItems(ctx, o.ID)
		if err != nil {
			return err
		}
		for _, it := range items {
			if err := tx.IncrementStock(ctx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}

		return tx.Delete(ctx, o.ID)
	})
	if err != nil {
		log.Warn("delete order failed", zap.Error(err))
		return err
	}

	log.Info("order deleted")
	return nil
}

func (s *service) AddItem(ctx context.Context, userID, orderID int64, input ItemInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.Int64("order_id", orderID),
	)

	productID, quantity, err := parseItemInput(input)
	if err != nil {
		log.Warn("invalid add_item input", zap.Error(err))
		return nil, err
	}
	log = log.With(zap.Int64("product_id", productID), zap.Int("quantity", quantity))

	err = s.repo.WithTx(ctx, func(tx Repository) error {
		o, err := tx.GetForUpdate(ctx, orderID, userID)
		if err != nil {
			return err
		}
		if o.Status != StatusPending {
			return ErrOrderNotPending
		}

		p, err := tx.GetProductForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if p.Stock < quantity {
			return ErrInsufficientStock
		}

		item, err := tx.GetItem(ctx, o.ID, p.ID)
		if err != nil {
			return err
		}

		// An existing line keeps the price captured when it was created.
		if item == nil {
			_, err = tx.CreateItem(ctx, o.ID, p.ID, quantity, p.Price)
		} else {
			err = tx.UpdateItemQuantity(ctx, item.ID, item.Quantity+quantity)
		}
		if err != nil {
			return err
		}

		return tx.DecrementStock(ctx, p.ID, quantity)
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			s.metrics.RecordInsufficientStock()
		}
		log.Warn("add_item failed", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordItemsAdded(quantity)
	log.Info("add_item success")

	return s.Get(ctx, userID, orderID)
}

// RemoveItem drops the line when the requested quantity covers it and
// decrements it otherwise. Stock is credited with the requested quantity.
func (s *service) RemoveItem(ctx context.Context, userID, orderID int64, input ItemInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "RemoveItem"),
		zap.Int64("order_id", orderID),
	)

	productID, quantity, err := parseItemInput(input)
	if err != nil {
		log.Warn("invalid remove_item input", zap.Error(err))
		return nil, err
	}
	log = log.With(zap.Int64("product_id", productID), zap.Int("quantity", quantity))

	err = s.repo.WithTx(ctx, func(tx Repository) error {
		o, err := tx.GetForUpdate(ctx, orderID, userID)
		if err != nil {
			return err
		}
		if o.Status != StatusPending {
			return ErrOrderNotPending
		}

		p, err := tx.GetProductForUpdate(ctx, productID)
		if err != nil {
			return err
		}

		item, err := tx.GetItem(ctx, o.ID, p.ID)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrOrderItemNotFound
		}

		if item.Quantity <= quantity {
			err = tx.DeleteItem(ctx, item.ID)
		} else {
			err = tx.UpdateItemQuantity(ctx, item.ID, item.Quantity-quantity)
		}
		if err != nil {
			return err
		}

		return tx.IncrementStock(ctx, p.ID, quantity)
	})
	if err != nil {
		log.Warn("remove_item failed", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordItemsRemoved(quantity)
	log.Info("remove_item success")

	return s.Get(ctx, userID, orderID)
}

func (s *service) Checkout(ctx context.Context, userID, orderID int64) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
		zap.Int64("order_id", orderID),
	)

	err := s.repo.WithTx(ctx, func(tx Repository) error {
		o, err := tx.GetForUpdate(ctx, orderID, userID)
		if err != nil {
			return err
		}
		if o.Status != StatusPending {
			return ErrOrderNotPending
		}

		n, err := tx.CountItems(ctx, o.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrEmptyOrder
		}

		return tx.MarkCompleted(ctx, o.ID)
	})
	if err != nil {
		if errors.Is(err, ErrOrderNotPending) || errors.Is(err, ErrEmptyOrder) {
			s.metrics.RecordCheckout(metrics.CheckoutResultRejected)
		}
		log.Warn("checkout failed", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordCheckout(metrics.CheckoutResultCompleted)
	log.Info("checkout success")

	return s.Get(ctx, userID, orderID)
}

func parseItemInput(input ItemInput) (int64, int, error) {
	if input.ProductID == nil || *input.ProductID == 0 {
		return 0, 0, ErrProductIDRequired
	}

	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	if quantity <= 0 || quantity > math.MaxInt32 {
		return 0, 0, ErrInvalidQuantity
	}

	return *input.ProductID, quantity, nil
}
