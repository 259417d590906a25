package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bakery-be/internal/logger"
	"bakery-be/internal/product"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// numericOutOfRange is the postgres code for an INTEGER column overflow.
const numericOutOfRange = "22003"

type Repository interface {
	// WithTx runs fn against a repository bound to one transaction. Nested
	// calls reuse the outer transaction.
	WithTx(ctx context.Context, fn func(tx Repository) error) error

	Create(ctx context.Context, userID int64) (*Order, error)
	List(ctx context.Context, userID int64) ([]*Order, error)
	GetForUser(ctx context.Context, orderID, userID int64) (*Order, error)
	GetForUpdate(ctx context.Context, orderID, userID int64) (*Order, error)
	Delete(ctx context.Context, orderID int64) error
	MarkCompleted(ctx context.Context, orderID int64) error

	ListItems(ctx context.Context, orderID int64) ([]OrderItem, error)
	CountItems(ctx context.Context, orderID int64) (int, error)
	GetItem(ctx context.Context, orderID, productID int64) (*OrderItem, error)
	CreateItem(ctx context.Context, orderID, productID int64, quantity int, price decimal.Decimal) (*OrderItem, error)
	UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error
	DeleteItem(ctx context.Context, itemID int64) error

	GetProductForUpdate(ctx context.Context, productID int64) (*product.Product, error)
	DecrementStock(ctx context.Context, productID int64, quantity int) error
	IncrementStock(ctx context.Context, productID int64, quantity int) error
}

// querier is the subset shared by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type repository struct {
	db   *sql.DB
	q    querier
	inTx bool
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db, q: db}
}

func (r *repository) WithTx(ctx context.Context, fn func(tx Repository) error) error {
	if r.inTx {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&repository{db: r.db, q: tx, inTx: true}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *repository) Create(ctx context.Context, userID int64) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
	)

	o := Order{Items: []OrderItem{}, Total: decimal.Zero}
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, status)
		VALUES ($1, $2)
		RETURNING id, user_id, status, created_at
	`, userID, StatusPending).Scan(&o.ID, &o.UserID, &o.Status, &o.CreatedAt)
	if err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, fmt.Errorf("create order: %w", err)
	}

	log.Info("order created", zap.Int64("order_id", o.ID))
	return &o, nil
}

func (r *repository) List(ctx context.Context, userID int64) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	rows, err := r.q.QueryContext(ctx, `
		SELECT id, user_id, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*Order, 0)
	byID := make(map[int64]*Order)
	ids := make([]int64, 0)

	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.CreatedAt); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, &o)
		byID[o.ID] = &o
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	if len(ids) == 0 {
		return orders, nil
	}

	itemRows, err := r.q.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.quantity, oi.price
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id ASC
	`, pq.Array(ids))
	if err != nil {
		log.Error("failed to query order items", zap.Error(err))
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer itemRows.Close()

	items := make(map[int64][]OrderItem, len(ids))
	for itemRows.Next() {
		it, err := scanItem(itemRows)
		if err != nil {
			log.Error("failed to scan order item row", zap.Error(err))
			return nil, err
		}
		items[it.OrderID] = append(items[it.OrderID], it)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	for id, o := range byID {
		o.setItems(items[id])
	}

	log.Debug("get orders success", zap.Int("count", len(orders)))
	return orders, nil
}

func (r *repository) GetForUser(ctx context.Context, orderID, userID int64) (*Order, error) {
	return r.getOrder(ctx, `
		SELECT id, user_id, status, created_at
		FROM orders
		WHERE id = $1 AND user_id = $2
	`, orderID, userID)
}

// GetForUpdate locks the order row for the rest of the transaction.
func (r *repository) GetForUpdate(ctx context.Context, orderID, userID int64) (*Order, error) {
	return r.getOrder(ctx, `
		SELECT id, user_id, status, created_at
		FROM orders
		WHERE id = $1 AND user_id = $2
		FOR UPDATE
	`, orderID, userID)
}

func (r *repository) getOrder(ctx context.Context, query string, orderID, userID int64) (*Order, error) {
	var o Order
	err := r.q.QueryRowContext(ctx, query, orderID, userID).
		Scan(&o.ID, &o.UserID, &o.Status, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get order",
			zap.Int64("order_id", orderID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

func (r *repository) Delete(ctx context.Context, orderID int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return expectOneRow(res, ErrOrderNotFound)
}

// MarkCompleted flips PENDING to COMPLETED; any other status is left untouched.
func (r *repository) MarkCompleted(ctx context.Context, orderID int64) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE orders
		SET status = $1
		WHERE id = $2 AND status = $3
	`, StatusCompleted, orderID, StatusPending)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return expectOneRow(res, ErrOrderNotPending)
}

func (r *repository) ListItems(ctx context.Context, orderID int64) ([]OrderItem, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.quantity, oi.price
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	items := make([]OrderItem, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) CountItems(ctx context.Context, orderID int64) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM order_items WHERE order_id = $1`, orderID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count order items: %w", err)
	}
	return n, nil
}

// GetItem returns nil, nil when the order has no line for the product.
func (r *repository) GetItem(ctx context.Context, orderID, productID int64) (*OrderItem, error) {
	var it OrderItem
	err := r.q.QueryRowContext(ctx, `
		SELECT id, order_id, product_id, quantity, price
		FROM order_items
		WHERE order_id = $1 AND product_id = $2
		FOR UPDATE
	`, orderID, productID).Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get order item: %w", err)
	}
	return &it, nil
}

func (r *repository) CreateItem(
	ctx context.Context,
	orderID, productID int64,
	quantity int,
	price decimal.Decimal,
) (*OrderItem, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateItem"),
		zap.Int64("order_id", orderID),
		zap.Int64("product_id", productID),
	)

	var it OrderItem
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO order_items (order_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, order_id, product_id, quantity, price
	`, orderID, productID, quantity, price).
		Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price)
	if err != nil {
		log.Error("failed to create order item", zap.Error(err))
		return nil, fmt.Errorf("create order item: %w", err)
	}

	log.Debug("order item created", zap.Int64("order_item_id", it.ID))
	return &it, nil
}

func (r *repository) UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE order_items SET quantity = $1 WHERE id = $2`, quantity, itemID,
	)
	if err != nil {
		if isOutOfRange(err) {
			return ErrQuantityOverflow
		}
		return fmt.Errorf("update order item: %w", err)
	}
	return expectOneRow(res, ErrOrderItemNotFound)
}

func (r *repository) DeleteItem(ctx context.Context, itemID int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM order_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete order item: %w", err)
	}
	return expectOneRow(res, ErrOrderItemNotFound)
}

// GetProductForUpdate locks the product row so the stock check and the stock
// write see the same value.
func (r *repository) GetProductForUpdate(ctx context.Context, productID int64) (*product.Product, error) {
	var p product.Product
	err := r.q.QueryRowContext(ctx, `
		SELECT id, name, price, stock, category_id
		FROM products
		WHERE id = $1
		FOR UPDATE
	`, productID).Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CategoryID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, product.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// DecrementStock is a conditional update: it never takes stock below zero.
func (r *repository) DecrementStock(ctx context.Context, productID int64, quantity int) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - $1
		WHERE id = $2 AND stock >= $1
	`, quantity, productID)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	return expectOneRow(res, ErrInsufficientStock)
}

func (r *repository) IncrementStock(ctx context.Context, productID int64, quantity int) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE products
		SET stock = stock + $1
		WHERE id = $2
	`, quantity, productID)
	if err != nil {
		if isOutOfRange(err) {
			return ErrQuantityOverflow
		}
		return fmt.Errorf("increment stock: %w", err)
	}
	return expectOneRow(res, product.ErrProductNotFound)
}

type itemScanner interface {
	Scan(dest ...any) error
}

func scanItem(row itemScanner) (OrderItem, error) {
	var it OrderItem
	err := row.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Price)
	return it, err
}

func isOutOfRange(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == numericOutOfRange
}

func expectOneRow(res sql.Result, notFound error) error {
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
