package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bakery-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, p *Product) (*Product, error)
	Update(ctx context.Context, p *Product) (*Product, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, price, stock, category_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var p Product
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CategoryID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	start := time.Now()

	query := `SELECT ` + productColumns + ` FROM products`
	args := []any{}

	// ---------- FILTER ----------
	if filter.CategoryID != nil {
		query += fmt.Sprintf(" WHERE category_id = $%d", len(args)+1)
		args = append(args, *filter.CategoryID)
		log = log.With(zap.Int64("filter_category_id", *filter.CategoryID))
	}

	query += " ORDER BY id ASC"

	log.Debug("executing query", zap.String("query", query))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]*Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	log.Info("query success",
		zap.Int("rows", len(products)),
		zap.Duration("duration", time.Since(start)),
	)

	return products, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id,
	)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("GetByID DB query failed",
			zap.Int64("product_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get product: %w", err)
	}

	return p, nil
}

func (r *repository) Create(ctx context.Context, p *Product) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("product_name", p.Name),
	)

	query := `
		INSERT INTO products (name, price, stock, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + productColumns

	created, err := scanProduct(r.db.QueryRowContext(ctx, query, p.Name, p.Price, p.Stock, p.CategoryID))
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, fmt.Errorf("create product: %w", err)
	}

	log.Info("success create product", zap.Int64("product_id", created.ID))
	return created, nil
}

func (r *repository) Update(ctx context.Context, p *Product) (*Product, error) {
	query := `
		UPDATE products
		SET name = $1, price = $2, stock = $3, category_id = $4
		WHERE id = $5
		RETURNING ` + productColumns

	updated, err := scanProduct(r.db.QueryRowContext(ctx, query, p.Name, p.Price, p.Stock, p.CategoryID, p.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update product",
			zap.Int64("product_id", p.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("update product: %w", err)
	}

	return updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to delete product",
			zap.Int64("product_id", id),
			zap.Error(err),
		)
		return fmt.Errorf("delete product: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}
