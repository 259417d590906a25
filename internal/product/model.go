package product

import "github.com/shopspring/decimal"

type Product struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	CategoryID *int64          `json:"category"`
}

type ProductInput struct {
	Name       string           `json:"name"`
	Price      *decimal.Decimal `json:"price"`
	Stock      *int             `json:"stock"`
	CategoryID *int64           `json:"category"`
}

// ListFilter narrows List; a nil CategoryID lists every product.
type ListFilter struct {
	CategoryID *int64
}
