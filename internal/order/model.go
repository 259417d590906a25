package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusCompleted OrderStatus = "COMPLETED"
)

type Order struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user"`
	Status    OrderStatus     `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	Items     []OrderItem     `json:"items"`
	Total     decimal.Decimal `json:"total"`
}

// OrderItem is one line of an order. Price is the product price captured when
// the line was first created.
type OrderItem struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"-"`
	ProductID   int64           `json:"product"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// ItemInput is the add_item / remove_item request body. Quantity defaults to 1.
type ItemInput struct {
	ProductID *int64 `json:"product_id"`
	Quantity  *int   `json:"quantity"`
}

func (o *Order) setItems(items []OrderItem) {
	if items == nil {
		items = []OrderItem{}
	}
	o.Items = items
	o.Total = decimal.Zero
	for _, it := range items {
		o.Total = o.Total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
}
