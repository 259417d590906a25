package order

import (
	"context"
	"sort"
	"sync"
	"time"

	"bakery-be/internal/product"

	"github.com/shopspring/decimal"
)

// memoryRepository is an in-process Repository for workflow tests. WithTx
// restores a snapshot when fn fails, mirroring a rolled back transaction.
type memoryRepository struct {
	mu       sync.Mutex
	nextID   int64
	orders   map[int64]*Order
	items    map[int64]*OrderItem
	products map[int64]*product.Product
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		orders:   make(map[int64]*Order),
		items:    make(map[int64]*OrderItem),
		products: make(map[int64]*product.Product),
	}
}

func (m *memoryRepository) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memoryRepository) addProduct(name, price string, stock int) *product.Product {
	p := &product.Product{ID: m.id(), Name: name, Price: decimal.RequireFromString(price), Stock: stock}
	m.products[p.ID] = p
	return p
}

func (m *memoryRepository) stock(productID int64) int {
	return m.products[productID].Stock
}

func (m *memoryRepository) WithTx(ctx context.Context, fn func(tx Repository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	orders := make(map[int64]Order, len(m.orders))
	for k, v := range m.orders {
		orders[k] = *v
	}
	items := make(map[int64]OrderItem, len(m.items))
	for k, v := range m.items {
		items[k] = *v
	}
	products := make(map[int64]product.Product, len(m.products))
	for k, v := range m.products {
		products[k] = *v
	}
	nextID := m.nextID

	if err := fn(m); err != nil {
		m.orders = make(map[int64]*Order, len(orders))
		for k, v := range orders {
			m.orders[k] = &v
		}
		m.items = make(map[int64]*OrderItem, len(items))
		for k, v := range items {
			m.items[k] = &v
		}
		m.products = make(map[int64]*product.Product, len(products))
		for k, v := range products {
			m.products[k] = &v
		}
		m.nextID = nextID
		return err
	}
	return nil
}

func (m *memoryRepository) Create(ctx context.Context, userID int64) (*Order, error) {
	o := &Order{ID: m.id(), UserID: userID, Status: StatusPending, CreatedAt: time.Now()}
	m.orders[o.ID] = o
	cp := *o
	cp.setItems(nil)
	return &cp, nil
}

func (m *memoryRepository) List(ctx context.Context, userID int64) ([]*Order, error) {
	out := make([]*Order, 0)
	for _, o := range m.orders {
		if o.UserID != userID {
			continue
		}
		cp := *o
		items, _ := m.ListItems(ctx, o.ID)
		cp.setItems(items)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memoryRepository) GetForUser(ctx context.Context, orderID, userID int64) (*Order, error) {
	o, ok := m.orders[orderID]
	if !ok || o.UserID != userID {
		return nil, ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memoryRepository) GetForUpdate(ctx context.Context, orderID, userID int64) (*Order, error) {
	return m.GetForUser(ctx, orderID, userID)
}

func (m *memoryRepository) Delete(ctx context.Context, orderID int64) error {
	if _, ok := m.orders[orderID]; !ok {
		return ErrOrderNotFound
	}
	delete(m.orders, orderID)
	for id, it := range m.items {
		if it.OrderID == orderID {
			delete(m.items, id)
		}
	}
	return nil
}

func (m *memoryRepository) MarkCompleted(ctx context.Context, orderID int64) error {
	o, ok := m.orders[orderID]
	if !ok || o.Status != StatusPending {
		return ErrOrderNotPending
	}
	o.Status = StatusCompleted
	return nil
}

func (m *memoryRepository) ListItems(ctx context.Context, orderID int64) ([]OrderItem, error) {
	out := make([]OrderItem, 0)
	for _, it := range m.items {
		if it.OrderID == orderID {
			cp := *it
			cp.ProductName = m.products[it.ProductID].Name
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryRepository) CountItems(ctx context.Context, orderID int64) (int, error) {
	items, _ := m.ListItems(ctx, orderID)
	return len(items), nil
}

func (m *memoryRepository) GetItem(ctx context.Context, orderID, productID int64) (*OrderItem, error) {
	for _, it := range m.items {
		if it.OrderID == orderID && it.ProductID == productID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memoryRepository) CreateItem(ctx context.Context, orderID, productID int64, quantity int, price decimal.Decimal) (*OrderItem, error) {
	it := &OrderItem{ID: m.id(), OrderID: orderID, ProductID: productID, Quantity: quantity, Price: price}
	m.items[it.ID] = it
	cp := *it
	return &cp, nil
}

func (m *memoryRepository) UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error {
	it, ok := m.items[itemID]
	if !ok {
		return ErrOrderItemNotFound
	}
	it.Quantity = quantity
	return nil
}

func (m *memoryRepository) DeleteItem(ctx context.Context, itemID int64) error {
	if _, ok := m.items[itemID]; !ok {
		return ErrOrderItemNotFound
	}
	delete(m.items, itemID)
	return nil
}

func (m *memoryRepository) GetProductForUpdate(ctx context.Context, productID int64) (*product.Product, error) {
	p, ok := m.products[productID]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memoryRepository) DecrementStock(ctx context.Context, productID int64, quantity int) error {
	p, ok := m.products[productID]
	if !ok || p.Stock < quantity {
		return ErrInsufficientStock
	}
	p.Stock -= quantity
	return nil
}

func (m *memoryRepository) IncrementStock(ctx context.Context, productID int64, quantity int) error {
	p, ok := m.products[productID]
	if !ok {
		return product.ErrProductNotFound
	}
	p.Stock += quantity
	return nil
}

// updatePrice simulates an admin edit of the catalog price.
func (m *memoryRepository) updatePrice(productID int64, price string) {
	m.products[productID].Price = decimal.RequireFromString(price)
}
