// Package handler binds the domain services to the HTTP route table.
package handler

import (
	"net/http"

	"bakery-be/internal/category"
	"bakery-be/internal/order"
	"bakery-be/internal/product"
	"bakery-be/internal/transport"
	"bakery-be/internal/user"
)

type Handler struct {
	CategorySvc category.Service
	ProductSvc  product.Service
	OrderSvc    order.Service
	UserSvc     user.Service

	// SecureCookie marks the access token cookie Secure.
	SecureCookie bool
}

// Routes returns the full route table. Catalog reads are public, catalog
// writes and every order route require an authenticated caller.
func (h *Handler) Routes() []transport.Route {
	return []transport.Route{
		{Method: http.MethodPost, Pattern: "/auth/register", Handle: h.register},
		{Method: http.MethodPost, Pattern: "/auth/login", Handle: h.login},

		{Method: http.MethodGet, Pattern: "/categories", Handle: h.listCategories},
		{Method: http.MethodPost, Pattern: "/categories", Auth: true, Handle: h.createCategory},
		{Method: http.MethodGet, Pattern: "/categories/{id}", Handle: h.getCategory},
		{Method: http.MethodPut, Pattern: "/categories/{id}", Auth: true, Handle: h.updateCategory},
		{Method: http.MethodDelete, Pattern: "/categories/{id}", Auth: true, Handle: h.deleteCategory},

		{Method: http.MethodGet, Pattern: "/products", Handle: h.listProducts},
		{Method: http.MethodPost, Pattern: "/products", Auth: true, Handle: h.createProduct},
		{Method: http.MethodGet, Pattern: "/products/{id}", Handle: h.getProduct},
		{Method: http.MethodPut, Pattern: "/products/{id}", Auth: true, Handle: h.updateProduct},
		{Method: http.MethodDelete, Pattern: "/products/{id}", Auth: true, Handle: h.deleteProduct},

		{Method: http.MethodGet, Pattern: "/orders", Auth: true, Handle: h.listOrders},
		{Method: http.MethodPost, Pattern: "/orders", Auth: true, Handle: h.createOrder},
		{Method: http.MethodGet, Pattern: "/orders/{id}", Auth: true, Handle: h.getOrder},
		{Method: http.MethodDelete, Pattern: "/orders/{id}", Auth: true, Handle: h.deleteOrder},
		{Method: http.MethodPost, Pattern: "/orders/{id}/add_item", Auth: true, Handle: h.addItem},
		{Method: http.MethodPost, Pattern: "/orders/{id}/remove_item", Auth: true, Handle: h.removeItem},
		{Method: http.MethodPost, Pattern: "/orders/{id}/checkout", Auth: true, Handle: h.checkout},
	}
}
