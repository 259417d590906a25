package handler

import (
	"context"

	"bakery-be/internal/apperror"
	"bakery-be/internal/product"
	"bakery-be/internal/transport"
	"bakery-be/internal/utils"
)

var ErrInvalidCategoryFilter = apperror.New(apperror.KindValidation, "category must be a valid id")

func (h *Handler) listProducts(ctx context.Context, req transport.Request) (transport.Response, error) {
	var filter product.ListFilter

	if raw := req.Query.Get("category"); raw != "" {
		id, ok := utils.ParseID(raw)
		if !ok {
			return transport.Response{}, ErrInvalidCategoryFilter
		}
		filter.CategoryID = &id
	}

	p, err := h.ProductSvc.List(ctx, filter)
	if err != nil {
		return transport.Response{}, err
	}
	return transport.OK(p), nil
}

func (h *Handler) getProduct(ctx context.Context, req transport.Request) (transport.Response, error) {
	p, err := h.ProductSvc.Get(ctx, req.ID)
	if err != nil {
		return transport.Response{}, err
	}
	return transport.OK(p), nil
}

func (h *Handler) createProduct(ctx context.Context, req transport.Request) (transport.Response, error) {
	var input product.ProductInput
	if err := req.Decode(&input); err != nil {
		return transport.Response{}, err
	}

	p, err := h.ProductSvc.Create(ctx, input)
	if err != nil {
		return transport.Response{}, err
	}
	return transport.Created(p), nil
}

func (h *Handler) updateProduct(ctx context.Context, req transport.Request) (transport.Response, error) {
	var input product.ProductInput
	if err := req.Decode(&input); err != nil {
		return transport.Response{}, err
	}

	p, err := h.ProductSvc.Update(ctx, req.ID, input)
	if err != nil {
		return transport.Response{}, err
	}
	return transport.OK(p), nil
}

func (h *Handler) deleteProduct(ctx context.Context, req transport.Request) (transport.Response, error) {
	if err := h.ProductSvc.Delete(ctx, req.ID); err != nil {
		return transport.Response{}, err
	}
	return transport.NoContent(), nil
}
