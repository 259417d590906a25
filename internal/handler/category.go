package handler

import (
	"context"

	"bakery-be/internal/category"
	"bakery-be/internal/transport"
)

func (h *Handler) listCategories(ctx context.Context, req transport.Request) (transport.Response, error) {
	c, err := h.CategorySvc.List(ctx)
	if err != nil {
		return transport.Response{}, err
	}
	return transport.OK(c), nil
}

func (h *Handler) getCategory(ctx context.Context, req transport.Request) (transport.Response, error) {
	c, err := h.CategorySvc.Get(ctx, req.ID)
	if err != nil {
		return transport.Response{}, err
	}
	return transport.OK(c), nil
}

func (h *Handler) createCategory(ctx context.Context, req transport.Request) (transport.Response, error) {
	var input category.CategoryInput
	if err := req.Decode(&input); err != nil {
		return transport.Response{}, err
	}

	c, err := h.CategorySvc.Create(ctx, input)
	if err != nil {
		return transport.Response{}, err
	}
	return transport.Created(c), nil
}

func (h *Handler) updateCategory(ctx context.Context, req transport.Request) (transport.Response, error) {
	var input category.CategoryInput
	if err := req.Decode(&input); err != nil {
		return transport.Response{}, err
	}

	c, err := h.CategorySvc.Update(ctx, req.ID, input)
	if err != nil {
		return transport.Response{}, err
	}
	return transport.OK(c), nil
}

func (h *Handler) deleteCategory(ctx context.Context, req transport.Request) (transport.Response, error) {
	if err := h.CategorySvc.Delete(ctx, req.ID); err != nil {
		return transport.Response{}, err
	}
	return transport.NoContent(), nil
}
