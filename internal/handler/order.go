package handler

import (
	"context"

	"bakery-be/internal/order"
	"bakery-be/internal/transport"
)

func (h *Handler) listOrders(ctx context.Context, req transport.Request) (transport.Response, error) {
	o, err := h.OrderSvc.List(ctx, req.Identity.UserID)
	if err != nil {
		return transport.Response{}, err
	}
	return transport.OK(o), nil
}

func (h *Handler) createOrder(ctx context.Context, req transport.Request) (transport.Response, error) {
	o, err := h.OrderSvc.Create(ctx, req.Identity.UserID)
	if err != nil {
		return transport.Response{}, err
	}
	return transport.Created(o), nil
}

func (h *Handler) getOrder(ctx context.Context, req transport.Request) (transport.Response, error) {
	o, err := h.OrderSvc.Get(ctx, req.Identity.UserID, req.ID)
	if err != nil {
		return transport.Response{}, err
	}
	return transport.OK(o), nil
}

func (h *Handler) deleteOrder(ctx context.Context, req transport.Request) (transport.Response, error) {
	if err := h.OrderSvc.Delete(ctx, req.Identity.UserID, req.ID); err != nil {
		return transport.Response{}, err
	}
	return transport.NoContent(), nil
}

func (h *Handler) addItem(ctx context.Context, req transport.Request) (transport.Response, error) {
	var input order.ItemInput
	if err := req.Decode(&input); err != nil {
		return transport.Response{}, err
	}

	o, err := h.OrderSvc.AddItem(ctx, req.Identity.UserID, req.ID, input)
	if err != nil {
		return transport.Response{}, err
	}
	return transport.OK(o), nil
}

func (h *Handler) removeItem(ctx context.Context, req transport.Request) (transport.Response, error) {
	var input order.ItemInput
	if err := req.Decode(&input); err != nil {
		return transport.Response{}, err
	}

	o, err := h.OrderSvc.RemoveItem(ctx, req.Identity.UserID, req.ID, input)
	if err != nil {
		return transport.Response{}, err
	}
	return transport.OK(o), nil
}

func (h *Handler) checkout(ctx context.Context, req transport.Request) (transport.Response, error) {
	o, err := h.OrderSvc.Checkout(ctx, req.Identity.UserID, req.ID)
	if err != nil {
		return transport.Response{}, err
	}
	return transport.OK(o), nil
}
