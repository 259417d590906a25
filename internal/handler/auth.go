package handler

import (
	"context"
	"net/http"

	"bakery-be/internal/auth"
	"bakery-be/internal/transport"
	"bakery-be/internal/user"
)

func (h *Handler) register(ctx context.Context, req transport.Request) (transport.Response, error) {
	var input user.Credentials
	if err := req.Decode(&input); err != nil {
		return transport.Response{}, err
	}

	res, err := h.UserSvc.Register(ctx, input)
	if err != nil {
		return transport.Response{}, err
	}

	resp := transport.Created(res)
	resp.Cookies = []*http.Cookie{h.accessCookie(res.Token)}
	return resp, nil
}

func (h *Handler) login(ctx context.Context, req transport.Request) (transport.Response, error) {
	var input user.Credentials
	if err := req.Decode(&input); err != nil {
		return transport.Response{}, err
	}

	res, err := h.UserSvc.Login(ctx, input)
	if err != nil {
		return transport.Response{}, err
	}

	resp := transport.OK(res)
	resp.Cookies = []*http.Cookie{h.accessCookie(res.Token)}
	return resp, nil
}

func (h *Handler) accessCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
