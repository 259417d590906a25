// Package transport maps an explicit route table onto net/http. Each route is
// a (method, pattern) pair bound to a function of the caller identity and the
// parsed request; the function returns a result or a classified error.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"bakery-be/internal/apperror"
	"bakery-be/internal/logger"
	"bakery-be/internal/utils"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

var (
	ErrMalformedBody = apperror.New(apperror.KindValidation, "request body must be a JSON object")
	ErrRouteNotFound = apperror.New(apperror.KindNotFound, "not found")
)

// Identity is the authenticated caller.
type Identity struct {
	UserID int64
	Email  string
	Role   string
}

type Request struct {
	// Identity is nil for anonymous callers.
	Identity *Identity
	// ID is the {id} path segment, zero when the pattern has none.
	ID    int64
	Query url.Values
	Body  []byte
}

// Decode unmarshals the JSON body into v. An empty body leaves v untouched.
func (r Request) Decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return ErrMalformedBody
	}
	return nil
}

type Response struct {
	Status int
	Body   any
	// Cookies are set on the response before the body is written.
	Cookies []*http.Cookie
}

func OK(body any) Response      { return Response{Status: http.StatusOK, Body: body} }
func Created(body any) Response { return Response{Status: http.StatusCreated, Body: body} }
func NoContent() Response       { return Response{Status: http.StatusNoContent} }

type HandleFunc func(ctx context.Context, req Request) (Response, error)

type Route struct {
	Method  string
	Pattern string
	// Auth routes reject anonymous callers before Handle runs.
	Auth   bool
	Handle HandleFunc
}

// Mount registers every route on mux using method-qualified patterns.
func Mount(mux *http.ServeMux, routes []Route) {
	for _, rt := range routes {
		mux.Handle(rt.Method+" "+rt.Pattern, serve(rt))
	}
}

func serve(rt Route) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		req := Request{
			Identity: identityFrom(ctx),
			Query:    r.URL.Query(),
		}

		if rt.Auth && req.Identity == nil {
			WriteError(ctx, w, apperror.ErrUnauthenticated)
			return
		}

		if raw := r.PathValue("id"); raw != "" {
			id, ok := utils.ParseID(raw)
			if !ok {
				WriteError(ctx, w, ErrRouteNotFound)
				return
			}
			req.ID = id
		}

		if r.Body != nil {
			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
			if err != nil {
				WriteError(ctx, w, ErrMalformedBody)
				return
			}
			req.Body = body
		}

		resp, err := rt.Handle(ctx, req)
		if err != nil {
			WriteError(ctx, w, err)
			return
		}

		for _, c := range resp.Cookies {
			http.SetCookie(w, c)
		}

		if resp.Status == 0 {
			resp.Status = http.StatusOK
		}
		if resp.Status == http.StatusNoContent {
			w.WriteHeader(resp.Status)
			return
		}
		utils.WriteJSON(w, resp.Status, resp.Body)
	})
}

func identityFrom(ctx context.Context) *Identity {
	id, ok := utils.GetUserIDFromContext(ctx)
	if !ok || id == 0 {
		return nil
	}
	return &Identity{
		UserID: id,
		Email:  utils.GetUserEmailFromContext(ctx),
		Role:   utils.GetUserRoleFromContext(ctx),
	}
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation,
		apperror.KindInsufficientStock,
		apperror.KindInvalidState,
		apperror.KindEmptyOrder:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperror.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as {code, error}. Unclassified errors are logged and
// reported as a generic 500.
func WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	kind := apperror.KindOf(err)
	status := StatusFor(kind)

	if status == http.StatusInternalServerError {
		logger.FromCtx(ctx).Error("request failed", zap.Error(err))
	}

	utils.WriteJSONError(w, string(kind), apperror.Message(err), status)
}
