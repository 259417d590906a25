// Package apperror classifies domain errors so the HTTP layer can map them to
// a status code and a stable machine-readable code.
package apperror

import "errors"

type Kind string

const (
	KindValidation        Kind = "validation_error"
	KindNotFound          Kind = "not_found"
	KindInsufficientStock Kind = "insufficient_stock"
	KindInvalidState      Kind = "invalid_state"
	KindEmptyOrder        Kind = "empty_order"
	KindUnauthenticated   Kind = "unauthorized"
	KindConflict          Kind = "conflict"
	KindInternal          Kind = "internal_error"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the client-facing message for err. Unclassified errors are
// not exposed.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

var ErrUnauthenticated = New(KindUnauthenticated, "authentication credentials were not provided")
