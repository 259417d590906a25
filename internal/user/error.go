package user

import "bakery-be/internal/apperror"

var (
	// -- Validation & Input --
	ErrInvalidEmail  = apperror.New(apperror.KindValidation, "a valid email is required")
	ErrWeakPassword  = apperror.New(apperror.KindValidation, "password must be at least 8 characters")
	ErrEmailExists   = apperror.New(apperror.KindConflict, "email already registered")
	ErrUserNotFound  = apperror.New(apperror.KindNotFound, "user not found")
	ErrBadCredential = apperror.New(apperror.KindUnauthenticated, "invalid email or password")
)
