package product

import "bakery-be/internal/apperror"

var (
	// -- Validation & Input --
	ErrNameRequired    = apperror.New(apperror.KindValidation, "product name cannot be empty")
	ErrNameTooLong     = apperror.New(apperror.KindValidation, "product name must be at most 255 characters")
	ErrPriceRequired   = apperror.New(apperror.KindValidation, "product price is required")
	ErrNegativePrice   = apperror.New(apperror.KindValidation, "product price must be greater than or equal to zero")
	ErrPriceOutOfRange = apperror.New(apperror.KindValidation, "product price must be less than 100000000")
	ErrNegativeStock   = apperror.New(apperror.KindValidation, "product stock must be greater than or equal to zero")
	ErrStockOutOfRange = apperror.New(apperror.KindValidation, "product stock must be at most 2147483647")
	ErrInvalidCategory = apperror.New(apperror.KindValidation, "invalid category - object does not exist")

	// -- Resource State --
	ErrProductNotFound = apperror.New(apperror.KindNotFound, "product not found")
)
