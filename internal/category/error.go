package category

import "bakery-be/internal/apperror"

// MaxNameLength matches the VARCHAR(255) name columns.
const MaxNameLength = 255

var (
	// -- Validation & Input --
	ErrNameRequired = apperror.New(apperror.KindValidation, "category name cannot be empty")
	ErrNameTooLong  = apperror.New(apperror.KindValidation, "category name must be at most 255 characters")

	// -- Resource State --
	ErrCategoryNotFound = apperror.New(apperror.KindNotFound, "category not found")
)
