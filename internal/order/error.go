package order

import "bakery-be/internal/apperror"

var (
	// -- Validation & Input --
	ErrProductIDRequired = apperror.New(apperror.KindValidation, "Product ID is required")
	ErrInvalidQuantity   = apperror.New(apperror.KindValidation, "quantity must be a positive integer")
	ErrQuantityOverflow  = apperror.New(apperror.KindValidation, "quantity exceeds the storable limit")

	// -- Resource State --
	ErrOrderNotFound     = apperror.New(apperror.KindNotFound, "order not found")
	ErrOrderItemNotFound = apperror.New(apperror.KindNotFound, "order item not found")
	ErrInsufficientStock = apperror.New(apperror.KindInsufficientStock, "Not enough stock available")
	ErrOrderNotPending   = apperror.New(apperror.KindInvalidState, "Order is not in pending status")
	ErrEmptyOrder        = apperror.New(apperror.KindEmptyOrder, "Cannot checkout an empty order")
)
