package entities

import "errors"

var (
	ErrEntityNotFound   = errors.New("entity not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrLineItemNotFound = errors.New("line item not found")

	ErrForbidden        = errors.New("operation not permitted for this actor")
	ErrOrderNotEditable = errors.New("order is no longer editable")
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")

	// ErrStatusConflict is returned when a conditional status update matched
	// no rows: the order status changed between read and write.
	ErrStatusConflict = errors.New("order status changed concurrently")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
