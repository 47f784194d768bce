package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")

	// Slot storage
	ErrSlotNotFound = errors.New("storage slot not found")

	// Cart & checkout validation, raised before any remote mutation
	ErrCartEmpty          = errors.New("cart is empty")
	ErrVariantRequired    = errors.New("please select a variant option")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrQuantityLimit      = errors.New("quantity exceeds maximum limit")
	ErrDraftEmpty         = errors.New("checkout draft has no items")
)
