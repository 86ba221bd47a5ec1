package service

import "errors"

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidMode        = errors.New("invalid checkout mode")
	ErrUnknownSignal      = errors.New("unknown checkout signal")
	ErrUnknownReference   = errors.New("unknown checkout reference")
	ErrReferenceRequired  = errors.New("checkout reference is required")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)
