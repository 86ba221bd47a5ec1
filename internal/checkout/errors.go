package checkout

import (
	"errors"
	"net/http"
)

var (
	ErrEmailRequired     = errors.New("email is required")
	ErrAmountTooLow      = errors.New("amount below minimum")
	ErrNotConfigured     = errors.New("checkout provider is not configured")
	ErrMalformedResponse = errors.New("checkout provider returned a malformed response")
)

// ValidationError is a request rejected before contacting the provider
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Err }

// ProviderError is a non-success answer from the checkout provider
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if text := http.StatusText(e.StatusCode); text != "" {
		return "Failed to initialize checkout: " + text
	}
	return "Failed to initialize checkout"
}

// IsValidation reports whether err was raised by local validation
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsProvider reports whether err came from the provider or its transport
func IsProvider(err error) bool {
	var p *ProviderError
	return errors.As(err, &p) || errors.Is(err, ErrMalformedResponse)
}
