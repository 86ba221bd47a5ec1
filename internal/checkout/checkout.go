package checkout

import (
	"context"
	"fmt"
	"strings"
)

// DefaultMinAmount is the smallest amount a checkout may be initialized with
const DefaultMinAmount int64 = 100

// LineItem is an optional itemized breakdown of Amount
type LineItem struct {
	Name       string
	Quantity   int64
	UnitAmount int64
}

// Request describes a checkout to initialize at the provider. Amount is in
// the same unit the catalog displays prices in.
type Request struct {
	Email       string
	Amount      int64
	Currency    string
	Description string
	Metadata    map[string]string
	SuccessURL  string
	CancelURL   string
	Locale      string
	LineItems   []LineItem
}

// Session is the provider's answer to a successful initialization
type Session struct {
	CheckoutURL string `json:"checkout_url"`
	Reference   string `json:"reference"`
}

// Initiator creates hosted checkout sessions
type Initiator interface {
	Initialize(ctx context.Context, req Request) (Session, error)
	Name() string
}

// Validate runs the local checks that must pass before any network call
func Validate(req Request, minAmount int64) error {
	if minAmount <= 0 {
		minAmount = DefaultMinAmount
	}
	if strings.TrimSpace(req.Email) == "" {
		return &ValidationError{Field: "email", Message: "Email is required", Err: ErrEmailRequired}
	}
	if req.Amount < minAmount {
		return &ValidationError{
			Field:   "amount",
			Message: fmt.Sprintf("Amount must be at least %d", minAmount),
			Err:     ErrAmountTooLow,
		}
	}
	return nil
}
