package models

import "time"

// Product represents an item in the static catalog. Either Name/Description or
// NameKey/DescriptionKey is set; keys are resolved through the translator.
type Product struct {
	ID              string   `json:"id"`
	Name            string   `json:"name,omitempty"`
	NameKey         string   `json:"nameKey,omitempty"`
	Description     string   `json:"description,omitempty"`
	DescriptionKey  string   `json:"descriptionKey,omitempty"`
	LongDescription string   `json:"longDescription,omitempty"`
	Price           int64    `json:"price"`
	CompareAtPrice  int64    `json:"compareAtPrice,omitempty"`
	Image           string   `json:"image"`
	Images          []string `json:"images,omitempty"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags,omitempty"`
	InStock         bool     `json:"inStock"`
	Rating          float64  `json:"rating,omitempty"`
	ReviewCount     int      `json:"reviewCount,omitempty"`
	Featured        bool     `json:"featured,omitempty"`
	IsNew           bool     `json:"isNew,omitempty"`
	IsBestSeller    bool     `json:"isBestSeller,omitempty"`
}

// Category groups products by slug
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Slug        string `json:"slug"`
}

// CartLine is one product/quantity pair within a cart
type CartLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CheckoutSession records a session created at the checkout provider
type CheckoutSession struct {
	Reference   string    `db:"reference" json:"reference"`
	SessionID   string    `db:"session_id" json:"session_id,omitempty"`
	Email       string    `db:"email" json:"email"`
	Amount      int64     `db:"amount" json:"amount"`
	Currency    string    `db:"currency" json:"currency"`
	Description string    `db:"description" json:"description,omitempty"`
	Mode        string    `db:"mode" json:"mode"`
	Status      string    `db:"status" json:"status"`
	CheckoutURL string    `db:"checkout_url" json:"checkout_url"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Checkout session statuses
const (
	CheckoutStatusPending   = "PENDING"
	CheckoutStatusCompleted = "COMPLETED"
	CheckoutStatusCancelled = "CANCELLED"
)

// Presentation modes for a hosted checkout
const (
	ModeRedirect = "redirect"
	ModeModal    = "modal"
	ModeInline   = "inline"
	ModePopup    = "popup"
)

// ValidMode reports whether mode is a known presentation mode
func ValidMode(mode string) bool {
	switch mode {
	case ModeRedirect, ModeModal, ModeInline, ModePopup:
		return true
	}
	return false
}

// ClearsOnRedirect reports whether the cart is cleared before the customer leaves.
// Overlay modes keep the cart until a completion signal arrives.
func ClearsOnRedirect(mode string) bool {
	return mode == ModeRedirect
}

// ProcessedEvent for idempotency
type ProcessedEvent struct {
	EventID     string    `db:"event_id"`
	EventType   string    `db:"event_type"`
	ProcessedAt time.Time `db:"processed_at"`
}
