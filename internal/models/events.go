package models

import (
	"strings"
	"time"
)

// Event types
const (
	EventTypeCartUpdated       = "CART_UPDATED"
	EventTypeCheckoutCreated   = "CHECKOUT_CREATED"
	EventTypeCheckoutSignal    = "CHECKOUT_SIGNAL"
	EventTypeCheckoutCompleted = "CHECKOUT_COMPLETED"
	EventTypeCheckoutCancelled = "CHECKOUT_CANCELLED"
)

// Completion signal types sent by embedded or popup checkouts
const (
	SignalComplete = "checkout:complete"
	SignalCancel   = "checkout:cancel"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// CartUpdatedEvent published after every persisted cart mutation
type CartUpdatedEvent struct {
	BaseEvent
	SessionID string     `json:"session_id"`
	Op        string     `json:"op"`
	Lines     []CartLine `json:"lines"`
	Count     int        `json:"count"`
}

// CheckoutCreatedEvent published when the provider returns a session
type CheckoutCreatedEvent struct {
	BaseEvent
	Reference string `json:"reference"`
	SessionID string `json:"session_id,omitempty"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Mode      string `json:"mode"`
}

// CheckoutSignalEvent carries a completion or cancellation signal to the worker
type CheckoutSignalEvent struct {
	BaseEvent
	Signal Signal `json:"signal"`
}

// CheckoutCompletedEvent published when a completion signal was applied
type CheckoutCompletedEvent struct {
	BaseEvent
	Reference string `json:"reference"`
	SessionID string `json:"session_id,omitempty"`
}

// CheckoutCancelledEvent published when a cancellation signal was applied
type CheckoutCancelledEvent struct {
	BaseEvent
	Reference string `json:"reference"`
}

// Signal is the cross-frame completion message relayed by the client
type Signal struct {
	Type      string `json:"type" binding:"required"`
	Reference string `json:"reference"`
}

// NormalizedType strips the provider prefix used by embedded checkouts,
// so "sika:checkout:complete" and "checkout:complete" are equivalent.
func (s Signal) NormalizedType() string {
	t := strings.TrimSpace(s.Type)
	if i := strings.Index(t, "checkout:"); i > 0 {
		t = t[i:]
	}
	return t
}
