package service

import (
	"context"
	"time"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/models"
)

// CartSessions hands out per-session carts
type CartSessions interface {
	Session(sessionID string) *cart.Store
}

// ProductCatalog prices and names cart lines
type ProductCatalog interface {
	Price(productID string) (int64, bool)
	GetProduct(productID string) (models.Product, bool)
	DisplayName(p models.Product, locale string) string
	Currency() catalog.Currency
}

// SessionStore persists checkout sessions and processed signals
type SessionStore interface {
	CreateSession(ctx context.Context, session *models.CheckoutSession) error
	GetSession(ctx context.Context, reference string) (*models.CheckoutSession, error)
	GetSessionsBySessionID(ctx context.Context, sessionID string, limit int) ([]models.CheckoutSession, error)
	UpdateSessionStatus(ctx context.Context, reference, status string) (bool, error)
	IsEventProcessed(ctx context.Context, eventID string) (bool, error)
	MarkEventProcessed(ctx context.Context, eventID, eventType string) (bool, error)
}

// Coordinator provides cross-instance locks and de-duplication keys
type Coordinator interface {
	AcquireLock(ctx context.Context, lockKey string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, lockKey string) error
	SetIdempotencyKey(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)
}

// CheckoutEvents publishes checkout lifecycle events
type CheckoutEvents interface {
	PublishCheckoutCreated(ctx context.Context, event *models.CheckoutCreatedEvent) error
	PublishCheckoutSignal(ctx context.Context, event *models.CheckoutSignalEvent) error
	PublishCheckoutCompleted(ctx context.Context, event *models.CheckoutCompletedEvent) error
	PublishCheckoutCancelled(ctx context.Context, event *models.CheckoutCancelledEvent) error
}

// Messages formats localized strings
type Messages interface {
	Format(locale, key string, args map[string]string) string
}
