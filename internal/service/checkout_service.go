package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"storefront/internal/cart"
	"storefront/internal/checkout"
	"storefront/internal/models"
	"storefront/internal/store"
	"storefront/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Settings holds the deployment values the checkout flows depend on
type Settings struct {
	StoreName       string
	BaseURL         string
	MinAmount       int64
	LockTTL         time.Duration
	SignalDedupeTTL time.Duration
	DonationPresets []int64
}

// CheckoutService turns carts and direct purchases into hosted checkout sessions
type CheckoutService struct {
	carts     CartSessions
	catalog   ProductCatalog
	initiator checkout.Initiator
	sessions  SessionStore
	coord     Coordinator
	events    CheckoutEvents
	messages  Messages
	settings  Settings
	logger    *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	carts CartSessions,
	catalog ProductCatalog,
	initiator checkout.Initiator,
	sessions SessionStore,
	coord Coordinator,
	events CheckoutEvents,
	messages Messages,
	settings Settings,
) *CheckoutService {
	if settings.MinAmount <= 0 {
		settings.MinAmount = checkout.DefaultMinAmount
	}
	if settings.LockTTL <= 0 {
		settings.LockTTL = 30 * time.Second
	}
	if settings.SignalDedupeTTL <= 0 {
		settings.SignalDedupeTTL = 10 * time.Minute
	}
	return &CheckoutService{
		carts:     carts,
		catalog:   catalog,
		initiator: initiator,
		sessions:  sessions,
		coord:     coord,
		events:    events,
		messages:  messages,
		settings:  settings,
		logger:    util.GetLogger(),
	}
}

// CartCheckoutRequest starts a checkout for the contents of a cart session
type CartCheckoutRequest struct {
	SessionID string `json:"-"`
	Email     string `json:"email"`
	Mode      string `json:"mode"`
	Locale    string `json:"locale"`
}

// DirectCheckoutRequest starts a checkout for a fixed amount
type DirectCheckoutRequest struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Locale      string            `json:"locale,omitempty"`
	Mode        string            `json:"mode,omitempty"`
}

// CheckoutResult is what the client needs to present the hosted checkout
type CheckoutResult struct {
	CheckoutURL     string `json:"checkout_url"`
	Reference       string `json:"reference"`
	Mode            string `json:"mode"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	FormattedAmount string `json:"formatted_amount"`
	CartCleared     bool   `json:"cart_cleared"`
}

// StartCartCheckout prices the session's cart and initializes a checkout for
// it. In redirect mode the cart is cleared before returning; other modes keep
// it until a completion signal arrives.
func (s *CheckoutService) StartCartCheckout(ctx context.Context, req CartCheckoutRequest) (*CheckoutResult, error) {
	ctx, span := util.StartSpan(ctx, "CheckoutService.StartCartCheckout")
	defer span.End()

	mode, err := normalizeMode(req.Mode)
	if err != nil {
		return nil, err
	}

	lockKey := "checkout:" + req.SessionID
	acquired, err := s.coord.AcquireLock(ctx, lockKey, s.settings.LockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire checkout lock: %w", err)
	}
	if !acquired {
		util.CheckoutFailedTotal.WithLabelValues("in_progress").Inc()
		return nil, ErrCheckoutInProgress
	}
	defer func() {
		if err := s.coord.ReleaseLock(context.Background(), lockKey); err != nil {
			s.logger.Warn("Failed to release checkout lock", zap.String("session_id", req.SessionID), zap.Error(err))
		}
	}()

	cartStore := s.carts.Session(req.SessionID)
	lines := cart.Known(cartStore.GetCart(ctx), s.catalog)
	if len(lines) == 0 {
		util.CheckoutFailedTotal.WithLabelValues("empty_cart").Inc()
		return nil, &checkout.ValidationError{Field: "cart", Message: "Your cart is empty", Err: ErrEmptyCart}
	}

	count := cart.Count(lines)
	amount, err := cart.CheckedTotal(lines, s.catalog)
	if err != nil {
		util.CheckoutFailedTotal.WithLabelValues("total_overflow").Inc()
		return nil, &checkout.ValidationError{Field: "cart", Message: "Cart total is too large", Err: err}
	}

	items := make([]checkout.LineItem, 0, len(lines))
	for _, l := range lines {
		p, _ := s.catalog.GetProduct(l.ProductID)
		items = append(items, checkout.LineItem{
			Name:       s.catalog.DisplayName(p, req.Locale),
			Quantity:   int64(l.Quantity),
			UnitAmount: p.Price,
		})
	}

	result, err := s.initiate(ctx, mode, req.SessionID, checkout.Request{
		Email:       req.Email,
		Amount:      amount,
		Description: s.cartDescription(req.Locale, count),
		Metadata: map[string]string{
			"session_id": req.SessionID,
			"items":      strconv.Itoa(count),
		},
		Locale:    req.Locale,
		LineItems: items,
	})
	if err != nil {
		return nil, err
	}

	if models.ClearsOnRedirect(mode) {
		if err := cartStore.ClearCart(ctx); err != nil {
			s.logger.Warn("Failed to clear cart before redirect",
				zap.String("session_id", req.SessionID),
				zap.Error(err))
		} else {
			result.CartCleared = true
		}
	}

	return result, nil
}

// StartDirectCheckout initializes a checkout for a fixed amount without a cart
func (s *CheckoutService) StartDirectCheckout(ctx context.Context, req DirectCheckoutRequest) (*CheckoutResult, error) {
	ctx, span := util.StartSpan(ctx, "CheckoutService.StartDirectCheckout")
	defer span.End()

	mode, err := normalizeMode(req.Mode)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = s.settings.StoreName + " Store"
	}

	return s.initiate(ctx, mode, "", checkout.Request{
		Email:       req.Email,
		Amount:      req.Amount,
		Description: description,
		Metadata:    req.Metadata,
		Locale:      req.Locale,
	})
}

func (s *CheckoutService) initiate(ctx context.Context, mode, sessionID string, req checkout.Request) (*CheckoutResult, error) {
	currency := s.catalog.Currency()
	req.Currency = currency.Code
	req.SuccessURL = checkout.SuccessURL(s.settings.BaseURL)
	req.CancelURL = checkout.CancelURL(s.settings.BaseURL)

	if err := checkout.Validate(req, s.settings.MinAmount); err != nil {
		util.CheckoutFailedTotal.WithLabelValues("validation").Inc()
		return nil, err
	}

	session, err := s.initiator.Initialize(ctx, req)
	if err != nil {
		reason := "provider"
		if checkout.IsValidation(err) {
			reason = "validation"
		}
		util.CheckoutFailedTotal.WithLabelValues(reason).Inc()
		s.logger.Error("Checkout initialization failed",
			zap.String("provider", s.initiator.Name()),
			zap.String("session_id", sessionID),
			zap.Int64("amount", req.Amount),
			zap.Error(err))
		return nil, err
	}

	record := &models.CheckoutSession{
		Reference:   session.Reference,
		SessionID:   sessionID,
		Email:       strings.TrimSpace(req.Email),
		Amount:      req.Amount,
		Currency:    currency.Code,
		Description: req.Description,
		Mode:        mode,
		Status:      models.CheckoutStatusPending,
		CheckoutURL: session.CheckoutURL,
	}
	if err := s.sessions.CreateSession(ctx, record); err != nil {
		util.CheckoutFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to record checkout session: %w", err)
	}

	util.CheckoutInitiatedTotal.WithLabelValues(mode).Inc()
	s.logger.Info("Checkout started",
		zap.String("reference", session.Reference),
		zap.String("session_id", sessionID),
		zap.String("mode", mode),
		zap.Int64("amount", req.Amount))

	event := &models.CheckoutCreatedEvent{
		BaseEvent: newBaseEvent(models.EventTypeCheckoutCreated),
		Reference: session.Reference,
		SessionID: sessionID,
		Amount:    req.Amount,
		Currency:  currency.Code,
		Mode:      mode,
	}
	if err := s.events.PublishCheckoutCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish CheckoutCreated event", zap.Error(err))
	}

	return &CheckoutResult{
		CheckoutURL:     session.CheckoutURL,
		Reference:       session.Reference,
		Mode:            mode,
		Amount:          req.Amount,
		Currency:        currency.Code,
		FormattedAmount: currency.Format(req.Amount),
	}, nil
}

// GetSession returns the recorded checkout session for reference
func (s *CheckoutService) GetSession(ctx context.Context, reference string) (*models.CheckoutSession, error) {
	session, err := s.sessions.GetSession(ctx, reference)
	if errors.Is(err, store.ErrSessionNotFound) {
		return nil, ErrUnknownReference
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout session: %w", err)
	}
	return session, nil
}

// CartCheckoutsLimit bounds the history returned by ListCartCheckouts
const CartCheckoutsLimit = 20

// ListCartCheckouts returns the most recent checkouts started from a cart
// session, newest first
func (s *CheckoutService) ListCartCheckouts(ctx context.Context, sessionID string) ([]models.CheckoutSession, error) {
	if strings.TrimSpace(sessionID) == "" {
		return []models.CheckoutSession{}, nil
	}
	return s.sessions.GetSessionsBySessionID(ctx, sessionID, CartCheckoutsLimit)
}

// DonationPresets returns the suggested amounts for direct checkouts
func (s *CheckoutService) DonationPresets() []int64 {
	return append([]int64(nil), s.settings.DonationPresets...)
}

// MinAmount returns the smallest accepted checkout amount
func (s *CheckoutService) MinAmount() int64 {
	return s.settings.MinAmount
}

func (s *CheckoutService) cartDescription(locale string, count int) string {
	key := "cart.items"
	if count == 1 {
		key = "cart.item"
	}
	return s.messages.Format(locale, key, map[string]string{
		"count": strconv.Itoa(count),
		"store": s.settings.StoreName,
	})
}

func normalizeMode(mode string) (string, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		return models.ModeRedirect, nil
	}
	if !models.ValidMode(mode) {
		return "", &checkout.ValidationError{
			Field:   "mode",
			Message: fmt.Sprintf("Unknown checkout mode %q", mode),
			Err:     ErrInvalidMode,
		}
	}
	return mode, nil
}

func newBaseEvent(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}
