package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/internal/util"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"go.uber.org/zap"
)

const stripeSessionPlaceholder = "{CHECKOUT_SESSION_ID}"

type stripeSessionAPI interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// StripeConfig configures the Stripe Checkout client
type StripeConfig struct {
	APIKey    string
	MinAmount int64
	Backends  *stripe.Backends
}

// StripeClient initializes hosted checkouts as Stripe Checkout Sessions
type StripeClient struct {
	sessions  stripeSessionAPI
	minAmount int64
	logger    *zap.Logger
}

// NewStripeClient creates a Stripe-backed Initiator
func NewStripeClient(cfg StripeConfig) (*StripeClient, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	sc := client.New(apiKey, cfg.Backends)
	return newStripeClient(sc.CheckoutSessions, cfg.MinAmount), nil
}

func newStripeClient(sessions stripeSessionAPI, minAmount int64) *StripeClient {
	if minAmount <= 0 {
		minAmount = DefaultMinAmount
	}
	return &StripeClient{sessions: sessions, minAmount: minAmount, logger: util.GetLogger()}
}

// Name identifies the provider
func (c *StripeClient) Name() string { return "stripe" }

// Initialize validates req and creates a Stripe Checkout Session
func (c *StripeClient) Initialize(ctx context.Context, req Request) (Session, error) {
	if err := Validate(req, c.minAmount); err != nil {
		return Session{}, err
	}

	ctx, span := util.StartSpan(ctx, "StripeClient.Initialize")
	defer span.End()

	currency := strings.ToLower(req.Currency)
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(stripeURL(req.SuccessURL)),
		CancelURL:     stripe.String(stripeURL(req.CancelURL)),
		CustomerEmail: stripe.String(strings.TrimSpace(req.Email)),
	}
	params.Context = ctx
	if req.Locale != "" {
		params.Locale = stripe.String(strings.ReplaceAll(strings.ToLower(req.Locale), "_", "-"))
	}
	if len(req.Metadata) > 0 {
		params.Metadata = make(map[string]string, len(req.Metadata))
		for k, v := range req.Metadata {
			params.Metadata[k] = v
		}
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(qty),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(item.UnitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
			},
		})
	}
	if len(lineItems) == 0 {
		name := req.Description
		if name == "" {
			name = "Order"
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(req.Amount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(name),
				},
			},
		})
	}
	params.LineItems = lineItems

	start := time.Now()
	session, err := c.sessions.New(params)
	util.CheckoutProviderLatency.WithLabelValues(c.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return Session{}, &ProviderError{Provider: c.Name(), StatusCode: stripeErr.HTTPStatusCode, Message: stripeErr.Msg}
		}
		return Session{}, &ProviderError{Provider: c.Name(), Message: err.Error()}
	}
	if session == nil || session.ID == "" || session.URL == "" {
		return Session{}, ErrMalformedResponse
	}

	c.logger.Info("Checkout session created",
		zap.String("provider", c.Name()),
		zap.String("reference", session.ID))

	return Session{CheckoutURL: session.URL, Reference: session.ID}, nil
}

func stripeURL(template string) string {
	return strings.ReplaceAll(template, ReferencePlaceholder, stripeSessionPlaceholder)
}
