package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SikaConfig configures the Sika hosted checkout client
type SikaConfig struct {
	APIURL      string
	CheckoutURL string
	SecretKey   string
	MinAmount   int64
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// SikaClient initializes checkouts through the Sika REST API
type SikaClient struct {
	apiURL      string
	checkoutURL string
	secretKey   string
	minAmount   int64
	http        *http.Client
	logger      *zap.Logger
}

// NewSikaClient creates a Sika client. An empty APIURL switches the client
// into demo mode, where sessions are generated locally.
func NewSikaClient(cfg SikaConfig) *SikaClient {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	minAmount := cfg.MinAmount
	if minAmount <= 0 {
		minAmount = DefaultMinAmount
	}

	return &SikaClient{
		apiURL:      strings.TrimRight(cfg.APIURL, "/"),
		checkoutURL: strings.TrimRight(cfg.CheckoutURL, "/"),
		secretKey:   cfg.SecretKey,
		minAmount:   minAmount,
		http:        httpClient,
		logger:      util.GetLogger(),
	}
}

// Name identifies the provider
func (c *SikaClient) Name() string { return "sika" }

type sikaInitRequest struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency,omitempty"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	SuccessURL  string            `json:"success_url"`
	CancelURL   string            `json:"cancel_url"`
	Locale      string            `json:"locale,omitempty"`
}

type sikaInitResponse struct {
	CheckoutURL string `json:"checkout_url"`
	Reference   string `json:"reference"`
	Payment     struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"payment"`
}

type sikaErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Initialize validates req and creates a checkout session at Sika
func (c *SikaClient) Initialize(ctx context.Context, req Request) (Session, error) {
	if err := Validate(req, c.minAmount); err != nil {
		return Session{}, err
	}

	ctx, span := util.StartSpan(ctx, "SikaClient.Initialize")
	defer span.End()

	if c.apiURL == "" {
		return c.demoSession(), nil
	}
	if c.secretKey == "" {
		return Session{}, ErrNotConfigured
	}

	body, err := json.Marshal(sikaInitRequest{
		Email:       strings.TrimSpace(req.Email),
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		Metadata:    req.Metadata,
		SuccessURL:  req.SuccessURL,
		CancelURL:   req.CancelURL,
		Locale:      req.Locale,
	})
	if err != nil {
		return Session{}, fmt.Errorf("failed to encode checkout request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/checkout/initialize", bytes.NewReader(body))
	if err != nil {
		return Session{}, fmt.Errorf("failed to build checkout request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	util.CheckoutProviderLatency.WithLabelValues(c.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		return Session{}, &ProviderError{Provider: c.Name(), Message: fmt.Sprintf("Failed to reach checkout provider: %v", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Session{}, &ProviderError{Provider: c.Name(), StatusCode: resp.StatusCode, Message: "Failed to read checkout response"}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr sikaErrorResponse
		_ = json.Unmarshal(raw, &apiErr)
		msg := apiErr.Message
		if msg == "" {
			msg = apiErr.Error
		}
		c.logger.Warn("Checkout provider rejected request",
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg))
		return Session{}, &ProviderError{Provider: c.Name(), StatusCode: resp.StatusCode, Message: msg}
	}

	var out sikaInitResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if out.CheckoutURL == "" || out.Reference == "" {
		return Session{}, ErrMalformedResponse
	}

	c.logger.Info("Checkout session created",
		zap.String("provider", c.Name()),
		zap.String("reference", out.Reference),
		zap.String("payment_status", out.Payment.Status))

	return Session{CheckoutURL: out.CheckoutURL, Reference: out.Reference}, nil
}

func (c *SikaClient) demoSession() Session {
	reference := "demo_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	base := c.checkoutURL
	if base == "" {
		base = "https://pay.staging.withsika.com"
	}
	c.logger.Info("Serving demo checkout session", zap.String("reference", reference))
	return Session{CheckoutURL: BuildCheckoutURL(base, reference), Reference: reference}
}
