package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/i18n"
	"storefront/internal/models"
	"storefront/internal/service"
	"storefront/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	sessionHeader = "X-Cart-Session"
	sessionCookie = "sika_cart_session"
)

var quantityLimitMessage = fmt.Sprintf("Quantity must be at most %d", cart.MaxQuantity)

// CheckoutService is the checkout surface the handlers depend on
type CheckoutService interface {
	StartCartCheckout(ctx context.Context, req service.CartCheckoutRequest) (*service.CheckoutResult, error)
	StartDirectCheckout(ctx context.Context, req service.DirectCheckoutRequest) (*service.CheckoutResult, error)
	QueueSignal(ctx context.Context, sig models.Signal) error
	GetSession(ctx context.Context, reference string) (*models.CheckoutSession, error)
	ListCartCheckouts(ctx context.Context, sessionID string) ([]models.CheckoutSession, error)
	DonationPresets() []int64
	MinAmount() int64
}

// ReadinessCheck reports whether a dependency is usable
type ReadinessCheck func(ctx context.Context) error

// Handler contains HTTP handlers
type Handler struct {
	catalog    *catalog.Catalog
	translator *i18n.Translator
	carts      *cart.Manager
	checkout   CheckoutService
	checks     map[string]ReadinessCheck
	logger     *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	cat *catalog.Catalog,
	translator *i18n.Translator,
	carts *cart.Manager,
	checkoutService CheckoutService,
	checks map[string]ReadinessCheck,
) *Handler {
	return &Handler{
		catalog:    cat,
		translator: translator,
		carts:      carts,
		checkout:   checkoutService,
		checks:     checks,
		logger:     util.GetLogger(),
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/catalog/categories", h.listCategories)
		v1.GET("/catalog/products", h.listProducts)
		v1.GET("/catalog/products/:id", h.getProduct)
		v1.GET("/catalog/products/:id/related", h.relatedProducts)

		v1.GET("/cart", h.getCart)
		v1.DELETE("/cart", h.clearCart)
		v1.POST("/cart/items", h.addItem)
		v1.PUT("/cart/items/:productId", h.updateItem)
		v1.DELETE("/cart/items/:productId", h.removeItem)
		v1.GET("/cart/events", h.cartEvents)
		v1.POST("/cart/checkout", h.cartCheckout)
		v1.GET("/cart/checkouts", h.cartCheckouts)

		v1.POST("/checkout", h.directCheckout)
		v1.POST("/checkout/signal", h.checkoutSignal)
		v1.GET("/checkout/:reference", h.getCheckout)
		v1.GET("/donations/presets", h.donationPresets)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	failed := gin.H{}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			failed[name] = err.Error()
		}
	}
	if len(failed) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"failed": failed,
			"time":   time.Now().Unix(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// locale picks the response language from ?locale= or Accept-Language
func (h *Handler) locale(c *gin.Context, requested string) string {
	if requested == "" {
		requested = c.Query("locale")
	}
	if requested != "" && h.translator.IsSupported(requested) {
		return h.translator.Match(requested)
	}
	return h.translator.Match(c.GetHeader("Accept-Language"))
}

// sessionID identifies the caller's cart, issuing a new session when absent
func (h *Handler) sessionID(c *gin.Context) string {
	if id := c.GetHeader(sessionHeader); id != "" {
		return id
	}
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}
	id := uuid.New().String()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, int((30 * 24 * time.Hour).Seconds()), "/", "", false, true)
	c.Header(sessionHeader, id)
	return id
}

// respondError maps service errors to a single error message and status
func (h *Handler) respondError(c *gin.Context, err error) {
	var status int
	message := err.Error()

	switch {
	case checkout.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, cart.ErrQuantityLimit):
		status = http.StatusBadRequest
		message = quantityLimitMessage
	case errors.Is(err, service.ErrUnknownReference):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrCheckoutInProgress):
		status = http.StatusConflict
	case checkout.IsProvider(err):
		status = http.StatusBadGateway
	case errors.Is(err, checkout.ErrNotConfigured):
		status = http.StatusInternalServerError
	default:
		status = http.StatusInternalServerError
		message = "Internal server error"
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Error(err))
	}
	c.JSON(status, gin.H{"error": message})
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
