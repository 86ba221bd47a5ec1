package api

import (
	"io"
	"net/http"

	"storefront/internal/cart"
	"storefront/internal/models"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// CartLineView is a cart line joined with its product
type CartLineView struct {
	ProductID          string      `json:"productId"`
	Quantity           int         `json:"quantity"`
	Product            ProductView `json:"product"`
	LineTotal          int64       `json:"lineTotal"`
	FormattedLineTotal string      `json:"formattedLineTotal"`
}

// CartView is the cart as shown to the customer
type CartView struct {
	SessionID      string         `json:"session_id"`
	Lines          []CartLineView `json:"lines"`
	Count          int            `json:"count"`
	Total          int64          `json:"total"`
	FormattedTotal string         `json:"formattedTotal"`
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// cartView joins lines with the catalog, hiding delisted products
func (h *Handler) cartView(sessionID string, lines []models.CartLine, locale string) CartView {
	known := cart.Known(lines, h.catalog)
	total := cart.CartTotal(known, h.catalog)

	views := make([]CartLineView, 0, len(known))
	for _, l := range known {
		p, _ := h.catalog.GetProduct(l.ProductID)
		lineTotal := p.Price * int64(l.Quantity)
		views = append(views, CartLineView{
			ProductID:          l.ProductID,
			Quantity:           l.Quantity,
			Product:            h.productView(p, locale),
			LineTotal:          lineTotal,
			FormattedLineTotal: h.catalog.FormatPrice(lineTotal),
		})
	}

	return CartView{
		SessionID:      sessionID,
		Lines:          views,
		Count:          cart.Count(known),
		Total:          total,
		FormattedTotal: h.catalog.FormatPrice(total),
	}
}

func (h *Handler) respondCart(c *gin.Context, store *cart.Store) {
	c.JSON(http.StatusOK, h.cartView(store.SessionID(), store.GetCart(c.Request.Context()), h.locale(c, "")))
}

// getCart returns the caller's cart
func (h *Handler) getCart(c *gin.Context) {
	h.respondCart(c, h.carts.Session(h.sessionID(c)))
}

// addItem adds one unit of a product
func (h *Handler) addItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if _, ok := h.catalog.GetProduct(req.ProductID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	store := h.carts.Session(h.sessionID(c))
	if err := store.AddToCart(c.Request.Context(), req.ProductID); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondCart(c, store)
}

// updateItem sets the quantity of a line; zero or less removes it
func (h *Handler) updateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if *req.Quantity > cart.MaxQuantity {
		c.JSON(http.StatusBadRequest, gin.H{"error": quantityLimitMessage})
		return
	}

	productID := c.Param("productId")
	if *req.Quantity > 0 {
		if _, ok := h.catalog.GetProduct(productID); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
	}

	store := h.carts.Session(h.sessionID(c))
	if err := store.UpdateQuantity(c.Request.Context(), productID, *req.Quantity); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondCart(c, store)
}

// removeItem deletes a line
func (h *Handler) removeItem(c *gin.Context) {
	store := h.carts.Session(h.sessionID(c))
	if err := store.RemoveFromCart(c.Request.Context(), c.Param("productId")); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondCart(c, store)
}

// clearCart empties the cart
func (h *Handler) clearCart(c *gin.Context) {
	store := h.carts.Session(h.sessionID(c))
	if err := store.ClearCart(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondCart(c, store)
}

// cartEvents streams cart changes as server-sent events
func (h *Handler) cartEvents(c *gin.Context) {
	store := h.carts.Session(h.sessionID(c))
	locale := h.locale(c, "")

	updates := make(chan cart.Change, 16)
	unsubscribe := store.Subscribe(func(change cart.Change) {
		select {
		case updates <- change:
		default:
		}
	})
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.SSEvent("cart", h.cartView(store.SessionID(), store.GetCart(c.Request.Context()), locale))
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case change := <-updates:
			c.SSEvent("cart", h.cartView(change.SessionID, change.Lines, locale))
			return true
		}
	})
}

// cartCheckouts lists the checkouts started from the caller's cart
func (h *Handler) cartCheckouts(c *gin.Context) {
	sessionID := h.sessionID(c)
	sessions, err := h.checkout.ListCartCheckouts(c.Request.Context(), sessionID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "checkouts": sessions})
}

// cartCheckout starts a hosted checkout for the caller's cart
func (h *Handler) cartCheckout(c *gin.Context) {
	var req service.CartCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	req.SessionID = h.sessionID(c)
	req.Locale = h.locale(c, req.Locale)

	res, err := h.checkout.StartCartCheckout(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
