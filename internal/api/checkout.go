package api

import (
	"net/http"

	"storefront/internal/models"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// directCheckout starts a checkout for a fixed amount (buy button, donations)
func (h *Handler) directCheckout(c *gin.Context) {
	var req service.DirectCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	req.Locale = h.locale(c, req.Locale)

	res, err := h.checkout.StartDirectCheckout(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// checkoutSignal queues a completion or cancellation relayed by the client
func (h *Handler) checkoutSignal(c *gin.Context) {
	var sig models.Signal
	if err := c.ShouldBindJSON(&sig); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.checkout.QueueSignal(c.Request.Context(), sig); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "queued", "reference": sig.Reference})
}

// getCheckout returns the status of a checkout session
func (h *Handler) getCheckout(c *gin.Context) {
	session, err := h.checkout.GetSession(c.Request.Context(), c.Param("reference"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session":         session,
		"formattedAmount": h.catalog.FormatPrice(session.Amount),
	})
}

type presetView struct {
	Amount    int64  `json:"amount"`
	Formatted string `json:"formatted"`
}

// donationPresets lists suggested donation amounts
func (h *Handler) donationPresets(c *gin.Context) {
	presets := h.checkout.DonationPresets()
	views := make([]presetView, 0, len(presets))
	for _, amount := range presets {
		views = append(views, presetView{Amount: amount, Formatted: h.catalog.FormatPrice(amount)})
	}
	c.JSON(http.StatusOK, gin.H{
		"presets":    views,
		"currency":   h.catalog.Currency().Code,
		"min_amount": h.checkout.MinAmount(),
	})
}
