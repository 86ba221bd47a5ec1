package api

import (
	"net/http"
	"strconv"

	"storefront/internal/models"

	"github.com/gin-gonic/gin"
)

// ProductView is a product with its localized text and formatted prices
type ProductView struct {
	models.Product
	DisplayName             string `json:"displayName"`
	DisplayDescription      string `json:"displayDescription"`
	FormattedPrice          string `json:"formattedPrice"`
	FormattedCompareAtPrice string `json:"formattedCompareAtPrice,omitempty"`
}

func (h *Handler) productView(p models.Product, locale string) ProductView {
	v := ProductView{
		Product:            p,
		DisplayName:        h.catalog.DisplayName(p, locale),
		DisplayDescription: h.catalog.DisplayDescription(p, locale),
		FormattedPrice:     h.catalog.FormatPrice(p.Price),
	}
	if p.CompareAtPrice > 0 {
		v.FormattedCompareAtPrice = h.catalog.FormatPrice(p.CompareAtPrice)
	}
	return v
}

func (h *Handler) productViews(products []models.Product, locale string) []ProductView {
	out := make([]ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, h.productView(p, locale))
	}
	return out
}

// listCategories returns all categories
func (h *Handler) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.catalog.Categories()})
}

// listProducts returns products filtered by category, search query or flag
func (h *Handler) listProducts(c *gin.Context) {
	locale := h.locale(c, "")

	var products []models.Product
	switch {
	case c.Query("category") != "":
		products = h.catalog.GetProductsByCategory(c.Query("category"))
	case c.Query("filter") != "":
		switch c.Query("filter") {
		case "featured":
			products = h.catalog.GetFeaturedProducts()
		case "new":
			products = h.catalog.GetNewArrivals()
		case "bestsellers":
			products = h.catalog.GetBestSellers()
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown filter"})
			return
		}
	default:
		products = h.catalog.SearchProducts(c.Query("q"))
	}

	c.JSON(http.StatusOK, gin.H{
		"locale":   locale,
		"products": h.productViews(products, locale),
	})
}

// getProduct returns a single product
func (h *Handler) getProduct(c *gin.Context) {
	p, ok := h.catalog.GetProduct(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, h.productView(p, h.locale(c, "")))
}

// relatedProducts returns products from the same category
func (h *Handler) relatedProducts(c *gin.Context) {
	p, ok := h.catalog.GetProduct(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	locale := h.locale(c, "")
	c.JSON(http.StatusOK, gin.H{
		"products": h.productViews(h.catalog.GetRelatedProducts(p, limit), locale),
	})
}
