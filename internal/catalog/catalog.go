// Package catalog exposes the static product list and its read-only queries.
package catalog

import (
	"fmt"
	"strings"

	"storefront/internal/models"
)

// Resolver resolves translation keys. *i18n.Translator satisfies it.
type Resolver interface {
	Resolve(locale, key string) string
	Supported() []string
}

// Catalog is immutable after construction and safe for concurrent use.
type Catalog struct {
	products   []models.Product
	byID       map[string]int
	categories []models.Category
	currency   Currency
	resolver   Resolver
}

// Option configures a Catalog
type Option func(*Catalog)

// WithResolver sets the translator used for key-based product names.
func WithResolver(r Resolver) Option {
	return func(c *Catalog) { c.resolver = r }
}

// New builds a catalog. Product IDs must be unique and prices non-negative.
func New(products []models.Product, categories []models.Category, currency Currency, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		products:   make([]models.Product, 0, len(products)),
		byID:       make(map[string]int, len(products)),
		categories: make([]models.Category, 0, len(categories)),
		currency:   currency,
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog: product with empty id")
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %q", p.ID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("catalog: negative price for %q", p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, cloneProduct(p))
	}
	c.categories = append(c.categories, categories...)

	return c, nil
}

// Currency returns the deployment's currency convention.
func (c *Catalog) Currency() Currency { return c.currency }

// Products returns every product in catalog order.
func (c *Catalog) Products() []models.Product {
	return c.filter(func(models.Product) bool { return true })
}

// Categories returns every category in definition order.
func (c *Catalog) Categories() []models.Category {
	out := make([]models.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// GetCategory looks up a category by slug.
func (c *Catalog) GetCategory(slug string) (models.Category, bool) {
	for _, cat := range c.categories {
		if cat.Slug == slug {
			return cat, true
		}
	}
	return models.Category{}, false
}

// GetProduct looks up a product by exact id. The bool is false for unknown
// (for example delisted) products.
func (c *Catalog) GetProduct(id string) (models.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return cloneProduct(c.products[i]), true
}

// Price returns the unit price for id. Implements the lookup used for cart totals.
func (c *Catalog) Price(id string) (int64, bool) {
	i, ok := c.byID[id]
	if !ok {
		return 0, false
	}
	return c.products[i].Price, true
}

// GetProductsByCategory returns products whose category equals slug.
func (c *Catalog) GetProductsByCategory(slug string) []models.Product {
	return c.filter(func(p models.Product) bool { return p.Category == slug })
}

// GetFeaturedProducts returns products flagged as featured.
func (c *Catalog) GetFeaturedProducts() []models.Product {
	return c.filter(func(p models.Product) bool { return p.Featured })
}

// GetNewArrivals returns products flagged as new.
func (c *Catalog) GetNewArrivals() []models.Product {
	return c.filter(func(p models.Product) bool { return p.IsNew })
}

// GetBestSellers returns products flagged as best sellers.
func (c *Catalog) GetBestSellers() []models.Product {
	return c.filter(func(p models.Product) bool { return p.IsBestSeller })
}

// GetRelatedProducts returns up to limit other products from the same category.
// A non-positive limit defaults to 4.
func (c *Catalog) GetRelatedProducts(product models.Product, limit int) []models.Product {
	if limit <= 0 {
		limit = 4
	}
	related := c.filter(func(p models.Product) bool {
		return p.Category == product.Category && p.ID != product.ID
	})
	if len(related) > limit {
		related = related[:limit]
	}
	return related
}

// SearchProducts matches query case-insensitively against name, description and tags.
// An empty query returns the whole catalog.
func (c *Catalog) SearchProducts(query string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Products()
	}
	return c.filter(func(p models.Product) bool {
		for _, field := range c.searchFields(p) {
			if strings.Contains(strings.ToLower(field), q) {
				return true
			}
		}
		return false
	})
}

// FormatPrice renders amount in the deployment's currency.
func (c *Catalog) FormatPrice(amount int64) string {
	return c.currency.Format(amount)
}

// DisplayName returns the product name for locale, resolving NameKey when set.
func (c *Catalog) DisplayName(p models.Product, locale string) string {
	return c.text(p.Name, p.NameKey, locale)
}

// DisplayDescription returns the product description for locale.
func (c *Catalog) DisplayDescription(p models.Product, locale string) string {
	return c.text(p.Description, p.DescriptionKey, locale)
}

func (c *Catalog) text(literal, key, locale string) string {
	if key == "" {
		return literal
	}
	if c.resolver == nil {
		return key
	}
	return c.resolver.Resolve(locale, key)
}

func (c *Catalog) searchFields(p models.Product) []string {
	fields := []string{p.Name, p.Description}
	fields = append(fields, p.Tags...)
	if c.resolver != nil {
		for _, locale := range c.resolver.Supported() {
			if p.NameKey != "" {
				fields = append(fields, c.resolver.Resolve(locale, p.NameKey))
			}
			if p.DescriptionKey != "" {
				fields = append(fields, c.resolver.Resolve(locale, p.DescriptionKey))
			}
		}
	}
	return fields
}

func (c *Catalog) filter(keep func(models.Product) bool) []models.Product {
	out := make([]models.Product, 0)
	for _, p := range c.products {
		if keep(p) {
			out = append(out, cloneProduct(p))
		}
	}
	return out
}

func cloneProduct(p models.Product) models.Product {
	if p.Tags != nil {
		p.Tags = append([]string(nil), p.Tags...)
	}
	if p.Images != nil {
		p.Images = append([]string(nil), p.Images...)
	}
	return p
}
