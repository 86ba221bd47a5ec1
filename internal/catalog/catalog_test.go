package catalog

import (
	"testing"

	"storefront/internal/i18n"
	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()

	tr, err := i18n.Load("fr")
	require.NoError(t, err)
	xof, err := LookupCurrency("XOF")
	require.NoError(t, err)

	c, err := NewDefault(xof, WithResolver(tr))
	require.NoError(t, err)
	return c
}

func ids(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestGetProduct(t *testing.T) {
	c := newTestCatalog(t)

	p, ok := c.GetProduct("tshirt")
	require.True(t, ok)
	assert.Equal(t, int64(5000), p.Price)

	_, ok = c.GetProduct("prod_delisted")
	assert.False(t, ok)

	price, ok := c.Price("prod_agbada_set")
	assert.True(t, ok)
	assert.Equal(t, int64(95000), price)
}

func TestGetProductReturnsCopy(t *testing.T) {
	c := newTestCatalog(t)

	p, _ := c.GetProduct("prod_ankara_dress")
	p.Tags[0] = "mutated"
	p.Price = 1

	again, _ := c.GetProduct("prod_ankara_dress")
	assert.Equal(t, "dress", again.Tags[0])
	assert.Equal(t, int64(45000), again.Price)
}

func TestGetProductsByCategory(t *testing.T) {
	c := newTestCatalog(t)

	assert.Equal(t,
		[]string{"prod_ankara_dress", "prod_kente_blouse", "prod_african_wrap_skirt", "prod_dashiki_tunic"},
		ids(c.GetProductsByCategory("women")))
	assert.Equal(t, []string{"tshirt", "hoodie", "cap", "bag"}, ids(c.GetProductsByCategory("basics")))
	assert.Empty(t, c.GetProductsByCategory("unknown"))
}

func TestFlagFilters(t *testing.T) {
	c := newTestCatalog(t)

	for _, p := range c.GetFeaturedProducts() {
		assert.True(t, p.Featured, p.ID)
	}
	for _, p := range c.GetNewArrivals() {
		assert.True(t, p.IsNew, p.ID)
	}
	for _, p := range c.GetBestSellers() {
		assert.True(t, p.IsBestSeller, p.ID)
	}

	featured := ids(c.GetFeaturedProducts())
	require.NotEmpty(t, featured)
	assert.Equal(t, "prod_ankara_dress", featured[0])
	assert.Contains(t, featured, "prod_mudcloth_pillow")
	assert.Contains(t, ids(c.GetNewArrivals()), "prod_kente_blouse")
	assert.Contains(t, ids(c.GetBestSellers()), "prod_basket_set")
}

func TestSearchProducts(t *testing.T) {
	c := newTestCatalog(t)

	t.Run("empty query returns full catalog", func(t *testing.T) {
		assert.Equal(t, ids(c.Products()), ids(c.SearchProducts("")))
		assert.Equal(t, ids(c.Products()), ids(c.SearchProducts("   ")))
	})

	t.Run("case insensitive name match", func(t *testing.T) {
		assert.Equal(t, []string{"prod_agbada_set"}, ids(c.SearchProducts("AGBADA")))
	})

	t.Run("tag match", func(t *testing.T) {
		got := ids(c.SearchProducts("jewelry"))
		assert.Equal(t, []string{"prod_beaded_necklace", "prod_brass_earrings"}, got)
	})

	t.Run("description match", func(t *testing.T) {
		assert.Contains(t, ids(c.SearchProducts("malian mudcloth")), "prod_mudcloth_pillow")
	})

	t.Run("translated name match", func(t *testing.T) {
		assert.Equal(t, []string{"hoodie"}, ids(c.SearchProducts("capuche")))
		assert.Equal(t, []string{"hoodie"}, ids(c.SearchProducts("cozy")))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, c.SearchProducts("spaceship"))
	})
}

func TestGetRelatedProducts(t *testing.T) {
	c := newTestCatalog(t)

	dress, _ := c.GetProduct("prod_ankara_dress")
	related := c.GetRelatedProducts(dress, 2)
	assert.Equal(t, []string{"prod_kente_blouse", "prod_african_wrap_skirt"}, ids(related))

	all := c.GetRelatedProducts(dress, 0)
	assert.Len(t, all, 3)
	assert.NotContains(t, ids(all), "prod_ankara_dress")
}

func TestCategories(t *testing.T) {
	c := newTestCatalog(t)

	cat, ok := c.GetCategory("home")
	require.True(t, ok)
	assert.Equal(t, "Home & Living", cat.Name)

	_, ok = c.GetCategory("garden")
	assert.False(t, ok)
	assert.Len(t, c.Categories(), 5)
}

func TestDisplayName(t *testing.T) {
	c := newTestCatalog(t)

	tshirt, _ := c.GetProduct("tshirt")
	assert.Equal(t, "Classic T-Shirt", c.DisplayName(tshirt, "en"))
	assert.Equal(t, "T-Shirt Classique", c.DisplayName(tshirt, "fr"))
	assert.Equal(t, "T-Shirt Classique", c.DisplayName(tshirt, "de"))
	assert.Equal(t, "Casquette ajustable", c.DisplayDescription(mustProduct(t, c, "cap"), "fr"))

	dress, _ := c.GetProduct("prod_ankara_dress")
	assert.Equal(t, "Ankara Maxi Dress", c.DisplayName(dress, "fr"))

	bare, err := New([]models.Product{{ID: "x", NameKey: "product.x.name"}}, nil, c.Currency())
	require.NoError(t, err)
	x, _ := bare.GetProduct("x")
	assert.Equal(t, "product.x.name", bare.DisplayName(x, "en"))
}

func TestNewValidation(t *testing.T) {
	xof, _ := LookupCurrency("XOF")

	_, err := New([]models.Product{{ID: "a"}, {ID: "a"}}, nil, xof)
	assert.Error(t, err)

	_, err = New([]models.Product{{ID: ""}}, nil, xof)
	assert.Error(t, err)

	_, err = New([]models.Product{{ID: "a", Price: -1}}, nil, xof)
	assert.Error(t, err)
}

func TestFormatPrice(t *testing.T) {
	c := newTestCatalog(t)
	assert.Equal(t, "10 000 FCFA", plainSpaces(c.FormatPrice(10000)))
}

func mustProduct(t *testing.T, c *Catalog, id string) models.Product {
	t.Helper()
	p, ok := c.GetProduct(id)
	require.True(t, ok, id)
	return p
}
