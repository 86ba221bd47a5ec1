package features

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"unicode"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/i18n"
	"storefront/internal/models"

	"github.com/cucumber/godog"
)

type cartTestContext struct {
	catalog *catalog.Catalog
	storage *cart.MemoryStorage
	manager *cart.Manager
	session string
	changes []cart.Change
}

func (c *cartTestContext) reset() error {
	tr, err := i18n.Load("fr")
	if err != nil {
		return err
	}
	xof, err := catalog.LookupCurrency("XOF")
	if err != nil {
		return err
	}
	c.catalog, err = catalog.NewDefault(xof, catalog.WithResolver(tr))
	if err != nil {
		return err
	}
	c.storage = cart.NewMemoryStorage()
	c.manager = cart.NewManager(c.storage, cart.DefaultKeyPrefix)
	c.changes = nil
	return nil
}

func (c *cartTestContext) store() *cart.Store {
	return c.manager.Session(c.session)
}

func (c *cartTestContext) anEmptyCartForSession(session string) error {
	c.session = session
	return nil
}

func (c *cartTestContext) theStoredCartContains(productID string, quantity int) error {
	data := fmt.Sprintf(`[{"productId":%q,"quantity":%d}]`, productID, quantity)
	return c.storage.Save(context.Background(), c.manager.Key(c.session), []byte(data))
}

func (c *cartTestContext) theStoredCartDataIs(raw string) error {
	return c.storage.Save(context.Background(), c.manager.Key(c.session), []byte(raw))
}

func (c *cartTestContext) aSubscriberOnTheCart() error {
	c.store().Subscribe(func(change cart.Change) {
		c.changes = append(c.changes, change)
	})
	return nil
}

func (c *cartTestContext) iAddToTheCart(productID string) error {
	return c.store().AddToCart(context.Background(), productID)
}

func (c *cartTestContext) iSetTheQuantityOfTo(productID string, quantity int) error {
	return c.store().UpdateQuantity(context.Background(), productID, quantity)
}

func (c *cartTestContext) iRemoveFromTheCart(productID string) error {
	return c.store().RemoveFromCart(context.Background(), productID)
}

func (c *cartTestContext) iClearTheCart() error {
	return c.store().ClearCart(context.Background())
}

func (c *cartTestContext) theCartIsReloaded() error {
	c.manager = cart.NewManager(c.storage, cart.DefaultKeyPrefix)
	return nil
}

func (c *cartTestContext) theCartHasLines(n int) error {
	lines := c.store().GetCart(context.Background())
	if len(lines) != n {
		return fmt.Errorf("expected %d lines, got %d: %+v", n, len(lines), lines)
	}
	return nil
}

func (c *cartTestContext) theQuantityOfIs(productID string, quantity int) error {
	for _, l := range c.store().GetCart(context.Background()) {
		if l.ProductID == productID {
			if l.Quantity != quantity {
				return fmt.Errorf("expected quantity %d for %s, got %d", quantity, productID, l.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("no line for %s", productID)
}

func (c *cartTestContext) theCartCountIs(n int) error {
	if got := c.store().GetCartCount(context.Background()); got != n {
		return fmt.Errorf("expected count %d, got %d", n, got)
	}
	return nil
}

func (c *cartTestContext) lines() []models.CartLine {
	return c.store().GetCart(context.Background())
}

func (c *cartTestContext) theCartTotalIs(total int64) error {
	if got := cart.CartTotal(c.lines(), c.catalog); got != total {
		return fmt.Errorf("expected total %d, got %d", total, got)
	}
	return nil
}

func (c *cartTestContext) theFormattedTotalIs(expected string) error {
	got := c.catalog.FormatPrice(cart.CartTotal(c.lines(), c.catalog))
	if plainSpaces(got) != expected {
		return fmt.Errorf("expected %q, got %q", expected, got)
	}
	parsed, err := c.catalog.Currency().Parse(got)
	if err != nil {
		return err
	}
	if parsed != cart.CartTotal(c.lines(), c.catalog) {
		return fmt.Errorf("formatted total %q parses back to %d", got, parsed)
	}
	return nil
}

func (c *cartTestContext) theSubscriberSawChanges(n int) error {
	if len(c.changes) != n {
		return fmt.Errorf("expected %d changes, got %d", n, len(c.changes))
	}
	return nil
}

func plainSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, tc.reset()
	})

	// Given steps
	ctx.Step(`^an empty cart for session "([^"]*)"$`, tc.anEmptyCartForSession)
	ctx.Step(`^the stored cart contains "([^"]*)" with quantity (\d+)$`, tc.theStoredCartContains)
	ctx.Step(`^the stored cart data is "([^"]*)"$`, tc.theStoredCartDataIs)
	ctx.Step(`^a subscriber on the cart$`, tc.aSubscriberOnTheCart)

	// When steps
	ctx.Step(`^I add "([^"]*)" to the cart$`, tc.iAddToTheCart)
	ctx.Step(`^I set the quantity of "([^"]*)" to (-?\d+)$`, tc.iSetTheQuantityOfTo)
	ctx.Step(`^I remove "([^"]*)" from the cart$`, tc.iRemoveFromTheCart)
	ctx.Step(`^I clear the cart$`, tc.iClearTheCart)
	ctx.Step(`^the cart is reloaded$`, tc.theCartIsReloaded)

	// Then steps
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^the quantity of "([^"]*)" is (\d+)$`, tc.theQuantityOfIs)
	ctx.Step(`^the cart count is (\d+)$`, tc.theCartCountIs)
	ctx.Step(`^the cart total is (\d+)$`, tc.theCartTotalIs)
	ctx.Step(`^the formatted total is "([^"]*)"$`, tc.theFormattedTotalIs)
	ctx.Step(`^the subscriber saw (\d+) changes$`, tc.theSubscriberSawChanges)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
