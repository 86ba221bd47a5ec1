package cart

import (
	"errors"
	"math"

	"storefront/internal/models"
)

// ErrTotalOverflow is returned when a cart total does not fit in an int64
var ErrTotalOverflow = errors.New("cart total overflows")

// PriceLookup resolves the current price of a product
type PriceLookup interface {
	Price(productID string) (int64, bool)
}

// CartTotal sums quantity times price over lines. Products the lookup does
// not know contribute nothing. A total that overflows saturates at
// math.MaxInt64; use CheckedTotal where the amount is charged.
func CartTotal(lines []models.CartLine, prices PriceLookup) int64 {
	total, err := CheckedTotal(lines, prices)
	if err != nil {
		return math.MaxInt64
	}
	return total
}

// CheckedTotal is CartTotal reporting ErrTotalOverflow instead of saturating
func CheckedTotal(lines []models.CartLine, prices PriceLookup) (int64, error) {
	var total int64
	for _, l := range lines {
		price, ok := prices.Price(l.ProductID)
		if !ok || l.Quantity <= 0 || price == 0 {
			continue
		}
		qty := int64(l.Quantity)
		if price > math.MaxInt64/qty {
			return 0, ErrTotalOverflow
		}
		line := price * qty
		if total > math.MaxInt64-line {
			return 0, ErrTotalOverflow
		}
		total += line
	}
	return total, nil
}

// Count returns the sum of quantities
func Count(lines []models.CartLine) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

// Known keeps only lines whose product the lookup can price
func Known(lines []models.CartLine, prices PriceLookup) []models.CartLine {
	out := make([]models.CartLine, 0, len(lines))
	for _, l := range lines {
		if _, ok := prices.Price(l.ProductID); ok {
			out = append(out, l)
		}
	}
	return out
}
