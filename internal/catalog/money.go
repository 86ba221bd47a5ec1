package catalog

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency describes how a deployment stores and displays amounts. Decimals is 0 for
// zero-decimal currencies stored in major units, 2 for currencies stored in minor units.
// The same integer is used for display and for the amount sent to the checkout provider.
type Currency struct {
	Code        string
	Decimals    int
	Locale      language.Tag
	Symbol      string
	SymbolFirst bool
}

var currencies = map[string]Currency{
	"XOF": {Code: "XOF", Decimals: 0, Locale: language.French, Symbol: "FCFA"},
	"GHS": {Code: "GHS", Decimals: 2, Locale: language.English, Symbol: "GHS", SymbolFirst: true},
	"USD": {Code: "USD", Decimals: 2, Locale: language.AmericanEnglish, Symbol: "USD", SymbolFirst: true},
	"JPY": {Code: "JPY", Decimals: 0, Locale: language.Japanese, Symbol: "JPY", SymbolFirst: true},
}

// ErrUnknownCurrency is returned for currency codes without a configured convention.
var ErrUnknownCurrency = errors.New("catalog: unknown currency")

// LookupCurrency returns the convention for an ISO 4217 code.
func LookupCurrency(code string) (Currency, error) {
	c, ok := currencies[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Currency{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return c, nil
}

// Format renders amount for display, e.g. 10000 XOF => "10 000 FCFA", 4500 GHS => "GHS 45.00".
func (c Currency) Format(amount int64) string {
	p := message.NewPrinter(c.Locale)

	sign := ""
	magnitude := uint64(amount)
	if amount < 0 {
		sign = "-"
		magnitude = uint64(-(amount + 1)) + 1
	}

	var num string
	if c.Decimals == 2 {
		num = fmt.Sprintf("%s%s%02d", p.Sprintf("%d", magnitude/100), decimalSeparator(p), magnitude%100)
	} else {
		num = p.Sprintf("%d", magnitude)
	}

	if c.SymbolFirst {
		return fmt.Sprintf("%s%s %s", sign, c.Symbol, num)
	}
	return fmt.Sprintf("%s%s %s", sign, num, c.Symbol)
}

// decimalSeparator returns the printer's locale decimal mark
func decimalSeparator(p *message.Printer) string {
	return strings.Trim(p.Sprintf("%.1f", 1.5), "15")
}

// Parse undoes Format: it returns the integer amount a display string was rendered from.
func (c Currency) Parse(display string) (int64, error) {
	var (
		n      int64
		digits int
		neg    bool
	)
	for _, r := range display {
		switch {
		case r >= '0' && r <= '9':
			n = n*10 + int64(r-'0')
			digits++
		case r == '-' && digits == 0:
			neg = true
		}
	}
	if digits == 0 {
		return 0, fmt.Errorf("catalog: no digits in %q", display)
	}
	if neg {
		n = -n
	}
	return n, nil
}
