package checkout

import (
	"fmt"
	"strings"
)

// ReferencePlaceholder is substituted by the provider with the session reference
const ReferencePlaceholder = "{reference}"

// SuccessURL returns the return URL after a completed payment
func SuccessURL(baseURL string) string {
	return fmt.Sprintf("%s/checkout/success?reference=%s", strings.TrimRight(baseURL, "/"), ReferencePlaceholder)
}

// CancelURL returns the return URL after an abandoned payment
func CancelURL(baseURL string) string {
	return fmt.Sprintf("%s/checkout/cancel?reference=%s", strings.TrimRight(baseURL, "/"), ReferencePlaceholder)
}

// BuildCheckoutURL returns the hosted page address for reference
func BuildCheckoutURL(checkoutBaseURL, reference string) string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(checkoutBaseURL, "/"), reference)
}
