package main

import (
	"context"
	"strings"
	"testing"

	"storefront/config"
	"storefront/internal/checkout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInitiatorDemo(t *testing.T) {
	initiator, err := newInitiator(config.CheckoutConfig{
		Provider:    "sika",
		Demo:        true,
		APIURL:      "https://api.staging.withsika.com",
		CheckoutURL: "https://pay.staging.withsika.com",
		MinAmount:   100,
	})
	require.NoError(t, err)
	assert.Equal(t, "sika", initiator.Name())

	session, err := initiator.Initialize(context.Background(), checkout.Request{Email: "a@b.co", Amount: 5000, Currency: "XOF"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(session.Reference, "demo_"))
	assert.Equal(t, "https://pay.staging.withsika.com/"+session.Reference, session.CheckoutURL)
}

func TestNewInitiatorProviders(t *testing.T) {
	_, err := newInitiator(config.CheckoutConfig{Provider: "stripe"})
	assert.ErrorIs(t, err, checkout.ErrNotConfigured)

	stripe, err := newInitiator(config.CheckoutConfig{Provider: "stripe", StripeSecretKey: "sk_test_123"})
	require.NoError(t, err)
	assert.Equal(t, "stripe", stripe.Name())

	_, err = newInitiator(config.CheckoutConfig{Provider: "paypal"})
	assert.Error(t, err)
}
