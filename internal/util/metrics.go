package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CartMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Total number of cart mutations by operation",
	}, []string{"op"})

	CartPersistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_persist_failures_total",
		Help: "Total number of cart writes that could not be persisted",
	})

	CartLoadFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_load_fallbacks_total",
		Help: "Cart loads that fell back to an empty cart",
	}, []string{"reason"})

	CartSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cart_subscribers",
		Help: "Number of active cart change subscribers",
	})

	CheckoutInitiatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_initiated_total",
		Help: "Total number of checkout sessions created by presentation mode",
	}, []string{"mode"})

	CheckoutFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failed_total",
		Help: "Total number of failed checkout initiations",
	}, []string{"reason"})

	CheckoutProviderLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_provider_latency_seconds",
		Help:    "Latency of checkout session creation at the provider",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider"})

	CheckoutSignalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_signals_total",
		Help: "Total number of checkout completion signals applied",
	}, []string{"type"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
