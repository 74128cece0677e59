// Package metrics defines Prometheus metrics for the card-market client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cardmarket"

// Cache tiers and lookup results used as label values.
const (
	TierMemory  = "memory"
	TierStorage = "storage"

	ResultHit     = "hit"
	ResultMiss    = "miss"
	ResultExpired = "expired"
)

// API client metrics.
var (
	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of marketplace API requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of marketplace API requests by outcome status.",
	}, []string{"operation", "status"})
)

// Cache metrics.
var (
	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of client cache lookups by cache, tier, and result.",
	}, []string{"cache", "tier", "result"})

	CacheInvalidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_invalidations_total",
		Help:      "Total number of cache invalidations by cache and kind (wipe, patch).",
	}, []string{"cache", "kind"})
)

// Storage metrics.
var (
	StorageFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_failures_total",
		Help:      "Total number of swallowed persistent storage failures by operation.",
	}, []string{"op"})
)

// Refresher metrics.
var (
	RefreshRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refresh_runs_total",
		Help:      "Total number of background refresh runs by result.",
	}, []string{"result"})

	RefreshNewCards = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refresh_new_cards_total",
		Help:      "Total number of inventory cards first seen by the background refresher.",
	})
)

// Mock API server metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "mockapi",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of mock API requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "mockapi",
		Name:      "http_requests_total",
		Help:      "Total number of mock API requests.",
	}, []string{"method", "path", "status"})

	HTTPPanicsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "mockapi",
		Name:      "http_panics_total",
		Help:      "Total number of mock API handler panics recovered, by route.",
	}, []string{"method", "path"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "mockapi",
		Name:      "healthz_up",
		Help:      "Whether the last health check of the mock API succeeded (1) or not (0).",
	})
)

// Notification metrics.
var (
	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of new-card notifications that failed to send.",
	})
)
