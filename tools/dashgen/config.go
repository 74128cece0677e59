package main

import "errors"

// KnownMetrics is the set of metric names exported by cardmarket and the mock
// API, plus the recording rules referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// Marketplace API client.
	"cardmarket_api_request_duration_seconds_bucket": true,
	"cardmarket_api_requests_total":                  true,

	// Client caches.
	"cardmarket_cache_lookups_total":       true,
	"cardmarket_cache_invalidations_total": true,
	"cardmarket_storage_failures_total":    true,

	// Background refresh.
	"cardmarket_refresh_runs_total":          true,
	"cardmarket_refresh_new_cards_total":     true,
	"cardmarket_notification_failures_total": true,

	// Mock API server.
	"cardmarket_mockapi_http_request_duration_seconds_bucket": true,
	"cardmarket_mockapi_http_requests_total":                  true,
	"cardmarket_mockapi_http_panics_total":                    true,
	"cardmarket_mockapi_healthz_up":                           true,

	// Recording rules.
	"cardmarket:api_requests:rate5m":          true,
	"cardmarket:api_connection_errors:rate5m": true,
	"cardmarket:cache_hits:ratio5m":           true,
	"cardmarket:refresh_failures:rate1h":      true,
	"cardmarket:mockapi_requests:rate5m":      true,
	"cardmarket:mockapi_errors:rate5m":        true,

	// Standard Prometheus metrics.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
