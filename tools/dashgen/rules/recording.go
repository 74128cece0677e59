package rules

// RecordingRules returns the pre-computed expressions used by the dashboard
// and the alert rules.
func RecordingRules() PrometheusRule {
	return newRule("cardmarket-recording-rules", RuleGroup{
		Name: "cardmarket-recording",
		Rules: []Rule{
			{
				Record: "cardmarket:api_requests:rate5m",
				Expr:   `sum(rate(cardmarket_api_requests_total[5m]))`,
			},
			{
				Record: "cardmarket:api_connection_errors:rate5m",
				Expr:   `sum(rate(cardmarket_api_requests_total{status="connection_error"}[5m]))`,
			},
			{
				Record: "cardmarket:cache_hits:ratio5m",
				Expr: `sum(rate(cardmarket_cache_lookups_total{result="hit"}[5m]))` +
					` / sum(rate(cardmarket_cache_lookups_total[5m]))`,
			},
			{
				Record: "cardmarket:refresh_failures:rate1h",
				Expr:   `sum(increase(cardmarket_refresh_runs_total{result="failure"}[1h]))`,
			},
			{
				Record: "cardmarket:mockapi_requests:rate5m",
				Expr:   `sum(rate(cardmarket_mockapi_http_requests_total[5m]))`,
			},
			{
				Record: "cardmarket:mockapi_errors:rate5m",
				Expr:   `sum(rate(cardmarket_mockapi_http_requests_total{status=~"5.."}[5m]))`,
			},
		},
	})
}
