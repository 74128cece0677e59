package rules

// AlertRules returns the operational alerts for the sync watcher and the mock
// API.
func AlertRules() PrometheusRule {
	return newRule("cardmarket-alerts", RuleGroup{
		Name: "cardmarket-alerts",
		Rules: []Rule{
			{
				Alert:  "CardmarketWatcherDown",
				Expr:   `absent(up{job="cardmarket"} == 1)`,
				For:    "5m",
				Labels: map[string]string{"severity": "warning"},
				Annotations: map[string]string{
					"summary":     "cardmarket sync watcher is not being scraped",
					"description": "No healthy scrape of the cardmarket job for more than 5 minutes.",
				},
			},
			{
				Alert:  "CardmarketAPIUnreachable",
				Expr:   `cardmarket:api_connection_errors:rate5m > 0 and cardmarket:api_requests:rate5m == cardmarket:api_connection_errors:rate5m`,
				For:    "10m",
				Labels: map[string]string{"severity": "critical"},
				Annotations: map[string]string{
					"summary":     "Marketplace API is unreachable",
					"description": "Every marketplace API call has failed to connect for more than 10 minutes.",
				},
			},
			{
				Alert:  "CardmarketRefreshFailing",
				Expr:   `cardmarket:refresh_failures:rate1h > 2`,
				For:    "0m",
				Labels: map[string]string{"severity": "warning"},
				Annotations: map[string]string{
					"summary":     "Background refresh keeps failing",
					"description": "More than two refresh passes failed in the last hour.",
				},
			},
			{
				Alert:  "CardmarketStorageFailures",
				Expr:   `increase(cardmarket_storage_failures_total[15m]) > 0`,
				For:    "15m",
				Labels: map[string]string{"severity": "warning"},
				Annotations: map[string]string{
					"summary":     "Persistent cache storage is failing",
					"description": "Storage reads or writes have been failing for 15 minutes; caches fall back to memory only.",
				},
			},
			{
				Alert:  "CardmarketNotificationFailures",
				Expr:   `increase(cardmarket_notification_failures_total[5m]) > 0`,
				For:    "1m",
				Labels: map[string]string{"severity": "warning"},
				Annotations: map[string]string{
					"summary":     "New-card notifications are failing",
					"description": "One or more Discord new-card notifications failed to send.",
				},
			},
			{
				Alert:  "CardmarketMockAPIErrors",
				Expr:   `cardmarket:mockapi_errors:rate5m / cardmarket:mockapi_requests:rate5m > 0.05`,
				For:    "5m",
				Labels: map[string]string{"severity": "warning"},
				Annotations: map[string]string{
					"summary":     "Mock API is returning server errors",
					"description": "More than 5% of mock API requests returned 5xx over the last 5 minutes.",
				},
			},
		},
	})
}
