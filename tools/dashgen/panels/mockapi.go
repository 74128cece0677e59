package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// MockRequestRate shows mock API requests per second by route.
func MockRequestRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Mock API Requests").
		Description("Mock API requests per second by route").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			`sum(rate(cardmarket_mockapi_http_requests_total[5m])) by (method, path)`,
			"{{method}} {{path}}", "A",
		)).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// MockLatency shows p50, p95 and p99 mock API latency.
func MockLatency() *timeseries.PanelBuilder {
	const bucket = "cardmarket_mockapi_http_request_duration_seconds_bucket"
	return timeseries.NewPanelBuilder().
		Title("Mock API Latency").
		Description("Mock API request duration percentiles").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(Quantile(0.50, bucket, Job(MockJob)), "p50", "A")).
		WithTarget(PromQuery(Quantile(0.95, bucket, Job(MockJob)), "p95", "B")).
		WithTarget(PromQuery(Quantile(0.99, bucket, Job(MockJob)), "p99", "C")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// MockErrorRate shows the mock API 5xx rate as a percentage.
func MockErrorRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Mock API Error Rate %").
		Description("Mock API 5xx responses as percentage of total requests").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			`cardmarket:mockapi_errors:rate5m / cardmarket:mockapi_requests:rate5m * 100`,
			"error %", "A",
		)).
		Unit("percent").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}
