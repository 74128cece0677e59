package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// APIRequestRate shows marketplace API calls per second by operation.
func APIRequestRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("API Requests").
		Description("Marketplace API calls per second by operation").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(`sum(rate(cardmarket_api_requests_total[5m])) by (operation)`, "{{operation}}", "A")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// APILatency shows p95 marketplace API latency by operation.
func APILatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("API Latency p95").
		Description("95th percentile marketplace API call duration by operation").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			Quantile(0.95, "cardmarket_api_request_duration_seconds_bucket", "", "operation"),
			"{{operation}}", "A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// APIFailures shows connection failures and non-2xx API responses.
func APIFailures() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("API Failures").
		Description("Connection failures and error responses per second").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(`cardmarket:api_connection_errors:rate5m`, "connection", "A")).
		WithTarget(PromQuery(
			`sum(rate(cardmarket_api_requests_total{status=~"4..|5.."}[5m])) by (status)`,
			"HTTP {{status}}", "B",
		)).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenRed(0.1)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
