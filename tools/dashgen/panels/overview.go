package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

// WatcherUpStat shows whether the sync watcher is being scraped.
func WatcherUpStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Watcher").
		Description("Scrape status of cardmarket sync --watch (1 = up)").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`max(up`+Job(WatchJob)+`)`, "", "A")).
		Thresholds(ThresholdsRedGreen(1)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone).
		TextMode(common.BigValueTextModeValue)
}

// MockHealthzStat shows the mock API health check.
func MockHealthzStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Mock API Healthz").
		Description("Mock API health check status (1 = ok, 0 = failing)").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`max(cardmarket_mockapi_healthz_up)`, "", "A")).
		Thresholds(ThresholdsRedGreen(1)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone).
		TextMode(common.BigValueTextModeValue)
}

// NewCardsStat shows how many cards reached the collection in the last day.
func NewCardsStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("New Cards (24h)").
		Description("Inventory cards first seen by the watcher in the last 24 hours").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`sum(increase(cardmarket_refresh_new_cards_total[24h]))`, "", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeArea)
}

// UptimeStat shows how long the watcher has been running.
func UptimeStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Uptime").
		Description("Time since the watcher process started").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`time() - max(process_start_time_seconds`+Job(WatchJob)+`)`, "", "A")).
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeNone)
}
