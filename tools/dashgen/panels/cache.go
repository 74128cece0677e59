package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/gauge"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CacheHitRatio shows the share of cache lookups served without the API.
func CacheHitRatio() *gauge.PanelBuilder {
	return gauge.NewPanelBuilder().
		Title("Cache Hit %").
		Description("Cache lookups answered from memory or storage").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(`cardmarket:cache_hits:ratio5m * 100`, "", "A")).
		Unit("percent").
		Min(0).
		Max(100).
		Thresholds(ThresholdsRedGreen(50)).
		ColorScheme(ColorSchemeThresholds())
}

// CacheLookups breaks lookups down by cache, tier and result.
func CacheLookups() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Cache Lookups (1h)").
		Description("Lookups by cache, tier and result over the last hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			`sum(increase(cardmarket_cache_lookups_total[1h])) by (cache, tier, result)`,
			"{{cache}} {{tier}} {{result}}", "A",
		)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}

// CacheInvalidations shows wipes and patches per cache.
func CacheInvalidations() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Cache Invalidations").
		Description("Cache wipes and in-place patches per second").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			`sum(rate(cardmarket_cache_invalidations_total[5m])) by (cache, kind)`,
			"{{cache}} {{kind}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// StorageFailures counts swallowed persistent storage errors.
func StorageFailures() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Storage Failures (1h)").
		Description("Persistent storage reads and writes that failed and were ignored").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`sum(increase(cardmarket_storage_failures_total[1h]))`, "", "A")).
		Thresholds(ThresholdsGreenRed(1)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}
