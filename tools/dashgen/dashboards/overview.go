// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/card-market/tools/dashgen/panels"
)

// Overview dashboard identity.
const (
	OverviewUID   = "cardmarket-overview"
	OverviewTitle = "Card Market Overview"
)

// BuildOverview constructs the cardmarket overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder(OverviewTitle).
		Uid(OverviewUID).
		Tags([]string{"cardmarket"}).
		Refresh("1m").
		Time("now-24h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.WatcherUpStat()).
		WithPanel(panels.MockHealthzStat()).
		WithPanel(panels.NewCardsStat()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("Marketplace API").
		WithPanel(panels.APIRequestRate()).
		WithPanel(panels.APILatency()).
		WithPanel(panels.APIFailures()))

	b.WithRow(dashboard.NewRowBuilder("Caches").
		WithPanel(panels.CacheHitRatio()).
		WithPanel(panels.CacheLookups()).
		WithPanel(panels.CacheInvalidations()).
		WithPanel(panels.StorageFailures()))

	b.WithRow(dashboard.NewRowBuilder("Refresh").
		WithPanel(panels.RefreshRuns()).
		WithPanel(panels.NotificationFailures()))

	b.WithRow(dashboard.NewRowBuilder("Mock API").
		WithPanel(panels.MockRequestRate()).
		WithPanel(panels.MockLatency()).
		WithPanel(panels.MockErrorRate()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
