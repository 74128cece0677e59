package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/card-market/tools/dashgen/dashboards"
	"github.com/donaldgifford/card-market/tools/dashgen/rules"
	"github.com/donaldgifford/card-market/tools/dashgen/validate"
)

func TestDefaultConfigValid(t *testing.T) {
	t.Parallel()
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "empty output dir", cfg: Config{DashboardEnabled: true}},
		{name: "nothing enabled", cfg: Config{OutputDir: "/tmp"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Error(t, tt.cfg.Validate())
		})
	}
}

func TestBuildOverviewDashboard(t *testing.T) {
	t.Parallel()

	dash, err := dashboards.BuildOverview().Build()
	require.NoError(t, err)

	require.NotNil(t, dash.Uid)
	assert.Equal(t, dashboards.OverviewUID, *dash.Uid)
	require.NotNil(t, dash.Title)
	assert.Equal(t, dashboards.OverviewTitle, *dash.Title)

	require.NotNil(t, dash.Templating)
	require.Len(t, dash.Templating.List, 1)
	assert.Equal(t, "datasource", dash.Templating.List[0].Name)

	assert.Len(t, dash.Panels, 5)
	total := 0
	for _, p := range dash.Panels {
		if p.RowPanel != nil {
			total += len(p.RowPanel.Panels)
		}
	}
	assert.Equal(t, 16, total)

	result := validate.Dashboard(dash, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
	assert.Empty(t, result.Warnings, "unexpected warnings: %v", result.Warnings)
}

func TestRecordingRules(t *testing.T) {
	t.Parallel()

	cr := rules.RecordingRules()
	assert.Equal(t, "monitoring.coreos.com/v1", cr.APIVersion)
	assert.Equal(t, "PrometheusRule", cr.Kind)
	assert.Equal(t, "cardmarket-recording-rules", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	for _, rule := range cr.Spec.Groups[0].Rules {
		assert.True(t, KnownMetrics[rule.Record], "recording rule %s missing from KnownMetrics", rule.Record)
	}

	res := validate.Exprs(cr.Exprs(), KnownMetrics)
	assert.True(t, res.Ok(), "validation errors: %v", res.Errors)
	assert.Empty(t, res.Warnings)

	data, err := yaml.Marshal(cr)
	require.NoError(t, err)
	assert.Contains(t, string(data), "apiVersion: monitoring.coreos.com/v1")
}

func TestAlertRules(t *testing.T) {
	t.Parallel()

	cr := rules.AlertRules()
	assert.Equal(t, "cardmarket-alerts", cr.Metadata.Name)
	require.Len(t, cr.Spec.Groups, 1)
	require.Len(t, cr.Spec.Groups[0].Rules, 6)

	for _, rule := range cr.Spec.Groups[0].Rules {
		assert.NotEmpty(t, rule.Alert)
		assert.NotEmpty(t, rule.Labels["severity"], "alert %s missing severity", rule.Alert)
		assert.NotEmpty(t, rule.Annotations["summary"], "alert %s missing summary", rule.Alert)
		assert.NotEmpty(t, rule.Annotations["description"], "alert %s missing description", rule.Alert)
	}

	res := validate.Exprs(cr.Exprs(), KnownMetrics)
	assert.True(t, res.Ok(), "validation errors: %v", res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestRun_WritesArtifacts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := Config{OutputDir: dir, DashboardEnabled: true, RulesEnabled: true}

	var out bytes.Buffer
	require.NoError(t, run(cfg, false, &out))

	for _, rel := range []string{
		filepath.Join("grafana", "cardmarket-overview.json"),
		filepath.Join("prometheus", "cardmarket-recording-rules.yaml"),
		filepath.Join("prometheus", "cardmarket-alerts.yaml"),
	} {
		data, err := os.ReadFile(filepath.Join(dir, rel))
		require.NoError(t, err, rel)
		assert.NotEmpty(t, data, rel)
	}

	rulesFile, err := os.ReadFile(filepath.Join(dir, "prometheus", "cardmarket-alerts.yaml"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(rulesFile, []byte(generatedHeader)))
}

func TestRun_ValidateOnlyWritesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := Config{OutputDir: dir, RulesEnabled: true}

	var out bytes.Buffer
	require.NoError(t, run(cfg, true, &out))
	assert.Contains(t, out.String(), "validation passed")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
