package services

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatherFamilies(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	byName := make(map[string]*dto.MetricFamily, len(families))
	for _, family := range families {
		byName[family.GetName()] = family
	}
	return byName
}

func TestPrometheusMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewPrometheusMetrics(reg)

	metrics.IncrementCounter(MetricRecordCreated, map[string]string{"entity": "user"})
	metrics.IncrementCounter(MetricRecordCreated, map[string]string{"entity": "user"})
	metrics.IncrementCounter(MetricAssetDeleted, nil)
	metrics.IncrementCounter(MetricMutationFailed, map[string]string{"entity": "asset", "operation": "delete", "outcome": "not_found"})
	metrics.IncrementCounter("unknown_metric", nil)

	families := gatherFamilies(t, reg)

	created := families["portfolio_records_created_total"]
	require.NotNil(t, created)
	require.Len(t, created.GetMetric(), 1)
	assert.Equal(t, 2.0, created.GetMetric()[0].GetCounter().GetValue())

	deleted := families["portfolio_assets_deleted_total"]
	require.NotNil(t, deleted)
	assert.Equal(t, 1.0, deleted.GetMetric()[0].GetCounter().GetValue())

	failed := families["portfolio_mutations_failed_total"]
	require.NotNil(t, failed)
	assert.Len(t, failed.GetMetric()[0].GetLabel(), 3)
}

func TestPrometheusMetrics_ReportTimingAndGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewPrometheusMetrics(reg)

	metrics.RecordProcessingTime("allocation", 12*time.Millisecond)
	metrics.RecordGauge(MetricAllocationGroups, 3, nil)

	families := gatherFamilies(t, reg)

	duration := families["portfolio_report_duration_milliseconds"]
	require.NotNil(t, duration)
	assert.Equal(t, uint64(1), duration.GetMetric()[0].GetHistogram().GetSampleCount())

	groups := families["portfolio_last_allocation_groups"]
	require.NotNil(t, groups)
	assert.Equal(t, 3.0, groups.GetMetric()[0].GetGauge().GetValue())
}
