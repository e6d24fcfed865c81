package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counter and timing names accepted by PrometheusMetrics.
const (
	MetricRecordCreated    = "record_created"
	MetricMutationFailed   = "mutation_failed"
	MetricEmailUpdated     = "email_updated"
	MetricAssetDeleted     = "asset_deleted"
	MetricReportGenerated  = "report_generated"
	MetricReportDuration   = "report_duration"
	MetricAllocationGroups = "allocation_groups"
)

type PrometheusMetrics struct {
	recordsCreated   *prometheus.CounterVec
	mutationsFailed  *prometheus.CounterVec
	emailsUpdated    prometheus.Counter
	assetsDeleted    prometheus.Counter
	reportsGenerated *prometheus.CounterVec
	reportDuration   *prometheus.HistogramVec
	allocationGroups prometheus.Gauge
}

// NewPrometheusMetrics registers the portfolio metrics with reg.
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		recordsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_records_created_total",
				Help: "Total number of records created by entity",
			},
			[]string{"entity"},
		),
		mutationsFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_mutations_failed_total",
				Help: "Total number of failed mutations by entity, operation and outcome",
			},
			[]string{"entity", "operation", "outcome"},
		),
		emailsUpdated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "portfolio_user_email_updated_total",
				Help: "Total number of user email updates",
			},
		),
		assetsDeleted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "portfolio_assets_deleted_total",
				Help: "Total number of assets deleted",
			},
		),
		reportsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_reports_generated_total",
				Help: "Total number of reports generated",
			},
			[]string{"report", "status"},
		),
		reportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portfolio_report_duration_milliseconds",
				Help:    "Report generation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"report"},
		),
		allocationGroups: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "portfolio_last_allocation_groups",
				Help: "Number of asset classes in the most recent allocation report",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case MetricRecordCreated:
		if entity := tags["entity"]; entity != "" {
			m.recordsCreated.WithLabelValues(entity).Inc()
		}
	case MetricMutationFailed:
		m.mutationsFailed.WithLabelValues(tags["entity"], tags["operation"], tags["outcome"]).Inc()
	case MetricEmailUpdated:
		m.emailsUpdated.Inc()
	case MetricAssetDeleted:
		m.assetsDeleted.Inc()
	case MetricReportGenerated:
		m.reportsGenerated.WithLabelValues(tags["report"], tags["status"]).Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	m.reportDuration.WithLabelValues(name).Observe(float64(duration.Milliseconds()))
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	if name == MetricAllocationGroups {
		m.allocationGroups.Set(value)
	}
}

// NoopMetrics discards every observation. The CLI uses it since it exposes no
// metrics endpoint.
type NoopMetrics struct{}

func (NoopMetrics) IncrementCounter(string, map[string]string) {}

func (NoopMetrics) RecordProcessingTime(string, time.Duration) {}

func (NoopMetrics) RecordGauge(string, float64, map[string]string) {}
