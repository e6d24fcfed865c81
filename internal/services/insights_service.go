package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/repositories"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type insightsService struct {
	reportingRepo repositories.ReportingRepositoryInterface
	metrics       MetricsRecorderInterface
	currency      string
	now           func() time.Time
}

// NewInsightsService builds the reports service. currency is the ISO code the
// dashboard is labelled with.
func NewInsightsService(reportingRepo repositories.ReportingRepositoryInterface, metrics MetricsRecorderInterface, currency string) InsightsServiceInterface {
	return &insightsService{
		reportingRepo: reportingRepo,
		metrics:       metrics,
		currency:      currency,
		now:           time.Now,
	}
}

func (s *insightsService) GetTotalPortfolioValue(ctx context.Context, userID int64) (decimal.Decimal, error) {
	start := time.Now()
	total, err := s.reportingRepo.GetTotalPortfolioValue(ctx, userID)
	s.observe("total_value", start, err)
	if err != nil {
		slog.Error("failed to compute portfolio value", "user_id", userID, "error", err)
		return decimal.Zero, fmt.Errorf("failed to compute portfolio value: %w", err)
	}
	return total, nil
}

func (s *insightsService) GetAssetAllocation(ctx context.Context, userID int64) ([]models.AllocationSlice, error) {
	start := time.Now()
	allocation, err := s.reportingRepo.GetAssetAllocation(ctx, userID)
	s.observe("allocation", start, err)
	if err != nil {
		slog.Error("failed to compute asset allocation", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to compute asset allocation: %w", err)
	}

	s.metrics.RecordGauge(MetricAllocationGroups, float64(len(allocation)), nil)
	return allocation, nil
}

func (s *insightsService) GetPerformanceInsights(ctx context.Context, userID int64) (*models.PerformanceInsights, error) {
	start := time.Now()
	insights, err := s.reportingRepo.GetPerformanceInsights(ctx, userID)
	s.observe("performance", start, err)
	if err != nil {
		slog.Error("failed to compute performance insights", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to compute performance insights: %w", err)
	}
	return insights, nil
}

// GetDashboard runs the three reports and sets each allocation slice's share
// of the total value, in percent rounded to two places.
func (s *insightsService) GetDashboard(ctx context.Context, userID int64) (*models.Dashboard, error) {
	total, err := s.GetTotalPortfolioValue(ctx, userID)
	if err != nil {
		return nil, err
	}

	allocation, err := s.GetAssetAllocation(ctx, userID)
	if err != nil {
		return nil, err
	}

	performance, err := s.GetPerformanceInsights(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range allocation {
		allocation[i].Percentage = percentOf(allocation[i].TotalValue, total)
	}

	slog.Info("dashboard generated",
		"user_id", userID,
		"total_value", total.String(),
		"asset_classes", len(allocation),
		"asset_count", performance.AssetCount)

	return &models.Dashboard{
		UserID:      userID,
		Currency:    s.currency,
		TotalValue:  total,
		Allocation:  allocation,
		Performance: *performance,
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *insightsService) observe(report string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	s.metrics.IncrementCounter(MetricReportGenerated, map[string]string{"report": report, "status": status})
	s.metrics.RecordProcessingTime(report, time.Since(start))
}

func percentOf(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred).Round(2)
}
