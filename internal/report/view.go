package report

import (
	"strings"

	"portfolio-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// barWidth is the length of the bar drawn for the largest allocation slice.
const barWidth = 24

type allocationRow struct {
	Class   string
	Value   string
	Percent string
	Bar     string
}

type dashboardView struct {
	UserID      int64
	GeneratedAt string
	TotalValue  string
	Allocation  []allocationRow

	AssetCount   int64
	TotalShares  string
	AvgPrice     string
	MinCostBasis string
	MaxCostBasis string
}

func newDashboardView(d *models.Dashboard) dashboardView {
	view := dashboardView{
		UserID:       d.UserID,
		GeneratedAt:  d.GeneratedAt,
		TotalValue:   FormatMoney(d.TotalValue, d.Currency),
		AssetCount:   d.Performance.AssetCount,
		TotalShares:  FormatQuantity(d.Performance.TotalShares),
		AvgPrice:     FormatMoney(d.Performance.AvgPrice, d.Currency),
		MinCostBasis: FormatMoney(d.Performance.MinCostBasis, d.Currency),
		MaxCostBasis: FormatMoney(d.Performance.MaxCostBasis, d.Currency),
	}

	largest := decimal.Zero
	for _, slice := range d.Allocation {
		if slice.TotalValue.GreaterThan(largest) {
			largest = slice.TotalValue
		}
	}

	for _, slice := range d.Allocation {
		view.Allocation = append(view.Allocation, allocationRow{
			Class:   escapeCell(slice.AssetClass),
			Value:   FormatMoney(slice.TotalValue, d.Currency),
			Percent: slice.Percentage.StringFixed(2),
			Bar:     bar(slice.TotalValue, largest),
		})
	}
	return view
}

// bar draws value relative to largest; any positive value gets at least one block.
func bar(value, largest decimal.Decimal) string {
	if !largest.IsPositive() || !value.IsPositive() {
		return ""
	}
	n := int(value.Div(largest).Mul(decimal.NewFromInt(barWidth)).Round(0).IntPart())
	if n < 1 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
