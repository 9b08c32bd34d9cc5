package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnalyticsOverview summarizes marketplace performance for the dashboard.
type AnalyticsOverview struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	ProfitMargin      float64         `json:"profitMargin"`
	TotalTransactions int             `json:"totalTransactions"`
	ActiveAgents      int             `json:"activeAgents"`
	SuccessRate       float64         `json:"successRate"`
}

// SeriesPoint is one sample of a time series metric.
type SeriesPoint struct {
	Time  time.Time       `json:"time"`
	Value decimal.Decimal `json:"value"`
}

// PerformanceSeries holds hourly revenue and profit samples.
type PerformanceSeries struct {
	Revenue []SeriesPoint `json:"revenue"`
	Profit  []SeriesPoint `json:"profit"`
}

// RevenuePoint is one day of revenue.
type RevenuePoint struct {
	Date    time.Time       `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// RevenueSeries holds the daily revenue breakdown.
type RevenueSeries struct {
	Daily []RevenuePoint `json:"daily"`
}

// InventoryTrend is category-level inventory growth.
type InventoryTrend struct {
	Category string  `json:"category"`
	Growth   float64 `json:"growth"`
}

// FallbackOverview is served when the analytics overview endpoint is
// unavailable. Values match the dashboard's historical placeholder numbers.
func FallbackOverview() AnalyticsOverview {
	return AnalyticsOverview{
		TotalRevenue:      decimal.RequireFromString("12450.67"),
		ProfitMargin:      0.28,
		TotalTransactions: 342,
		ActiveAgents:      50,
		SuccessRate:       0.94,
	}
}

// FallbackInventoryTrends is served when the inventory trends endpoint is
// unavailable.
func FallbackInventoryTrends() []InventoryTrend {
	return []InventoryTrend{
		{Category: "Electronics", Growth: 0.15},
		{Category: "Clothing", Growth: 0.08},
		{Category: "Books", Growth: -0.02},
		{Category: "Sports", Growth: 0.12},
	}
}
