package rest

import (
	"context"
	"math/rand"
	"time"

	"github.com/fd1az/trade-console/business/market/domain"
	"github.com/fd1az/trade-console/internal/circuitbreaker"
	"github.com/fd1az/trade-console/internal/httpclient"
	"github.com/fd1az/trade-console/internal/logger"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
)

// AnalyticsClient fetches dashboard analytics. The endpoints are optional on
// some backend deployments, so every call runs through a circuit breaker and
// degrades to a static payload rather than surfacing an error.
type AnalyticsClient struct {
	hc      httpclient.Client
	log     logger.LoggerInterface
	breaker *circuitbreaker.Breaker[[]byte]
}

// NewAnalyticsClient creates the analytics client.
func NewAnalyticsClient(hc httpclient.Client, log logger.LoggerInterface) *AnalyticsClient {
	cfg := circuitbreaker.DefaultConfig("analytics")
	cfg.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Info(context.Background(), "circuit breaker state change",
			"breaker", name, "from", from.String(), "to", to.String())
	}

	return &AnalyticsClient{
		hc:      hc,
		log:     log,
		breaker: circuitbreaker.New[[]byte](cfg),
	}
}

// get runs one analytics GET through the breaker, returning the raw body.
func (c *AnalyticsClient) get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	return c.breaker.Execute(func() ([]byte, error) {
		req := c.hc.NewRequestWithOptions(httpclient.WithLabels(&httpclient.Label{Key: "resource", Value: "analytics"}))
		for k, v := range params {
			req.SetQueryParam(k, v)
		}
		resp, err := req.Get(ctx, path)
		if err := check(resp, err, "fetching "+path); err != nil {
			return nil, err
		}
		return resp.Body(), nil
	})
}

// Overview fetches the analytics summary, falling back to the static
// placeholder when the endpoint is missing or the breaker is open.
func (c *AnalyticsClient) Overview(ctx context.Context) domain.AnalyticsOverview {
	body, err := c.get(ctx, "/v1/analytics/overview", nil)
	if err != nil {
		c.log.Debug(ctx, "analytics overview unavailable, serving fallback", "error", err.Error())
		return domain.FallbackOverview()
	}

	var overview domain.AnalyticsOverview
	if err := decode(body, &overview); err != nil {
		c.log.Debug(ctx, "analytics overview unreadable, serving fallback", "error", err.Error())
		return domain.FallbackOverview()
	}
	return overview
}

// Performance fetches hourly revenue/profit series, synthesizing one when
// the endpoint is unavailable.
func (c *AnalyticsClient) Performance(ctx context.Context, timeRange string) domain.PerformanceSeries {
	params := map[string]string{}
	if timeRange != "" {
		params["timeRange"] = timeRange
	}

	body, err := c.get(ctx, "/v1/analytics/performance", params)
	if err != nil {
		c.log.Debug(ctx, "performance metrics unavailable, serving fallback", "error", err.Error())
		return fallbackPerformance()
	}

	var series domain.PerformanceSeries
	if err := decode(body, &series); err != nil {
		c.log.Debug(ctx, "performance metrics unreadable, serving fallback", "error", err.Error())
		return fallbackPerformance()
	}
	return series
}

// Revenue fetches the daily revenue series, synthesizing one when the
// endpoint is unavailable.
func (c *AnalyticsClient) Revenue(ctx context.Context, timeRange string) domain.RevenueSeries {
	params := map[string]string{}
	if timeRange != "" {
		params["timeRange"] = timeRange
	}

	body, err := c.get(ctx, "/v1/analytics/revenue", params)
	if err != nil {
		c.log.Debug(ctx, "revenue data unavailable, serving fallback", "error", err.Error())
		return fallbackRevenue()
	}

	var series domain.RevenueSeries
	if err := decode(body, &series); err != nil {
		c.log.Debug(ctx, "revenue data unreadable, serving fallback", "error", err.Error())
		return fallbackRevenue()
	}
	return series
}

// InventoryTrends fetches category growth, falling back to the static
// placeholder set.
func (c *AnalyticsClient) InventoryTrends(ctx context.Context) []domain.InventoryTrend {
	body, err := c.get(ctx, "/v1/analytics/inventory-trends", nil)
	if err != nil {
		c.log.Debug(ctx, "inventory trends unavailable, serving fallback", "error", err.Error())
		return domain.FallbackInventoryTrends()
	}

	var payload struct {
		Trends []domain.InventoryTrend `json:"trends"`
	}
	if err := decode(body, &payload); err != nil {
		c.log.Debug(ctx, "inventory trends unreadable, serving fallback", "error", err.Error())
		return domain.FallbackInventoryTrends()
	}
	return payload.Trends
}

// fallbackPerformance synthesizes 24 hourly samples.
func fallbackPerformance() domain.PerformanceSeries {
	now := time.Now()
	series := domain.PerformanceSeries{
		Revenue: make([]domain.SeriesPoint, 24),
		Profit:  make([]domain.SeriesPoint, 24),
	}
	for i := 0; i < 24; i++ {
		t := now.Add(-time.Duration(23-i) * time.Hour)
		series.Revenue[i] = domain.SeriesPoint{
			Time:  t,
			Value: decimal.NewFromFloat(rand.Float64()*1000 + 500).Round(2),
		}
		series.Profit[i] = domain.SeriesPoint{
			Time:  t,
			Value: decimal.NewFromFloat(rand.Float64()*200 + 100).Round(2),
		}
	}
	return series
}

// fallbackRevenue synthesizes 7 daily samples.
func fallbackRevenue() domain.RevenueSeries {
	now := time.Now()
	series := domain.RevenueSeries{Daily: make([]domain.RevenuePoint, 7)}
	for i := 0; i < 7; i++ {
		series.Daily[i] = domain.RevenuePoint{
			Date:    now.AddDate(0, 0, -(6 - i)),
			Revenue: decimal.NewFromFloat(rand.Float64()*5000 + 2000).Round(2),
		}
	}
	return series
}
