package app_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/fd1az/trade-console/business/market/app"
	"github.com/fd1az/trade-console/business/market/domain"
	"github.com/fd1az/trade-console/internal/logger"
	"github.com/shopspring/decimal"
)

type fakeBackend struct {
	agentsErr error
	bidsErr   error
}

func (f *fakeBackend) Active(context.Context) ([]domain.Agent, error) {
	if f.agentsErr != nil {
		return nil, f.agentsErr
	}
	return []domain.Agent{{ID: "agent-1", Status: "running"}}, nil
}

func (f *fakeBackend) Start(context.Context, string) error { return nil }
func (f *fakeBackend) Stop(context.Context, string) error  { return nil }

func (f *fakeBackend) Metrics(context.Context, string) (domain.AgentMetrics, error) {
	return domain.AgentMetrics{}, nil
}

func (f *fakeBackend) Bids(context.Context) ([]domain.Bid, error) {
	if f.bidsErr != nil {
		return nil, f.bidsErr
	}
	return []domain.Bid{{ID: "bid-1"}, {ID: "bid-2"}}, nil
}

func (f *fakeBackend) Matches(context.Context) ([]domain.Match, error) {
	return []domain.Match{{ID: "match-1"}}, nil
}

func (f *fakeBackend) List(ctx context.Context, _ domain.DecisionFilter) ([]domain.DecisionRecord, error) {
	return nil, nil
}

func (f *fakeBackend) ListProducts(context.Context) ([]domain.Product, error) {
	return []domain.Product{{ID: "PRD-1"}, {ID: "PRD-2"}, {ID: "PRD-3"}}, nil
}

func (f *fakeBackend) Stats(context.Context) (domain.DecisionStats, error) {
	return domain.DecisionStats{Total: 12, Approved: 9, Rejected: 3}, nil
}

func (f *fakeBackend) Status(context.Context) (domain.AISystemStatus, error) {
	return domain.AISystemStatus{Running: true, ActiveAgents: 5}, nil
}

func (f *fakeBackend) Health(context.Context) (domain.AISystemHealth, error) {
	return domain.AISystemHealth{Healthy: true}, nil
}

func (f *fakeBackend) ProductInsight(context.Context, string) (domain.ProductInsight, error) {
	return domain.ProductInsight{}, nil
}

func (f *fakeBackend) Overview(context.Context) domain.AnalyticsOverview {
	return domain.AnalyticsOverview{TotalRevenue: decimal.NewFromInt(5000), ActiveAgents: 7}
}

func (f *fakeBackend) Performance(context.Context, string) domain.PerformanceSeries {
	return domain.PerformanceSeries{}
}

func (f *fakeBackend) Revenue(context.Context, string) domain.RevenueSeries {
	return domain.RevenueSeries{}
}

func (f *fakeBackend) InventoryTrends(context.Context) []domain.InventoryTrend {
	return domain.FallbackInventoryTrends()
}

type productLister struct{ *fakeBackend }

func (p productLister) List(ctx context.Context) ([]domain.Product, error) {
	return p.ListProducts(ctx)
}

func newService(f *fakeBackend) *app.MarketService {
	log := logger.New(io.Discard, logger.LevelError, "test", nil)
	return app.NewMarketService(f, f, productLister{f}, f, f, f, log)
}

func TestMarketService_Overview(t *testing.T) {
	svc := newService(&fakeBackend{})

	out := svc.Overview(context.Background())

	if !out.Analytics.TotalRevenue.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("unexpected revenue %s", out.Analytics.TotalRevenue)
	}
	if out.DecisionStats.Total != 12 {
		t.Errorf("unexpected decision total %d", out.DecisionStats.Total)
	}
	if len(out.Agents) != 1 || out.ProductCount != 3 {
		t.Errorf("unexpected agents/products %d/%d", len(out.Agents), out.ProductCount)
	}
	if len(out.Bids) != 2 || len(out.Matches) != 1 {
		t.Errorf("unexpected bids/matches %d/%d", len(out.Bids), len(out.Matches))
	}
	if !out.AIStatus.Running || !out.AIHealth.Healthy {
		t.Error("expected ai status and health populated")
	}
}

func TestMarketService_OverviewDegradesPerSource(t *testing.T) {
	svc := newService(&fakeBackend{
		agentsErr: errors.New("agents down"),
		bidsErr:   errors.New("bids down"),
	})

	out := svc.Overview(context.Background())

	if len(out.Agents) != 0 || len(out.Bids) != 0 {
		t.Error("failed sources must degrade to zero values")
	}
	// Everything else still populated.
	if len(out.Matches) != 1 || out.ProductCount != 3 || out.DecisionStats.Total != 12 {
		t.Error("healthy sources must survive sibling failures")
	}
}
