// Package app contains the market context's application service and ports.
package app

import (
	"context"

	"github.com/fd1az/trade-console/business/market/domain"
)

// AgentDirectory manages per-product trading agents.
type AgentDirectory interface {
	Active(ctx context.Context) ([]domain.Agent, error)
	Start(ctx context.Context, agentID string) error
	Stop(ctx context.Context, agentID string) error
	Metrics(ctx context.Context, agentID string) (domain.AgentMetrics, error)
}

// Marketplace reads bids and matches.
type Marketplace interface {
	Bids(ctx context.Context) ([]domain.Bid, error)
	Matches(ctx context.Context) ([]domain.Match, error)
}

// ProductCatalog lists marketplace products.
type ProductCatalog interface {
	List(ctx context.Context) ([]domain.Product, error)
}

// AISystem reads the AI agent system's state.
type AISystem interface {
	Status(ctx context.Context) (domain.AISystemStatus, error)
	Health(ctx context.Context) (domain.AISystemHealth, error)
	ProductInsight(ctx context.Context, productID string) (domain.ProductInsight, error)
}

// Analytics serves dashboard metrics. Implementations degrade to fallback
// payloads rather than returning errors.
type Analytics interface {
	Overview(ctx context.Context) domain.AnalyticsOverview
	Performance(ctx context.Context, timeRange string) domain.PerformanceSeries
	Revenue(ctx context.Context, timeRange string) domain.RevenueSeries
	InventoryTrends(ctx context.Context) []domain.InventoryTrend
}

// DecisionHistory reads past operator decisions.
type DecisionHistory interface {
	List(ctx context.Context, f domain.DecisionFilter) ([]domain.DecisionRecord, error)
	Stats(ctx context.Context) (domain.DecisionStats, error)
}
