package app

import (
	"context"
	"sync"

	"github.com/fd1az/trade-console/business/market/domain"
	"github.com/fd1az/trade-console/internal/logger"
)

// Overview aggregates the dashboard's data sources. Fields for sources that
// failed hold their zero value; analytics always carries at least the
// fallback payload.
type Overview struct {
	Analytics     domain.AnalyticsOverview
	DecisionStats domain.DecisionStats
	Agents        []domain.Agent
	ProductCount  int
	Bids          []domain.Bid
	Matches       []domain.Match
	AIStatus      domain.AISystemStatus
	AIHealth      domain.AISystemHealth
}

// MarketService is the market context facade consumed by the UI.
type MarketService struct {
	agents      AgentDirectory
	marketplace Marketplace
	products    ProductCatalog
	ai          AISystem
	analytics   Analytics
	decisions   DecisionHistory
	log         logger.LoggerInterface
}

// NewMarketService wires the market service.
func NewMarketService(
	agents AgentDirectory,
	marketplace Marketplace,
	products ProductCatalog,
	ai AISystem,
	analytics Analytics,
	decisions DecisionHistory,
	log logger.LoggerInterface,
) *MarketService {
	return &MarketService{
		agents:      agents,
		marketplace: marketplace,
		products:    products,
		ai:          ai,
		analytics:   analytics,
		decisions:   decisions,
		log:         log,
	}
}

// Overview fetches all dashboard sources concurrently. Individual failures
// degrade to zero values without aborting the rest.
func (s *MarketService) Overview(ctx context.Context) Overview {
	var (
		out Overview
		wg  sync.WaitGroup
	)

	fetch := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				s.log.Debug(ctx, "overview source degraded", "source", name, "error", err.Error())
			}
		}()
	}

	fetch("analytics", func() error {
		out.Analytics = s.analytics.Overview(ctx)
		return nil
	})
	fetch("decision-stats", func() error {
		stats, err := s.decisions.Stats(ctx)
		if err != nil {
			return err
		}
		out.DecisionStats = stats
		return nil
	})
	fetch("agents", func() error {
		agents, err := s.agents.Active(ctx)
		if err != nil {
			return err
		}
		out.Agents = agents
		return nil
	})
	fetch("products", func() error {
		products, err := s.products.List(ctx)
		if err != nil {
			return err
		}
		out.ProductCount = len(products)
		return nil
	})
	fetch("bids", func() error {
		bids, err := s.marketplace.Bids(ctx)
		if err != nil {
			return err
		}
		out.Bids = bids
		return nil
	})
	fetch("matches", func() error {
		matches, err := s.marketplace.Matches(ctx)
		if err != nil {
			return err
		}
		out.Matches = matches
		return nil
	})
	fetch("ai-status", func() error {
		status, err := s.ai.Status(ctx)
		if err != nil {
			return err
		}
		out.AIStatus = status
		return nil
	})
	fetch("ai-health", func() error {
		health, err := s.ai.Health(ctx)
		if err != nil {
			return err
		}
		out.AIHealth = health
		return nil
	})

	wg.Wait()
	return out
}

// Bids lists active marketplace bids.
func (s *MarketService) Bids(ctx context.Context) ([]domain.Bid, error) {
	return s.marketplace.Bids(ctx)
}

// Matches lists completed matches.
func (s *MarketService) Matches(ctx context.Context) ([]domain.Match, error) {
	return s.marketplace.Matches(ctx)
}

// Agents lists active agents.
func (s *MarketService) Agents(ctx context.Context) ([]domain.Agent, error) {
	return s.agents.Active(ctx)
}

// StartAgent starts an agent.
func (s *MarketService) StartAgent(ctx context.Context, agentID string) error {
	return s.agents.Start(ctx, agentID)
}

// StopAgent stops an agent.
func (s *MarketService) StopAgent(ctx context.Context, agentID string) error {
	return s.agents.Stop(ctx, agentID)
}

// AgentMetrics fetches one agent's performance metrics.
func (s *MarketService) AgentMetrics(ctx context.Context, agentID string) (domain.AgentMetrics, error) {
	return s.agents.Metrics(ctx, agentID)
}

// AIStatus fetches the AI system status.
func (s *MarketService) AIStatus(ctx context.Context) (domain.AISystemStatus, error) {
	return s.ai.Status(ctx)
}

// AIHealth fetches the AI system health.
func (s *MarketService) AIHealth(ctx context.Context) (domain.AISystemHealth, error) {
	return s.ai.Health(ctx)
}

// ProductInsight fetches the AI analysis for one product.
func (s *MarketService) ProductInsight(ctx context.Context, productID string) (domain.ProductInsight, error) {
	return s.ai.ProductInsight(ctx, productID)
}

// Performance fetches the hourly performance series.
func (s *MarketService) Performance(ctx context.Context, timeRange string) domain.PerformanceSeries {
	return s.analytics.Performance(ctx, timeRange)
}

// Revenue fetches the daily revenue series.
func (s *MarketService) Revenue(ctx context.Context, timeRange string) domain.RevenueSeries {
	return s.analytics.Revenue(ctx, timeRange)
}

// InventoryTrends fetches category growth.
func (s *MarketService) InventoryTrends(ctx context.Context) []domain.InventoryTrend {
	return s.analytics.InventoryTrends(ctx)
}

// Decisions lists decision history.
func (s *MarketService) Decisions(ctx context.Context, f domain.DecisionFilter) ([]domain.DecisionRecord, error) {
	return s.decisions.List(ctx, f)
}

// DecisionStats fetches the decision summary.
func (s *MarketService) DecisionStats(ctx context.Context) (domain.DecisionStats, error) {
	return s.decisions.Stats(ctx)
}
