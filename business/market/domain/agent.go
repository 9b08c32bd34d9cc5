package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Agent is a per-product trading agent read model.
type Agent struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Status    string          `json:"status"`
	Balance   decimal.Decimal `json:"balance"`
	Inventory int             `json:"inventory"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// AgentMetrics is the per-agent performance read model.
type AgentMetrics struct {
	AgentID      string          `json:"agentId"`
	TotalTrades  int             `json:"totalTrades"`
	SuccessRate  float64         `json:"successRate"`
	TotalProfit  decimal.Decimal `json:"totalProfit"`
	AvgTradeSize decimal.Decimal `json:"avgTradeSize"`
}

// AISystemStatus reports the AI agent system's run state.
type AISystemStatus struct {
	Running        bool      `json:"running"`
	ActiveAgents   int       `json:"activeAgents"`
	LastCycleAt    time.Time `json:"lastCycleAt"`
	Opportunities  int       `json:"opportunities"`
	PendingReviews int       `json:"pendingReviews"`
}

// AISystemHealth reports AI subsystem liveness.
type AISystemHealth struct {
	Healthy    bool              `json:"healthy"`
	Components map[string]string `json:"components"`
	CheckedAt  time.Time         `json:"checkedAt"`
}

// ProductInsight is the AI's current analysis of one product.
type ProductInsight struct {
	ProductID      string          `json:"productId"`
	Recommendation string          `json:"recommendation"`
	Confidence     float64         `json:"confidence"`
	PredictedPrice decimal.Decimal `json:"predictedPrice"`
	Summary        string          `json:"summary"`
	GeneratedAt    time.Time       `json:"generatedAt"`
}
