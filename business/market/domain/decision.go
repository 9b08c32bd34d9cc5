package domain

import (
	"time"

	trading "github.com/fd1az/trade-console/business/trading/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DecisionMetadata snapshots the opportunity at decision time.
type DecisionMetadata struct {
	SourceStore     string          `json:"sourceStore"`
	TargetStore     string          `json:"targetStore"`
	Quantity        int             `json:"quantity"`
	PotentialProfit decimal.Decimal `json:"potentialProfit"`
	Confidence      float64         `json:"confidence"`
	Urgency         string          `json:"urgency"`
	Reasoning       string          `json:"reasoning"`
}

// DecisionRequest is the POST /trade-decisions payload. The client assigns
// the decision ID so retries are idempotent on the backend.
type DecisionRequest struct {
	DecisionID    string           `json:"decisionId"`
	OpportunityID string           `json:"opportunityId"`
	ProductID     string           `json:"productId"`
	Decision      string           `json:"decision"`
	TradeID       string           `json:"tradeId,omitempty"`
	BidID         string           `json:"bidId,omitempty"`
	DecidedAt     time.Time        `json:"decidedAt"`
	Metadata      DecisionMetadata `json:"metadata"`
}

// NewDecisionRequest derives the decision record for an opportunity verdict.
// TradeID and BidID are empty for rejections.
func NewDecisionRequest(o trading.Opportunity, verdict trading.Status, tradeID, bidID string) DecisionRequest {
	return DecisionRequest{
		DecisionID:    uuid.NewString(),
		OpportunityID: o.ID,
		ProductID:     string(o.ProductID),
		Decision:      string(verdict),
		TradeID:       tradeID,
		BidID:         bidID,
		DecidedAt:     time.Now(),
		Metadata: DecisionMetadata{
			SourceStore:     string(o.SourceStore),
			TargetStore:     string(o.TargetStore),
			Quantity:        o.Quantity,
			PotentialProfit: o.PotentialProfit,
			Confidence:      o.Confidence,
			Urgency:         string(o.Urgency),
			Reasoning:       o.Reasoning,
		},
	}
}

// DecisionRecord is a persisted trade decision read model.
type DecisionRecord struct {
	ID            string          `json:"id"`
	OpportunityID string          `json:"opportunityId"`
	ProductID     string          `json:"productId"`
	Decision      string          `json:"decision"`
	TradeID       string          `json:"tradeId"`
	BidID         string          `json:"bidId"`
	Profit        decimal.Decimal `json:"profit"`
	DecidedAt     time.Time       `json:"decidedAt"`
}

// DecisionFilter narrows decision history queries.
type DecisionFilter struct {
	Decision  string
	ProductID string
	Limit     int
	Offset    int
}

// DecisionStats summarizes past decisions.
type DecisionStats struct {
	Total        int             `json:"total"`
	Approved     int             `json:"approved"`
	Rejected     int             `json:"rejected"`
	ApprovalRate float64         `json:"approvalRate"`
	TotalProfit  decimal.Decimal `json:"totalProfit"`
}
