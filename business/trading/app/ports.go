package app

import (
	"context"

	"github.com/fd1az/trade-console/business/trading/domain"
)

// Decision is a recorded operator verdict on an opportunity.
type Decision struct {
	Opportunity domain.Opportunity
	Verdict     domain.Status // StatusApproved or StatusRejected
	TradeID     string
	BidID       string
}

// TradeGateway creates trade records on the backend.
type TradeGateway interface {
	CreateTrade(ctx context.Context, o domain.Opportunity) (tradeID string, err error)
}

// BidGateway places marketplace bids tied to a created trade.
type BidGateway interface {
	PlaceBid(ctx context.Context, o domain.Opportunity, tradeID string) (bidID string, err error)
}

// DecisionRecorder persists operator decisions.
type DecisionRecorder interface {
	RecordDecision(ctx context.Context, d Decision) error
}

// OpportunityProcessor marks an opportunity as handled in the AI system.
// Failures here are advisory only.
type OpportunityProcessor interface {
	MarkProcessed(ctx context.Context, opportunityID string, verdict domain.Status, tradeID, bidID string) error
}

// Notifier surfaces decision outcomes to the operator.
type Notifier interface {
	Approved(msg string)
	Rejected(msg string)
	Failed(msg string)
}
