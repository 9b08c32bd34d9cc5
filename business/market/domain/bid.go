package domain

import (
	"time"

	trading "github.com/fd1az/trade-console/business/trading/domain"
	"github.com/shopspring/decimal"
)

const bidValidHours = 24

// BidMetadata carries the AI provenance attached to a bid.
type BidMetadata struct {
	ProfitPotential decimal.Decimal `json:"profitPotential"`
	ConfidenceLevel float64         `json:"confidenceLevel"`
	AIGenerated     bool            `json:"aiGenerated"`
	Reasoning       string          `json:"reasoning"`
	TradeID         string          `json:"tradeId"`
}

// BidRequest is the POST /marketplace/bids payload.
type BidRequest struct {
	AgentID      string          `json:"agentId"`
	StoreID      string          `json:"storeId"`
	ProductID    string          `json:"productId"`
	Type         string          `json:"type"`
	Quantity     int             `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	ValidHours   int             `json:"validHours"`
	Metadata     BidMetadata     `json:"metadata"`
}

// NewBidRequest derives the marketplace bid for an approved opportunity.
// Arbitrage opportunities bid as transfers, everything else as restocks.
func NewBidRequest(o trading.Opportunity, tradeID string) BidRequest {
	bidType := "restock"
	if o.Type == trading.TypeArbitrage {
		bidType = "transfer"
	}

	qty := o.Quantity
	if qty < 1 {
		qty = 1
	}

	return BidRequest{
		AgentID:      "ai_agent_" + string(o.ProductID),
		StoreID:      string(o.SourceStore),
		ProductID:    string(o.ProductID),
		Type:         bidType,
		Quantity:     o.Quantity,
		PricePerUnit: o.PotentialProfit.Div(decimal.NewFromInt(int64(qty))),
		ValidHours:   bidValidHours,
		Metadata: BidMetadata{
			ProfitPotential: o.PotentialProfit,
			ConfidenceLevel: o.Confidence,
			AIGenerated:     true,
			Reasoning:       o.Reasoning,
			TradeID:         tradeID,
		},
	}
}

// Bid is a marketplace bid read model.
type Bid struct {
	ID           string          `json:"id"`
	AgentID      string          `json:"agentId"`
	StoreID      string          `json:"storeId"`
	ProductID    string          `json:"productId"`
	Type         string          `json:"type"`
	Quantity     int             `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	ExpiresAt    time.Time       `json:"expiresAt"`
}

// Match is a completed pairing of compatible bids.
type Match struct {
	ID           string          `json:"id"`
	BuyBidID     string          `json:"buyBidId"`
	SellBidID    string          `json:"sellBidId"`
	ProductID    string          `json:"productId"`
	Quantity     int             `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	MatchedAt    time.Time       `json:"matchedAt"`
}
