// Package domain holds the market context's wire types: request payloads
// derived from opportunities and read models for backend resources.
package domain

import (
	"time"

	trading "github.com/fd1az/trade-console/business/trading/domain"
	"github.com/shopspring/decimal"
)

// Trade submission tuning. Constraints are derived from the opportunity the
// same way for every approval.
var (
	maxTransportCostPct = decimal.RequireFromString("0.2")
	minProfitMarginPct  = decimal.NewFromInt(5)
	deliveryDeadline    = 7 * 24 * time.Hour
	defaultUrgencyScore = 75
)

// TradeConstraints bound how a trade may be executed.
type TradeConstraints struct {
	MaxTransportCost decimal.Decimal `json:"maxTransportCost"`
	MinProfitMargin  decimal.Decimal `json:"minProfitMargin"`
	DeliveryDeadline time.Time       `json:"deliveryDeadline"`
	MinQuantity      int             `json:"minQuantity"`
	MaxQuantity      int             `json:"maxQuantity"`
}

// TradeRequest is the POST /trades payload.
type TradeRequest struct {
	FromStoreID     string           `json:"fromStoreId"`
	ToStoreID       string           `json:"toStoreId"`
	ProductID       string           `json:"productId"`
	SKU             string           `json:"sku"`
	Quantity        int              `json:"quantity"`
	EstimatedProfit decimal.Decimal  `json:"estimatedProfit"`
	TransportCost   decimal.Decimal  `json:"transportCost"`
	UrgencyScore    int              `json:"urgencyScore"`
	ProposedBy      string           `json:"proposedBy"`
	Reasoning       string           `json:"reasoning"`
	Constraints     TradeConstraints `json:"constraints"`
}

// NewTradeRequest derives the trade payload for an approved opportunity.
func NewTradeRequest(o trading.Opportunity) TradeRequest {
	return TradeRequest{
		FromStoreID:     string(o.SourceStore),
		ToStoreID:       string(o.TargetStore),
		ProductID:       string(o.ProductID),
		SKU:             o.SKU(),
		Quantity:        o.Quantity,
		EstimatedProfit: o.PotentialProfit,
		TransportCost:   decimal.Zero,
		UrgencyScore:    defaultUrgencyScore,
		ProposedBy:      "user",
		Reasoning:       o.Reasoning,
		Constraints: TradeConstraints{
			MaxTransportCost: o.PotentialProfit.Mul(maxTransportCostPct),
			MinProfitMargin:  minProfitMarginPct,
			DeliveryDeadline: time.Now().Add(deliveryDeadline),
			MinQuantity:      o.Quantity / 2,
			MaxQuantity:      o.Quantity,
		},
	}
}
