// Package domain holds the trading context's core types: AI-proposed trade
// opportunities and their valuation.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/fd1az/trade-console/internal/catalog"
	"github.com/shopspring/decimal"
)

// OpportunityType classifies how an opportunity makes money.
type OpportunityType string

const (
	TypeArbitrage OpportunityType = "arbitrage"
	TypeRestock   OpportunityType = "restock"
)

// Urgency is the AI-assigned urgency of acting on an opportunity.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// Status is the decision state of an opportunity. Approved and rejected are
// terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusExecuted Status = "executed"
)

// Opportunity is an AI-generated inter-store trade proposal awaiting an
// operator decision.
type Opportunity struct {
	ID              string
	ProductID       catalog.ProductID
	ProductName     string
	Type            OpportunityType
	SourceStore     catalog.StoreID
	TargetStore     catalog.StoreID
	Quantity        int
	PotentialProfit decimal.Decimal // gross, before transport
	Confidence      float64         // [0,1]
	Urgency         Urgency
	Reasoning       string
	Status          Status
	Timestamp       time.Time
	SourceInventory int
	TargetInventory int
}

// IsUrgent reports whether the opportunity warrants expedited handling.
func (o Opportunity) IsUrgent() bool {
	return o.Urgency == UrgencyHigh || o.Urgency == UrgencyCritical
}

// Actionable reports whether the opportunity can be decided on: both stores
// present and distinct, and a non-negative gross profit. Backends have been
// seen emitting the literal string "null" for missing stores.
func (o Opportunity) Actionable() bool {
	src := strings.TrimSpace(string(o.SourceStore))
	tgt := strings.TrimSpace(string(o.TargetStore))

	if src == "" || tgt == "" {
		return false
	}
	if strings.EqualFold(src, "null") || strings.EqualFold(tgt, "null") {
		return false
	}
	if src == tgt {
		return false
	}
	return !o.PotentialProfit.IsNegative()
}

// SKU derives the stock-keeping unit recorded on trade submissions.
func (o Opportunity) SKU() string {
	return fmt.Sprintf("%s-%s", o.ProductID, o.SourceStore)
}

// MatchesStoreFilter reports whether the opportunity involves a store whose
// ID or display name contains the filter value, case-insensitively. An empty
// filter matches everything.
func (o Opportunity) MatchesStoreFilter(filter string, stores *catalog.StoreRegistry) bool {
	needle := strings.ToLower(strings.TrimSpace(filter))
	if needle == "" {
		return true
	}

	candidates := []string{
		strings.ToLower(string(o.SourceStore)),
		strings.ToLower(string(o.TargetStore)),
	}
	if s, ok := stores.Get(o.SourceStore); ok {
		candidates = append(candidates, strings.ToLower(s.Name))
	}
	if s, ok := stores.Get(o.TargetStore); ok {
		candidates = append(candidates, strings.ToLower(s.Name))
	}

	for _, c := range candidates {
		if strings.Contains(c, needle) {
			return true
		}
	}
	return false
}
