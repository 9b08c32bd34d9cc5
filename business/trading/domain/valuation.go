package domain

import (
	"fmt"
	"math"

	logistics "github.com/fd1az/trade-console/business/logistics/domain"
	"github.com/shopspring/decimal"
)

// Risk tiers an opportunity by margin after transport.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// mediumRiskMarginPct is the margin below which a profitable trade is still
// flagged as medium risk.
var mediumRiskMarginPct = decimal.NewFromInt(10)

// Valuation is the derived economics of an opportunity. It is recomputed on
// demand and never stored.
type Valuation struct {
	DistanceKM    float64
	TransportCost logistics.Cost
	NetProfit     decimal.Decimal
	MarginPct     decimal.Decimal
	Risk          Risk
	Delivery      string
}

// Valuator values opportunities against catalog-backed logistics estimates.
type Valuator struct {
	calc *logistics.Calculator
}

// NewValuator creates a Valuator over the given calculator.
func NewValuator(calc *logistics.Calculator) *Valuator {
	return &Valuator{calc: calc}
}

// Value computes the full valuation of an opportunity.
func (v *Valuator) Value(o Opportunity) Valuation {
	dist := v.calc.Distance(o.SourceStore, o.TargetStore)
	cost := v.calc.TransportCost(o.ProductID, o.Quantity, dist)

	net := o.PotentialProfit.Sub(cost.Total)

	// Floor the divisor at 1 so zero-gross opportunities don't blow up the
	// margin.
	divisor := o.PotentialProfit
	if divisor.LessThan(decimal.NewFromInt(1)) {
		divisor = decimal.NewFromInt(1)
	}
	margin := net.Div(divisor).Mul(decimal.NewFromInt(100))

	risk := RiskLow
	switch {
	case net.IsNegative():
		risk = RiskHigh
	case margin.LessThan(mediumRiskMarginPct):
		risk = RiskMedium
	}

	return Valuation{
		DistanceKM:    dist,
		TransportCost: cost,
		NetProfit:     net,
		MarginPct:     margin,
		Risk:          risk,
		Delivery:      DeliveryEstimate(dist, o.IsUrgent()),
	}
}

// DeliveryEstimate renders a human-readable delivery time for a distance.
// Urgent trades get priority dispatch, shaving an hour off staging.
func DeliveryEstimate(distanceKM float64, urgent bool) string {
	hours := int(math.Ceil(distanceKM / 50))
	if hours < 2 {
		hours = 2
	}
	if urgent {
		hours++
	} else {
		hours += 2
	}

	if hours <= 24 {
		return fmt.Sprintf("%d hours", hours)
	}

	days := (hours + 23) / 24
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
