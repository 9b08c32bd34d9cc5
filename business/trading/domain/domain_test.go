package domain_test

import (
	"testing"

	logistics "github.com/fd1az/trade-console/business/logistics/domain"
	"github.com/fd1az/trade-console/business/trading/domain"
	"github.com/fd1az/trade-console/internal/catalog"
	"github.com/shopspring/decimal"
)

func newValuator() *domain.Valuator {
	calc := logistics.NewCalculator(catalog.DefaultStores(), catalog.DefaultProducts())
	return domain.NewValuator(calc)
}

// frozenChipsOpp is 10 units between the two northern stores (2.9km),
// with transport cost 38.20.
func frozenChipsOpp(gross string) domain.Opportunity {
	return domain.Opportunity{
		ID:              "opp-1",
		ProductID:       catalog.IDFrozenChips,
		Type:            domain.TypeArbitrage,
		SourceStore:     catalog.IDDowntownHub,
		TargetStore:     catalog.IDNorthWarehouse,
		Quantity:        10,
		PotentialProfit: decimal.RequireFromString(gross),
		Urgency:         domain.UrgencyMedium,
		Status:          domain.StatusPending,
	}
}

func TestOpportunity_Actionable(t *testing.T) {
	tests := []struct {
		name string
		opp  domain.Opportunity
		want bool
	}{
		{"valid", frozenChipsOpp("100"), true},
		{"zero profit", frozenChipsOpp("0"), true},
		{
			"negative profit",
			frozenChipsOpp("-1"),
			false,
		},
		{
			"missing source",
			domain.Opportunity{TargetStore: catalog.IDEastOutlet, PotentialProfit: decimal.NewFromInt(10)},
			false,
		},
		{
			"literal null store",
			domain.Opportunity{SourceStore: "null", TargetStore: catalog.IDEastOutlet, PotentialProfit: decimal.NewFromInt(10)},
			false,
		},
		{
			"uppercase null store",
			domain.Opportunity{SourceStore: catalog.IDEastOutlet, TargetStore: "NULL", PotentialProfit: decimal.NewFromInt(10)},
			false,
		},
		{
			"same store",
			domain.Opportunity{SourceStore: catalog.IDEastOutlet, TargetStore: catalog.IDEastOutlet, PotentialProfit: decimal.NewFromInt(10)},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opp.Actionable(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestOpportunity_MatchesStoreFilter(t *testing.T) {
	stores := catalog.DefaultStores()
	opp := frozenChipsOpp("100")

	tests := []struct {
		filter string
		want   bool
	}{
		{"", true},
		{"4578", true},       // target store ID suffix
		{"STORE-6342", true}, // full source ID
		{"north", true},      // target display name
		{"NORTH SIDE", true},
		{"outlet", false},
		{"9999", false},
	}

	for _, tt := range tests {
		if got := opp.MatchesStoreFilter(tt.filter, stores); got != tt.want {
			t.Errorf("filter %q: expected %v, got %v", tt.filter, tt.want, got)
		}
	}
}

func TestOpportunity_SKU(t *testing.T) {
	opp := frozenChipsOpp("100")
	if got := opp.SKU(); got != "PRD-11193-STORE-6342" {
		t.Errorf("unexpected SKU %q", got)
	}
}

func TestValuator_RiskTiers(t *testing.T) {
	v := newValuator()

	tests := []struct {
		name  string
		gross string
		risk  domain.Risk
	}{
		{"net negative is high", "10", domain.RiskHigh},
		{"net zero is medium", "38.20", domain.RiskMedium},
		{"thin margin is medium", "40", domain.RiskMedium},
		{"wide margin is low", "10000", domain.RiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val := v.Value(frozenChipsOpp(tt.gross))
			if val.Risk != tt.risk {
				t.Errorf("expected risk %s, got %s (net=%s margin=%s)",
					tt.risk, val.Risk, val.NetProfit, val.MarginPct)
			}
		})
	}
}

func TestValuator_Economics(t *testing.T) {
	v := newValuator()

	val := v.Value(frozenChipsOpp("40"))

	if val.DistanceKM != 2.9 {
		t.Errorf("expected distance 2.9, got %v", val.DistanceKM)
	}
	if !val.TransportCost.Total.Equal(decimal.RequireFromString("38.20")) {
		t.Errorf("expected cost 38.20, got %s", val.TransportCost.Total)
	}
	if !val.NetProfit.Equal(decimal.RequireFromString("1.8")) {
		t.Errorf("expected net 1.8, got %s", val.NetProfit)
	}
	if !val.MarginPct.Equal(decimal.RequireFromString("4.5")) {
		t.Errorf("expected margin 4.5, got %s", val.MarginPct)
	}
}

func TestValuator_ZeroGrossMarginFloor(t *testing.T) {
	v := newValuator()

	val := v.Value(frozenChipsOpp("0"))

	// Divisor floors at 1, so margin is net*100 rather than a division by zero.
	want := decimal.RequireFromString("-3820")
	if !val.MarginPct.Equal(want) {
		t.Errorf("expected margin %s, got %s", want, val.MarginPct)
	}
	if val.Risk != domain.RiskHigh {
		t.Errorf("expected high risk, got %s", val.Risk)
	}
}

func TestDeliveryEstimate(t *testing.T) {
	tests := []struct {
		distance float64
		urgent   bool
		want     string
	}{
		{2.9, false, "4 hours"},
		{2.9, true, "3 hours"},
		{100, false, "4 hours"},
		{1100, false, "24 hours"},
		{1150, false, "1 day"},
		{1200, false, "2 days"},
		{1200, true, "2 days"},
	}

	for _, tt := range tests {
		if got := domain.DeliveryEstimate(tt.distance, tt.urgent); got != tt.want {
			t.Errorf("DeliveryEstimate(%v, %v): expected %q, got %q", tt.distance, tt.urgent, tt.want, got)
		}
	}
}
