package domain_test

import (
	"testing"

	"github.com/fd1az/trade-console/business/logistics/domain"
	"github.com/fd1az/trade-console/internal/catalog"
	"github.com/shopspring/decimal"
)

func newCalculator() *domain.Calculator {
	return domain.NewCalculator(catalog.DefaultStores(), catalog.DefaultProducts())
}

func TestDistance_KnownStores(t *testing.T) {
	calc := newCalculator()

	got := calc.Distance(catalog.IDDowntownHub, catalog.IDNorthWarehouse)

	// Downtown hub to north warehouse is roughly 2.9km across Manhattan.
	if got != 2.9 {
		t.Errorf("expected 2.9km, got %v", got)
	}
}

func TestDistance_Symmetry(t *testing.T) {
	calc := newCalculator()

	stores := []catalog.StoreID{
		catalog.IDDowntownHub,
		catalog.IDNorthWarehouse,
		catalog.IDCentralDistribution,
		catalog.IDWestBranch,
		catalog.IDEastOutlet,
	}

	for _, a := range stores {
		for _, b := range stores {
			ab := calc.Distance(a, b)
			ba := calc.Distance(b, a)
			if ab != ba {
				t.Errorf("distance %s->%s (%v) != %s->%s (%v)", a, b, ab, b, a, ba)
			}
			if a == b && ab != 0 {
				t.Errorf("distance %s->%s should be 0, got %v", a, b, ab)
			}
			if a != b && (ab <= 0 || ab > 20) {
				t.Errorf("implausible intra-city distance %s->%s: %v", a, b, ab)
			}
		}
	}
}

func TestDistance_FallbackClamp(t *testing.T) {
	calc := newCalculator()

	tests := []struct {
		name     string
		src, tgt catalog.StoreID
		want     float64
	}{
		{"midrange", "STORE-100", "STORE-200", 50},
		{"clamped low", "STORE-100", "STORE-105", 5},
		{"clamped high", "STORE-100", "STORE-99999", 500},
		{"one known one unknown", catalog.IDDowntownHub, "STORE-100", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calc.Distance(tt.src, tt.tgt); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTransportCost_TemperatureControlled(t *testing.T) {
	calc := newCalculator()

	// 10 units of 2.5kg temperature-controlled product over 100km:
	// distance 100*2.5 + weight 25*0.1 + volume 0.09*5 + temp 25 + handling 10*0.3
	cost := calc.TransportCost(catalog.IDFrozenChips, 10, 100)

	want := decimal.RequireFromString("280.95")
	if !cost.Total.Equal(want) {
		t.Errorf("expected total %s, got %s", want, cost.Total)
	}

	if !cost.Breakdown[domain.ComponentSpecialHandling].Equal(decimal.NewFromInt(25)) {
		t.Errorf("expected special handling 25, got %s", cost.Breakdown[domain.ComponentSpecialHandling])
	}
	if !cost.Breakdown[domain.ComponentDistance].Equal(decimal.NewFromInt(250)) {
		t.Errorf("expected distance cost 250, got %s", cost.Breakdown[domain.ComponentDistance])
	}
}

func TestTransportCost_FragileSurcharge(t *testing.T) {
	calc := newCalculator()

	cost := calc.TransportCost(catalog.IDElectronicsBundle, 1, 10)

	if !cost.Breakdown[domain.ComponentSpecialHandling].Equal(decimal.NewFromInt(15)) {
		t.Errorf("expected fragile surcharge 15, got %s", cost.Breakdown[domain.ComponentSpecialHandling])
	}
}

func TestTransportCost_UnknownProduct(t *testing.T) {
	calc := newCalculator()

	cost := calc.TransportCost("PRD-00000", 20, 40)

	// 40km * 2.5 + 20 units * 0.5
	want := decimal.RequireFromString("110")
	if !cost.Total.Equal(want) {
		t.Errorf("expected total %s, got %s", want, cost.Total)
	}
	if !cost.Breakdown[domain.ComponentSpecialHandling].Equal(decimal.Zero) {
		t.Errorf("expected no special handling, got %s", cost.Breakdown[domain.ComponentSpecialHandling])
	}
}

func TestTransportCost_BreakdownSumsToTotal(t *testing.T) {
	calc := newCalculator()

	products := []catalog.ProductID{
		catalog.IDFrozenChips,
		catalog.IDElectronicsBundle,
		catalog.IDSmartHomeDeviceSet,
		"PRD-00000",
	}

	for _, id := range products {
		cost := calc.TransportCost(id, 7, 33.3)

		total := decimal.Zero
		for _, v := range cost.Breakdown {
			total = total.Add(v)
		}

		if !cost.Total.Equal(total.Round(2)) {
			t.Errorf("%s: total %s does not match breakdown sum %s", id, cost.Total, total.Round(2))
		}
	}
}

func TestTransportCost_ZeroQuantity(t *testing.T) {
	calc := newCalculator()

	cost := calc.TransportCost(catalog.IDSmartHomeDeviceSet, 0, 50)

	// Distance and surcharges still apply without units.
	if cost.Total.LessThanOrEqual(decimal.Zero) {
		t.Errorf("expected positive cost, got %s", cost.Total)
	}
	if !cost.Breakdown[domain.ComponentWeight].Equal(decimal.Zero) {
		t.Errorf("expected zero weight cost, got %s", cost.Breakdown[domain.ComponentWeight])
	}
}

func TestTransportCostBetween(t *testing.T) {
	calc := newCalculator()

	cost, dist := calc.TransportCostBetween(catalog.IDFrozenChips, 10, catalog.IDDowntownHub, catalog.IDNorthWarehouse)

	if dist != 2.9 {
		t.Errorf("expected 2.9km, got %v", dist)
	}

	direct := calc.TransportCost(catalog.IDFrozenChips, 10, dist)
	if !cost.Total.Equal(direct.Total) {
		t.Errorf("expected %s, got %s", direct.Total, cost.Total)
	}
}
