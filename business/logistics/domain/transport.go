package domain

import (
	"github.com/fd1az/trade-console/internal/catalog"
	"github.com/shopspring/decimal"
)

// Per-kilometer base rates.
var (
	fuelCostPerKM    = decimal.NewFromFloat(1.2)
	driverCostPerKM  = decimal.NewFromFloat(0.8)
	vehicleCostPerKM = decimal.NewFromFloat(0.5)
)

// Product-specific rates and surcharges.
var (
	weightCostPerKG     = decimal.NewFromFloat(0.1)
	volumeCostPerCubicM = decimal.NewFromFloat(5.0)
	fragileSurcharge    = decimal.NewFromInt(15)
	temperatureCharge   = decimal.NewFromInt(25)
	baseHandlingPerUnit = decimal.NewFromFloat(0.3)
)

// Rates for products missing from the catalog.
var (
	fallbackCostPerKM   = decimal.NewFromFloat(2.5)
	fallbackCostPerUnit = decimal.NewFromFloat(0.5)
)

// Breakdown component names.
const (
	ComponentDistance        = "distanceCost"
	ComponentWeight          = "weightCost"
	ComponentVolume          = "volumeCost"
	ComponentSpecialHandling = "specialHandling"
	ComponentBaseHandling    = "baseHandling"
	ComponentHandling        = "handlingCost"
)

// Cost is an itemized transport cost estimate. Total is rounded to cents;
// breakdown components are unrounded.
type Cost struct {
	Total     decimal.Decimal
	Breakdown map[string]decimal.Decimal
}

// Calculator estimates distances and transport costs from catalog data.
type Calculator struct {
	stores   *catalog.StoreRegistry
	products *catalog.ProductRegistry
}

// NewCalculator creates a calculator over the given registries.
func NewCalculator(stores *catalog.StoreRegistry, products *catalog.ProductRegistry) *Calculator {
	return &Calculator{stores: stores, products: products}
}

// Distance returns the kilometers between two stores. Known stores use
// their coordinates; unknown ones fall back to an ID-derived estimate.
func (c *Calculator) Distance(src, tgt catalog.StoreID) float64 {
	source, okSrc := c.stores.Get(src)
	target, okTgt := c.stores.Get(tgt)

	if !okSrc || !okTgt {
		return fallbackDistance(src, tgt)
	}

	return Haversine(source.Lat, source.Lng, target.Lat, target.Lng)
}

// TransportCost estimates the cost of moving quantity units of a product
// over distanceKM kilometers.
func (c *Calculator) TransportCost(productID catalog.ProductID, quantity int, distanceKM float64) Cost {
	dist := decimal.NewFromFloat(distanceKM)
	qty := decimal.NewFromInt(int64(quantity))

	product, ok := c.products.Get(productID)
	if !ok {
		breakdown := map[string]decimal.Decimal{
			ComponentDistance:        dist.Mul(fallbackCostPerKM),
			ComponentHandling:        qty.Mul(fallbackCostPerUnit),
			ComponentSpecialHandling: decimal.Zero,
		}
		return Cost{Total: sum(breakdown).Round(2), Breakdown: breakdown}
	}

	special := decimal.Zero
	if product.Fragile {
		special = special.Add(fragileSurcharge)
	}
	if product.TemperatureControlled {
		special = special.Add(temperatureCharge)
	}

	totalWeight := decimal.NewFromFloat(product.UnitWeightKG).Mul(qty)
	totalVolume := decimal.NewFromFloat(product.Dimensions.UnitVolumeM3()).Mul(qty)

	breakdown := map[string]decimal.Decimal{
		ComponentDistance:        dist.Mul(fuelCostPerKM.Add(driverCostPerKM).Add(vehicleCostPerKM)),
		ComponentWeight:          totalWeight.Mul(weightCostPerKG),
		ComponentVolume:          totalVolume.Mul(volumeCostPerCubicM),
		ComponentSpecialHandling: special,
		ComponentBaseHandling:    qty.Mul(baseHandlingPerUnit),
	}

	return Cost{Total: sum(breakdown).Round(2), Breakdown: breakdown}
}

// TransportCostBetween is a convenience combining Distance and TransportCost.
func (c *Calculator) TransportCostBetween(productID catalog.ProductID, quantity int, src, tgt catalog.StoreID) (Cost, float64) {
	dist := c.Distance(src, tgt)
	return c.TransportCost(productID, quantity, dist), dist
}

func sum(breakdown map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range breakdown {
		total = total.Add(v)
	}
	return total
}
