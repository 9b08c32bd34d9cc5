package catalog

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// ProductID identifies a catalog product, e.g. "PRD-11193".
type ProductID string

// Dimensions holds per-unit product dimensions in centimeters.
type Dimensions struct {
	LengthCM float64
	WidthCM  float64
	HeightCM float64
}

// UnitVolumeM3 returns the per-unit volume in cubic meters.
func (d Dimensions) UnitVolumeM3() float64 {
	return d.LengthCM * d.WidthCM * d.HeightCM / 1_000_000
}

// Product describes a catalog product and its transport-relevant attributes.
type Product struct {
	ID                    ProductID
	Name                  string
	Category              string
	Brand                 string
	UnitWeightKG          float64
	Dimensions            Dimensions
	Fragile               bool
	TemperatureControlled bool
	ValuePerUnit          decimal.Decimal
}

// ProductRegistry is a thread-safe registry of known products.
type ProductRegistry struct {
	byID map[ProductID]*Product
	mu   sync.RWMutex
}

// NewProductRegistry creates a new empty product registry.
func NewProductRegistry() *ProductRegistry {
	return &ProductRegistry{byID: make(map[ProductID]*Product)}
}

// Register adds a product to the registry.
// Panics if a product with the same ID is already registered.
func (r *ProductRegistry) Register(p *Product) {
	if p == nil {
		panic("catalog: cannot register nil product")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; exists {
		panic(fmt.Sprintf("catalog: product %s already registered", p.ID))
	}
	r.byID[p.ID] = p
}

// Get retrieves a product by its ID.
func (r *ProductRegistry) Get(id ProductID) (*Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	return p, ok
}

// MustGet retrieves a product by its ID, panics if not found.
func (r *ProductRegistry) MustGet(id ProductID) *Product {
	p, ok := r.Get(id)
	if !ok {
		panic(fmt.Sprintf("catalog: product %s not found in registry", id))
	}
	return p
}

// All returns all registered products.
func (r *ProductRegistry) All() []*Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Product, 0, len(r.byID))
	for _, p := range r.byID {
		result = append(result, p)
	}
	return result
}

// Count returns the number of registered products.
func (r *ProductRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Has returns true if a product with the given ID is registered.
func (r *ProductRegistry) Has(id ProductID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok
}
