// Package catalog provides thread-safe registries of known stores and
// products, pre-populated with the facilities the trading backend reports on.
package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// StoreID identifies a store facility, e.g. "STORE-6342".
type StoreID string

// Number returns the numeric suffix of the store ID, or 0 if it has none.
func (id StoreID) Number() int {
	_, suffix, ok := strings.Cut(string(id), "-")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0
	}
	return n
}

// FacilityType classifies a store facility.
type FacilityType string

const (
	FacilityFlagship     FacilityType = "flagship"
	FacilityWarehouse    FacilityType = "warehouse"
	FacilityDistribution FacilityType = "distribution"
	FacilityRetail       FacilityType = "retail"
	FacilityOutlet       FacilityType = "outlet"
)

// Address is a store's postal address.
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// Store describes a known store facility.
type Store struct {
	ID          StoreID
	Name        string
	Location    string
	Lat         float64
	Lng         float64
	Type        FacilityType
	Capacity    int
	Specialties []string
	Address     Address
}

// StoreRegistry is a thread-safe registry of known stores.
type StoreRegistry struct {
	byID map[StoreID]*Store
	mu   sync.RWMutex
}

// NewStoreRegistry creates a new empty store registry.
func NewStoreRegistry() *StoreRegistry {
	return &StoreRegistry{byID: make(map[StoreID]*Store)}
}

// Register adds a store to the registry.
// Panics if a store with the same ID is already registered.
func (r *StoreRegistry) Register(s *Store) {
	if s == nil {
		panic("catalog: cannot register nil store")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[s.ID]; exists {
		panic(fmt.Sprintf("catalog: store %s already registered", s.ID))
	}
	r.byID[s.ID] = s
}

// Get retrieves a store by its ID.
func (r *StoreRegistry) Get(id StoreID) (*Store, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	return s, ok
}

// MustGet retrieves a store by its ID, panics if not found.
func (r *StoreRegistry) MustGet(id StoreID) *Store {
	s, ok := r.Get(id)
	if !ok {
		panic(fmt.Sprintf("catalog: store %s not found in registry", id))
	}
	return s
}

// Merge overlays backend-reported display fields onto a registered store.
// Coordinates and facility type are authoritative here and never overwritten.
// Unknown IDs are registered as new stores.
func (r *StoreRegistry) Merge(s *Store) {
	if s == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[s.ID]
	if !ok {
		r.byID[s.ID] = s
		return
	}

	if s.Name != "" {
		existing.Name = s.Name
	}
	if s.Location != "" {
		existing.Location = s.Location
	}
	if s.Capacity > 0 {
		existing.Capacity = s.Capacity
	}
	if len(s.Specialties) > 0 {
		existing.Specialties = s.Specialties
	}
}

// All returns all registered stores.
func (r *StoreRegistry) All() []*Store {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Store, 0, len(r.byID))
	for _, s := range r.byID {
		result = append(result, s)
	}
	return result
}

// Count returns the number of registered stores.
func (r *StoreRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Has returns true if a store with the given ID is registered.
func (r *StoreRegistry) Has(id StoreID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok
}
