package catalog

import "github.com/shopspring/decimal"

// Well-known store IDs
const (
	IDDowntownHub         StoreID = "STORE-6342"
	IDNorthWarehouse      StoreID = "STORE-4578"
	IDCentralDistribution StoreID = "STORE-8943"
	IDWestBranch          StoreID = "STORE-2156"
	IDEastOutlet          StoreID = "STORE-7829"
)

// Well-known product IDs
const (
	IDFrozenChips        ProductID = "PRD-11193"
	IDElectronicsBundle  ProductID = "PRD-11194"
	IDSmartHomeDeviceSet ProductID = "PRD-11195"
)

// Well-known stores (pre-created instances)
var (
	DowntownHub = &Store{
		ID:          IDDowntownHub,
		Name:        "Downtown Electronics Hub",
		Location:    "Downtown District",
		Lat:         40.7589,
		Lng:         -73.9851,
		Type:        FacilityFlagship,
		Capacity:    10000,
		Specialties: []string{"electronics", "appliances"},
		Address:     Address{Street: "123 Main St", City: "New York", State: "NY", ZipCode: "10001", Country: "USA"},
	}
	NorthWarehouse = &Store{
		ID:          IDNorthWarehouse,
		Name:        "North Side Warehouse",
		Location:    "North Industrial Zone",
		Lat:         40.7831,
		Lng:         -73.9712,
		Type:        FacilityWarehouse,
		Capacity:    50000,
		Specialties: []string{"bulk_storage", "distribution"},
		Address:     Address{Street: "456 North Ave", City: "New York", State: "NY", ZipCode: "10024", Country: "USA"},
	}
	CentralDistribution = &Store{
		ID:          IDCentralDistribution,
		Name:        "Central Distribution Center",
		Location:    "Central Business District",
		Lat:         40.7505,
		Lng:         -73.9934,
		Type:        FacilityDistribution,
		Capacity:    75000,
		Specialties: []string{"logistics", "bulk_distribution"},
		Address:     Address{Street: "789 Central Blvd", City: "New York", State: "NY", ZipCode: "10018", Country: "USA"},
	}
	WestBranch = &Store{
		ID:          IDWestBranch,
		Name:        "West Coast Branch",
		Location:    "West Side Plaza",
		Lat:         40.7648,
		Lng:         -74.0020,
		Type:        FacilityRetail,
		Capacity:    8000,
		Specialties: []string{"retail", "customer_service"},
		Address:     Address{Street: "321 West St", City: "New York", State: "NY", ZipCode: "10014", Country: "USA"},
	}
	EastOutlet = &Store{
		ID:          IDEastOutlet,
		Name:        "East Side Outlet",
		Location:    "East Side Mall",
		Lat:         40.7282,
		Lng:         -73.9942,
		Type:        FacilityOutlet,
		Capacity:    12000,
		Specialties: []string{"discounted_goods", "clearance"},
		Address:     Address{Street: "654 East Ave", City: "New York", State: "NY", ZipCode: "10003", Country: "USA"},
	}
)

// Well-known products (pre-created instances)
var (
	FrozenChips = &Product{
		ID:                    IDFrozenChips,
		Name:                  "Sony Tasty Frozen Chips",
		Category:              "Food & Beverages",
		Brand:                 "Sony",
		UnitWeightKG:          2.5,
		Dimensions:            Dimensions{LengthCM: 30, WidthCM: 20, HeightCM: 15},
		Fragile:               false,
		TemperatureControlled: true,
		ValuePerUnit:          decimal.NewFromFloat(298.68),
	}
	ElectronicsBundle = &Product{
		ID:                    IDElectronicsBundle,
		Name:                  "Premium Electronics Bundle",
		Category:              "Electronics",
		Brand:                 "TechCorp",
		UnitWeightKG:          5.2,
		Dimensions:            Dimensions{LengthCM: 50, WidthCM: 35, HeightCM: 25},
		Fragile:               true,
		TemperatureControlled: false,
		ValuePerUnit:          decimal.NewFromFloat(1250.00),
	}
	SmartHomeDeviceSet = &Product{
		ID:                    IDSmartHomeDeviceSet,
		Name:                  "Smart Home Device Set",
		Category:              "Smart Home",
		Brand:                 "HomeAI",
		UnitWeightKG:          3.1,
		Dimensions:            Dimensions{LengthCM: 40, WidthCM: 30, HeightCM: 20},
		Fragile:               true,
		TemperatureControlled: false,
		ValuePerUnit:          decimal.NewFromFloat(899.99),
	}
)

// DefaultStores returns a registry pre-populated with well-known stores.
func DefaultStores() *StoreRegistry {
	r := NewStoreRegistry()

	r.Register(DowntownHub)
	r.Register(NorthWarehouse)
	r.Register(CentralDistribution)
	r.Register(WestBranch)
	r.Register(EastOutlet)

	return r
}

// DefaultProducts returns a registry pre-populated with well-known products.
func DefaultProducts() *ProductRegistry {
	r := NewProductRegistry()

	r.Register(FrozenChips)
	r.Register(ElectronicsBundle)
	r.Register(SmartHomeDeviceSet)

	return r
}
