package catalog_test

import (
	"testing"

	"github.com/fd1az/trade-console/internal/catalog"
)

func TestStoreRegistry_RegisterAndGet(t *testing.T) {
	r := catalog.NewStoreRegistry()
	r.Register(catalog.DowntownHub)

	s, ok := r.Get(catalog.IDDowntownHub)
	if !ok {
		t.Fatal("expected store to be registered")
	}
	if s.Name != "Downtown Electronics Hub" {
		t.Errorf("expected Downtown Electronics Hub, got %s", s.Name)
	}

	if _, ok := r.Get("STORE-0000"); ok {
		t.Error("expected unknown store to be absent")
	}
}

func TestStoreRegistry_DuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()

	r := catalog.NewStoreRegistry()
	r.Register(catalog.DowntownHub)
	r.Register(catalog.DowntownHub)
}

func TestStoreRegistry_MergeKeepsCoordinates(t *testing.T) {
	r := catalog.DefaultStores()

	r.Merge(&catalog.Store{
		ID:       catalog.IDNorthWarehouse,
		Name:     "North Side Warehouse (Renamed)",
		Lat:      0,
		Lng:      0,
		Capacity: 60000,
	})

	s := r.MustGet(catalog.IDNorthWarehouse)
	if s.Name != "North Side Warehouse (Renamed)" {
		t.Errorf("expected merged name, got %s", s.Name)
	}
	if s.Capacity != 60000 {
		t.Errorf("expected merged capacity, got %d", s.Capacity)
	}
	if s.Lat != 40.7831 || s.Lng != -73.9712 {
		t.Errorf("coordinates must stay authoritative, got %f,%f", s.Lat, s.Lng)
	}
}

func TestStoreRegistry_MergeUnknownRegisters(t *testing.T) {
	r := catalog.NewStoreRegistry()
	r.Merge(&catalog.Store{ID: "STORE-9999", Name: "Pop-up"})

	if !r.Has("STORE-9999") {
		t.Error("expected unknown merged store to be registered")
	}
}

func TestStoreID_Number(t *testing.T) {
	tests := []struct {
		id   catalog.StoreID
		want int
	}{
		{"STORE-6342", 6342},
		{"STORE-4578", 4578},
		{"STORE-", 0},
		{"UNKNOWN", 0},
		{"STORE-abc", 0},
	}

	for _, tt := range tests {
		if got := tt.id.Number(); got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.id, tt.want, got)
		}
	}
}

func TestDefaultRegistries(t *testing.T) {
	stores := catalog.DefaultStores()
	if stores.Count() != 5 {
		t.Errorf("expected 5 stores, got %d", stores.Count())
	}

	products := catalog.DefaultProducts()
	if products.Count() != 3 {
		t.Errorf("expected 3 products, got %d", products.Count())
	}

	p := products.MustGet(catalog.IDFrozenChips)
	if !p.TemperatureControlled {
		t.Error("expected PRD-11193 to be temperature controlled")
	}
	if p.Fragile {
		t.Error("expected PRD-11193 to be non-fragile")
	}
}

func TestDimensions_UnitVolumeM3(t *testing.T) {
	d := catalog.Dimensions{LengthCM: 30, WidthCM: 20, HeightCM: 15}

	got := d.UnitVolumeM3()
	want := 0.009
	if diff := got - want; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("expected %f m3, got %f", want, got)
	}
}
