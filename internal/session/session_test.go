package session_test

import (
	"path/filepath"
	"testing"

	"github.com/fd1az/trade-console/internal/catalog"
	"github.com/fd1az/trade-console/internal/session"
)

func TestStore_LoadMissingFile(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))

	sess, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Role != session.RoleAdmin {
		t.Errorf("expected default admin role, got %s", sess.Role)
	}
	if !sess.IsAdmin() {
		t.Error("expected IsAdmin() to be true")
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := session.NewStore(path)

	err := store.Save(session.Session{
		Role:    session.RoleStore,
		StoreID: catalog.IDNorthWarehouse,
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	sess, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if sess.Role != session.RoleStore {
		t.Errorf("expected store role, got %s", sess.Role)
	}
	if sess.StoreID != catalog.IDNorthWarehouse {
		t.Errorf("expected %s, got %s", catalog.IDNorthWarehouse, sess.StoreID)
	}
	if sess.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be set")
	}
}

func TestStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := session.NewStore(path)

	if err := store.Save(session.Session{Role: session.RoleAdmin}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	// Clearing twice should not error
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}

	sess, err := store.Load()
	if err != nil {
		t.Fatalf("Load after Clear failed: %v", err)
	}
	if sess.Role != session.RoleAdmin {
		t.Errorf("expected default role after clear, got %s", sess.Role)
	}
}

func TestChartCache_StableWithinHorizon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.json")
	cache := session.NewChartCache(path)

	first, err := cache.Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(first) != 24 {
		t.Fatalf("expected 24 points, got %d", len(first))
	}

	second, err := cache.Load("")
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("point %d changed between loads: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestChartCache_ScopeChangeRegenerates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.json")
	cache := session.NewChartCache(path)

	admin, err := cache.Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	store, err := cache.Load(catalog.IDNorthWarehouse)
	if err != nil {
		t.Fatalf("scoped Load failed: %v", err)
	}

	// Store-scoped series uses a smaller agent fleet than the admin view.
	if store[0].ActiveAgents >= admin[0].ActiveAgents {
		t.Errorf("expected store scope to report fewer agents: admin=%d store=%d",
			admin[0].ActiveAgents, store[0].ActiveAgents)
	}
}

func TestChartCache_PointRanges(t *testing.T) {
	cache := session.NewChartCache(filepath.Join(t.TempDir(), "chart.json"))

	points, err := cache.Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	for i, p := range points {
		if p.Revenue < 200 || p.Revenue > 600 {
			t.Errorf("point %d revenue out of range: %d", i, p.Revenue)
		}
		if p.Profit < 40 || p.Profit > 120 {
			t.Errorf("point %d profit out of range: %d", i, p.Profit)
		}
		if p.Trades <= 0 {
			t.Errorf("point %d has no trades", i)
		}
	}
}
