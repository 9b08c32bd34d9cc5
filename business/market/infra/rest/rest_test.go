package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fd1az/trade-console/business/trading/app"
	trading "github.com/fd1az/trade-console/business/trading/domain"
	"github.com/fd1az/trade-console/internal/catalog"
	"github.com/fd1az/trade-console/internal/httpclient"
	"github.com/fd1az/trade-console/internal/logger"
	"github.com/shopspring/decimal"
)

func testLogger() logger.LoggerInterface {
	return logger.New(io.Discard, logger.LevelError, "test", nil)
}

func testClient(t *testing.T, baseURL string) httpclient.Client {
	t.Helper()
	hc, err := httpclient.NewInstrumentedClient(
		httpclient.WithBaseURL(baseURL),
		httpclient.WithProviderName("test"),
	)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return hc
}

func TestUnwrap(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"no wrapper", `{"id":"x"}`, `{"id":"x"}`},
		{"single wrapper", `{"data":{"id":"x"}}`, `{"id":"x"}`},
		{"double wrapper", `{"data":{"data":{"id":"x"}}}`, `{"id":"x"}`},
		{"wrapped array", `{"data":[1,2,3]}`, `[1,2,3]`},
		{"bare array", `[1,2,3]`, `[1,2,3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(unwrap([]byte(tt.body))); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func opportunityListing() string {
	return `{"data":{"data":{"opportunities":[{
		"id":"opp-1",
		"product_id":"PRD-11193",
		"product_name":"Frozen Chips Premium",
		"opportunity":{
			"type":"arbitrage",
			"confidence":0.87,
			"potential_profit":1250.50,
			"source_store":"STORE-6342",
			"target_store":"STORE-4578",
			"quantity":10,
			"reasoning":"price gap",
			"urgency":"high"
		},
		"timestamp":"2026-08-28T10:00:00Z"
	}]}}}`
}

func TestAIAgentsClient_FetchOpportunities(t *testing.T) {
	var gotQuery atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/ai-agents/opportunities" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery.Store(r.URL.Query().Encode())
		io.WriteString(w, opportunityListing())
	}))
	defer srv.Close()

	c := NewAIAgentsClient(testClient(t, srv.URL), testLogger())

	opps, err := c.FetchOpportunities(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opps) != 1 {
		t.Fatalf("expected 1 opportunity, got %d", len(opps))
	}

	o := opps[0]
	if o.ID != "opp-1" {
		t.Errorf("unexpected id %q", o.ID)
	}
	if o.SourceStore != catalog.IDDowntownHub || o.TargetStore != catalog.IDNorthWarehouse {
		t.Errorf("unexpected stores %s -> %s", o.SourceStore, o.TargetStore)
	}
	if !o.PotentialProfit.Equal(decimal.RequireFromString("1250.5")) {
		t.Errorf("unexpected profit %s", o.PotentialProfit)
	}
	if o.Urgency != trading.UrgencyHigh {
		t.Errorf("unexpected urgency %s", o.Urgency)
	}
	if o.Status != trading.StatusPending {
		t.Errorf("opportunities must arrive pending, got %s", o.Status)
	}
	if q := gotQuery.Load().(string); q != "limit=20" {
		t.Errorf("unexpected query %q", q)
	}
}

func TestAIAgentsClient_StoreScope(t *testing.T) {
	var gotStore atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotStore.Store(r.URL.Query().Get("storeId"))
		io.WriteString(w, `{"data":{"opportunities":[]}}`)
	}))
	defer srv.Close()

	c := NewAIAgentsClient(testClient(t, srv.URL), testLogger())
	c.ScopeToStore("STORE-4578")

	if _, err := c.FetchOpportunities(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := gotStore.Load().(string); got != "STORE-4578" {
		t.Errorf("expected storeId scope, got %q", got)
	}
}

func sampleOpportunity() trading.Opportunity {
	return trading.Opportunity{
		ID:              "opp-1",
		ProductID:       catalog.IDFrozenChips,
		Type:            trading.TypeArbitrage,
		SourceStore:     catalog.IDDowntownHub,
		TargetStore:     catalog.IDNorthWarehouse,
		Quantity:        10,
		PotentialProfit: decimal.NewFromInt(1000),
		Confidence:      0.9,
		Urgency:         trading.UrgencyHigh,
		Reasoning:       "price gap",
	}
}

func decisionFor(o trading.Opportunity, verdict trading.Status, tradeID, bidID string) app.Decision {
	return app.Decision{Opportunity: o, Verdict: verdict, TradeID: tradeID, BidID: bidID}
}

func TestTradesClient_CreateTrade(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/trades" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)
		io.WriteString(w, `{"data":{"id":"trade-9"}}`)
	}))
	defer srv.Close()

	c := NewTradesClient(testClient(t, srv.URL), testLogger())

	id, err := c.CreateTrade(context.Background(), sampleOpportunity())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "trade-9" {
		t.Errorf("unexpected trade id %q", id)
	}

	if gotBody["sku"] != "PRD-11193-STORE-6342" {
		t.Errorf("unexpected sku %v", gotBody["sku"])
	}
	if gotBody["proposedBy"] != "user" {
		t.Errorf("unexpected proposedBy %v", gotBody["proposedBy"])
	}
	constraints := gotBody["constraints"].(map[string]any)
	if constraints["maxTransportCost"] != "200" {
		t.Errorf("expected maxTransportCost 200 (20%% of gross), got %v", constraints["maxTransportCost"])
	}
	if constraints["minQuantity"] != float64(5) {
		t.Errorf("expected minQuantity 5, got %v", constraints["minQuantity"])
	}
	if constraints["maxQuantity"] != float64(10) {
		t.Errorf("expected maxQuantity 10, got %v", constraints["maxQuantity"])
	}
}

func TestMarketplaceClient_PlaceBid(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)
		io.WriteString(w, `{"data":{"id":"bid-3"}}`)
	}))
	defer srv.Close()

	c := NewMarketplaceClient(testClient(t, srv.URL), testLogger())

	id, err := c.PlaceBid(context.Background(), sampleOpportunity(), "trade-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "bid-3" {
		t.Errorf("unexpected bid id %q", id)
	}

	if gotBody["agentId"] != "ai_agent_PRD-11193" {
		t.Errorf("unexpected agentId %v", gotBody["agentId"])
	}
	if gotBody["type"] != "transfer" {
		t.Errorf("arbitrage bids as transfer, got %v", gotBody["type"])
	}
	if gotBody["pricePerUnit"] != "100" {
		t.Errorf("expected pricePerUnit 100, got %v", gotBody["pricePerUnit"])
	}
	metadata := gotBody["metadata"].(map[string]any)
	if metadata["tradeId"] != "trade-9" {
		t.Errorf("bid must reference its trade, got %v", metadata["tradeId"])
	}
	if metadata["aiGenerated"] != true {
		t.Errorf("expected aiGenerated true")
	}
}

func TestDecisionsClient_RejectionCarriesNoIDs(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)
		io.WriteString(w, `{"data":{"id":"dec-1"}}`)
	}))
	defer srv.Close()

	c := NewDecisionsClient(testClient(t, srv.URL), testLogger())

	err := c.RecordDecision(context.Background(), decisionFor(sampleOpportunity(), trading.StatusRejected, "", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotBody["decision"] != "rejected" {
		t.Errorf("unexpected decision %v", gotBody["decision"])
	}
	if _, ok := gotBody["tradeId"]; ok {
		t.Error("rejections must not carry a tradeId")
	}
	if _, ok := gotBody["bidId"]; ok {
		t.Error("rejections must not carry a bidId")
	}
	if gotBody["decisionId"] == "" {
		t.Error("expected a client-assigned decision id")
	}
}

func TestAnalyticsClient_FallbackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewAnalyticsClient(testClient(t, srv.URL), testLogger())

	overview := c.Overview(context.Background())
	if !overview.TotalRevenue.Equal(decimal.RequireFromString("12450.67")) {
		t.Errorf("expected fallback revenue, got %s", overview.TotalRevenue)
	}

	trends := c.InventoryTrends(context.Background())
	if len(trends) != 4 || trends[0].Category != "Electronics" {
		t.Errorf("expected fallback trends, got %+v", trends)
	}
}

func TestAnalyticsClient_FallbackWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewAnalyticsClient(testClient(t, srv.URL), testLogger())

	// Repeated failures trip the breaker; the fallback keeps serving either way.
	for i := 0; i < 8; i++ {
		overview := c.Overview(context.Background())
		if overview.ActiveAgents != 50 {
			t.Fatalf("iteration %d: expected fallback overview, got %+v", i, overview)
		}
	}

	series := c.Performance(context.Background(), "24h")
	if len(series.Revenue) != 24 || len(series.Profit) != 24 {
		t.Errorf("expected 24 synthetic samples, got %d/%d", len(series.Revenue), len(series.Profit))
	}
	revenue := c.Revenue(context.Background(), "")
	if len(revenue.Daily) != 7 {
		t.Errorf("expected 7 synthetic days, got %d", len(revenue.Daily))
	}
}

func TestStoresClient_ResolveFetchesOnce(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		io.WriteString(w, `{"data":{"id":"STORE-6342","name":"Downtown Hub (Live)","location":"Manhattan","capacity":9000}}`)
	}))
	defer srv.Close()

	registry := catalog.DefaultStores()
	c := NewStoresClient(testClient(t, srv.URL), testLogger(), registry)

	for i := 0; i < 3; i++ {
		s, ok := c.Resolve(context.Background(), catalog.IDDowntownHub)
		if !ok {
			t.Fatal("expected store to resolve")
		}
		if s.Name != "Downtown Hub (Live)" {
			t.Errorf("expected backend name override, got %q", s.Name)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("expected a single backend fetch, got %d", calls.Load())
	}
}

func TestStoresClient_LookupFailureFallsBackToCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	registry := catalog.DefaultStores()
	c := NewStoresClient(testClient(t, srv.URL), testLogger(), registry)

	s, ok := c.Resolve(context.Background(), catalog.IDNorthWarehouse)
	if !ok {
		t.Fatal("expected catalog fallback")
	}
	if s.Name == "" {
		t.Error("expected catalog name")
	}
}
