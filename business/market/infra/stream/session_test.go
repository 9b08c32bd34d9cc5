package stream

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/fd1az/trade-console/business/market/domain"
	"github.com/fd1az/trade-console/internal/logger"
	"github.com/fd1az/trade-console/internal/wsconn"
)

func testSession(t *testing.T) *Session {
	t.Helper()

	conn, err := wsconn.New(wsconn.DefaultConfig("ws://localhost:9", "test-stream"))
	if err != nil {
		t.Fatalf("failed to create connection: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	s, err := New(conn, logger.New(io.Discard, logger.LevelError, "test", nil))
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return s
}

func frameBytes(t *testing.T, event string, data any) []byte {
	t.Helper()
	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	raw, err := json.Marshal(frame{Event: event, Data: payload})
	if err != nil {
		t.Fatalf("marshal frame: %v", err)
	}
	return raw
}

func TestSession_RoutesAgentUpdate(t *testing.T) {
	s := testSession(t)

	var gotID string
	s.Subscribe("dashboard", Callbacks{
		OnAgentStarted: func(agentID string) { gotID = agentID },
	})

	s.route(context.Background(), frameBytes(t, EventAgentStarted, map[string]string{"agentId": "agent-7"}))

	if gotID != "agent-7" {
		t.Errorf("expected agent-7, got %q", gotID)
	}
}

func TestSession_MultipleSubscribersAllFire(t *testing.T) {
	s := testSession(t)

	var first, second int
	s.Subscribe("a", Callbacks{OnMetricsUpdate: func(json.RawMessage) { first++ }})
	s.Subscribe("b", Callbacks{OnMetricsUpdate: func(json.RawMessage) { second++ }})

	s.route(context.Background(), frameBytes(t, EventMetricsUpdate, map[string]int{"n": 1}))

	if first != 1 || second != 1 {
		t.Errorf("expected both subscribers to fire, got %d/%d", first, second)
	}
}

func TestSession_UnsubscribeLeavesOthersIntact(t *testing.T) {
	s := testSession(t)

	var kept, removed int
	s.Subscribe("kept", Callbacks{OnInsightsUpdate: func(json.RawMessage) { kept++ }})
	s.Subscribe("removed", Callbacks{OnInsightsUpdate: func(json.RawMessage) { removed++ }})

	s.Unsubscribe("removed")
	s.route(context.Background(), frameBytes(t, EventInsightsUpdate, map[string]string{}))

	if kept != 1 {
		t.Errorf("expected surviving subscriber to fire, got %d", kept)
	}
	if removed != 0 {
		t.Errorf("removed subscriber must not fire, got %d", removed)
	}
}

func TestSession_ResubscribeReplacesCallbacks(t *testing.T) {
	s := testSession(t)

	var old, current int
	s.Subscribe("view", Callbacks{OnMetricsUpdate: func(json.RawMessage) { old++ }})
	s.Subscribe("view", Callbacks{OnMetricsUpdate: func(json.RawMessage) { current++ }})

	s.route(context.Background(), frameBytes(t, EventMetricsUpdate, map[string]int{}))

	if old != 0 || current != 1 {
		t.Errorf("expected replacement registration only, got old=%d current=%d", old, current)
	}
}

func TestSession_RoutesTypedEvents(t *testing.T) {
	s := testSession(t)

	var bidID, matchID string
	s.Subscribe("marketplace", Callbacks{
		OnBidPlaced:  func(b domain.Bid) { bidID = b.ID },
		OnMatchFound: func(m domain.Match) { matchID = m.ID },
	})

	s.route(context.Background(), frameBytes(t, EventBidPlaced, map[string]string{"id": "bid-1"}))
	s.route(context.Background(), frameBytes(t, EventMatchFound, map[string]string{"id": "match-1"}))

	if bidID != "bid-1" {
		t.Errorf("expected bid-1, got %q", bidID)
	}
	if matchID != "match-1" {
		t.Errorf("expected match-1, got %q", matchID)
	}
}

func TestSession_IgnoresMalformedFrames(t *testing.T) {
	s := testSession(t)

	fired := false
	s.Subscribe("x", Callbacks{OnMetricsUpdate: func(json.RawMessage) { fired = true }})

	s.route(context.Background(), []byte("not json"))
	s.route(context.Background(), []byte(`{"data":{}}`)) // missing event
	s.route(context.Background(), frameBytes(t, "unknown:event", map[string]int{}))

	if fired {
		t.Error("no subscriber should fire for unroutable frames")
	}
}

func TestSession_SendRequiresConnection(t *testing.T) {
	s := testSession(t)

	if err := s.JoinRoom("store:4578"); err == nil {
		t.Error("expected error joining a room while disconnected")
	}
}
