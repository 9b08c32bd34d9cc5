// Package stream manages the realtime backend session: one logical
// WebSocket connection with event routing to registered subscribers.
package stream

import (
	"context"
	"encoding/json"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/fd1az/trade-console/business/market/domain"
	"github.com/fd1az/trade-console/internal/logger"
	"github.com/fd1az/trade-console/internal/wsconn"
)

const meterName = "github.com/fd1az/trade-console/business/market/infra/stream"

// Stream event names.
const (
	EventAgentUpdate      = "agent:update"
	EventAgentStarted     = "agent:started"
	EventAgentStopped     = "agent:stopped"
	EventAgentMetrics     = "agent:metrics"
	EventMarketUpdate     = "marketplace:update"
	EventBidPlaced        = "marketplace:bid-placed"
	EventMatchFound       = "marketplace:match-found"
	EventInsightsUpdate   = "ai:insights-update"
	EventPredictionUpdate = "ai:prediction-update"
	EventMetricsUpdate    = "metrics:update"
)

// Callbacks is one subscriber's set of event handlers. Nil entries are
// skipped.
type Callbacks struct {
	OnAgentUpdate      func(domain.Agent)
	OnAgentStarted     func(agentID string)
	OnAgentStopped     func(agentID string)
	OnAgentMetrics     func(domain.AgentMetrics)
	OnMarketUpdate     func(json.RawMessage)
	OnBidPlaced        func(domain.Bid)
	OnMatchFound       func(domain.Match)
	OnInsightsUpdate   func(json.RawMessage)
	OnPredictionUpdate func(json.RawMessage)
	OnMetricsUpdate    func(json.RawMessage)
	OnStateChange      func(wsconn.State, error)
}

// frame is the wire format of every stream message.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type sessionMetrics struct {
	messages    metric.Int64Counter
	parseErrors metric.Int64Counter
	reconnects  metric.Int64Counter
	subscribers metric.Int64Gauge
}

// Session routes stream frames to subscribers. Subscribers register under a
// key and every registered callback for an event fires; removing one
// subscriber leaves the rest intact.
type Session struct {
	conn *wsconn.Client
	log  logger.LoggerInterface

	mu   sync.RWMutex
	subs map[string]Callbacks

	metrics sessionMetrics
}

// New wires a Session over an existing stream connection. Connect is left to
// the caller.
func New(conn *wsconn.Client, log logger.LoggerInterface) (*Session, error) {
	s := &Session{
		conn: conn,
		log:  log,
		subs: make(map[string]Callbacks),
	}

	if err := s.initMetrics(); err != nil {
		return nil, err
	}

	conn.OnMessage(s.route)
	conn.OnStateChange(s.onStateChange)
	return s, nil
}

func (s *Session) initMetrics() error {
	meter := otel.GetMeterProvider().Meter(meterName)

	var err error
	if s.metrics.messages, err = meter.Int64Counter(
		"stream_messages_total",
		metric.WithDescription("Total stream messages received"),
	); err != nil {
		return err
	}
	if s.metrics.parseErrors, err = meter.Int64Counter(
		"stream_parse_errors_total",
		metric.WithDescription("Stream frames that could not be decoded"),
	); err != nil {
		return err
	}
	if s.metrics.reconnects, err = meter.Int64Counter(
		"stream_reconnects_total",
		metric.WithDescription("Stream reconnection attempts"),
	); err != nil {
		return err
	}
	if s.metrics.subscribers, err = meter.Int64Gauge(
		"stream_subscribers",
		metric.WithDescription("Active stream subscribers"),
	); err != nil {
		return err
	}
	return nil
}

// Connect establishes the stream connection with retry.
func (s *Session) Connect(ctx context.Context) error {
	return s.conn.ConnectWithRetry(ctx)
}

// Close shuts the stream down.
func (s *Session) Close() error {
	return s.conn.Close()
}

// Connected reports whether the stream is currently up.
func (s *Session) Connected() bool {
	return s.conn.IsConnected()
}

// Subscribe registers a subscriber under a key, replacing any previous
// registration for that key.
func (s *Session) Subscribe(key string, cb Callbacks) {
	s.mu.Lock()
	s.subs[key] = cb
	n := len(s.subs)
	s.mu.Unlock()

	s.metrics.subscribers.Record(context.Background(), int64(n))
}

// Unsubscribe removes one subscriber. Other subscribers keep receiving
// events.
func (s *Session) Unsubscribe(key string) {
	s.mu.Lock()
	delete(s.subs, key)
	n := len(s.subs)
	s.mu.Unlock()

	s.metrics.subscribers.Record(context.Background(), int64(n))
}

// JoinRoom asks the backend to scope events to a room.
func (s *Session) JoinRoom(room string) error {
	return s.conn.SendJSON(context.Background(), frame{Event: "join-room", Data: mustRaw(map[string]string{"room": room})})
}

// LeaveRoom leaves a previously joined room.
func (s *Session) LeaveRoom(room string) error {
	return s.conn.SendJSON(context.Background(), frame{Event: "leave-room", Data: mustRaw(map[string]string{"room": room})})
}

func mustRaw(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

// snapshot copies the subscriber set so handlers run outside the lock.
func (s *Session) snapshot() []Callbacks {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subs := make([]Callbacks, 0, len(s.subs))
	for _, cb := range s.subs {
		subs = append(subs, cb)
	}
	return subs
}

func (s *Session) onStateChange(state wsconn.State, err error) {
	if state == wsconn.StateReconnecting {
		s.metrics.reconnects.Add(context.Background(), 1)
	}
	for _, cb := range s.snapshot() {
		if cb.OnStateChange != nil {
			cb.OnStateChange(state, err)
		}
	}
}

// route decodes a frame and dispatches it to every subscriber.
func (s *Session) route(ctx context.Context, raw []byte) {
	var f frame
	if err := json.Unmarshal(raw, &f); err != nil || f.Event == "" {
		s.metrics.parseErrors.Add(ctx, 1)
		s.log.Debug(ctx, "unreadable stream frame", "size", len(raw))
		return
	}

	s.metrics.messages.Add(ctx, 1, metric.WithAttributes(attribute.String("event", f.Event)))

	subs := s.snapshot()
	switch f.Event {
	case EventAgentUpdate:
		var agent domain.Agent
		if !s.parse(ctx, f, &agent) {
			return
		}
		for _, cb := range subs {
			if cb.OnAgentUpdate != nil {
				cb.OnAgentUpdate(agent)
			}
		}

	case EventAgentStarted, EventAgentStopped:
		var payload struct {
			AgentID string `json:"agentId"`
		}
		if !s.parse(ctx, f, &payload) {
			return
		}
		for _, cb := range subs {
			if f.Event == EventAgentStarted && cb.OnAgentStarted != nil {
				cb.OnAgentStarted(payload.AgentID)
			}
			if f.Event == EventAgentStopped && cb.OnAgentStopped != nil {
				cb.OnAgentStopped(payload.AgentID)
			}
		}

	case EventAgentMetrics:
		var metrics domain.AgentMetrics
		if !s.parse(ctx, f, &metrics) {
			return
		}
		for _, cb := range subs {
			if cb.OnAgentMetrics != nil {
				cb.OnAgentMetrics(metrics)
			}
		}

	case EventBidPlaced:
		var bid domain.Bid
		if !s.parse(ctx, f, &bid) {
			return
		}
		for _, cb := range subs {
			if cb.OnBidPlaced != nil {
				cb.OnBidPlaced(bid)
			}
		}

	case EventMatchFound:
		var match domain.Match
		if !s.parse(ctx, f, &match) {
			return
		}
		for _, cb := range subs {
			if cb.OnMatchFound != nil {
				cb.OnMatchFound(match)
			}
		}

	case EventMarketUpdate:
		for _, cb := range subs {
			if cb.OnMarketUpdate != nil {
				cb.OnMarketUpdate(f.Data)
			}
		}

	case EventInsightsUpdate:
		for _, cb := range subs {
			if cb.OnInsightsUpdate != nil {
				cb.OnInsightsUpdate(f.Data)
			}
		}

	case EventPredictionUpdate:
		for _, cb := range subs {
			if cb.OnPredictionUpdate != nil {
				cb.OnPredictionUpdate(f.Data)
			}
		}

	case EventMetricsUpdate:
		for _, cb := range subs {
			if cb.OnMetricsUpdate != nil {
				cb.OnMetricsUpdate(f.Data)
			}
		}

	default:
		s.log.Debug(ctx, "unhandled stream event", "event", f.Event)
	}
}

func (s *Session) parse(ctx context.Context, f frame, v any) bool {
	if err := json.Unmarshal(f.Data, v); err != nil {
		s.metrics.parseErrors.Add(ctx, 1)
		s.log.Debug(ctx, "unreadable stream payload", "event", f.Event, "error", err.Error())
		return false
	}
	return true
}
