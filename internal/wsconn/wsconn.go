// Package wsconn provides a production-grade WebSocket client with reconnection.
package wsconn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coder/websocket"
)

// State represents the connection state.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateReconnecting State = "reconnecting"
	StateClosed       State = "closed"
)

// ErrNotConnected is returned by Send when no connection is established.
var ErrNotConnected = errors.New("wsconn: not connected")

// ErrClosed is returned when the client has been closed.
var ErrClosed = errors.New("wsconn: client closed")

// MessageHandler receives inbound messages. It runs on the read goroutine,
// so it must not block.
type MessageHandler func(ctx context.Context, msg []byte)

// StateChangeHandler is notified on every state transition. err is the cause
// for failure transitions, nil otherwise.
type StateChangeHandler func(state State, err error)

// Config holds WebSocket client configuration.
type Config struct {
	URL            string
	Name           string // Used in log and error messages
	RetryInterval  time.Duration
	MaxReconnects  int           // 0 = infinite
	PingInterval   time.Duration // 0 disables pings
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxMessageSize int64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(url, name string) Config {
	return Config{
		URL:            url,
		Name:           name,
		RetryInterval:  3 * time.Second,
		MaxReconnects:  5,
		PingInterval:   30 * time.Second,
		ReadTimeout:    60 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxMessageSize: 1 << 20, // 1MB
	}
}

// Client is a production-grade WebSocket client.
type Client struct {
	cfg Config

	mu       sync.RWMutex
	conn     *websocket.Conn
	connStop chan struct{}
	state    State
	onMsg    MessageHandler
	onState  StateChangeHandler

	writeMu   sync.Mutex
	closeOnce sync.Once
	done      chan struct{}
}

// New creates a new WebSocket client.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("wsconn: URL is required")
	}
	if cfg.Name == "" {
		cfg.Name = "ws"
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 3 * time.Second
	}

	return &Client{
		cfg:   cfg,
		state: StateDisconnected,
		done:  make(chan struct{}),
	}, nil
}

// OnMessage registers the inbound message handler.
// Must be called before Connect.
func (c *Client) OnMessage(handler MessageHandler) {
	c.mu.Lock()
	c.onMsg = handler
	c.mu.Unlock()
}

// OnStateChange registers the state transition handler.
// Must be called before Connect.
func (c *Client) OnStateChange(handler StateChangeHandler) {
	c.mu.Lock()
	c.onState = handler
	c.mu.Unlock()
}

// Connect establishes the WebSocket connection and starts the read and ping
// loops. On read failure the client reconnects automatically.
func (c *Client) Connect(ctx context.Context) error {
	c.setState(StateConnecting, nil)

	conn, err := c.dial(ctx)
	if err != nil {
		c.setState(StateDisconnected, err)
		return fmt.Errorf("wsconn [%s]: connect: %w", c.cfg.Name, err)
	}

	c.startConn(conn)
	return nil
}

// ConnectWithRetry keeps dialing at RetryInterval until the connection is
// established, the attempt budget is exhausted, or ctx is cancelled.
func (c *Client) ConnectWithRetry(ctx context.Context) error {
	var lastErr error

	for attempt := 0; ; attempt++ {
		if c.cfg.MaxReconnects > 0 && attempt >= c.cfg.MaxReconnects {
			c.setState(StateDisconnected, lastErr)
			return fmt.Errorf("wsconn [%s]: gave up after %d attempts: %w", c.cfg.Name, attempt, lastErr)
		}

		c.setState(StateConnecting, nil)
		conn, err := c.dial(ctx)
		if err == nil {
			c.startConn(conn)
			return nil
		}
		lastErr = err
		c.setState(StateReconnecting, err)

		select {
		case <-ctx.Done():
			c.setState(StateDisconnected, ctx.Err())
			return ctx.Err()
		case <-c.done:
			return ErrClosed
		case <-time.After(c.cfg.RetryInterval):
		}
	}
}

// Send sends a text message through the WebSocket.
func (c *Client) Send(ctx context.Context, msg []byte) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return ErrNotConnected
	}

	if c.cfg.WriteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.WriteTimeout)
		defer cancel()
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := conn.Write(ctx, websocket.MessageText, msg); err != nil {
		return fmt.Errorf("wsconn [%s]: send: %w", c.cfg.Name, err)
	}
	return nil
}

// SendJSON marshals v and sends it as a text message.
func (c *Client) SendJSON(ctx context.Context, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("wsconn [%s]: marshal: %w", c.cfg.Name, err)
	}
	return c.Send(ctx, data)
}

// State returns the current connection state.
func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// IsConnected reports whether the connection is established.
func (c *Client) IsConnected() bool {
	return c.State() == StateConnected
}

// Close gracefully closes the WebSocket connection. Idempotent.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)

		c.mu.Lock()
		conn := c.conn
		c.conn = nil
		c.mu.Unlock()

		if conn != nil {
			conn.Close(websocket.StatusNormalClosure, "client closing")
		}

		c.setState(StateClosed, nil)
	})
	return nil
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, _, err := websocket.Dial(ctx, c.cfg.URL, nil)
	if err != nil {
		return nil, err
	}
	if c.cfg.MaxMessageSize > 0 {
		conn.SetReadLimit(c.cfg.MaxMessageSize)
	}
	return conn, nil
}

func (c *Client) startConn(conn *websocket.Conn) {
	stop := make(chan struct{})

	c.mu.Lock()
	c.conn = conn
	c.connStop = stop
	c.mu.Unlock()

	c.setState(StateConnected, nil)

	go c.readLoop(conn, stop)
	if c.cfg.PingInterval > 0 {
		go c.pingLoop(conn, stop)
	}
}

func (c *Client) readLoop(conn *websocket.Conn, stop chan struct{}) {
	for {
		readCtx := context.Background()
		cancel := context.CancelFunc(func() {})
		if c.cfg.ReadTimeout > 0 {
			readCtx, cancel = context.WithTimeout(readCtx, c.cfg.ReadTimeout)
		}

		_, data, err := conn.Read(readCtx)
		cancel()

		if err != nil {
			select {
			case <-c.done:
				return
			case <-stop:
				return
			default:
			}
			c.handleDisconnect(err)
			return
		}

		c.mu.RLock()
		handler := c.onMsg
		c.mu.RUnlock()

		if handler != nil {
			handler(context.Background(), data)
		}
	}
}

func (c *Client) pingLoop(conn *websocket.Conn, stop chan struct{}) {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-stop:
			return
		case <-ticker.C:
			timeout := c.cfg.WriteTimeout
			if timeout <= 0 {
				timeout = 10 * time.Second
			}
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			err := conn.Ping(ctx)
			cancel()

			if err != nil {
				// Wake the read loop so it drives reconnection.
				conn.Close(websocket.StatusGoingAway, "ping failed")
				return
			}
		}
	}
}

// handleDisconnect runs on the read goroutine after a read failure. It stops
// the connection's ping loop and drives reconnection attempts.
func (c *Client) handleDisconnect(cause error) {
	c.mu.Lock()
	if c.connStop != nil {
		close(c.connStop)
		c.connStop = nil
	}
	c.conn = nil
	c.mu.Unlock()

	c.setState(StateReconnecting, cause)

	for attempt := 0; ; attempt++ {
		if c.cfg.MaxReconnects > 0 && attempt >= c.cfg.MaxReconnects {
			c.setState(StateDisconnected, cause)
			return
		}

		select {
		case <-c.done:
			return
		case <-time.After(c.cfg.RetryInterval):
		}

		dialCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		conn, err := c.dial(dialCtx)
		cancel()

		if err != nil {
			cause = err
			continue
		}

		c.startConn(conn)
		return
	}
}

func (c *Client) setState(state State, err error) {
	c.mu.Lock()
	if c.state == state || (c.state == StateClosed && state != StateClosed) {
		c.mu.Unlock()
		return
	}
	c.state = state
	handler := c.onState
	c.mu.Unlock()

	if handler != nil {
		handler(state, err)
	}
}
