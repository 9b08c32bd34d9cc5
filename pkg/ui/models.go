// Package ui provides the Bubble Tea TUI for the trade console.
package ui

import (
	"sort"
	"time"

	marketapp "github.com/fd1az/trade-console/business/market/app"
	marketdomain "github.com/fd1az/trade-console/business/market/domain"
	"github.com/fd1az/trade-console/business/market/infra/stream"
	tradingapp "github.com/fd1az/trade-console/business/trading/app"
	"github.com/fd1az/trade-console/internal/catalog"
	"github.com/fd1az/trade-console/internal/session"
	"github.com/fd1az/trade-console/internal/wsconn"
	"github.com/fd1az/trade-console/pkg/ui/components"
)

// Screen identifies one of the console screens.
type Screen string

const (
	ScreenDashboard   Screen = "dashboard"
	ScreenTrading     Screen = "trading"
	ScreenMarketplace Screen = "marketplace"
	ScreenAnalytics   Screen = "analytics"
	ScreenInsights    Screen = "insights"
)

// Phase represents the current UI phase.
type Phase string

const (
	PhaseWelcome   Phase = "welcome"   // Initial welcome screen
	PhaseStartup   Phase = "startup"   // Loading/connecting
	PhaseDashboard Phase = "dashboard" // Main screens
)

// WelcomeDuration is how long the welcome screen shows before auto-advancing.
const WelcomeDuration = 2 * time.Second

// noticeDuration is how long a decision popup stays on screen.
const noticeDuration = 5 * time.Second

// StartupStep represents a step in the startup process.
type StartupStep struct {
	Name   string
	Status string // "pending", "connecting", "connected", "failed"
}

// ErrorEntry represents an error with timestamp.
type ErrorEntry struct {
	Message   string
	Timestamp time.Time
}

// notice is a transient popup shown after a decision.
type notice struct {
	Level   NoticeLevel
	Message string
	ShownAt time.Time
}

// Deps are the services the TUI reads from and acts on.
type Deps struct {
	Trading  *tradingapp.Service
	Market   *marketapp.MarketService
	Stream   *stream.Session
	Sessions *session.Store
	Charts   *session.ChartCache
	Stores   *catalog.StoreRegistry

	PollInterval  time.Duration
	StatsInterval time.Duration
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	deps Deps
	keys KeyMap

	// Components
	opportunities *components.OpportunitiesComponent
	stats         *components.StatsComponent
	marketplace   *components.MarketplaceComponent
	activity      *components.ActivityFeed

	// Phase state
	phase        Phase
	welcomeStart time.Time
	startupTime  time.Time
	startupSteps map[string]*StartupStep
	startupDone  bool
	haveData     bool

	// Shell state
	screen    Screen
	ready     bool
	quitting  bool
	showHelp  bool
	width     int
	height    int
	sess      session.Session
	storeIDs  []catalog.StoreID
	notice    *notice
	errors    []ErrorEntry
	lastPoll  time.Time
	streamSt  wsconn.State

	// Trading screen state
	filter      tradingapp.Filter
	filterEntry bool
	pending     []tradingapp.PricedOpportunity

	// Analytics screen state
	revenue marketdomain.RevenueSeries
	trends  []marketdomain.InventoryTrend
	chart   []session.ChartPoint

	// Insights screen state
	aiStatus marketdomain.AISystemStatus
	aiHealth marketdomain.AISystemHealth
	insights []marketdomain.ProductInsight

	overview marketapp.Overview
}

// New creates a new TUI model over the given services.
func New(deps Deps) Model {
	now := time.Now()

	sess, err := deps.Sessions.Load()
	if err != nil {
		sess = session.Session{Role: session.RoleAdmin}
	}

	// Stable store order for role cycling.
	var ids []catalog.StoreID
	for _, s := range deps.Stores.All() {
		ids = append(ids, s.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	m := Model{
		deps:          deps,
		keys:          DefaultKeyMap(),
		opportunities: components.NewOpportunitiesComponent(3),
		stats:         components.NewStatsComponent(),
		marketplace:   components.NewMarketplaceComponent(10),
		activity:      components.NewActivityFeed(6),
		phase:         PhaseWelcome,
		welcomeStart:  now,
		startupTime:   now,
		screen:        ScreenDashboard,
		sess:          sess,
		storeIDs:      ids,
		streamSt:      wsconn.StateDisconnected,
		startupSteps: map[string]*StartupStep{
			"config":  {Name: "Loading configuration", Status: "pending"},
			"session": {Name: "Restoring operator session", Status: "pending"},
			"backend": {Name: "Connecting to trading backend", Status: "pending"},
			"stream":  {Name: "Opening realtime stream", Status: "pending"},
		},
	}
	m.applyRole()
	return m
}

// applyRole syncs the trading filter with the operator's role. Store-role
// operators have the store filter pinned to their own store.
func (m *Model) applyRole() {
	if m.sess.IsAdmin() {
		return
	}
	m.filter.Store = string(m.sess.StoreID)
	m.filterEntry = false
}

// cycleRole advances the role scope: admin, then each store in order, then
// back to admin. The selection persists across runs.
func (m *Model) cycleRole() {
	switch {
	case m.sess.IsAdmin():
		if len(m.storeIDs) == 0 {
			return
		}
		m.sess = session.Session{Role: session.RoleStore, StoreID: m.storeIDs[0]}
	default:
		next := -1
		for i, id := range m.storeIDs {
			if id == m.sess.StoreID {
				next = i + 1
				break
			}
		}
		if next < 0 || next >= len(m.storeIDs) {
			m.sess = session.Session{Role: session.RoleAdmin}
			m.filter.Store = ""
		} else {
			m.sess = session.Session{Role: session.RoleStore, StoreID: m.storeIDs[next]}
		}
	}

	m.applyRole()
	// Last-write-wins persistence; a failed save only loses the preference.
	_ = m.deps.Sessions.Save(m.sess)
}

// storeScope returns the chart cache scope for the current role.
func (m Model) storeScope() catalog.StoreID {
	if m.sess.IsAdmin() {
		return ""
	}
	return m.sess.StoreID
}

// cycleFilter advances the opportunity filter mode.
func (m *Model) cycleFilter() {
	switch m.filter.Mode {
	case tradingapp.FilterAll, "":
		m.filter.Mode = tradingapp.FilterHighProfit
	case tradingapp.FilterHighProfit:
		m.filter.Mode = tradingapp.FilterUrgent
	default:
		m.filter.Mode = tradingapp.FilterAll
	}
}
