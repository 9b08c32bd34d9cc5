// Package ui provides the Bubble Tea TUI for the trade console.
package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	marketdomain "github.com/fd1az/trade-console/business/market/domain"
	tradingapp "github.com/fd1az/trade-console/business/trading/app"
	"github.com/fd1az/trade-console/internal/catalog"
	"github.com/fd1az/trade-console/internal/wsconn"
	"github.com/fd1az/trade-console/pkg/ui/components"
)

// Init initializes the TUI model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case TickMsg:
		// Check if welcome timeout has elapsed
		if m.phase == PhaseWelcome && time.Since(m.welcomeStart) >= WelcomeDuration {
			return m.beginStartup()
		}
		if m.notice != nil && time.Since(m.notice.ShownAt) >= noticeDuration {
			m.notice = nil
		}
		return m, tickCmd()

	case PollTickMsg:
		return m, tea.Batch(m.refreshOpportunitiesCmd(), pollTickCmd(m.deps.PollInterval))

	case StatsTickMsg:
		return m, tea.Batch(
			m.overviewCmd(),
			m.marketplaceCmd(),
			m.analyticsCmd(),
			m.insightsCmd(),
			statsTickCmd(m.deps.StatsInterval),
		)

	case OpportunitiesMsg:
		m.syncPending(msg.Opportunities)
		m.haveData = true
		m.lastPoll = time.Now()
		m.markStep("backend", "connected")

	case OverviewMsg:
		m.overview = msg.Overview
		m.haveData = true
		m.lastPoll = time.Now()
		m.markStep("backend", "connected")
		m.stats.Update(components.Stats{
			TotalRevenue:     msg.Overview.Analytics.TotalRevenue,
			ProfitMargin:     msg.Overview.Analytics.ProfitMargin,
			Transactions:     msg.Overview.Analytics.TotalTransactions,
			ActiveAgents:     msg.Overview.Analytics.ActiveAgents,
			SuccessRate:      msg.Overview.Analytics.SuccessRate,
			DecisionsTotal:   msg.Overview.DecisionStats.Total,
			DecisionsApprove: msg.Overview.DecisionStats.Approved,
			DecisionsReject:  msg.Overview.DecisionStats.Rejected,
			Products:         msg.Overview.ProductCount,
			OpenBids:         len(msg.Overview.Bids),
			Matches:          len(msg.Overview.Matches),
			AIRunning:        msg.Overview.AIStatus.Running,
			PendingReviews:   msg.Overview.AIStatus.PendingReviews,
		})

	case MarketplaceMsg:
		m.marketplace.Update(bidRows(msg.Bids), matchRows(msg.Matches))

	case AnalyticsMsg:
		m.revenue = msg.Revenue
		m.trends = msg.Trends
		m.chart = msg.Chart

	case InsightsMsg:
		m.aiStatus = msg.Status
		m.aiHealth = msg.Health
		m.insights = msg.Insights

	case DecisionDoneMsg:
		if msg.Err != nil {
			m.pushError(msg.Err.Error())
		}
		m.syncPending(msg.remaining)

	case NotificationMsg:
		m.notice = &notice{Level: msg.Level, Message: msg.Message, ShownAt: time.Now()}

	case StreamStateMsg:
		m.streamSt = msg.State
		switch msg.State {
		case wsconn.StateConnected:
			m.markStep("stream", "connected")
			m.activity.Add("Realtime stream connected")
		case wsconn.StateReconnecting:
			m.activity.Add("Realtime stream reconnecting")
		case wsconn.StateDisconnected:
			if msg.Err != nil {
				m.pushError("stream: " + msg.Err.Error())
			}
		}

	case AgentEventMsg:
		if msg.Started {
			m.activity.Add(fmt.Sprintf("Agent %s started", msg.AgentID))
		} else {
			m.activity.Add(fmt.Sprintf("Agent %s stopped", msg.AgentID))
		}

	case BidPlacedMsg:
		m.marketplace.AddBid(bidRow(msg.Bid))
		m.activity.Add(fmt.Sprintf("Bid placed: %s ×%d @ $%s",
			msg.Bid.ProductID, msg.Bid.Quantity, msg.Bid.PricePerUnit.StringFixed(2)))

	case MatchFoundMsg:
		m.marketplace.AddMatch(matchRow(msg.Match))
		m.activity.Add(fmt.Sprintf("Match: %s ×%d @ $%s",
			msg.Match.ProductID, msg.Match.Quantity, msg.Match.PricePerUnit.StringFixed(2)))

	case ErrorMsg:
		m.pushError(msg.Error.Error())

	case StartupMsg:
		if step, ok := m.startupSteps[msg.Step]; ok {
			step.Status = msg.Status
		}
		allConnected := true
		for _, step := range m.startupSteps {
			if step.Status != "connected" && step.Status != "done" {
				allConnected = false
				break
			}
		}
		if allConnected {
			m.startupDone = true
		}
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Always allow quit
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	// During welcome phase, any key skips to startup
	if m.phase == PhaseWelcome {
		return m.beginStartup()
	}

	// Store filter entry captures all typing until enter/esc
	if m.filterEntry {
		switch msg.String() {
		case "enter", "esc":
			m.filterEntry = false
		case "backspace":
			if runes := []rune(m.filter.Store); len(runes) > 0 {
				m.filter.Store = string(runes[:len(runes)-1])
			}
			m.syncPending(m.deps.Trading.Pending(m.filter))
		case " ", "space":
			m.filter.Store += " "
			m.syncPending(m.deps.Trading.Pending(m.filter))
		default:
			if runes := []rune(msg.String()); len(runes) == 1 {
				m.filter.Store += string(runes)
				m.syncPending(m.deps.Trading.Pending(m.filter))
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "1":
		m.screen = ScreenDashboard
	case "2":
		m.screen = ScreenTrading
	case "3":
		m.screen = ScreenMarketplace
	case "4":
		m.screen = ScreenAnalytics
	case "5":
		m.screen = ScreenInsights
	case "up", "k":
		m.opportunities.ScrollUp()
	case "down", "j":
		m.opportunities.ScrollDown()
	case "a":
		if m.screen == ScreenTrading {
			if row, ok := m.opportunities.Selected(); ok {
				return m, m.approveCmd(row.ID)
			}
		}
	case "r":
		if m.screen == ScreenTrading {
			if row, ok := m.opportunities.Selected(); ok {
				return m, m.rejectCmd(row.ID)
			}
		}
	case "f":
		m.cycleFilter()
		m.syncPending(m.deps.Trading.Pending(m.filter))
	case "s":
		// Store-role operators are pinned to their own store.
		if m.sess.IsAdmin() {
			m.filterEntry = true
		}
	case "o":
		m.cycleRole()
		m.syncPending(m.deps.Trading.Pending(m.filter))
		return m, m.analyticsCmd()
	case "e":
		m.errors = nil
	case "?":
		m.showHelp = !m.showHelp
	}

	return m, nil
}

// beginStartup advances from the welcome screen, fires the module start
// callback and kicks off the polling loops.
func (m Model) beginStartup() (tea.Model, tea.Cmd) {
	m.phase = PhaseStartup
	m.startupTime = time.Now()
	m.markStep("backend", "connecting")
	m.markStep("stream", "connecting")

	// Trigger callback directly (don't use Send() from within Update)
	if OnStartModules != nil {
		go OnStartModules()
	}

	return m, tea.Batch(
		tickCmd(),
		m.refreshOpportunitiesCmd(),
		m.overviewCmd(),
		m.marketplaceCmd(),
		m.analyticsCmd(),
		m.insightsCmd(),
		pollTickCmd(m.deps.PollInterval),
		statsTickCmd(m.deps.StatsInterval),
	)
}

func (m *Model) markStep(key, status string) {
	if step, ok := m.startupSteps[key]; ok && step.Status != "connected" && step.Status != "done" {
		step.Status = status
	}
}

// pushError appends to the persistent error panel, keeping the last 3.
func (m *Model) pushError(message string) {
	m.errors = append(m.errors, ErrorEntry{Message: message, Timestamp: time.Now()})
	if len(m.errors) > 3 {
		m.errors = m.errors[len(m.errors)-3:]
	}
}

// syncPending refreshes the trading screen from a priced book snapshot.
func (m *Model) syncPending(list []tradingapp.PricedOpportunity) {
	m.pending = list

	rows := make([]components.OpportunityRow, 0, len(list))
	for _, p := range list {
		rows = append(rows, components.OpportunityRow{
			ID:          p.ID,
			Product:     p.ProductName,
			Type:        string(p.Type),
			Route:       m.routeLabel(p.SourceStore, p.TargetStore),
			Quantity:    p.Quantity,
			GrossProfit: p.PotentialProfit,
			Transport:   p.Valuation.TransportCost.Total,
			NetProfit:   p.Valuation.NetProfit,
			MarginPct:   p.Valuation.MarginPct,
			Risk:        string(p.Valuation.Risk),
			Urgency:     string(p.Urgency),
			Confidence:  p.Confidence,
			DistanceKM:  p.Valuation.DistanceKM,
			Delivery:    p.Valuation.Delivery,
			Reasoning:   p.Reasoning,
		})
	}
	m.opportunities.Set(rows)
}

// routeLabel renders "source → target" using display names when known.
func (m Model) routeLabel(source, target catalog.StoreID) string {
	name := func(id catalog.StoreID) string {
		if s, ok := m.deps.Stores.Get(id); ok {
			return s.Name
		}
		return string(id)
	}
	return name(source) + " → " + name(target)
}

func bidRow(b marketdomain.Bid) components.BidRow {
	return components.BidRow{
		ID:           b.ID,
		AgentID:      b.AgentID,
		ProductID:    b.ProductID,
		Type:         b.Type,
		Quantity:     b.Quantity,
		PricePerUnit: b.PricePerUnit,
		Status:       b.Status,
		CreatedAt:    b.CreatedAt,
	}
}

func bidRows(bids []marketdomain.Bid) []components.BidRow {
	rows := make([]components.BidRow, 0, len(bids))
	for _, b := range bids {
		rows = append(rows, bidRow(b))
	}
	return rows
}

func matchRow(mt marketdomain.Match) components.MatchRow {
	return components.MatchRow{
		ID:           mt.ID,
		ProductID:    mt.ProductID,
		Quantity:     mt.Quantity,
		PricePerUnit: mt.PricePerUnit,
		MatchedAt:    mt.MatchedAt,
	}
}

func matchRows(matches []marketdomain.Match) []components.MatchRow {
	rows := make([]components.MatchRow, 0, len(matches))
	for _, mt := range matches {
		rows = append(rows, matchRow(mt))
	}
	return rows
}

// Program holds the Bubble Tea program instance for external access.
var Program *tea.Program

// OnStartModules is called when the welcome screen completes and modules should start.
// This is set by main.go to signal when to begin loading modules.
var OnStartModules func()

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	Program = tea.NewProgram(New(deps), tea.WithAltScreen())
	_, err := Program.Run()
	return err
}

// Send sends a message to the running program.
func Send(msg tea.Msg) {
	if Program != nil {
		Program.Send(msg)
	}
	// Call OnStartModules callback when StartModulesMsg is sent
	if _, ok := msg.(StartModulesMsg); ok && OnStartModules != nil {
		OnStartModules()
	}
}
