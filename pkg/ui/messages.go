// Package ui provides the Bubble Tea TUI for the trade console.
package ui

import (
	marketapp "github.com/fd1az/trade-console/business/market/app"
	marketdomain "github.com/fd1az/trade-console/business/market/domain"
	tradingapp "github.com/fd1az/trade-console/business/trading/app"
	"github.com/fd1az/trade-console/internal/session"
	"github.com/fd1az/trade-console/internal/wsconn"
)

// Message types for TUI updates

// NoticeLevel classifies a popup notification.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeInfo    NoticeLevel = "info"
	NoticeError   NoticeLevel = "error"
)

// NotificationMsg shows a transient popup, used for decision outcomes.
type NotificationMsg struct {
	Level   NoticeLevel
	Message string
}

// OpportunitiesMsg carries a refreshed view of the pending book.
type OpportunitiesMsg struct {
	Opportunities []tradingapp.PricedOpportunity
}

// OverviewMsg carries the aggregated dashboard overview.
type OverviewMsg struct {
	Overview marketapp.Overview
}

// MarketplaceMsg carries the bid and match listings.
type MarketplaceMsg struct {
	Bids    []marketdomain.Bid
	Matches []marketdomain.Match
}

// AnalyticsMsg carries the analytics screen data.
type AnalyticsMsg struct {
	Revenue marketdomain.RevenueSeries
	Trends  []marketdomain.InventoryTrend
	Chart   []session.ChartPoint
}

// InsightsMsg carries the AI insights screen data.
type InsightsMsg struct {
	Status   marketdomain.AISystemStatus
	Health   marketdomain.AISystemHealth
	Insights []marketdomain.ProductInsight
}

// DecisionDoneMsg reports the outcome of an approve/reject command and the
// book that remains after it.
type DecisionDoneMsg struct {
	OpportunityID string
	Err           error

	remaining []tradingapp.PricedOpportunity
}

// StreamStateMsg is sent when the realtime stream connection changes state.
type StreamStateMsg struct {
	State wsconn.State
	Err   error
}

// AgentEventMsg is sent when an agent starts or stops.
type AgentEventMsg struct {
	AgentID string
	Started bool
}

// BidPlacedMsg is sent when the stream reports a new bid.
type BidPlacedMsg struct {
	Bid marketdomain.Bid
}

// MatchFoundMsg is sent when the stream reports a completed match.
type MatchFoundMsg struct {
	Match marketdomain.Match
}

// ErrorMsg is sent when an error occurs.
type ErrorMsg struct {
	Error error
}

// TickMsg is sent periodically for UI updates.
type TickMsg struct{}

// PollTickMsg triggers an opportunity book refresh.
type PollTickMsg struct{}

// StatsTickMsg triggers a refresh of the slower-moving screens.
type StatsTickMsg struct{}

// StartModulesMsg signals that modules should start loading.
type StartModulesMsg struct{}

// StartupMsg is sent during application startup to show progress.
type StartupMsg struct {
	Step    string // Current step name
	Status  string // "connecting", "connected", "failed"
	Message string // Optional message
}
