// Package components provides reusable TUI components.
package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Stats holds the dashboard statistics for display.
type Stats struct {
	TotalRevenue     decimal.Decimal
	ProfitMargin     float64
	Transactions     int
	ActiveAgents     int
	SuccessRate      float64
	DecisionsTotal   int
	DecisionsApprove int
	DecisionsReject  int
	Products         int
	OpenBids         int
	Matches          int
	AIRunning        bool
	PendingReviews   int
}

// StatsComponent renders the dashboard statistics.
type StatsComponent struct {
	stats Stats
}

// NewStatsComponent creates a new stats component.
func NewStatsComponent() *StatsComponent {
	return &StatsComponent{}
}

// Update updates the statistics.
func (s *StatsComponent) Update(stats Stats) {
	s.stats = stats
}

// View renders the stats component.
func (s *StatsComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	greenStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	redStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)

	aiDisplay := greenStyle.Render("RUNNING")
	if !s.stats.AIRunning {
		aiDisplay = redStyle.Render("STOPPED")
	}

	approveRate := float64(0)
	if s.stats.DecisionsTotal > 0 {
		approveRate = float64(s.stats.DecisionsApprove) / float64(s.stats.DecisionsTotal) * 100
	}

	return headerStyle.Render("MARKETPLACE") + "\n" +
		fmt.Sprintf("%s %s  │  %s %s  │  %s %s\n",
			labelStyle.Render("Revenue:"),
			greenStyle.Render("$"+s.stats.TotalRevenue.StringFixed(2)),
			labelStyle.Render("Margin:"),
			valueStyle.Render(fmt.Sprintf("%.1f%%", s.stats.ProfitMargin*100)),
			labelStyle.Render("Success:"),
			valueStyle.Render(fmt.Sprintf("%.1f%%", s.stats.SuccessRate*100)),
		) +
		fmt.Sprintf("%s %s  │  %s %s  │  %s %s\n",
			labelStyle.Render("Transactions:"),
			valueStyle.Render(fmt.Sprintf("%d", s.stats.Transactions)),
			labelStyle.Render("Agents:"),
			valueStyle.Render(fmt.Sprintf("%d", s.stats.ActiveAgents)),
			labelStyle.Render("Products:"),
			valueStyle.Render(fmt.Sprintf("%d", s.stats.Products)),
		) +
		fmt.Sprintf("%s %s (%.0f%% approved)  │  %s %s  │  %s %s\n",
			labelStyle.Render("Decisions:"),
			valueStyle.Render(fmt.Sprintf("%d", s.stats.DecisionsTotal)),
			approveRate,
			labelStyle.Render("Open bids:"),
			valueStyle.Render(fmt.Sprintf("%d", s.stats.OpenBids)),
			labelStyle.Render("Matches:"),
			valueStyle.Render(fmt.Sprintf("%d", s.stats.Matches)),
		) +
		fmt.Sprintf("%s %s  │  %s %s",
			labelStyle.Render("AI system:"),
			aiDisplay,
			labelStyle.Render("Pending reviews:"),
			valueStyle.Render(fmt.Sprintf("%d", s.stats.PendingReviews)),
		)
}
