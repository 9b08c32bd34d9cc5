// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// BidRow represents an open bid in the marketplace table.
type BidRow struct {
	ID           string
	AgentID      string
	ProductID    string
	Type         string
	Quantity     int
	PricePerUnit decimal.Decimal
	Status       string
	CreatedAt    time.Time
}

// MatchRow represents a completed bid match.
type MatchRow struct {
	ID           string
	ProductID    string
	Quantity     int
	PricePerUnit decimal.Decimal
	MatchedAt    time.Time
}

// MarketplaceComponent renders the bids and matches tables.
type MarketplaceComponent struct {
	bids    []BidRow
	matches []MatchRow
	maxRows int
}

// NewMarketplaceComponent creates a new marketplace component.
func NewMarketplaceComponent(maxRows int) *MarketplaceComponent {
	return &MarketplaceComponent{maxRows: maxRows}
}

// Update replaces the bid and match listings.
func (m *MarketplaceComponent) Update(bids []BidRow, matches []MatchRow) {
	m.bids = bids
	m.matches = matches
}

// AddBid prepends a bid reported by the realtime stream.
func (m *MarketplaceComponent) AddBid(bid BidRow) {
	m.bids = append([]BidRow{bid}, m.bids...)
	if len(m.bids) > m.maxRows {
		m.bids = m.bids[:m.maxRows]
	}
}

// AddMatch prepends a match reported by the realtime stream.
func (m *MarketplaceComponent) AddMatch(match MatchRow) {
	m.matches = append([]MatchRow{match}, m.matches...)
	if len(m.matches) > m.maxRows {
		m.matches = m.matches[:m.maxRows]
	}
}

// ViewBids renders the open bids table.
func (m *MarketplaceComponent) ViewBids() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))

	if len(m.bids) == 0 {
		return headerStyle.Render("OPEN BIDS") + "\n" +
			lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Render("No open bids.")
	}

	result := headerStyle.Render(fmt.Sprintf("OPEN BIDS (last %d)\n", m.maxRows))
	result += "┌──────────────────────┬──────────────┬──────────┬──────┬──────────┬──────────┐\n"
	result += "│        Agent         │   Product    │   Type   │ Qty  │  $/unit  │  Status  │\n"
	result += "├──────────────────────┼──────────────┼──────────┼──────┼──────────┼──────────┤\n"

	rows := m.bids
	if len(rows) > m.maxRows {
		rows = rows[:m.maxRows]
	}
	for _, row := range rows {
		result += fmt.Sprintf("│%21s │%13s │%9s │%5d │%9s │%9s │\n",
			clip(row.AgentID, 21),
			clip(row.ProductID, 13),
			row.Type,
			row.Quantity,
			"$"+row.PricePerUnit.StringFixed(2),
			clip(row.Status, 9),
		)
	}

	result += "└──────────────────────┴──────────────┴──────────┴──────┴──────────┴──────────┘"
	return result
}

// ViewMatches renders the completed matches table.
func (m *MarketplaceComponent) ViewMatches() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	matchedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))

	if len(m.matches) == 0 {
		return headerStyle.Render("MATCHES") + "\n" +
			lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Render("No matches yet.")
	}

	result := headerStyle.Render(fmt.Sprintf("MATCHES (last %d)\n", m.maxRows))
	result += "┌──────────────┬──────┬──────────┬──────────┐\n"
	result += "│   Product    │ Qty  │  $/unit  │  Matched │\n"
	result += "├──────────────┼──────┼──────────┼──────────┤\n"

	rows := m.matches
	if len(rows) > m.maxRows {
		rows = rows[:m.maxRows]
	}
	for _, row := range rows {
		result += fmt.Sprintf("│%13s │%5d │%9s │ %s │\n",
			clip(row.ProductID, 13),
			row.Quantity,
			"$"+row.PricePerUnit.StringFixed(2),
			matchedStyle.Render(row.MatchedAt.Format("15:04:05")),
		)
	}

	result += "└──────────────┴──────┴──────────┴──────────┘"
	return result
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
