// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// OpportunityRow represents one pending opportunity card.
type OpportunityRow struct {
	ID          string
	Product     string
	Type        string
	Route       string
	Quantity    int
	GrossProfit decimal.Decimal
	Transport   decimal.Decimal
	NetProfit   decimal.Decimal
	MarginPct   decimal.Decimal
	Risk        string
	Urgency     string
	Confidence  float64
	DistanceKM  float64
	Delivery    string
	Reasoning   string
}

// OpportunitiesComponent renders the pending opportunity cards with a cursor.
type OpportunitiesComponent struct {
	rows    []OpportunityRow
	cursor  int
	visible int
}

// NewOpportunitiesComponent creates a new opportunities component showing at
// most visible cards at a time.
func NewOpportunitiesComponent(visible int) *OpportunitiesComponent {
	return &OpportunitiesComponent{visible: visible}
}

// Set replaces the card list, clamping the cursor into range.
func (o *OpportunitiesComponent) Set(rows []OpportunityRow) {
	o.rows = rows
	if o.cursor >= len(rows) {
		o.cursor = len(rows) - 1
	}
	if o.cursor < 0 {
		o.cursor = 0
	}
}

// Len returns the number of cards.
func (o *OpportunitiesComponent) Len() int {
	return len(o.rows)
}

// ScrollUp moves the cursor up.
func (o *OpportunitiesComponent) ScrollUp() {
	if o.cursor > 0 {
		o.cursor--
	}
}

// ScrollDown moves the cursor down.
func (o *OpportunitiesComponent) ScrollDown() {
	if o.cursor < len(o.rows)-1 {
		o.cursor++
	}
}

// Selected returns the card under the cursor.
func (o *OpportunitiesComponent) Selected() (OpportunityRow, bool) {
	if len(o.rows) == 0 {
		return OpportunityRow{}, false
	}
	return o.rows[o.cursor], true
}

// View renders the visible window of cards around the cursor.
func (o *OpportunitiesComponent) View(width int) string {
	if len(o.rows) == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).
			Render("No pending opportunities. Waiting for the next AI cycle...")
	}

	start := 0
	if o.cursor >= o.visible {
		start = o.cursor - o.visible + 1
	}
	end := start + o.visible
	if end > len(o.rows) {
		end = len(o.rows)
	}

	var sb strings.Builder
	for i := start; i < end; i++ {
		sb.WriteString(o.renderCard(o.rows[i], i == o.cursor, width))
		sb.WriteString("\n")
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	sb.WriteString(muted.Render(fmt.Sprintf("  %d/%d pending", o.cursor+1, len(o.rows))))

	return sb.String()
}

func (o *OpportunitiesComponent) renderCard(row OpportunityRow, selected bool, width int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	profitStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	lossStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))

	netStyle := profitStyle
	if row.NetProfit.IsNegative() {
		netStyle = lossStyle
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s  ×%d", row.Product, row.Quantity)))
	sb.WriteString("  ")
	sb.WriteString(renderTypeBadge(row.Type))
	sb.WriteString("  ")
	sb.WriteString(renderUrgencyBadge(row.Urgency))
	sb.WriteString("\n")

	sb.WriteString(mutedStyle.Render(row.Route))
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("  (%.1f km, %s)", row.DistanceKM, row.Delivery)))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Gross $%s  Transport $%s  Net %s  Margin %s  Risk %s  Conf %.0f%%",
		row.GrossProfit.StringFixed(2),
		row.Transport.StringFixed(2),
		netStyle.Render("$"+row.NetProfit.StringFixed(2)),
		netStyle.Render(row.MarginPct.StringFixed(1)+"%"),
		renderRiskBadge(row.Risk),
		row.Confidence*100,
	))

	if row.Reasoning != "" {
		sb.WriteString("\n")
		sb.WriteString(mutedStyle.Render(truncate(row.Reasoning, width-8)))
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#374151")).
		Padding(0, 1).
		Width(width - 4)
	if selected {
		border = border.BorderForeground(lipgloss.Color("#7C3AED"))
	}

	return border.Render(sb.String())
}

func renderTypeBadge(t string) string {
	if t == "arbitrage" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA")).Render("ARBITRAGE")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Render("RESTOCK")
}

func renderUrgencyBadge(u string) string {
	switch u {
	case "critical":
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")).Render("⚡CRITICAL")
	case "high":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Render("HIGH")
	case "medium":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Render("MEDIUM")
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Render("LOW")
	}
}

func renderRiskBadge(r string) string {
	switch r {
	case "low":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Render("LOW")
	case "medium":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Render("MED")
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Render("HIGH")
	}
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
