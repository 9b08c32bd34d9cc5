// Package ui provides the Bubble Tea TUI for the trade console.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	tradingapp "github.com/fd1az/trade-console/business/trading/app"
	"github.com/fd1az/trade-console/internal/wsconn"
	"github.com/fd1az/trade-console/pkg/ui/components"
	"github.com/shopspring/decimal"
)

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return "\n  Goodbye!\n\n"
	}

	// Phase-based rendering
	switch m.phase {
	case PhaseWelcome:
		return m.renderWelcomeScreen()
	case PhaseStartup:
		// Show startup until the first data arrives or all steps complete
		if !m.haveData && !m.startupDone {
			return m.renderStartupScreen()
		}
		m.phase = PhaseDashboard
		fallthrough
	case PhaseDashboard:
		// Continue to main screens
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n\n")

	switch m.screen {
	case ScreenTrading:
		b.WriteString(m.renderTrading())
	case ScreenMarketplace:
		b.WriteString(m.renderMarketplace())
	case ScreenAnalytics:
		b.WriteString(m.renderAnalytics())
	case ScreenInsights:
		b.WriteString(m.renderInsights())
	default:
		b.WriteString(m.renderDashboard())
	}

	b.WriteString("\n\n")

	if m.notice != nil {
		b.WriteString(m.renderNotice())
		b.WriteString("\n")
	}

	// Persistent error panel (show last 3 errors)
	if len(m.errors) > 0 {
		errorStyle := lipgloss.NewStyle().Foreground(ColorDanger)
		errorHeader := lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)
		mutedError := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))

		b.WriteString(errorHeader.Render("ERRORS"))
		b.WriteString(mutedError.Render(" (e: clear)"))
		b.WriteString("\n")
		for _, err := range m.errors {
			ago := time.Since(err.Timestamp).Round(time.Second)
			b.WriteString(errorStyle.Render(fmt.Sprintf("  • %s ", err.Message)))
			b.WriteString(mutedError.Render(fmt.Sprintf("(%s ago)", ago)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(m.renderFullHelp())
	} else {
		b.WriteString(HelpStyle.Render(m.shortHelpLine()))
	}

	return b.String()
}

func (m Model) shortHelpLine() string {
	if m.screen == ScreenTrading {
		if m.filterEntry {
			return "typing store filter • enter: done • esc: cancel"
		}
		return "q: quit • 1-5: screens • ↑↓: select • a: approve • r: reject • f: filter • s: store • o: role • ?: help"
	}
	return "q: quit • 1-5: screens • o: role • ?: help"
}

func (m Model) renderFullHelp() string {
	var sb strings.Builder
	for _, row := range m.keys.FullHelp() {
		var parts []string
		for _, binding := range row {
			parts = append(parts, fmt.Sprintf("%s: %s", binding.Help().Key, binding.Help().Desc))
		}
		sb.WriteString(HelpStyle.Render(strings.Join(parts, " • ")))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) renderHeader() string {
	title := TitleStyle.Render(" 🏪 Trade Console ")

	tabs := []struct {
		screen Screen
		label  string
	}{
		{ScreenDashboard, "1 Dashboard"},
		{ScreenTrading, "2 Trading"},
		{ScreenMarketplace, "3 Marketplace"},
		{ScreenAnalytics, "4 Analytics"},
		{ScreenInsights, "5 AI Insights"},
	}

	var parts []string
	for _, tab := range tabs {
		if tab.screen == m.screen {
			parts = append(parts, TabActiveStyle.Render(tab.label))
		} else {
			parts = append(parts, TabInactiveStyle.Render(tab.label))
		}
	}

	return title + "  " + strings.Join(parts, " ")
}

func (m Model) renderStatusBar() string {
	var parts []string

	// Operator role
	roleStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorInfo)
	if m.sess.IsAdmin() {
		parts = append(parts, roleStyle.Render("👤 admin"))
	} else {
		label := string(m.sess.StoreID)
		if s, ok := m.deps.Stores.Get(m.sess.StoreID); ok {
			label = s.Name
		}
		parts = append(parts, roleStyle.Render("🏬 "+label))
	}

	// Stream connection
	switch m.streamSt {
	case wsconn.StateConnected:
		parts = append(parts, StatusConnected.Render("● stream"))
	case wsconn.StateReconnecting, wsconn.StateConnecting:
		parts = append(parts, StatusReconnecting.Render("◐ stream"))
	default:
		parts = append(parts, StatusDisconnected.Render("○ stream"))
	}

	if !m.lastPoll.IsZero() {
		ago := time.Since(m.lastPoll).Round(time.Second)
		parts = append(parts, MutedValue.Render(fmt.Sprintf("polled %s ago", ago)))
	}

	parts = append(parts, MutedValue.Render(fmt.Sprintf("%d pending", len(m.pending))))

	return strings.Join(parts, "  │  ")
}

func (m Model) renderDashboard() string {
	leftCol := m.stats.View()
	if len(m.chart) > 0 {
		values := make([]float64, 0, len(m.chart))
		for _, p := range m.chart {
			values = append(values, float64(p.Revenue))
		}
		chartHeader := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
		leftCol += "\n\n" + chartHeader.Render("REVENUE 24H") + "\n" + components.Sparkline(values)
	}

	rightCol := m.activity.View()

	return m.twoColumns(leftCol, rightCol)
}

func (m Model) renderTrading() string {
	var b strings.Builder

	// Filter line
	filterStyle := lipgloss.NewStyle().Foreground(ColorInfo)
	mode := m.filter.Mode
	if mode == "" {
		mode = tradingapp.FilterAll
	}
	line := fmt.Sprintf("Filter: %s", mode)
	if m.filter.Store != "" {
		line += fmt.Sprintf("  Store: %q", m.filter.Store)
		if !m.sess.IsAdmin() {
			line += " (locked)"
		}
	}
	if m.filterEntry {
		line += "▌"
	}
	b.WriteString(filterStyle.Render(line))
	b.WriteString("\n\n")

	width := m.width
	if width <= 0 {
		width = 100
	}
	b.WriteString(m.opportunities.View(width))

	// Store operators see the revenue at stake across their visible book.
	if !m.sess.IsAdmin() {
		total := decimal.Zero
		for _, p := range m.pending {
			total = total.Add(p.Valuation.NetProfit)
		}
		b.WriteString("\n\n")
		b.WriteString(PositiveValue.Render(fmt.Sprintf("Possible revenue: $%s across %d opportunities",
			total.StringFixed(2), len(m.pending))))
	}

	return b.String()
}

func (m Model) renderMarketplace() string {
	return m.twoColumns(m.marketplace.ViewBids(), m.marketplace.ViewMatches())
}

func (m Model) renderAnalytics() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	var left strings.Builder
	left.WriteString(m.stats.View())

	if len(m.revenue.Daily) > 0 {
		labels := make([]string, 0, len(m.revenue.Daily))
		values := make([]float64, 0, len(m.revenue.Daily))
		for _, p := range m.revenue.Daily {
			labels = append(labels, p.Date.Format("Mon"))
			values = append(values, p.Revenue.InexactFloat64())
		}
		left.WriteString("\n\n")
		left.WriteString(headerStyle.Render("REVENUE 7D"))
		left.WriteString("\n")
		left.WriteString(components.BarChart(labels, values, m.width/2-6))
	}

	var right strings.Builder
	right.WriteString(headerStyle.Render("INVENTORY TRENDS"))
	right.WriteString("\n\n")
	for _, trend := range m.trends {
		style := PositiveValue
		if trend.Growth < 0 {
			style = NegativeValue
		}
		right.WriteString(fmt.Sprintf("%-14s %s\n", trend.Category,
			style.Render(fmt.Sprintf("%+.0f%%", trend.Growth*100))))
	}

	if len(m.chart) > 0 {
		values := make([]float64, 0, len(m.chart))
		for _, p := range m.chart {
			values = append(values, float64(p.Profit))
		}
		right.WriteString("\n")
		right.WriteString(headerStyle.Render("PROFIT 24H"))
		right.WriteString("\n")
		right.WriteString(components.Sparkline(values))
	}

	return m.twoColumns(left.String(), right.String())
}

func (m Model) renderInsights() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	var left strings.Builder
	left.WriteString(headerStyle.Render("AI SYSTEM"))
	left.WriteString("\n\n")

	if m.aiStatus.Running {
		left.WriteString(StatusConnected.Render("● RUNNING"))
	} else {
		left.WriteString(StatusDisconnected.Render("○ STOPPED"))
	}
	left.WriteString(fmt.Sprintf("  %d agents, %d opportunities, %d pending reviews\n",
		m.aiStatus.ActiveAgents, m.aiStatus.Opportunities, m.aiStatus.PendingReviews))
	if !m.aiStatus.LastCycleAt.IsZero() {
		left.WriteString(mutedStyle.Render(fmt.Sprintf("Last cycle %s ago",
			time.Since(m.aiStatus.LastCycleAt).Round(time.Second))))
		left.WriteString("\n")
	}

	left.WriteString("\n")
	left.WriteString(headerStyle.Render("HEALTH"))
	left.WriteString("\n\n")
	if m.aiHealth.Healthy {
		left.WriteString(StatusConnected.Render("✓ healthy"))
	} else {
		left.WriteString(StatusDisconnected.Render("✗ degraded"))
	}
	left.WriteString("\n")
	for name, state := range m.aiHealth.Components {
		style := PositiveValue
		if state != "ok" && state != "healthy" {
			style = NegativeValue
		}
		left.WriteString(fmt.Sprintf("  %-16s %s\n", name, style.Render(state)))
	}

	var right strings.Builder
	right.WriteString(headerStyle.Render("PRODUCT INSIGHTS"))
	right.WriteString("\n\n")
	if len(m.insights) == 0 {
		right.WriteString(mutedStyle.Render("No insights yet."))
	}
	for _, insight := range m.insights {
		right.WriteString(fmt.Sprintf("%s  %s (%.0f%%)\n",
			insight.ProductID,
			strings.ToUpper(insight.Recommendation),
			insight.Confidence*100))
		if insight.Summary != "" {
			right.WriteString(mutedStyle.Render("  " + insight.Summary))
			right.WriteString("\n")
		}
	}

	return m.twoColumns(left.String(), right.String())
}

// twoColumns lays out two boxes side by side when the terminal is wide
// enough, stacked otherwise.
func (m Model) twoColumns(left, right string) string {
	if m.width > 100 {
		l := BoxStyle.Width(m.width/2 - 2).Render(left)
		r := BoxStyle.Width(m.width/2 - 2).Render(right)
		return lipgloss.JoinHorizontal(lipgloss.Top, l, r)
	}
	width := m.width - 4
	if width < 20 {
		width = 76
	}
	return BoxStyle.Width(width).Render(left) + "\n" + BoxStyle.Width(width).Render(right)
}

func (m Model) renderNotice() string {
	var style lipgloss.Style
	var icon string
	switch m.notice.Level {
	case NoticeSuccess:
		style = lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary)
		icon = "✓"
	case NoticeError:
		style = lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)
		icon = "✗"
	default:
		style = lipgloss.NewStyle().Bold(true).Foreground(ColorInfo)
		icon = "ℹ"
	}
	return style.Render(fmt.Sprintf(" %s %s ", icon, m.notice.Message))
}

// renderWelcomeScreen renders the animated welcome screen.
func (m Model) renderWelcomeScreen() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	goldStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWarning)

	mutedStyle := lipgloss.NewStyle().
		Foreground(ColorMuted)

	greenStyle := lipgloss.NewStyle().
		Foreground(ColorSecondary)

	// Animated dots based on time
	elapsed := time.Since(m.welcomeStart)
	dotCount := int(elapsed.Milliseconds()/300) % 4
	dots := strings.Repeat(".", dotCount)

	var sb strings.Builder

	sb.WriteString("\n\n\n\n")

	logo := `
   ████████╗██████╗  █████╗ ██████╗ ███████╗
   ╚══██╔══╝██╔══██╗██╔══██╗██╔══██╗██╔════╝
      ██║   ██████╔╝███████║██║  ██║█████╗
      ██║   ██╔══██╗██╔══██║██║  ██║██╔══╝
      ██║   ██║  ██║██║  ██║██████╔╝███████╗
      ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝ ╚══════╝
`
	sb.WriteString(titleStyle.Render(logo))
	sb.WriteString("\n")

	subtitle := "          O P E R A T O R   C O N S O L E"
	sb.WriteString(mutedStyle.Render(subtitle))
	sb.WriteString("\n\n\n")

	tagline := "        🏪  Review. Approve. Profit.  🏪"
	sb.WriteString(goldStyle.Render(tagline))
	sb.WriteString("\n\n\n")

	loading := fmt.Sprintf("            Initializing%s", dots)
	sb.WriteString(greenStyle.Render(loading))
	sb.WriteString("\n\n")

	hint := "      Press any key to skip, or wait..."
	sb.WriteString(mutedStyle.Render(hint))
	sb.WriteString("\n")

	return sb.String()
}

// renderStartupScreen renders the loading/startup screen.
func (m Model) renderStartupScreen() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF"))

	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)
	successStyle := lipgloss.NewStyle().Foreground(ColorSecondary)
	connectingStyle := lipgloss.NewStyle().Foreground(ColorWarning)
	failedStyle := lipgloss.NewStyle().Foreground(ColorDanger)

	var sb strings.Builder

	sb.WriteString("\n\n")
	sb.WriteString(titleStyle.Render("  🏪 Trade Console"))
	sb.WriteString("\n\n")
	sb.WriteString(headerStyle.Render("  Starting up..."))
	sb.WriteString("\n\n")

	stepOrder := []string{"config", "session", "backend", "stream"}
	for _, key := range stepOrder {
		step, ok := m.startupSteps[key]
		if !ok {
			continue
		}

		var icon, statusText string
		var style lipgloss.Style

		switch step.Status {
		case "connected", "done":
			icon = "✓"
			statusText = "Ready"
			style = successStyle
		case "connecting":
			// Animated spinner based on time
			spinners := []string{"◐", "◓", "◑", "◒"}
			idx := int(time.Since(m.startupTime).Milliseconds()/200) % len(spinners)
			icon = spinners[idx]
			statusText = "Connecting..."
			style = connectingStyle
		case "failed":
			icon = "✗"
			statusText = "Failed"
			style = failedStyle
		default:
			icon = "○"
			statusText = "Pending"
			style = mutedStyle
		}

		sb.WriteString(fmt.Sprintf("  %s %s %s\n",
			style.Render(icon),
			mutedStyle.Render(step.Name),
			style.Render(statusText),
		))
	}

	sb.WriteString("\n")
	elapsed := time.Since(m.startupTime).Round(time.Second)
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("  Elapsed: %s", elapsed)))
	sb.WriteString("\n\n")

	sb.WriteString(mutedStyle.Render("  Waiting for the first opportunity poll..."))
	sb.WriteString("\n")

	return sb.String()
}
