// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ActivityFeed keeps the most recent activity lines for display.
type ActivityFeed struct {
	lines []string
	max   int
}

// NewActivityFeed creates an activity feed keeping the last max lines.
func NewActivityFeed(max int) *ActivityFeed {
	return &ActivityFeed{max: max}
}

// Add appends a timestamped activity line.
func (a *ActivityFeed) Add(message string) {
	line := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), message)
	a.lines = append(a.lines, line)
	if len(a.lines) > a.max {
		a.lines = a.lines[len(a.lines)-a.max:]
	}
}

// View renders the feed, newest last.
func (a *ActivityFeed) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	bidStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA"))
	matchStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("LIVE ACTIVITY"))
	sb.WriteString("\n\n")

	if len(a.lines) == 0 {
		sb.WriteString(mutedStyle.Render("  Waiting for marketplace events..."))
		return sb.String()
	}

	for _, line := range a.lines {
		switch {
		case strings.Contains(line, "Bid placed"):
			sb.WriteString(bidStyle.Render("  " + line))
		case strings.Contains(line, "Match"):
			sb.WriteString(matchStyle.Render("  " + line))
		default:
			sb.WriteString(mutedStyle.Render("  " + line))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
