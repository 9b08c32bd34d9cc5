// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparkRunes are the bar glyphs from lowest to highest.
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders a series of values as a one-line unicode chart.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	var sb strings.Builder
	for _, v := range values {
		idx := 0
		if max > min {
			idx = int((v - min) / (max - min) * float64(len(sparkRunes)-1))
		}
		sb.WriteRune(sparkRunes[idx])
	}
	return sb.String()
}

// BarChart renders labeled horizontal bars scaled to the widest value.
func BarChart(labels []string, values []float64, width int) string {
	if len(values) == 0 || len(labels) != len(values) {
		return ""
	}

	max := values[0]
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		max = 1
	}

	labelWidth := 0
	for _, l := range labels {
		if len(l) > labelWidth {
			labelWidth = len(l)
		}
	}

	barWidth := width - labelWidth - 14
	if barWidth < 10 {
		barWidth = 10
	}

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	var sb strings.Builder
	for i, v := range values {
		n := int(v / max * float64(barWidth))
		if n < 1 && v > 0 {
			n = 1
		}
		sb.WriteString(fmt.Sprintf("%-*s ", labelWidth, labels[i]))
		sb.WriteString(barStyle.Render(strings.Repeat("█", n)))
		sb.WriteString(mutedStyle.Render(fmt.Sprintf(" %.0f", v)))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
