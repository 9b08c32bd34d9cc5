// Package ui provides the Bubble Tea TUI for the trade console.
package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fd1az/trade-console/internal/catalog"
)

// requestTimeout bounds every backend call issued from the TUI.
const requestTimeout = 10 * time.Second

// tickCmd returns a command that sends a tick every 100ms for smooth animations.
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// pollTickCmd schedules the next opportunity refresh.
func pollTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return PollTickMsg{}
	})
}

// statsTickCmd schedules the next refresh of the slower-moving screens.
func statsTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return StatsTickMsg{}
	})
}

// refreshOpportunitiesCmd pulls the pending book from the backend.
func (m Model) refreshOpportunitiesCmd() tea.Cmd {
	svc := m.deps.Trading
	filter := m.filter
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := svc.Refresh(ctx); err != nil {
			return ErrorMsg{Error: err}
		}
		return OpportunitiesMsg{Opportunities: svc.Pending(filter)}
	}
}

// overviewCmd fetches the aggregated dashboard overview.
func (m Model) overviewCmd() tea.Cmd {
	svc := m.deps.Market
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return OverviewMsg{Overview: svc.Overview(ctx)}
	}
}

// marketplaceCmd fetches the bid and match listings. Either side may fail
// independently; the screen shows whatever arrived.
func (m Model) marketplaceCmd() tea.Cmd {
	svc := m.deps.Market
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var out MarketplaceMsg
		if bids, err := svc.Bids(ctx); err == nil {
			out.Bids = bids
		}
		if matches, err := svc.Matches(ctx); err == nil {
			out.Matches = matches
		}
		return out
	}
}

// analyticsCmd fetches the analytics screen data, including the cached
// synthetic overview series for the current role scope.
func (m Model) analyticsCmd() tea.Cmd {
	svc := m.deps.Market
	charts := m.deps.Charts
	scope := m.storeScope()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		msg := AnalyticsMsg{
			Revenue: svc.Revenue(ctx, "7d"),
			Trends:  svc.InventoryTrends(ctx),
		}
		if points, err := charts.Load(scope); err == nil || len(points) > 0 {
			msg.Chart = points
		}
		return msg
	}
}

// insightsCmd fetches the AI system status plus per-product insights for the
// well-known catalog.
func (m Model) insightsCmd() tea.Cmd {
	svc := m.deps.Market
	products := catalog.DefaultProducts().All()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var msg InsightsMsg
		if status, err := svc.AIStatus(ctx); err == nil {
			msg.Status = status
		}
		if health, err := svc.AIHealth(ctx); err == nil {
			msg.Health = health
		}
		for _, p := range products {
			if insight, err := svc.ProductInsight(ctx, string(p.ID)); err == nil {
				msg.Insights = append(msg.Insights, insight)
			}
		}
		return msg
	}
}

// approveCmd runs the approval saga for the identified opportunity.
func (m Model) approveCmd(opportunityID string) tea.Cmd {
	svc := m.deps.Trading
	filter := m.filter
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := svc.Approve(ctx, opportunityID)
		return DecisionDoneMsg{
			OpportunityID: opportunityID,
			Err:           err,
			remaining:     svc.Pending(filter),
		}
	}
}

// rejectCmd records a rejection for the identified opportunity.
func (m Model) rejectCmd(opportunityID string) tea.Cmd {
	svc := m.deps.Trading
	filter := m.filter
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := svc.Reject(ctx, opportunityID)
		return DecisionDoneMsg{
			OpportunityID: opportunityID,
			Err:           err,
			remaining:     svc.Pending(filter),
		}
	}
}
