package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/fd1az/trade-console/business/trading/domain"
	"github.com/fd1az/trade-console/internal/apperror"
	"github.com/fd1az/trade-console/internal/logger"
)

// SagaState tracks where a decision is in its lifecycle.
type SagaState string

const (
	SagaSubmitting SagaState = "submitting"
	SagaCommitted  SagaState = "committed"
	SagaRolledBack SagaState = "rolled_back"
)

// Workflow runs the approve/reject decision saga. Approvals create a trade,
// place a marketplace bid and record the decision; any step failing rolls
// the opportunity back into the book. At most one decision per opportunity
// is in flight at a time, and a committed opportunity can never be decided
// twice.
type Workflow struct {
	book      *Book
	trades    TradeGateway
	bids      BidGateway
	decisions DecisionRecorder
	processor OpportunityProcessor
	notifier  Notifier
	log       logger.LoggerInterface

	mu    sync.Mutex
	sagas map[string]SagaState
}

// NewWorkflow wires the decision saga over its gateways.
func NewWorkflow(
	book *Book,
	trades TradeGateway,
	bids BidGateway,
	decisions DecisionRecorder,
	processor OpportunityProcessor,
	notifier Notifier,
	log logger.LoggerInterface,
) *Workflow {
	return &Workflow{
		book:      book,
		trades:    trades,
		bids:      bids,
		decisions: decisions,
		processor: processor,
		notifier:  notifier,
		log:       log,
		sagas:     make(map[string]SagaState),
	}
}

// Book returns the pending opportunity book the workflow operates on.
func (w *Workflow) Book() *Book {
	return w.book
}

// SagaState reports the last known state of a decision, if any.
func (w *Workflow) SagaState(opportunityID string) (SagaState, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	s, ok := w.sagas[opportunityID]
	return s, ok
}

// begin claims the in-flight slot for an opportunity. It refuses while a
// decision is submitting or after one has committed; a rolled back decision
// may be retried.
func (w *Workflow) begin(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.sagas[id] {
	case SagaSubmitting, SagaCommitted:
		return false
	}
	w.sagas[id] = SagaSubmitting
	return true
}

func (w *Workflow) finish(id string, state SagaState) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sagas[id] = state
}

// Approve executes the approval saga for an opportunity. The opportunity is
// removed from the book before any backend call and reinserted at the head
// if a required step fails.
func (w *Workflow) Approve(ctx context.Context, o domain.Opportunity) error {
	if !o.Actionable() {
		return apperror.New(apperror.CodeOpportunityNotActionable,
			apperror.WithContext("opportunity "+o.ID))
	}
	if !w.begin(o.ID) {
		w.log.Warn(ctx, "decision already in flight", "opportunity_id", o.ID)
		return apperror.New(apperror.CodeDecisionInFlight,
			apperror.WithContext("opportunity "+o.ID))
	}

	w.book.Remove(o.ID)

	tradeID, err := w.trades.CreateTrade(ctx, o)
	if err != nil {
		return w.rollback(ctx, o, apperror.CodeTradeCreateFailed, err)
	}

	bidID, err := w.bids.PlaceBid(ctx, o, tradeID)
	if err != nil {
		return w.rollback(ctx, o, apperror.CodeBidCreateFailed, err)
	}

	d := Decision{Opportunity: o, Verdict: domain.StatusApproved, TradeID: tradeID, BidID: bidID}
	if err := w.decisions.RecordDecision(ctx, d); err != nil {
		return w.rollback(ctx, o, apperror.CodeDecisionSaveFailed, err)
	}

	// Advisory only. The trade and bid already exist.
	if err := w.processor.MarkProcessed(ctx, o.ID, domain.StatusApproved, tradeID, bidID); err != nil {
		w.log.Warn(ctx, "failed to mark opportunity processed",
			"opportunity_id", o.ID, "error", err.Error())
	}

	w.finish(o.ID, SagaCommitted)
	w.log.Info(ctx, "opportunity approved",
		"opportunity_id", o.ID, "trade_id", tradeID, "bid_id", bidID)
	w.notifier.Approved(fmt.Sprintf(
		"Trade approved: %d units of %s from %s to %s (trade %s, bid %s)",
		o.Quantity, o.ProductID, o.SourceStore, o.TargetStore, tradeID, bidID))
	return nil
}

// Reject executes the rejection saga. Only the decision record is written;
// no trade or bid is created.
func (w *Workflow) Reject(ctx context.Context, o domain.Opportunity) error {
	if !w.begin(o.ID) {
		w.log.Warn(ctx, "decision already in flight", "opportunity_id", o.ID)
		return apperror.New(apperror.CodeDecisionInFlight,
			apperror.WithContext("opportunity "+o.ID))
	}

	w.book.Remove(o.ID)

	d := Decision{Opportunity: o, Verdict: domain.StatusRejected}
	if err := w.decisions.RecordDecision(ctx, d); err != nil {
		return w.rollback(ctx, o, apperror.CodeDecisionSaveFailed, err)
	}

	if err := w.processor.MarkProcessed(ctx, o.ID, domain.StatusRejected, "", ""); err != nil {
		w.log.Warn(ctx, "failed to mark opportunity processed",
			"opportunity_id", o.ID, "error", err.Error())
	}

	w.finish(o.ID, SagaCommitted)
	w.log.Info(ctx, "opportunity rejected", "opportunity_id", o.ID)
	w.notifier.Rejected(fmt.Sprintf("Opportunity %s rejected", o.ID))
	return nil
}

// rollback restores the opportunity to the head of the book and reports the
// failure.
func (w *Workflow) rollback(ctx context.Context, o domain.Opportunity, code apperror.Code, cause error) error {
	w.book.ReinsertFront(o)
	w.finish(o.ID, SagaRolledBack)

	appErr := apperror.Wrap(cause, code, "opportunity "+o.ID)
	w.log.Error(ctx, "decision rolled back",
		"opportunity_id", o.ID, "code", string(code), "error", cause.Error())
	w.notifier.Failed(fmt.Sprintf("Decision failed for %s: %s", o.ID, appErr.Error()))
	return appErr
}
