package app_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	logistics "github.com/fd1az/trade-console/business/logistics/domain"
	"github.com/fd1az/trade-console/business/trading/app"
	"github.com/fd1az/trade-console/business/trading/domain"
	"github.com/fd1az/trade-console/internal/apperror"
	"github.com/fd1az/trade-console/internal/catalog"
	"github.com/fd1az/trade-console/internal/logger"
	"github.com/shopspring/decimal"
)

type fakeGateways struct {
	mu sync.Mutex

	tradeCalls    int
	bidCalls      int
	decisionCalls int
	processCalls  int

	tradeErr    error
	bidErr      error
	decisionErr error
	processErr  error

	lastDecision app.Decision
}

func (f *fakeGateways) CreateTrade(_ context.Context, _ domain.Opportunity) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tradeCalls++
	if f.tradeErr != nil {
		return "", f.tradeErr
	}
	return "trade-1", nil
}

func (f *fakeGateways) PlaceBid(_ context.Context, _ domain.Opportunity, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bidCalls++
	if f.bidErr != nil {
		return "", f.bidErr
	}
	return "bid-1", nil
}

func (f *fakeGateways) RecordDecision(_ context.Context, d app.Decision) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decisionCalls++
	if f.decisionErr != nil {
		return f.decisionErr
	}
	f.lastDecision = d
	return nil
}

func (f *fakeGateways) MarkProcessed(_ context.Context, _ string, _ domain.Status, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processCalls++
	return f.processErr
}

type fakeNotifier struct {
	mu       sync.Mutex
	approved []string
	rejected []string
	failed   []string
}

func (n *fakeNotifier) Approved(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.approved = append(n.approved, msg)
}

func (n *fakeNotifier) Rejected(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rejected = append(n.rejected, msg)
}

func (n *fakeNotifier) Failed(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failed = append(n.failed, msg)
}

func testOpp(id string) domain.Opportunity {
	return domain.Opportunity{
		ID:              id,
		ProductID:       catalog.IDFrozenChips,
		Type:            domain.TypeArbitrage,
		SourceStore:     catalog.IDDowntownHub,
		TargetStore:     catalog.IDNorthWarehouse,
		Quantity:        10,
		PotentialProfit: decimal.NewFromInt(100),
		Urgency:         domain.UrgencyMedium,
		Status:          domain.StatusPending,
	}
}

func newWorkflow(gw *fakeGateways, n *fakeNotifier) (*app.Workflow, *app.Book) {
	book := app.NewBook()
	log := logger.New(io.Discard, logger.LevelError, "test", nil)
	wf := app.NewWorkflow(book, gw, gw, gw, gw, n, log)
	return wf, book
}

func TestWorkflow_ApproveHappyPath(t *testing.T) {
	gw := &fakeGateways{}
	n := &fakeNotifier{}
	wf, book := newWorkflow(gw, n)

	opp := testOpp("opp-1")
	book.Replace([]domain.Opportunity{opp})

	if err := wf.Approve(context.Background(), opp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gw.tradeCalls != 1 || gw.bidCalls != 1 || gw.decisionCalls != 1 || gw.processCalls != 1 {
		t.Errorf("unexpected call counts: trades=%d bids=%d decisions=%d process=%d",
			gw.tradeCalls, gw.bidCalls, gw.decisionCalls, gw.processCalls)
	}
	if gw.lastDecision.Verdict != domain.StatusApproved {
		t.Errorf("expected approved decision, got %s", gw.lastDecision.Verdict)
	}
	if gw.lastDecision.TradeID != "trade-1" || gw.lastDecision.BidID != "bid-1" {
		t.Errorf("decision missing ids: %+v", gw.lastDecision)
	}
	if book.Len() != 0 {
		t.Errorf("expected empty book, got %d entries", book.Len())
	}
	if state, _ := wf.SagaState("opp-1"); state != app.SagaCommitted {
		t.Errorf("expected committed, got %s", state)
	}
	if len(n.approved) != 1 {
		t.Errorf("expected one approval notification, got %d", len(n.approved))
	}
}

func TestWorkflow_DuplicateApproveRefused(t *testing.T) {
	gw := &fakeGateways{}
	wf, book := newWorkflow(gw, &fakeNotifier{})

	opp := testOpp("opp-1")
	book.Replace([]domain.Opportunity{opp})

	if err := wf.Approve(context.Background(), opp); err != nil {
		t.Fatalf("first approve failed: %v", err)
	}

	err := wf.Approve(context.Background(), opp)
	if apperror.GetCode(err) != apperror.CodeDecisionInFlight {
		t.Fatalf("expected DECISION_IN_FLIGHT, got %v", err)
	}
	if gw.tradeCalls != 1 {
		t.Errorf("expected a single trade creation, got %d", gw.tradeCalls)
	}
}

func TestWorkflow_TradeFailureRollsBack(t *testing.T) {
	gw := &fakeGateways{tradeErr: errors.New("backend down")}
	n := &fakeNotifier{}
	wf, book := newWorkflow(gw, n)

	first := testOpp("opp-1")
	second := testOpp("opp-2")
	book.Replace([]domain.Opportunity{second})
	book.ReinsertFront(first)

	err := wf.Approve(context.Background(), first)
	if apperror.GetCode(err) != apperror.CodeTradeCreateFailed {
		t.Fatalf("expected TRADE_CREATE_FAILED, got %v", err)
	}

	// Rolled back to the head, exactly once.
	opps := book.List()
	if len(opps) != 2 || opps[0].ID != "opp-1" {
		t.Fatalf("expected opp-1 reinserted at head, got %+v", opps)
	}
	if gw.bidCalls != 0 || gw.decisionCalls != 0 {
		t.Errorf("later saga steps should not run: bids=%d decisions=%d", gw.bidCalls, gw.decisionCalls)
	}
	if len(n.failed) != 1 {
		t.Errorf("expected one failure notification, got %d", len(n.failed))
	}

	// A rolled back decision may be retried.
	gw.tradeErr = nil
	if err := wf.Approve(context.Background(), first); err != nil {
		t.Fatalf("retry after rollback failed: %v", err)
	}
}

func TestWorkflow_DecisionSaveFailureRollsBack(t *testing.T) {
	gw := &fakeGateways{decisionErr: errors.New("save failed")}
	wf, book := newWorkflow(gw, &fakeNotifier{})

	opp := testOpp("opp-1")
	book.Replace([]domain.Opportunity{opp})

	err := wf.Approve(context.Background(), opp)
	if apperror.GetCode(err) != apperror.CodeDecisionSaveFailed {
		t.Fatalf("expected DECISION_SAVE_FAILED, got %v", err)
	}
	if gw.tradeCalls != 1 || gw.bidCalls != 1 {
		t.Errorf("trade and bid should have been attempted: trades=%d bids=%d", gw.tradeCalls, gw.bidCalls)
	}
	if book.Len() != 1 {
		t.Errorf("expected opportunity back in book, got %d entries", book.Len())
	}
	if state, _ := wf.SagaState("opp-1"); state != app.SagaRolledBack {
		t.Errorf("expected rolled_back, got %s", state)
	}
}

func TestWorkflow_RejectRecordsNoTradeOrBid(t *testing.T) {
	gw := &fakeGateways{}
	n := &fakeNotifier{}
	wf, book := newWorkflow(gw, n)

	opp := testOpp("opp-1")
	book.Replace([]domain.Opportunity{opp})

	if err := wf.Reject(context.Background(), opp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gw.tradeCalls != 0 || gw.bidCalls != 0 {
		t.Errorf("reject must not create trades or bids: trades=%d bids=%d", gw.tradeCalls, gw.bidCalls)
	}
	if gw.lastDecision.Verdict != domain.StatusRejected {
		t.Errorf("expected rejected decision, got %s", gw.lastDecision.Verdict)
	}
	if gw.lastDecision.TradeID != "" || gw.lastDecision.BidID != "" {
		t.Errorf("rejection must not carry ids: %+v", gw.lastDecision)
	}
	if len(n.rejected) != 1 {
		t.Errorf("expected one rejection notification, got %d", len(n.rejected))
	}
}

func TestWorkflow_ProcessFailureIsAdvisory(t *testing.T) {
	gw := &fakeGateways{processErr: errors.New("notify failed")}
	wf, book := newWorkflow(gw, &fakeNotifier{})

	opp := testOpp("opp-1")
	book.Replace([]domain.Opportunity{opp})

	if err := wf.Approve(context.Background(), opp); err != nil {
		t.Fatalf("process failure must not fail the saga: %v", err)
	}
	if state, _ := wf.SagaState("opp-1"); state != app.SagaCommitted {
		t.Errorf("expected committed, got %s", state)
	}
}

func TestWorkflow_ConcurrentDistinctApprovals(t *testing.T) {
	gw := &fakeGateways{}
	wf, book := newWorkflow(gw, &fakeNotifier{})

	opps := []domain.Opportunity{testOpp("opp-1"), testOpp("opp-2"), testOpp("opp-3")}
	book.Replace(opps)

	var wg sync.WaitGroup
	errs := make([]error, len(opps))
	for i, o := range opps {
		wg.Add(1)
		go func(i int, o domain.Opportunity) {
			defer wg.Done()
			errs[i] = wf.Approve(context.Background(), o)
		}(i, o)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("approval %d failed: %v", i, err)
		}
	}
	if gw.tradeCalls != 3 {
		t.Errorf("expected 3 trades, got %d", gw.tradeCalls)
	}
	if book.Len() != 0 {
		t.Errorf("expected empty book, got %d entries", book.Len())
	}
}

func TestWorkflow_NotActionableRefused(t *testing.T) {
	gw := &fakeGateways{}
	wf, _ := newWorkflow(gw, &fakeNotifier{})

	opp := testOpp("opp-1")
	opp.TargetStore = opp.SourceStore

	err := wf.Approve(context.Background(), opp)
	if apperror.GetCode(err) != apperror.CodeOpportunityNotActionable {
		t.Fatalf("expected OPPORTUNITY_NOT_ACTIONABLE, got %v", err)
	}
	if gw.tradeCalls != 0 {
		t.Errorf("no trade should be created, got %d", gw.tradeCalls)
	}
}

type fakeFeed struct {
	opps []domain.Opportunity
	err  error
}

func (f *fakeFeed) FetchOpportunities(_ context.Context) ([]domain.Opportunity, error) {
	return f.opps, f.err
}

func newService(feed *fakeFeed, gw *fakeGateways) (*app.Service, *app.Book, *app.Workflow) {
	stores := catalog.DefaultStores()
	products := catalog.DefaultProducts()
	book := app.NewBook()
	log := logger.New(io.Discard, logger.LevelError, "test", nil)
	wf := app.NewWorkflow(book, gw, gw, gw, gw, &fakeNotifier{}, log)
	valuator := domain.NewValuator(logistics.NewCalculator(stores, products))
	svc := app.NewService(feed, book, valuator, wf, stores, log)
	return svc, book, wf
}

func TestService_RefreshDropsUnactionable(t *testing.T) {
	broken := testOpp("opp-2")
	broken.SourceStore = "null"

	feed := &fakeFeed{opps: []domain.Opportunity{testOpp("opp-1"), broken}}
	svc, book, _ := newService(feed, &fakeGateways{})

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if book.Len() != 1 {
		t.Fatalf("expected 1 actionable opportunity, got %d", book.Len())
	}
	if _, ok := book.Get("opp-1"); !ok {
		t.Error("expected opp-1 in book")
	}
}

func TestService_RefreshExcludesDecided(t *testing.T) {
	feed := &fakeFeed{opps: []domain.Opportunity{testOpp("opp-1"), testOpp("opp-2")}}
	svc, book, wf := newService(feed, &fakeGateways{})

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if err := wf.Approve(context.Background(), mustGet(t, book, "opp-1")); err != nil {
		t.Fatalf("approve: %v", err)
	}

	// The backend still returns the approved opportunity on the next poll.
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if _, ok := book.Get("opp-1"); ok {
		t.Error("committed opportunity must not be resurrected by polling")
	}
	if _, ok := book.Get("opp-2"); !ok {
		t.Error("expected opp-2 to survive refresh")
	}
}

func TestService_PendingFilters(t *testing.T) {
	big := testOpp("opp-big")
	big.PotentialProfit = decimal.NewFromInt(15000)

	urgent := testOpp("opp-urgent")
	urgent.Urgency = domain.UrgencyCritical
	urgent.SourceStore = catalog.IDCentralDistribution
	urgent.TargetStore = catalog.IDWestBranch

	plain := testOpp("opp-plain")

	feed := &fakeFeed{opps: []domain.Opportunity{big, urgent, plain}}
	svc, _, _ := newService(feed, &fakeGateways{})
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if got := svc.Pending(app.Filter{Mode: app.FilterAll}); len(got) != 3 {
		t.Errorf("all: expected 3, got %d", len(got))
	}

	got := svc.Pending(app.Filter{Mode: app.FilterHighProfit})
	if len(got) != 1 || got[0].ID != "opp-big" {
		t.Errorf("high-profit: expected [opp-big], got %+v", ids(got))
	}

	got = svc.Pending(app.Filter{Mode: app.FilterUrgent})
	if len(got) != 1 || got[0].ID != "opp-urgent" {
		t.Errorf("urgent: expected [opp-urgent], got %+v", ids(got))
	}

	got = svc.Pending(app.Filter{Mode: app.FilterAll, Store: "west"})
	if len(got) != 1 || got[0].ID != "opp-urgent" {
		t.Errorf("store filter: expected [opp-urgent], got %+v", ids(got))
	}
}

func TestService_PendingCarriesValuation(t *testing.T) {
	feed := &fakeFeed{opps: []domain.Opportunity{testOpp("opp-1")}}
	svc, _, _ := newService(feed, &fakeGateways{})
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	got := svc.Pending(app.Filter{Mode: app.FilterAll})
	if len(got) != 1 {
		t.Fatalf("expected 1 opportunity, got %d", len(got))
	}
	if got[0].Valuation.DistanceKM != 2.9 {
		t.Errorf("expected distance 2.9, got %v", got[0].Valuation.DistanceKM)
	}
	if !got[0].Valuation.TransportCost.Total.Equal(decimal.RequireFromString("38.20")) {
		t.Errorf("expected cost 38.20, got %s", got[0].Valuation.TransportCost.Total)
	}
}

func mustGet(t *testing.T, book *app.Book, id string) domain.Opportunity {
	t.Helper()
	o, ok := book.Get(id)
	if !ok {
		t.Fatalf("opportunity %s not in book", id)
	}
	return o
}

func ids(opps []app.PricedOpportunity) []string {
	out := make([]string, len(opps))
	for i, o := range opps {
		out[i] = o.ID
	}
	return out
}
