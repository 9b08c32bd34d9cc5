package app

import (
	"context"

	"github.com/fd1az/trade-console/business/trading/domain"
	"github.com/fd1az/trade-console/internal/apperror"
	"github.com/fd1az/trade-console/internal/catalog"
	"github.com/fd1az/trade-console/internal/logger"
	"github.com/shopspring/decimal"
)

// OpportunityFeed pulls the current pending opportunities from the backend.
type OpportunityFeed interface {
	FetchOpportunities(ctx context.Context) ([]domain.Opportunity, error)
}

// FilterMode selects which subset of the book is shown.
type FilterMode string

const (
	FilterAll        FilterMode = "all"
	FilterHighProfit FilterMode = "high-profit"
	FilterUrgent     FilterMode = "urgent"
)

// highProfitThreshold is the gross profit above which an opportunity counts
// as high-profit.
var highProfitThreshold = decimal.NewFromInt(10000)

// Filter narrows the pending book for display.
type Filter struct {
	Mode  FilterMode
	Store string
}

// PricedOpportunity pairs an opportunity with its derived economics.
type PricedOpportunity struct {
	domain.Opportunity
	Valuation domain.Valuation
}

// Service is the trading context facade: it refreshes the pending book from
// the feed, values opportunities and delegates decisions to the workflow.
type Service struct {
	feed     OpportunityFeed
	book     *Book
	valuator *domain.Valuator
	workflow *Workflow
	stores   *catalog.StoreRegistry
	log      logger.LoggerInterface
}

// NewService wires the trading service.
func NewService(
	feed OpportunityFeed,
	book *Book,
	valuator *domain.Valuator,
	workflow *Workflow,
	stores *catalog.StoreRegistry,
	log logger.LoggerInterface,
) *Service {
	return &Service{
		feed:     feed,
		book:     book,
		valuator: valuator,
		workflow: workflow,
		stores:   stores,
		log:      log,
	}
}

// Refresh replaces the pending book with the feed's current view, dropping
// entries that cannot be acted on. Opportunities with an in-flight or
// committed decision are excluded so a slow poll cannot resurrect them.
func (s *Service) Refresh(ctx context.Context) error {
	opps, err := s.feed.FetchOpportunities(ctx)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeBackendError, "refreshing opportunities")
	}

	kept := make([]domain.Opportunity, 0, len(opps))
	for _, o := range opps {
		if !o.Actionable() {
			continue
		}
		if state, ok := s.workflow.SagaState(o.ID); ok && state != SagaRolledBack {
			continue
		}
		kept = append(kept, o)
	}

	s.book.Replace(kept)
	s.log.Debug(ctx, "opportunity book refreshed", "total", len(opps), "kept", len(kept))
	return nil
}

// Pending returns the filtered book in display order, each entry valued.
func (s *Service) Pending(f Filter) []PricedOpportunity {
	var out []PricedOpportunity
	for _, o := range s.book.List() {
		if !s.matches(o, f) {
			continue
		}
		out = append(out, PricedOpportunity{
			Opportunity: o,
			Valuation:   s.valuator.Value(o),
		})
	}
	return out
}

func (s *Service) matches(o domain.Opportunity, f Filter) bool {
	switch f.Mode {
	case FilterHighProfit:
		if !o.PotentialProfit.GreaterThan(highProfitThreshold) {
			return false
		}
	case FilterUrgent:
		if !o.IsUrgent() {
			return false
		}
	}
	return o.MatchesStoreFilter(f.Store, s.stores)
}

// Approve approves the identified pending opportunity.
func (s *Service) Approve(ctx context.Context, opportunityID string) error {
	o, ok := s.book.Get(opportunityID)
	if !ok {
		return apperror.New(apperror.CodeNotFound,
			apperror.WithContext("opportunity "+opportunityID))
	}
	return s.workflow.Approve(ctx, o)
}

// Reject rejects the identified pending opportunity.
func (s *Service) Reject(ctx context.Context, opportunityID string) error {
	o, ok := s.book.Get(opportunityID)
	if !ok {
		return apperror.New(apperror.CodeNotFound,
			apperror.WithContext("opportunity "+opportunityID))
	}
	return s.workflow.Reject(ctx, o)
}

// Value exposes the valuator for screens that price ad hoc rows.
func (s *Service) Value(o domain.Opportunity) domain.Valuation {
	return s.valuator.Value(o)
}
