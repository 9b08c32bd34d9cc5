package rest

import (
	"context"
	"strconv"

	"github.com/fd1az/trade-console/business/market/domain"
	"github.com/fd1az/trade-console/business/trading/app"
	"github.com/fd1az/trade-console/internal/httpclient"
	"github.com/fd1az/trade-console/internal/logger"
)

// DecisionsClient persists and queries operator trade decisions.
type DecisionsClient struct {
	hc  httpclient.Client
	log logger.LoggerInterface
}

// NewDecisionsClient creates the trade decisions client.
func NewDecisionsClient(hc httpclient.Client, log logger.LoggerInterface) *DecisionsClient {
	return &DecisionsClient{hc: hc, log: log}
}

// RecordDecision persists an operator verdict.
func (c *DecisionsClient) RecordDecision(ctx context.Context, d app.Decision) error {
	req := domain.NewDecisionRequest(d.Opportunity, d.Verdict, d.TradeID, d.BidID)

	resp, err := c.hc.NewRequestWithOptions(httpclient.WithLabels(&httpclient.Label{Key: "resource", Value: "decisions"})).
		SetBody(req).
		Post(ctx, "/v1/trade-decisions")
	if err := check(resp, err, "recording decision"); err != nil {
		return err
	}

	c.log.Debug(ctx, "decision recorded",
		"opportunity_id", d.Opportunity.ID, "decision", string(d.Verdict))
	return nil
}

// List fetches decision history.
func (c *DecisionsClient) List(ctx context.Context, f domain.DecisionFilter) ([]domain.DecisionRecord, error) {
	req := c.hc.NewRequest()
	if f.Decision != "" {
		req.SetQueryParam("decision", f.Decision)
	}
	if f.ProductID != "" {
		req.SetQueryParam("productId", f.ProductID)
	}
	if f.Limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		req.SetQueryParam("offset", strconv.Itoa(f.Offset))
	}

	resp, err := req.Get(ctx, "/v1/trade-decisions")
	if err := check(resp, err, "listing decisions"); err != nil {
		return nil, err
	}

	var records []domain.DecisionRecord
	if err := decode(resp.Body(), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Stats fetches the decision summary.
func (c *DecisionsClient) Stats(ctx context.Context) (domain.DecisionStats, error) {
	var stats domain.DecisionStats
	resp, err := c.hc.NewRequest().Get(ctx, "/v1/trade-decisions/stats/overview")
	if err := check(resp, err, "fetching decision stats"); err != nil {
		return stats, err
	}
	if err := decode(resp.Body(), &stats); err != nil {
		return stats, err
	}
	return stats, nil
}
