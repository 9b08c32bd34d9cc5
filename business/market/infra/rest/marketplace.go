package rest

import (
	"context"

	"github.com/fd1az/trade-console/business/market/domain"
	trading "github.com/fd1az/trade-console/business/trading/domain"
	"github.com/fd1az/trade-console/internal/apperror"
	"github.com/fd1az/trade-console/internal/httpclient"
	"github.com/fd1az/trade-console/internal/logger"
)

// MarketplaceClient talks to the marketplace bid and match endpoints.
type MarketplaceClient struct {
	hc  httpclient.Client
	log logger.LoggerInterface
}

// NewMarketplaceClient creates the marketplace client.
func NewMarketplaceClient(hc httpclient.Client, log logger.LoggerInterface) *MarketplaceClient {
	return &MarketplaceClient{hc: hc, log: log}
}

// PlaceBid places the marketplace bid backing an approved trade and returns
// the bid ID.
func (c *MarketplaceClient) PlaceBid(ctx context.Context, o trading.Opportunity, tradeID string) (string, error) {
	resp, err := c.hc.NewRequestWithOptions(httpclient.WithLabels(&httpclient.Label{Key: "resource", Value: "bids"})).
		SetBody(domain.NewBidRequest(o, tradeID)).
		Post(ctx, "/v1/marketplace/bids")
	if err := check(resp, err, "placing bid"); err != nil {
		return "", err
	}

	var created struct {
		ID    string `json:"id"`
		BidID string `json:"bidId"`
	}
	if err := decode(resp.Body(), &created); err != nil {
		return "", err
	}

	id := created.ID
	if id == "" {
		id = created.BidID
	}
	if id == "" {
		return "", apperror.New(apperror.CodeBackendBadResponse,
			apperror.WithContext("bid created without an id"))
	}

	c.log.Debug(ctx, "bid placed", "bid_id", id, "trade_id", tradeID)
	return id, nil
}

// Bids lists the currently active marketplace bids.
func (c *MarketplaceClient) Bids(ctx context.Context) ([]domain.Bid, error) {
	resp, err := c.hc.NewRequest().Get(ctx, "/v1/marketplace/bids")
	if err := check(resp, err, "listing bids"); err != nil {
		return nil, err
	}

	var bids []domain.Bid
	if err := decode(resp.Body(), &bids); err != nil {
		return nil, err
	}
	return bids, nil
}

// Matches lists completed bid matches.
func (c *MarketplaceClient) Matches(ctx context.Context) ([]domain.Match, error) {
	resp, err := c.hc.NewRequest().Get(ctx, "/v1/marketplace/matches")
	if err := check(resp, err, "listing matches"); err != nil {
		return nil, err
	}

	var matches []domain.Match
	if err := decode(resp.Body(), &matches); err != nil {
		return nil, err
	}
	return matches, nil
}
