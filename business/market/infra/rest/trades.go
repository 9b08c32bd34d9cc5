package rest

import (
	"context"

	"github.com/fd1az/trade-console/business/market/domain"
	trading "github.com/fd1az/trade-console/business/trading/domain"
	"github.com/fd1az/trade-console/internal/apperror"
	"github.com/fd1az/trade-console/internal/httpclient"
	"github.com/fd1az/trade-console/internal/logger"
)

// TradesClient creates trade records.
type TradesClient struct {
	hc  httpclient.Client
	log logger.LoggerInterface
}

// NewTradesClient creates the trades client.
func NewTradesClient(hc httpclient.Client, log logger.LoggerInterface) *TradesClient {
	return &TradesClient{hc: hc, log: log}
}

// CreateTrade submits a trade for an approved opportunity and returns the
// backend-assigned trade ID.
func (c *TradesClient) CreateTrade(ctx context.Context, o trading.Opportunity) (string, error) {
	resp, err := c.hc.NewRequestWithOptions(httpclient.WithLabels(&httpclient.Label{Key: "resource", Value: "trades"})).
		SetBody(domain.NewTradeRequest(o)).
		Post(ctx, "/v1/trades")
	if err := check(resp, err, "creating trade"); err != nil {
		return "", err
	}

	var created struct {
		ID      string `json:"id"`
		TradeID string `json:"tradeId"`
	}
	if err := decode(resp.Body(), &created); err != nil {
		return "", err
	}

	id := created.ID
	if id == "" {
		id = created.TradeID
	}
	if id == "" {
		return "", apperror.New(apperror.CodeBackendBadResponse,
			apperror.WithContext("trade created without an id"))
	}

	c.log.Debug(ctx, "trade created", "trade_id", id, "opportunity_id", o.ID)
	return id, nil
}
