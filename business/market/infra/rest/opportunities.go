package rest

import (
	"context"
	"fmt"
	"time"

	"github.com/fd1az/trade-console/business/market/domain"
	trading "github.com/fd1az/trade-console/business/trading/domain"
	"github.com/fd1az/trade-console/internal/catalog"
	"github.com/fd1az/trade-console/internal/httpclient"
	"github.com/fd1az/trade-console/internal/logger"
	"github.com/shopspring/decimal"
)

const opportunityFetchLimit = "20"

// AIAgentsClient talks to the AI agent system endpoints.
type AIAgentsClient struct {
	hc      httpclient.Client
	log     logger.LoggerInterface
	storeID string
}

// NewAIAgentsClient creates the AI agents client. A non-empty storeID scopes
// opportunity listings to that store.
func NewAIAgentsClient(hc httpclient.Client, log logger.LoggerInterface) *AIAgentsClient {
	return &AIAgentsClient{hc: hc, log: log}
}

// ScopeToStore limits opportunity listings to one store. An empty ID clears
// the scope.
func (c *AIAgentsClient) ScopeToStore(storeID string) {
	c.storeID = storeID
}

// opportunityDTO is the backend's nested opportunity shape.
type opportunityDTO struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Opportunity struct {
		Type            string          `json:"type"`
		Confidence      float64         `json:"confidence"`
		PotentialProfit decimal.Decimal `json:"potential_profit"`
		SourceStore     string          `json:"source_store"`
		TargetStore     string          `json:"target_store"`
		Quantity        int             `json:"quantity"`
		Reasoning       string          `json:"reasoning"`
		Urgency         string          `json:"urgency"`
		SourceInventory int             `json:"source_inventory"`
		TargetInventory int             `json:"target_inventory"`
	} `json:"opportunity"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

// flatten converts the nested DTO into the domain opportunity.
func (dto opportunityDTO) flatten(index int) trading.Opportunity {
	id := dto.ID
	if id == "" {
		// Backends occasionally omit the AI-generated id.
		id = fmt.Sprintf("%s-%d", dto.ProductID, index)
	}

	return trading.Opportunity{
		ID:              id,
		ProductID:       catalog.ProductID(dto.ProductID),
		ProductName:     dto.ProductName,
		Type:            trading.OpportunityType(dto.Opportunity.Type),
		SourceStore:     catalog.StoreID(dto.Opportunity.SourceStore),
		TargetStore:     catalog.StoreID(dto.Opportunity.TargetStore),
		Quantity:        dto.Opportunity.Quantity,
		PotentialProfit: dto.Opportunity.PotentialProfit,
		Confidence:      dto.Opportunity.Confidence,
		Urgency:         trading.Urgency(dto.Opportunity.Urgency),
		Reasoning:       dto.Opportunity.Reasoning,
		Status:          trading.StatusPending,
		Timestamp:       dto.Timestamp,
		SourceInventory: dto.Opportunity.SourceInventory,
		TargetInventory: dto.Opportunity.TargetInventory,
	}
}

// FetchOpportunities lists the AI's current trade proposals.
func (c *AIAgentsClient) FetchOpportunities(ctx context.Context) ([]trading.Opportunity, error) {
	req := c.hc.NewRequestWithOptions(httpclient.WithLabels(&httpclient.Label{Key: "resource", Value: "opportunities"})).
		SetQueryParam("limit", opportunityFetchLimit)
	if c.storeID != "" {
		req.SetQueryParam("storeId", c.storeID)
	}

	resp, err := req.Get(ctx, "/v1/ai-agents/opportunities")
	if err := check(resp, err, "listing opportunities"); err != nil {
		return nil, err
	}

	var payload struct {
		Opportunities []opportunityDTO `json:"opportunities"`
	}
	if err := decode(resp.Body(), &payload); err != nil {
		return nil, err
	}

	opps := make([]trading.Opportunity, 0, len(payload.Opportunities))
	for i, dto := range payload.Opportunities {
		opps = append(opps, dto.flatten(i))
	}
	return opps, nil
}

// MarkProcessed tells the AI system an opportunity has been decided.
func (c *AIAgentsClient) MarkProcessed(ctx context.Context, opportunityID string, verdict trading.Status, tradeID, bidID string) error {
	body := map[string]any{
		"decision": string(verdict),
	}
	if tradeID != "" {
		body["tradeId"] = tradeID
	}
	if bidID != "" {
		body["bidId"] = bidID
	}

	resp, err := c.hc.NewRequest().
		SetBody(body).
		Post(ctx, "/v1/ai-agents/opportunities/"+opportunityID+"/process")
	return check(resp, err, "marking opportunity processed")
}

// Status fetches the AI agent system status.
func (c *AIAgentsClient) Status(ctx context.Context) (domain.AISystemStatus, error) {
	var status domain.AISystemStatus
	resp, err := c.hc.NewRequest().Get(ctx, "/v1/ai-agents/status")
	if err := check(resp, err, "fetching ai status"); err != nil {
		return status, err
	}
	if err := decode(resp.Body(), &status); err != nil {
		return status, err
	}
	return status, nil
}

// Health fetches the AI subsystem health report.
func (c *AIAgentsClient) Health(ctx context.Context) (domain.AISystemHealth, error) {
	var health domain.AISystemHealth
	resp, err := c.hc.NewRequest().Get(ctx, "/v1/ai-agents/health")
	if err := check(resp, err, "fetching ai health"); err != nil {
		return health, err
	}
	if err := decode(resp.Body(), &health); err != nil {
		return health, err
	}
	return health, nil
}

// ProductInsight fetches the AI's current analysis of one product.
func (c *AIAgentsClient) ProductInsight(ctx context.Context, productID string) (domain.ProductInsight, error) {
	var insight domain.ProductInsight
	resp, err := c.hc.NewRequest().Get(ctx, "/v1/ai-agents/products/"+productID)
	if err := check(resp, err, "fetching product insight"); err != nil {
		return insight, err
	}
	if err := decode(resp.Body(), &insight); err != nil {
		return insight, err
	}
	return insight, nil
}
