package rest

import (
	"context"

	"github.com/fd1az/trade-console/business/market/domain"
	"github.com/fd1az/trade-console/internal/httpclient"
	"github.com/fd1az/trade-console/internal/logger"
)

// AgentsClient manages per-product trading agents.
type AgentsClient struct {
	hc  httpclient.Client
	log logger.LoggerInterface
}

// NewAgentsClient creates the agents client.
func NewAgentsClient(hc httpclient.Client, log logger.LoggerInterface) *AgentsClient {
	return &AgentsClient{hc: hc, log: log}
}

// Active lists the currently running agents.
func (c *AgentsClient) Active(ctx context.Context) ([]domain.Agent, error) {
	resp, err := c.hc.NewRequest().Get(ctx, "/v1/agents")
	if err := check(resp, err, "listing agents"); err != nil {
		return nil, err
	}

	var agents []domain.Agent
	if err := decode(resp.Body(), &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

// Start starts an agent.
func (c *AgentsClient) Start(ctx context.Context, agentID string) error {
	resp, err := c.hc.NewRequest().Post(ctx, "/v1/agents/"+agentID+"/start")
	return check(resp, err, "starting agent")
}

// Stop stops an agent.
func (c *AgentsClient) Stop(ctx context.Context, agentID string) error {
	resp, err := c.hc.NewRequest().Post(ctx, "/v1/agents/"+agentID+"/stop")
	return check(resp, err, "stopping agent")
}

// Metrics fetches an agent's performance metrics.
func (c *AgentsClient) Metrics(ctx context.Context, agentID string) (domain.AgentMetrics, error) {
	var metrics domain.AgentMetrics
	resp, err := c.hc.NewRequest().Get(ctx, "/v1/agents/"+agentID+"/metrics")
	if err := check(resp, err, "fetching agent metrics"); err != nil {
		return metrics, err
	}
	if err := decode(resp.Body(), &metrics); err != nil {
		return metrics, err
	}
	return metrics, nil
}
