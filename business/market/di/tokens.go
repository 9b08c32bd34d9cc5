// Package di contains dependency injection tokens for the market context.
package di

import (
	"github.com/fd1az/trade-console/business/market/app"
	"github.com/fd1az/trade-console/business/market/infra/rest"
	"github.com/fd1az/trade-console/business/market/infra/stream"
	"github.com/fd1az/trade-console/internal/di"
	"github.com/fd1az/trade-console/internal/httpclient"
)

// Public service tokens - exposed to other modules
var (
	MarketService = di.NewToken[*app.MarketService]("market.MarketService")
	StreamSession = di.NewToken[*stream.Session]("market.StreamSession")
	Trades        = di.NewToken[*rest.TradesClient]("market.Trades")
	Marketplace   = di.NewToken[*rest.MarketplaceClient]("market.Marketplace")
	Decisions     = di.NewToken[*rest.DecisionsClient]("market.Decisions")
	AIAgents      = di.NewToken[*rest.AIAgentsClient]("market.AIAgents")
	Stores        = di.NewToken[*rest.StoresClient]("market.Stores")
)

// Private dependency tokens - internal to market module
var (
	HTTPClient = di.NewToken[httpclient.Client]("market:httpClient")
)

// Helper functions for type-safe access
func GetMarketService(c di.ServiceRegistry) *app.MarketService {
	return di.GetToken(c, MarketService)
}

func GetStreamSession(c di.ServiceRegistry) *stream.Session {
	return di.GetToken(c, StreamSession)
}

func GetTrades(c di.ServiceRegistry) *rest.TradesClient {
	return di.GetToken(c, Trades)
}

func GetMarketplace(c di.ServiceRegistry) *rest.MarketplaceClient {
	return di.GetToken(c, Marketplace)
}

func GetDecisions(c di.ServiceRegistry) *rest.DecisionsClient {
	return di.GetToken(c, Decisions)
}

func GetAIAgents(c di.ServiceRegistry) *rest.AIAgentsClient {
	return di.GetToken(c, AIAgents)
}

func GetStores(c di.ServiceRegistry) *rest.StoresClient {
	return di.GetToken(c, Stores)
}

func GetHTTPClient(c di.ServiceRegistry) httpclient.Client {
	return di.GetToken(c, HTTPClient)
}
