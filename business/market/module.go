// Package market implements the market bounded context: backend REST access
// and the realtime stream session.
package market

import (
	"context"

	"github.com/fd1az/trade-console/business/market/app"
	marketDI "github.com/fd1az/trade-console/business/market/di"
	"github.com/fd1az/trade-console/business/market/infra/rest"
	"github.com/fd1az/trade-console/business/market/infra/stream"
	"github.com/fd1az/trade-console/internal/catalog"
	"github.com/fd1az/trade-console/internal/config"
	"github.com/fd1az/trade-console/internal/di"
	"github.com/fd1az/trade-console/internal/httpclient"
	"github.com/fd1az/trade-console/internal/logger"
	"github.com/fd1az/trade-console/internal/monolith"
	"github.com/fd1az/trade-console/internal/ratelimit"
	"github.com/fd1az/trade-console/internal/wsconn"
)

// Module implements the market bounded context.
type Module struct{}

// RegisterServices registers all market services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register shared backend HTTP client - private dependency
	di.RegisterToken(c, marketDI.HTTPClient, func(sr di.ServiceRegistry) httpclient.Client {
		cfg := sr.Get("config").(*config.Config)

		limiter := ratelimit.New(cfg.Backend.RateLimitRPS, cfg.Backend.RateLimitBurst)

		hc, err := httpclient.NewInstrumentedClient(
			httpclient.WithBaseURL(cfg.Backend.BaseURL),
			httpclient.WithProviderName("backend"),
			httpclient.WithRequestTimeout(cfg.Backend.Timeout),
			httpclient.WithLimiter(limiter),
		)
		if err != nil {
			panic("failed to create backend http client: " + err.Error())
		}
		return hc
	})

	// Register stream session (public - exposed to other modules)
	di.RegisterToken(c, marketDI.StreamSession, func(sr di.ServiceRegistry) *stream.Session {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		wsCfg := wsconn.DefaultConfig(cfg.Stream.URL, "market-stream")
		wsCfg.RetryInterval = cfg.Stream.RetryInterval
		wsCfg.MaxReconnects = cfg.Stream.MaxReconnects
		wsCfg.PingInterval = cfg.Stream.PingInterval
		wsCfg.ReadTimeout = cfg.Stream.ReadTimeout
		wsCfg.WriteTimeout = cfg.Stream.WriteTimeout

		conn, err := wsconn.New(wsCfg)
		if err != nil {
			panic("failed to create stream connection: " + err.Error())
		}

		session, err := stream.New(conn, log)
		if err != nil {
			panic("failed to create stream session: " + err.Error())
		}
		return session
	})

	// Register REST clients (public - the trading module drives the decision
	// saga through Trades, Marketplace, Decisions and AIAgents)
	di.RegisterToken(c, marketDI.Trades, func(sr di.ServiceRegistry) *rest.TradesClient {
		log := sr.Get("logger").(logger.LoggerInterface)
		return rest.NewTradesClient(marketDI.GetHTTPClient(sr), log)
	})
	di.RegisterToken(c, marketDI.Marketplace, func(sr di.ServiceRegistry) *rest.MarketplaceClient {
		log := sr.Get("logger").(logger.LoggerInterface)
		return rest.NewMarketplaceClient(marketDI.GetHTTPClient(sr), log)
	})
	di.RegisterToken(c, marketDI.Decisions, func(sr di.ServiceRegistry) *rest.DecisionsClient {
		log := sr.Get("logger").(logger.LoggerInterface)
		return rest.NewDecisionsClient(marketDI.GetHTTPClient(sr), log)
	})
	di.RegisterToken(c, marketDI.AIAgents, func(sr di.ServiceRegistry) *rest.AIAgentsClient {
		log := sr.Get("logger").(logger.LoggerInterface)
		return rest.NewAIAgentsClient(marketDI.GetHTTPClient(sr), log)
	})
	di.RegisterToken(c, marketDI.Stores, func(sr di.ServiceRegistry) *rest.StoresClient {
		log := sr.Get("logger").(logger.LoggerInterface)
		stores := sr.Get("stores").(*catalog.StoreRegistry)
		return rest.NewStoresClient(marketDI.GetHTTPClient(sr), log, stores)
	})

	// Register MarketService (public - exposed to the UI)
	di.RegisterToken(c, marketDI.MarketService, func(sr di.ServiceRegistry) *app.MarketService {
		log := sr.Get("logger").(logger.LoggerInterface)
		hc := marketDI.GetHTTPClient(sr)

		return app.NewMarketService(
			rest.NewAgentsClient(hc, log),
			marketDI.GetMarketplace(sr),
			rest.NewProductsClient(hc, log),
			marketDI.GetAIAgents(sr),
			rest.NewAnalyticsClient(hc, log),
			marketDI.GetDecisions(sr),
			log,
		)
	})

	return nil
}

// Startup initializes the market module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	log := mono.Logger()

	// Bring the stream up without blocking startup. The connection retries
	// on its own schedule and the console degrades to polling while down.
	session := marketDI.GetStreamSession(mono.Services())
	go func() {
		if err := session.Connect(ctx); err != nil {
			log.Warn(ctx, "stream connection failed, realtime updates disabled", "error", err.Error())
		}
	}()

	log.Info(ctx, "market module started")
	return nil
}
