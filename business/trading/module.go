// Package trading implements the trading bounded context: opportunity
// valuation and the operator decision workflow.
package trading

import (
	"context"

	logistics "github.com/fd1az/trade-console/business/logistics/domain"
	marketDI "github.com/fd1az/trade-console/business/market/di"
	"github.com/fd1az/trade-console/business/trading/app"
	tradingDI "github.com/fd1az/trade-console/business/trading/di"
	"github.com/fd1az/trade-console/business/trading/domain"
	"github.com/fd1az/trade-console/business/trading/infra"
	"github.com/fd1az/trade-console/internal/catalog"
	"github.com/fd1az/trade-console/internal/config"
	"github.com/fd1az/trade-console/internal/di"
	"github.com/fd1az/trade-console/internal/logger"
	"github.com/fd1az/trade-console/internal/monolith"
)

// Module implements the trading bounded context.
type Module struct{}

// RegisterServices registers all trading services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register pending opportunity book - private dependency
	di.RegisterToken(c, tradingDI.Book, func(sr di.ServiceRegistry) *app.Book {
		return app.NewBook()
	})

	// Register valuator over the catalog-backed logistics model - private dependency
	di.RegisterToken(c, tradingDI.Valuator, func(sr di.ServiceRegistry) *domain.Valuator {
		stores := sr.Get("stores").(*catalog.StoreRegistry)
		products := sr.Get("products").(*catalog.ProductRegistry)
		return domain.NewValuator(logistics.NewCalculator(stores, products))
	})

	// Register notifier - private dependency, picked by run mode
	di.RegisterToken(c, tradingDI.Notifier, func(sr di.ServiceRegistry) app.Notifier {
		cfg := sr.Get("config").(*config.Config)
		if cfg.Console.TUIMode {
			return infra.NewTUINotifier()
		}
		return infra.NewConsoleNotifier()
	})

	// Register decision workflow - private dependency
	di.RegisterToken(c, tradingDI.Workflow, func(sr di.ServiceRegistry) *app.Workflow {
		log := sr.Get("logger").(logger.LoggerInterface)

		return app.NewWorkflow(
			tradingDI.GetBook(sr),
			marketDI.GetTrades(sr),
			marketDI.GetMarketplace(sr),
			marketDI.GetDecisions(sr),
			marketDI.GetAIAgents(sr),
			tradingDI.GetNotifier(sr),
			log,
		)
	})

	// Register TradingService (public - exposed to the UI)
	di.RegisterToken(c, tradingDI.TradingService, func(sr di.ServiceRegistry) *app.Service {
		log := sr.Get("logger").(logger.LoggerInterface)
		stores := sr.Get("stores").(*catalog.StoreRegistry)

		return app.NewService(
			marketDI.GetAIAgents(sr),
			tradingDI.GetBook(sr),
			tradingDI.GetValuator(sr),
			tradingDI.GetWorkflow(sr),
			stores,
			log,
		)
	})

	return nil
}

// Startup initializes the trading module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	log := mono.Logger()

	// Store-role sessions only see opportunities touching their store.
	sess, err := mono.SessionStore().Load()
	if err != nil {
		log.Warn(ctx, "session load failed, assuming admin", "error", err.Error())
	} else if !sess.IsAdmin() {
		marketDI.GetAIAgents(mono.Services()).ScopeToStore(string(sess.StoreID))
	}

	log.Info(ctx, "trading module started")
	return nil
}
