// Package di contains dependency injection tokens for the trading context.
package di

import (
	"github.com/fd1az/trade-console/business/trading/app"
	"github.com/fd1az/trade-console/business/trading/domain"
	"github.com/fd1az/trade-console/internal/di"
)

// Public service tokens - exposed to other modules
var (
	TradingService = di.NewToken[*app.Service]("trading.TradingService")
)

// Private dependency tokens - internal to trading module
var (
	Book     = di.NewToken[*app.Book]("trading:book")
	Workflow = di.NewToken[*app.Workflow]("trading:workflow")
	Notifier = di.NewToken[app.Notifier]("trading:notifier")
	Valuator = di.NewToken[*domain.Valuator]("trading:valuator")
)

// Helper functions for type-safe access
func GetTradingService(c di.ServiceRegistry) *app.Service {
	return di.GetToken(c, TradingService)
}

func GetBook(c di.ServiceRegistry) *app.Book {
	return di.GetToken(c, Book)
}

func GetWorkflow(c di.ServiceRegistry) *app.Workflow {
	return di.GetToken(c, Workflow)
}

func GetNotifier(c di.ServiceRegistry) app.Notifier {
	return di.GetToken(c, Notifier)
}

func GetValuator(c di.ServiceRegistry) *domain.Valuator {
	return di.GetToken(c, Valuator)
}
