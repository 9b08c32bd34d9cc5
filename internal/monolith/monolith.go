// Package monolith provides the application container and module interface.
package monolith

import (
	"context"

	"github.com/fd1az/trade-console/internal/catalog"
	"github.com/fd1az/trade-console/internal/config"
	"github.com/fd1az/trade-console/internal/di"
	"github.com/fd1az/trade-console/internal/logger"
	"github.com/fd1az/trade-console/internal/session"
)

// Monolith is the main application container providing access to shared infrastructure.
type Monolith interface {
	Config() *config.Config
	Logger() logger.LoggerInterface
	Stores() *catalog.StoreRegistry
	Products() *catalog.ProductRegistry
	SessionStore() *session.Store
	Services() di.ServiceRegistry
}

// Module represents a bounded context module that can register services and start up.
type Module interface {
	RegisterServices(di.Container) error
	Startup(context.Context, Monolith) error
}

// app implements the Monolith interface.
type app struct {
	config       *config.Config
	logger       logger.LoggerInterface
	stores       *catalog.StoreRegistry
	products     *catalog.ProductRegistry
	sessionStore *session.Store
	container    di.Container
}

// New creates a new Monolith instance.
func New(cfg *config.Config, log logger.LoggerInterface) (*app, error) {
	// Pre-populated with the known stores and products
	stores := catalog.DefaultStores()
	products := catalog.DefaultProducts()

	sessionStore := session.NewStore(cfg.Console.SessionFile)

	container := di.NewContainer()

	// Register global services
	container.Register("config", cfg)
	container.Register("logger", log)
	container.Register("stores", stores)
	container.Register("products", products)
	container.Register("sessionStore", sessionStore)

	return &app{
		config:       cfg,
		logger:       log,
		stores:       stores,
		products:     products,
		sessionStore: sessionStore,
		container:    container,
	}, nil
}

func (a *app) Config() *config.Config {
	return a.config
}

func (a *app) Logger() logger.LoggerInterface {
	return a.logger
}

func (a *app) Stores() *catalog.StoreRegistry {
	return a.stores
}

func (a *app) Products() *catalog.ProductRegistry {
	return a.products
}

func (a *app) SessionStore() *session.Store {
	return a.sessionStore
}

func (a *app) Services() di.ServiceRegistry {
	return a.container
}

// Container returns the DI container for module registration.
func (a *app) Container() di.Container {
	return a.container
}

// RegisterModules registers all provided modules.
func (a *app) RegisterModules(modules ...Module) error {
	for _, m := range modules {
		if err := m.RegisterServices(a.container); err != nil {
			return err
		}
	}
	return nil
}

// StartModules starts all provided modules.
func (a *app) StartModules(ctx context.Context, modules ...Module) error {
	for _, m := range modules {
		if err := m.Startup(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// Close closes all resources.
func (a *app) Close() error {
	return nil
}
