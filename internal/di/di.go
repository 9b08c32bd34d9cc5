// Package di provides a minimal service container used to wire bounded
// context modules together. Services are registered eagerly by name or
// lazily through typed tokens.
package di

import (
	"fmt"
	"sync"
)

// ServiceRegistry resolves registered services by name.
type ServiceRegistry interface {
	Get(name string) any
}

// Container is a ServiceRegistry that also accepts registrations.
type Container interface {
	ServiceRegistry
	Register(name string, svc any)
	RegisterFactory(name string, factory func(ServiceRegistry) any)
}

// Token is a typed handle to a registered service.
type Token[T any] struct {
	name string
}

// NewToken creates a typed token with a unique name.
func NewToken[T any](name string) Token[T] {
	return Token[T]{name: name}
}

// String returns the token's name.
func (t Token[T]) String() string {
	return t.name
}

type container struct {
	mu        sync.Mutex
	instances map[string]any
	factories map[string]func(ServiceRegistry) any
}

// NewContainer creates an empty container.
func NewContainer() Container {
	return &container{
		instances: make(map[string]any),
		factories: make(map[string]func(ServiceRegistry) any),
	}
}

// Register stores an already-constructed service.
func (c *container) Register(name string, svc any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instances[name] = svc
}

// RegisterFactory stores a lazy constructor. The factory runs at most once,
// on first Get.
func (c *container) RegisterFactory(name string, factory func(ServiceRegistry) any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories[name] = factory
}

// Get resolves a service, running its factory if needed.
// Panics on unknown names: a missing registration is a wiring bug.
func (c *container) Get(name string) any {
	c.mu.Lock()
	if svc, ok := c.instances[name]; ok {
		c.mu.Unlock()
		return svc
	}
	factory, ok := c.factories[name]
	c.mu.Unlock()

	if !ok {
		panic(fmt.Sprintf("di: no service registered for %q", name))
	}

	svc := factory(c)

	c.mu.Lock()
	c.instances[name] = svc
	c.mu.Unlock()

	return svc
}

// RegisterToken registers a typed factory under a token.
func RegisterToken[T any](c Container, token Token[T], factory func(ServiceRegistry) T) {
	c.RegisterFactory(token.name, func(sr ServiceRegistry) any {
		return factory(sr)
	})
}

// GetToken resolves a typed service.
func GetToken[T any](sr ServiceRegistry, token Token[T]) T {
	return sr.Get(token.name).(T)
}
