// Package app contains application services and port definitions for the trading context.
package app

import (
	"sync"

	"github.com/fd1az/trade-console/business/trading/domain"
)

// Book is the ordered set of pending opportunities presented to the
// operator. Polling replaces its contents; decisions remove entries
// optimistically and reinsert them at the head on rollback.
type Book struct {
	mu   sync.RWMutex
	opps []domain.Opportunity
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{}
}

// Replace swaps the book contents, preserving the given order.
func (b *Book) Replace(opps []domain.Opportunity) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.opps = make([]domain.Opportunity, len(opps))
	copy(b.opps, opps)
}

// List returns a copy of the pending opportunities in display order.
func (b *Book) List() []domain.Opportunity {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]domain.Opportunity, len(b.opps))
	copy(out, b.opps)
	return out
}

// Len returns the number of pending opportunities.
func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.opps)
}

// Get retrieves an opportunity by ID.
func (b *Book) Get(id string) (domain.Opportunity, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, o := range b.opps {
		if o.ID == id {
			return o, true
		}
	}
	return domain.Opportunity{}, false
}

// Remove takes an opportunity out of the book, returning it. The second
// return is false when the ID is not present.
func (b *Book) Remove(id string) (domain.Opportunity, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, o := range b.opps {
		if o.ID == id {
			b.opps = append(b.opps[:i], b.opps[i+1:]...)
			return o, true
		}
	}
	return domain.Opportunity{}, false
}

// ReinsertFront puts a removed opportunity back at the head of the book.
// No-op if an entry with the same ID is already present, so a rollback can
// never duplicate a row the poller already restored.
func (b *Book) ReinsertFront(o domain.Opportunity) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, existing := range b.opps {
		if existing.ID == o.ID {
			return
		}
	}
	b.opps = append([]domain.Opportunity{o}, b.opps...)
}
