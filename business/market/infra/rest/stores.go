package rest

import (
	"context"
	"sync"

	"github.com/fd1az/trade-console/internal/catalog"
	"github.com/fd1az/trade-console/internal/httpclient"
	"github.com/fd1az/trade-console/internal/logger"
)

// StoresClient resolves store display data from the backend, overlaying it
// on the static catalog. Each store is fetched at most once per session.
type StoresClient struct {
	hc       httpclient.Client
	log      logger.LoggerInterface
	registry *catalog.StoreRegistry

	mu      sync.Mutex
	fetched map[catalog.StoreID]bool
}

// NewStoresClient creates the stores client over the given registry.
func NewStoresClient(hc httpclient.Client, log logger.LoggerInterface, registry *catalog.StoreRegistry) *StoresClient {
	return &StoresClient{
		hc:       hc,
		log:      log,
		registry: registry,
		fetched:  make(map[catalog.StoreID]bool),
	}
}

type storeDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Capacity    int      `json:"capacity"`
	Specialties []string `json:"specialties"`
}

// Resolve returns the store for an ID, consulting the backend once for
// display overrides. Lookup failures fall back to the catalog entry; the
// failure is logged and the store is not retried this session.
func (c *StoresClient) Resolve(ctx context.Context, id catalog.StoreID) (*catalog.Store, bool) {
	c.mu.Lock()
	done := c.fetched[id]
	c.fetched[id] = true
	c.mu.Unlock()

	if !done {
		c.fetch(ctx, id)
	}
	return c.registry.Get(id)
}

func (c *StoresClient) fetch(ctx context.Context, id catalog.StoreID) {
	resp, err := c.hc.NewRequest().Get(ctx, "/v1/stores/"+string(id))
	if err := check(resp, err, "fetching store"); err != nil {
		c.log.Debug(ctx, "store lookup failed, using catalog data",
			"store_id", string(id), "error", err.Error())
		return
	}

	var dto storeDTO
	if err := decode(resp.Body(), &dto); err != nil {
		c.log.Debug(ctx, "store payload unreadable, using catalog data",
			"store_id", string(id), "error", err.Error())
		return
	}

	c.registry.Merge(&catalog.Store{
		ID:          id,
		Name:        dto.Name,
		Location:    dto.Location,
		Capacity:    dto.Capacity,
		Specialties: dto.Specialties,
	})
}
