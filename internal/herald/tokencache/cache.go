// Package tokencache holds token metadata for the lifetime of one aggregation run.
package tokencache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
	"golang.org/x/sync/singleflight"
)

const tokenIDLength = 64

// FetchFunc loads metadata for a single token.
type FetchFunc func(ctx context.Context, tokenID string) (model.TokenMetadata, error)

// FromFetcher adapts a Fetcher to a FetchFunc.
func FromFetcher(f Fetcher) FetchFunc {
	return f.GetTokenGenesisInfo
}

// Cache maps token ids to metadata. Concurrent misses for one id share a
// single fetch. Entries are never evicted and failed fetches are not stored.
type Cache struct {
	mu       sync.RWMutex
	entries  map[string]model.TokenMetadata
	inflight singleflight.Group
	metrics  Metrics
}

// New creates an empty Cache.
func New(metrics Metrics) (*Cache, error) {
	if metrics == nil {
		return nil, errors.New("token cache metrics is required")
	}
	return newCache(metrics), nil
}

// Factory returns a new, empty Cache on every call.
type Factory func() *Cache

// NewFactory returns a Factory whose caches share metrics. Callers create one
// cache per run and drop it afterwards.
func NewFactory(metrics Metrics) (Factory, error) {
	if metrics == nil {
		return nil, errors.New("token cache metrics is required")
	}
	return func() *Cache {
		return newCache(metrics)
	}, nil
}

func newCache(metrics Metrics) *Cache {
	return &Cache{
		entries: make(map[string]model.TokenMetadata),
		metrics: metrics,
	}
}

// Get returns cached metadata for tokenID.
func (c *Cache) Get(tokenID string) (model.TokenMetadata, bool) {
	c.mu.RLock()
	meta, ok := c.entries[tokenID]
	c.mu.RUnlock()
	return meta, ok
}

// Put stores metadata known without a fetch, such as the fields of a GENESIS
// decoded in the current run. An existing entry is kept.
func (c *Cache) Put(tokenID string, meta model.TokenMetadata) error {
	if !ValidTokenID(tokenID) {
		return fmt.Errorf("%w: %q", ErrInvalidTokenID, tokenID)
	}
	c.mu.Lock()
	if _, ok := c.entries[tokenID]; !ok {
		c.entries[tokenID] = meta
	}
	c.mu.Unlock()
	return nil
}

// Len returns the number of cached tokens.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetOrFetch returns cached metadata, or calls fetch once for all concurrent
// callers asking for the same tokenID and caches a successful result.
func (c *Cache) GetOrFetch(ctx context.Context, tokenID string, fetch FetchFunc) (model.TokenMetadata, error) {
	if !ValidTokenID(tokenID) {
		return model.TokenMetadata{}, fmt.Errorf("%w: %q", ErrInvalidTokenID, tokenID)
	}
	if meta, ok := c.Get(tokenID); ok {
		c.metrics.ObserveLookup(true)
		return meta, nil
	}
	c.metrics.ObserveLookup(false)

	ch := c.inflight.DoChan(tokenID, func() (any, error) {
		if meta, ok := c.Get(tokenID); ok {
			return meta, nil
		}
		started := time.Now()
		meta, err := fetch(ctx, tokenID)
		c.metrics.ObserveFetch(err, started)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMetadataFetchFailed, tokenID, err)
		}
		c.mu.Lock()
		c.entries[tokenID] = meta
		c.mu.Unlock()
		return meta, nil
	})

	select {
	case <-ctx.Done():
		return model.TokenMetadata{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return model.TokenMetadata{}, res.Err
		}
		return res.Val.(model.TokenMetadata), nil
	}
}

// ValidTokenID reports whether id is 64 lowercase hex characters.
func ValidTokenID(id string) bool {
	if len(id) != tokenIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
