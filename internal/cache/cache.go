// Package cache holds the in-process copy of the catalog that all reads are
// served from.
package cache

import (
	"slices"
	"sync"
	"time"

	"github.com/heartmarshall/prompt-vault/internal/lifecycle"
	"github.com/heartmarshall/prompt-vault/internal/seed"
)

// Source tells where a collection in the cache came from.
type Source string

const (
	SourceSeed  Source = "seed"
	SourceStore Source = "store"
)

// Status describes the last refresh.
type Status struct {
	Categories  Source
	Prompts     Source
	RefreshedAt time.Time
}

// Cache is a concurrency-safe catalog snapshot. Readers always receive copies.
type Cache struct {
	mu     sync.RWMutex
	state  lifecycle.State
	status Status
}

// New creates a cache pre-populated with the bundled dataset.
func New(ds seed.Dataset) *Cache {
	return &Cache{
		state: lifecycle.State{
			Categories: ds.Categories,
			Prompts:    ds.Prompts,
		},
		status: Status{Categories: SourceSeed, Prompts: SourceSeed},
	}
}

// Snapshot returns a deep copy of the current state.
func (c *Cache) Snapshot() lifecycle.State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Clone()
}

// Status returns the provenance of the cached collections.
func (c *Cache) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Commit replaces the state with the outcome of a lifecycle transition.
func (c *Cache) Commit(next lifecycle.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = next.Clone()
}

// Replace swaps in freshly fetched collections. Empty categories or prompts
// fall back to the seed independently; suggestions never fall back.
func (c *Cache) Replace(fetched lifecycle.State, ds seed.Dataset, now time.Time) Status {
	next, st := Resolve(fetched, ds)
	st.RefreshedAt = now

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = next
	c.status = st
	return st
}

// Resolve applies the seed fallback rule to a fetched state without merging.
func Resolve(fetched lifecycle.State, ds seed.Dataset) (lifecycle.State, Status) {
	next := fetched.Clone()
	st := Status{Categories: SourceStore, Prompts: SourceStore}

	if len(next.Categories) == 0 {
		next.Categories = slices.Clone(ds.Categories)
		st.Categories = SourceSeed
	}
	if len(next.Prompts) == 0 {
		next.Prompts = slices.Clone(ds.Prompts)
		st.Prompts = SourceSeed
	}
	return next, st
}
