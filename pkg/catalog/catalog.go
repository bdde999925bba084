package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/cloudwego/kitex/pkg/klog"
	bloom "github.com/csci1270-fall-2023/bloomdb/pkg/bloom"
	config "github.com/csci1270-fall-2023/bloomdb/pkg/config"

	uuid "github.com/google/uuid"
	errgroup "golang.org/x/sync/errgroup"
)

var (
	ErrFilterExists   = errors.New("catalog: filter already exists")
	ErrFilterNotFound = errors.New("catalog: filter not found")
)

// entry is one named filter.
type entry struct {
	id     uuid.UUID
	filter *bloom.SyncFilter
}

// Catalog holds named scalable filters. Each filter has its own lock, so
// callers working on different names never contend past the map lookup.
type Catalog struct {
	entries map[string]*entry
	mtx     sync.RWMutex
}

// Construct an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]*entry)}
}

// Create registers a new scalable filter under name.
func (c *Catalog) Create(name string, opts config.Options) (uuid.UUID, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if _, found := c.entries[name]; found {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrFilterExists, name)
	}
	sbf, err := bloom.NewScalableBloomFilterFromOptions(opts)
	if err != nil {
		return uuid.Nil, err
	}
	id := uuid.New()
	c.entries[name] = &entry{id: id, filter: bloom.NewSyncFilter(sbf)}
	klog.Infof("catalog: created filter %q (id=%s, capacity=%d, error=%g, expansion=%d)",
		name, id, sbf.Capacity(), sbf.ErrorRate(), sbf.ExpansionRate())
	return id, nil
}

// Drop removes the named filter.
func (c *Catalog) Drop(name string) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	e, found := c.entries[name]
	if !found {
		return fmt.Errorf("%w: %q", ErrFilterNotFound, name)
	}
	delete(c.entries, name)
	klog.Infof("catalog: dropped filter %q (id=%s)", name, e.id)
	return nil
}

// Get the named filter.
func (c *Catalog) Get(name string) (*bloom.SyncFilter, bool) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	e, found := c.entries[name]
	if !found {
		return nil, false
	}
	return e.filter, true
}

// Get the id assigned to the named filter at creation.
func (c *Catalog) ID(name string) (uuid.UUID, bool) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	e, found := c.entries[name]
	if !found {
		return uuid.Nil, false
	}
	return e.id, true
}

// Names returns the registered names in sorted order.
func (c *Catalog) Names() []string {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Add inserts key into the named filter.
func (c *Catalog) Add(name string, key []byte) error {
	filter, found := c.Get(name)
	if !found {
		return fmt.Errorf("%w: %q", ErrFilterNotFound, name)
	}
	filter.Add(key)
	return nil
}

// Contains tests key against the named filter.
func (c *Catalog) Contains(name string, key []byte) (bool, error) {
	filter, found := c.Get(name)
	if !found {
		return false, fmt.Errorf("%w: %q", ErrFilterNotFound, name)
	}
	return filter.Contains(key), nil
}

// Lookup probes every filter concurrently and returns, sorted, the names of
// those that may contain key.
func (c *Catalog) Lookup(ctx context.Context, key []byte) ([]string, error) {
	c.mtx.RLock()
	snapshot := make(map[string]*bloom.SyncFilter, len(c.entries))
	for name, e := range c.entries {
		snapshot[name] = e.filter
	}
	c.mtx.RUnlock()

	group, ctx := errgroup.WithContext(ctx)
	matches := make(chan string, len(snapshot))
	for name, filter := range snapshot {
		name, filter := name, filter
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if filter.Contains(key) {
				matches <- name
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	close(matches)

	names := make([]string, 0, len(matches))
	for name := range matches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
