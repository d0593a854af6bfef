package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stallcraft/backend/pkg/logger"
)

// PageFetcher loads one page of a collection ordered newest-first.
// Page numbering starts at 1.
type PageFetcher[T any] func(ctx context.Context, page, limit int) ([]T, error)

// Snapshot is one cached copy of a whole collection.
type Snapshot[T any] struct {
	Data      []T
	Timestamp time.Time
	ETag      string
}

// Collection is a read-through snapshot cache over a paged fetcher.
// Reads serve the last snapshot until it goes stale; writes force a refresh.
type Collection[T any] struct {
	name    string
	fetch   PageFetcher[T]
	ttl     time.Duration
	batch   int
	now     func() time.Time
	logg    *logger.Logger
	mu      sync.Mutex
	current *Snapshot[T]
}

// Option tweaks collection construction.
type Option[T any] func(*Collection[T])

// WithClock overrides the time source, used by tests.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(c *Collection[T]) {
		c.now = now
	}
}

// NewCollection builds a snapshot cache for the named collection.
func NewCollection[T any](name string, fetch PageFetcher[T], ttl time.Duration, batch int, logg *logger.Logger, opts ...Option[T]) (*Collection[T], error) {
	if name == "" {
		return nil, fmt.Errorf("collection name is required")
	}
	if fetch == nil {
		return nil, fmt.Errorf("page fetcher is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("ttl must be positive")
	}
	if batch <= 0 {
		return nil, fmt.Errorf("batch size must be positive")
	}
	c := &Collection[T]{
		name:  name,
		fetch: fetch,
		ttl:   ttl,
		batch: batch,
		now:   time.Now,
		logg:  logg,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Stale reports whether the snapshot is missing or older than the TTL.
func (c *Collection[T]) Stale() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.staleLocked()
}

func (c *Collection[T]) staleLocked() bool {
	if c.current == nil {
		return true
	}
	return c.now().Sub(c.current.Timestamp) > c.ttl
}

// Get returns the current snapshot, refreshing first when it is stale or when
// force is set. On refresh failure a previous snapshot is served if one exists.
func (c *Collection[T]) Get(ctx context.Context, force bool) (Snapshot[T], error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if force || c.staleLocked() {
		if err := c.refreshLocked(ctx); err != nil {
			if c.current == nil {
				return Snapshot[T]{}, err
			}
			if c.logg != nil {
				c.logg.Warn(c.logg.WithCollection(ctx, c.name), "serving stale snapshot after refresh failure")
			}
		}
	}

	return *c.current, nil
}

// Refresh replaces the snapshot unconditionally.
func (c *Collection[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshLocked(ctx)
}

func (c *Collection[T]) refreshLocked(ctx context.Context) error {
	data := make([]T, 0, c.batch)
	for page := 1; ; page++ {
		items, err := c.fetch(ctx, page, c.batch)
		if err != nil {
			return fmt.Errorf("fetching %s page %d: %w", c.name, page, err)
		}
		data = append(data, items...)
		if len(items) < c.batch {
			break
		}
	}

	ts := c.now()
	c.current = &Snapshot[T]{
		Data:      data,
		Timestamp: ts,
		ETag:      fmt.Sprintf("%q", fmt.Sprintf("%s-%d-%d", c.name, ts.UnixMilli(), len(data))),
	}
	return nil
}
