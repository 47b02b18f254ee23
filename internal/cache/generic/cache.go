package generic

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Cache provides a generic interface for caching any type of data.
// K is the key type (must be comparable), V is the value type.
//
// Reads never touch storage. Writes land in memory immediately and are
// persisted asynchronously, in the order they were issued.
type Cache[K comparable, V any] interface {
	// Load bulk-loads all data from storage into memory
	Load(ctx context.Context) error

	// Get retrieves a value from memory
	Get(key K) (V, bool)

	// Set updates memory immediately and persists asynchronously
	Set(key K, value V) error

	// Delete removes from memory immediately and persists asynchronously
	Delete(key K) error

	// List returns all cached values
	List() []V

	// Len returns the number of cached entries
	Len() int

	// Flush waits for all pending writes to complete
	Flush() error
}

// DatabaseOperations is the storage behind a cache.
type DatabaseOperations[K comparable, V any] interface {
	// LoadAll loads all entries from the database
	LoadAll(ctx context.Context) (map[K]V, error)

	// Persist saves a single entry to the database
	Persist(ctx context.Context, key K, value V) error

	// Delete removes a single entry from the database
	Delete(ctx context.Context, key K) error
}

// Option configures a GenericCache.
type Option func(*options)

type options struct {
	logger zerolog.Logger
	ctx    context.Context
}

// WithLogger routes async write failures to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithContext sets the context passed to async writes.
func WithContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

// GenericCache implements Cache[K, V] over a map guarded by a RWMutex.
type GenericCache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
	dbOps   DatabaseOperations[K, V]
	opts    options

	// tail is closed once the most recently queued write has finished.
	writeMu       sync.Mutex
	tail          chan struct{}
	pendingWrites sync.WaitGroup

	errMu    sync.Mutex
	firstErr error
}

// NewGenericCache creates a new cache with the provided database operations.
func NewGenericCache[K comparable, V any](dbOps DatabaseOperations[K, V], opts ...Option) *GenericCache[K, V] {
	o := options{logger: zerolog.Nop(), ctx: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}
	return &GenericCache[K, V]{
		entries: make(map[K]V),
		dbOps:   dbOps,
		opts:    o,
	}
}

// Load bulk-loads all data from the database into memory, replacing what
// was cached before.
func (c *GenericCache[K, V]) Load(ctx context.Context) error {
	data, err := c.dbOps.LoadAll(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]V, len(data))
	for k, v := range data {
		c.entries[k] = v
	}
	return nil
}

// Get retrieves a value from the cache. Never queries the database.
func (c *GenericCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Set updates the cache and queues the write.
func (c *GenericCache[K, V]) Set(key K, value V) error {
	c.mu.Lock()
	c.entries[key] = value
	c.mu.Unlock()

	c.enqueue(func(ctx context.Context) {
		if err := c.dbOps.Persist(ctx, key, value); err != nil {
			c.recordErr(err)
			c.opts.logger.Warn().Err(err).Interface("key", key).Msg("async persist failed")
		}
	})
	return nil
}

// Delete removes from the cache and queues the deletion.
func (c *GenericCache[K, V]) Delete(key K) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()

	c.enqueue(func(ctx context.Context) {
		if err := c.dbOps.Delete(ctx, key); err != nil {
			c.recordErr(err)
			c.opts.logger.Warn().Err(err).Interface("key", key).Msg("async delete failed")
		}
	})
	return nil
}

// List returns all values currently in the cache. Order is not guaranteed.
func (c *GenericCache[K, V]) List() []V {
	c.mu.RLock()
	defer c.mu.RUnlock()
	values := make([]V, 0, len(c.entries))
	for _, v := range c.entries {
		values = append(values, v)
	}
	return values
}

// Len returns the number of cached entries.
func (c *GenericCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Flush blocks until all queued writes complete and returns the first write
// error seen since the previous Flush.
func (c *GenericCache[K, V]) Flush() error {
	c.pendingWrites.Wait()

	c.errMu.Lock()
	defer c.errMu.Unlock()
	err := c.firstErr
	c.firstErr = nil
	return err
}

// enqueue runs op after every previously queued op has finished.
func (c *GenericCache[K, V]) enqueue(op func(ctx context.Context)) {
	c.pendingWrites.Add(1)

	c.writeMu.Lock()
	prev := c.tail
	done := make(chan struct{})
	c.tail = done
	c.writeMu.Unlock()

	go func() {
		defer c.pendingWrites.Done()
		defer close(done)
		if prev != nil {
			<-prev
		}
		op(c.opts.ctx)
	}()
}

func (c *GenericCache[K, V]) recordErr(err error) {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	if c.firstErr == nil {
		c.firstErr = err
	}
}
