// Package cached decorates a Service with a read-through result cache.
// Exists, count and record-page results are memoized under request-hash
// keys with a TTL; data-change events purge an entry type's namespace via
// the invalidation consumer. Cache failures degrade to the wrapped
// backend, never to request failures.
package cached

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/openbiodata/beacon-api/internal/beacon/model"
	"github.com/openbiodata/beacon-api/internal/cache"
	"github.com/openbiodata/beacon-api/internal/service"
)

type Decorator struct {
	entryType string
	next      service.Service
	store     cache.Interface
	ttl       time.Duration
	opTimeout time.Duration
	logger    *slog.Logger
}

// New wraps next with a cache for one entry type. opTimeout bounds each
// cache operation so a slow store cannot stall request handling.
func New(entryType string, next service.Service, store cache.Interface, ttl, opTimeout time.Duration, logger *slog.Logger) *Decorator {
	if logger == nil {
		logger = slog.Default()
	}
	if opTimeout <= 0 {
		opTimeout = 250 * time.Millisecond
	}
	return &Decorator{
		entryType: entryType,
		next:      next,
		store:     store,
		ttl:       ttl,
		opTimeout: opTimeout,
		logger:    logger,
	}
}

func (d *Decorator) lookup(ctx context.Context, key string, out any) bool {
	opCtx, cancel := context.WithTimeout(ctx, d.opTimeout)
	defer cancel()
	raw, ok, err := d.store.Get(opCtx, key)
	if err != nil {
		d.logger.Warn("cache get failed", "key", key, "err", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		d.logger.Warn("cache entry corrupt", "key", key, "err", err)
		return false
	}
	return true
}

func (d *Decorator) fill(ctx context.Context, key string, val any) {
	raw, err := json.Marshal(val)
	if err != nil {
		return
	}
	opCtx, cancel := context.WithTimeout(ctx, d.opTimeout)
	defer cancel()
	if err := d.store.Set(opCtx, key, raw, d.ttl); err != nil {
		d.logger.Warn("cache set failed", "key", key, "err", err)
	}
}

func (d *Decorator) Query(ctx context.Context, body model.BeaconRequestBody) ([]any, error) {
	key := Key(d.entryType, "query", body)
	var cachedPage []any
	if d.lookup(ctx, key, &cachedPage) {
		return cachedPage, nil
	}
	page, err := d.next.Query(ctx, body)
	if err != nil {
		return nil, err
	}
	d.fill(ctx, key, page)
	return page, nil
}

func (d *Decorator) Count(ctx context.Context, body model.BeaconRequestBody) (int, error) {
	key := Key(d.entryType, "count", body)
	var n int
	if d.lookup(ctx, key, &n) {
		return n, nil
	}
	n, err := d.next.Count(ctx, body)
	if err != nil {
		return 0, err
	}
	d.fill(ctx, key, n)
	return n, nil
}

func (d *Decorator) Exists(ctx context.Context, body model.BeaconRequestBody) (bool, error) {
	key := Key(d.entryType, "exists", body)
	var ok bool
	if d.lookup(ctx, key, &ok) {
		return ok, nil
	}
	ok, err := d.next.Exists(ctx, body)
	if err != nil {
		return false, err
	}
	d.fill(ctx, key, ok)
	return ok, nil
}

// GetByID is not cached: single-record lookups are already cheap for real
// backends and caching them would complicate not-found semantics.
func (d *Decorator) GetByID(ctx context.Context, id string) (any, error) {
	return d.next.GetByID(ctx, id)
}
