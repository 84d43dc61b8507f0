// internal/service/service.go
package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/andresuchdata/retail-ops/internal/alerts"
	"github.com/andresuchdata/retail-ops/internal/cache"
	"github.com/andresuchdata/retail-ops/internal/dashboard"
	"github.com/andresuchdata/retail-ops/internal/details"
	"github.com/andresuchdata/retail-ops/internal/domain"
	"github.com/andresuchdata/retail-ops/internal/snapshot"
	"github.com/andresuchdata/retail-ops/internal/strategy"
	"github.com/rs/zerolog/log"
)

// Service owns the current snapshot and serves every derived read-model.
// The snapshot and its index are replaced wholesale on reload; nothing
// mutates them in place. Derivations are memoized against the snapshot
// version, so unrelated requests never trigger recomputation.
type Service struct {
	mu     sync.RWMutex
	snap   *domain.Snapshot
	idx    *snapshot.Index
	source snapshot.Source
	today  time.Time
	cache  cache.ReadModelCache
}

// New loads the initial snapshot from the source and builds the service.
// today anchors all date-window math and stays fixed for the process.
func New(ctx context.Context, source snapshot.Source, today time.Time, rmc cache.ReadModelCache) *Service {
	if rmc == nil {
		rmc = cache.Noop()
	}
	snap := snapshot.Load(ctx, source)
	return &Service{
		snap:   snap,
		idx:    snapshot.BuildIndex(snap),
		source: source,
		today:  today,
		cache:  rmc,
	}
}

// current returns the snapshot and index under a read lock.
func (s *Service) current() (*domain.Snapshot, *snapshot.Index) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.idx
}

// Reload re-runs the loader, swaps the snapshot atomically and drops all
// memoized read-models.
func (s *Service) Reload(ctx context.Context) *domain.Snapshot {
	snap := snapshot.Load(ctx, s.source)
	idx := snapshot.BuildIndex(snap)

	s.mu.Lock()
	s.snap = snap
	s.idx = idx
	s.mu.Unlock()

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("cache invalidation failed after reload")
	}
	return snap
}

// memoized runs compute unless the cache already holds a result for the
// key. Cache errors degrade to recompute.
func memoized[T any](ctx context.Context, c cache.ReadModelCache, key string, compute func() T) T {
	if payload, ok, err := c.Get(ctx, key); err == nil && ok {
		var cached T
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached
		}
		log.Warn().Str("key", key).Msg("discarding undecodable cache entry")
	} else if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache get failed")
	}

	result := compute()

	if payload, err := json.Marshal(result); err == nil {
		if err := c.Set(ctx, key, payload); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}
	return result
}

// HomeDashboard returns the KPI/store-health read-model.
func (s *Service) HomeDashboard(ctx context.Context) domain.HomeDashboard {
	snap, idx := s.current()
	key := cache.Key(snap.Version, "home")
	return memoized(ctx, s.cache, key, func() domain.HomeDashboard {
		return dashboard.Build(snap, idx, s.today)
	})
}

// ActionCenter returns the prioritized alert feeds.
func (s *Service) ActionCenter(ctx context.Context) domain.ActionCenter {
	snap, idx := s.current()
	key := cache.Key(snap.Version, "actions")
	return memoized(ctx, s.cache, key, func() domain.ActionCenter {
		return alerts.BuildActionCenter(snap, idx, s.today)
	})
}

// StockStatus returns the capped overstock/understock breakdown.
func (s *Service) StockStatus(ctx context.Context) []domain.StockStatusAlert {
	snap, idx := s.current()
	key := cache.Key(snap.Version, "stock_status")
	return memoized(ctx, s.cache, key, func() []domain.StockStatusAlert {
		return alerts.FindStockStatus(snap, idx)
	})
}

// Strategy returns the quadrant chart for the given filter.
func (s *Service) Strategy(ctx context.Context, filter domain.StrategyFilter) domain.StrategyData {
	snap, idx := s.current()
	key := cache.Key(snap.Version, "strategy", "store="+filter.Store, "category="+filter.Category)
	return memoized(ctx, s.cache, key, func() domain.StrategyData {
		return strategy.Build(snap, idx, filter, s.today)
	})
}

// SKUDetails returns the deep-dive for one SKU, or nil when unknown.
// Point lookups are cheap; they are not memoized.
func (s *Service) SKUDetails(ctx context.Context, skuID string) *domain.SKUDetails {
	_, idx := s.current()
	return details.FindSKU(idx, skuID, s.today)
}

// SupplierDetails returns the deep-dive for one supplier, or nil.
func (s *Service) SupplierDetails(ctx context.Context, supplierID string) *domain.SupplierDetails {
	_, idx := s.current()
	return details.FindSupplier(idx, supplierID)
}

// SKUList returns (id, name) pairs for autocompletion.
func (s *Service) SKUList(ctx context.Context) []domain.ListEntry {
	snap, _ := s.current()
	return details.SKUList(snap)
}

// SupplierList returns (id, name) pairs for autocompletion.
func (s *Service) SupplierList(ctx context.Context) []domain.ListEntry {
	snap, _ := s.current()
	return details.SupplierList(snap)
}

// SnapshotInfo reports the loaded dataset sizes for the health endpoint.
func (s *Service) SnapshotInfo() map[string]any {
	snap, _ := s.current()
	return map[string]any{
		"version":         snap.Version,
		"loaded_at":       snap.LoadedAt,
		"stores":          len(snap.Stores),
		"suppliers":       len(snap.Suppliers),
		"skus":            len(snap.SKUs),
		"inventory":       len(snap.Inventory),
		"purchase_orders": len(snap.PurchaseOrders),
		"sales":           len(snap.Sales),
		"forecasts":       len(snap.Forecasts),
	}
}
