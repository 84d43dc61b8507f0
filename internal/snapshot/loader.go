// internal/snapshot/loader.go
package snapshot

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/andresuchdata/retail-ops/internal/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Fixture file names, fixed by the dataset generator.
const (
	FileStores         = "stores.json"
	FileSuppliers      = "suppliers.json"
	FileSKUs           = "skus.json"
	FileInventory      = "inventory.json"
	FilePurchaseOrders = "purchase_orders.json"
	FileSales          = "sales_transactions.json"
	FileForecasts      = "demand_forecast.json"
)

// Load fetches the seven datasets concurrently and assembles the session
// snapshot. An individual dataset that cannot be fetched or decoded
// degrades to an empty slice; the session continues with partial data and
// Load itself never fails.
func Load(ctx context.Context, src Source) *domain.Snapshot {
	snap := &domain.Snapshot{LoadedAt: time.Now().UTC()}

	// One digest slot per dataset so the combined version hash is stable
	// regardless of which fetch finishes first.
	digests := make([]string, 7)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap.Stores, digests[0] = fetchDataset[domain.Store](gctx, src, FileStores)
		return nil
	})
	g.Go(func() error {
		snap.Suppliers, digests[1] = fetchDataset[domain.Supplier](gctx, src, FileSuppliers)
		return nil
	})
	g.Go(func() error {
		snap.SKUs, digests[2] = fetchDataset[domain.SKU](gctx, src, FileSKUs)
		return nil
	})
	g.Go(func() error {
		snap.Inventory, digests[3] = fetchDataset[domain.InventoryRecord](gctx, src, FileInventory)
		return nil
	})
	g.Go(func() error {
		snap.PurchaseOrders, digests[4] = fetchDataset[domain.PurchaseOrder](gctx, src, FilePurchaseOrders)
		return nil
	})
	g.Go(func() error {
		snap.Sales, digests[5] = fetchDataset[domain.SaleTransaction](gctx, src, FileSales)
		return nil
	})
	g.Go(func() error {
		snap.Forecasts, digests[6] = fetchDataset[domain.DemandForecast](gctx, src, FileForecasts)
		return nil
	})
	// Workers only ever return nil; degraded datasets are logged instead.
	_ = g.Wait()

	snap.Version = combineDigests(digests)

	log.Info().
		Str("version", snap.Version).
		Int("stores", len(snap.Stores)).
		Int("suppliers", len(snap.Suppliers)).
		Int("skus", len(snap.SKUs)).
		Int("inventory", len(snap.Inventory)).
		Int("purchase_orders", len(snap.PurchaseOrders)).
		Int("sales", len(snap.Sales)).
		Int("forecasts", len(snap.Forecasts)).
		Msg("snapshot loaded")

	return snap
}

// fetchDataset pulls and decodes one dataset, substituting an empty slice
// on any failure.
func fetchDataset[T any](ctx context.Context, src Source, name string) ([]T, string) {
	raw, err := src.Fetch(ctx, name)
	if err != nil {
		log.Warn().Err(err).Str("dataset", name).Msg("dataset fetch failed, continuing with empty data")
		return []T{}, ""
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Warn().Err(err).Str("dataset", name).Msg("dataset decode failed, continuing with empty data")
		return []T{}, ""
	}

	sum := sha1.Sum(raw)
	return records, hex.EncodeToString(sum[:])
}

func combineDigests(digests []string) string {
	h := sha1.New()
	for _, d := range digests {
		h.Write([]byte(d))
		h.Write([]byte{'|'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
