// internal/snapshot/index.go
package snapshot

import (
	"github.com/andresuchdata/retail-ops/internal/domain"
)

// StoreSKUKey joins a store id and SKU id into the composite key used by
// the inventory and forecast maps.
func StoreSKUKey(storeID, skuID string) string {
	return storeID + "-" + skuID
}

// Index holds the O(1) lookup maps the detectors join through. It is a
// pure derivation of a snapshot and must be rebuilt whenever the snapshot
// reference changes.
type Index struct {
	StoreByID    map[string]domain.Store
	SupplierByID map[string]domain.Supplier
	SKUByID      map[string]domain.SKU

	// Keyed by StoreSKUKey. Inventory and each forecast horizon are
	// unique per (store, SKU).
	InventoryByStoreSKU  map[string]domain.InventoryRecord
	Forecast30ByStoreSKU map[string]domain.DemandForecast
	Forecast90ByStoreSKU map[string]domain.DemandForecast

	SKUsBySupplier   map[string][]domain.SKU
	InventoryBySKU   map[string][]domain.InventoryRecord
	InventoryByStore map[string][]domain.InventoryRecord
	ForecastsBySKU   map[string][]domain.DemandForecast
	SalesBySKU       map[string][]domain.SaleTransaction
	SalesByStore     map[string][]domain.SaleTransaction
	POsBySupplier    map[string][]domain.PurchaseOrder
	OpenPOsBySKU     map[string][]domain.PurchaseOrder
}

// BuildIndex converts the flat snapshot arrays into lookup maps.
func BuildIndex(snap *domain.Snapshot) *Index {
	idx := &Index{
		StoreByID:            make(map[string]domain.Store, len(snap.Stores)),
		SupplierByID:         make(map[string]domain.Supplier, len(snap.Suppliers)),
		SKUByID:              make(map[string]domain.SKU, len(snap.SKUs)),
		InventoryByStoreSKU:  make(map[string]domain.InventoryRecord, len(snap.Inventory)),
		Forecast30ByStoreSKU: make(map[string]domain.DemandForecast),
		Forecast90ByStoreSKU: make(map[string]domain.DemandForecast),
		SKUsBySupplier:       make(map[string][]domain.SKU),
		InventoryBySKU:       make(map[string][]domain.InventoryRecord),
		ForecastsBySKU:       make(map[string][]domain.DemandForecast),
		SalesBySKU:           make(map[string][]domain.SaleTransaction),
		SalesByStore:         make(map[string][]domain.SaleTransaction),
		InventoryByStore:     make(map[string][]domain.InventoryRecord),
		POsBySupplier:        make(map[string][]domain.PurchaseOrder),
		OpenPOsBySKU:         make(map[string][]domain.PurchaseOrder),
	}

	for _, s := range snap.Stores {
		idx.StoreByID[s.StoreID] = s
	}
	for _, s := range snap.Suppliers {
		idx.SupplierByID[s.SupplierID] = s
	}
	for _, s := range snap.SKUs {
		idx.SKUByID[s.SKUID] = s
		idx.SKUsBySupplier[s.SupplierID] = append(idx.SKUsBySupplier[s.SupplierID], s)
	}
	for _, inv := range snap.Inventory {
		idx.InventoryByStoreSKU[StoreSKUKey(inv.StoreID, inv.SKUID)] = inv
		idx.InventoryBySKU[inv.SKUID] = append(idx.InventoryBySKU[inv.SKUID], inv)
		idx.InventoryByStore[inv.StoreID] = append(idx.InventoryByStore[inv.StoreID], inv)
	}
	for _, f := range snap.Forecasts {
		key := StoreSKUKey(f.StoreID, f.SKUID)
		switch f.ForecastPeriod {
		case domain.ForecastPeriod30:
			idx.Forecast30ByStoreSKU[key] = f
		case domain.ForecastPeriod90:
			idx.Forecast90ByStoreSKU[key] = f
		}
		idx.ForecastsBySKU[f.SKUID] = append(idx.ForecastsBySKU[f.SKUID], f)
	}
	for _, tx := range snap.Sales {
		idx.SalesBySKU[tx.SKUID] = append(idx.SalesBySKU[tx.SKUID], tx)
		idx.SalesByStore[tx.StoreID] = append(idx.SalesByStore[tx.StoreID], tx)
	}
	for _, po := range snap.PurchaseOrders {
		idx.POsBySupplier[po.SupplierID] = append(idx.POsBySupplier[po.SupplierID], po)
		if po.Open() {
			idx.OpenPOsBySKU[po.SKUID] = append(idx.OpenPOsBySKU[po.SKUID], po)
		}
	}

	return idx
}
