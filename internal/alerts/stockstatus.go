// internal/alerts/stockstatus.go
package alerts

import (
	"sort"

	"github.com/andresuchdata/retail-ops/internal/domain"
	"github.com/andresuchdata/retail-ops/internal/snapshot"
)

const (
	// Overstock means holding more than this multiple of 90-day demand.
	overstockSafetyFactor = 3
	// Understock means fewer units than this minimum buffer.
	minSafetyStock = 10
	// Stock younger than this is not considered aged.
	overstockAgeDays = 60
	// Understock only matters when real demand exists.
	understockMinForecast90 = 100

	maxOverstockEntries  = 18
	maxUnderstockEntries = 7
)

// FindStockStatus classifies inventory into aged overstock and
// high-demand understock. The result is capped: the top 18 overstock
// entries (oldest stock first) followed by the top 7 understock entries
// (highest inventory value first). The two blocks never overlap.
func FindStockStatus(snap *domain.Snapshot, idx *snapshot.Index) []domain.StockStatusAlert {
	var overstock, understock []domain.StockStatusAlert

	for _, inv := range snap.Inventory {
		fc, ok := idx.Forecast90ByStoreSKU[snapshot.StoreSKUKey(inv.StoreID, inv.SKUID)]
		if !ok {
			continue
		}
		sku, ok := idx.SKUByID[inv.SKUID]
		if !ok {
			continue
		}

		onHand := inv.QuantityOnHand
		threshold := fc.PredictedDemand * overstockSafetyFactor
		value := float64(onHand) * sku.CostPrice

		switch {
		case float64(onHand) > threshold && inv.DaysInStock > overstockAgeDays:
			overstock = append(overstock, domain.StockStatusAlert{
				StoreID:        inv.StoreID,
				SKUID:          inv.SKUID,
				ProductName:    sku.ProductName,
				Status:         domain.StockStatusOverstocked,
				QuantityOnHand: onHand,
				DaysInStock:    inv.DaysInStock,
				Forecast90Day:  fc.PredictedDemand,
				ReasonDelta:    onHand - int(threshold),
				InventoryValue: value,
			})
		case onHand < minSafetyStock && fc.PredictedDemand > understockMinForecast90:
			understock = append(understock, domain.StockStatusAlert{
				StoreID:        inv.StoreID,
				SKUID:          inv.SKUID,
				ProductName:    sku.ProductName,
				Status:         domain.StockStatusUnderstocked,
				QuantityOnHand: onHand,
				DaysInStock:    inv.DaysInStock,
				Forecast90Day:  fc.PredictedDemand,
				ReasonDelta:    minSafetyStock - onHand,
				InventoryValue: value,
			})
		}
	}

	// Oldest overstock first; ties broken by key for stable output.
	sort.Slice(overstock, func(i, j int) bool {
		if overstock[i].DaysInStock != overstock[j].DaysInStock {
			return overstock[i].DaysInStock > overstock[j].DaysInStock
		}
		return stockKey(overstock[i]) < stockKey(overstock[j])
	})
	// Most valuable understock first.
	sort.Slice(understock, func(i, j int) bool {
		if understock[i].InventoryValue != understock[j].InventoryValue {
			return understock[i].InventoryValue > understock[j].InventoryValue
		}
		return stockKey(understock[i]) < stockKey(understock[j])
	})

	if len(overstock) > maxOverstockEntries {
		overstock = overstock[:maxOverstockEntries]
	}
	if len(understock) > maxUnderstockEntries {
		understock = understock[:maxUnderstockEntries]
	}

	return append(overstock, understock...)
}

func stockKey(a domain.StockStatusAlert) string {
	return snapshot.StoreSKUKey(a.StoreID, a.SKUID)
}
