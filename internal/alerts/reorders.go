// internal/alerts/reorders.go
package alerts

import (
	"math"
	"sort"

	"github.com/andresuchdata/retail-ops/internal/domain"
	"github.com/andresuchdata/retail-ops/internal/snapshot"
)

const (
	// Forecasts below this are too small to trigger a reorder.
	reorderMinForecast30 = 50
	// Days of cover below which a reorder becomes critical.
	reorderCriticalDays = 7
	// Recommended order quantity buffers the 30-day forecast by 20%.
	reorderBufferFactor = 1.2
)

// FindCriticalReorders flags (store, SKU) pairs that will stock out in
// under a week against their 30-day forecast. Pairs without a resolvable
// SKU and supplier are skipped.
func FindCriticalReorders(snap *domain.Snapshot, idx *snapshot.Index) []domain.ReorderAlert {
	alerts := []domain.ReorderAlert{}

	for _, inv := range snap.Inventory {
		fc, ok := idx.Forecast30ByStoreSKU[snapshot.StoreSKUKey(inv.StoreID, inv.SKUID)]
		if !ok || fc.PredictedDemand < reorderMinForecast30 {
			continue
		}

		dailyDemand := fc.PredictedDemand / float64(domain.ForecastPeriod30)
		if dailyDemand <= 0 {
			continue
		}
		daysLeft := float64(inv.QuantityOnHand) / dailyDemand
		if daysLeft >= reorderCriticalDays {
			continue
		}

		sku, ok := idx.SKUByID[inv.SKUID]
		if !ok {
			continue
		}
		supplier, ok := idx.SupplierByID[sku.SupplierID]
		if !ok {
			continue
		}

		alerts = append(alerts, domain.ReorderAlert{
			ID:               snapshot.StoreSKUKey(inv.StoreID, inv.SKUID),
			SKUID:            sku.SKUID,
			ProductName:      sku.ProductName,
			StoreID:          inv.StoreID,
			CurrentStock:     inv.QuantityOnHand,
			DaysOfStockLeft:  int(math.Round(daysLeft)),
			Forecast30Day:    fc.PredictedDemand,
			SupplierName:     supplier.SupplierName,
			SupplierRating:   supplier.OnTimeDeliveryPct * 100,
			RecommendedPOQty: int(math.Ceil(fc.PredictedDemand * reorderBufferFactor)),
		})
	}

	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].DaysOfStockLeft != alerts[j].DaysOfStockLeft {
			return alerts[i].DaysOfStockLeft < alerts[j].DaysOfStockLeft
		}
		return alerts[i].ID < alerts[j].ID
	})
	return alerts
}
