// internal/alerts/returns.go
package alerts

import (
	"math"
	"sort"
	"time"

	"github.com/andresuchdata/retail-ops/internal/domain"
	"github.com/andresuchdata/retail-ops/internal/snapshot"
)

// Alert window shared by the return and payable detectors.
const alertWindowDays = 30

// daysUntil counts whole days from now to the given date, rounding up so
// a deadline later today still counts as one day remaining.
func daysUntil(target time.Time, now time.Time) int {
	return int(math.Ceil(target.Sub(now).Hours() / 24))
}

// FindUrgentReturns scans purchase orders for stock that can still go
// back to the supplier before its return window closes. Only stock in
// excess of the 90-day forecast is considered at risk. Records with an
// unresolvable supplier or SKU are skipped.
func FindUrgentReturns(snap *domain.Snapshot, idx *snapshot.Index, now time.Time) []domain.UrgentReturnAlert {
	alerts := []domain.UrgentReturnAlert{}

	for _, po := range snap.PurchaseOrders {
		supplier, ok := idx.SupplierByID[po.SupplierID]
		if !ok || po.ActualDeliveryDate.IsZero() {
			continue
		}

		deadline := po.ActualDeliveryDate.AddDate(0, 0, supplier.ReturnWindowDays)
		daysRemaining := daysUntil(deadline, now)
		if daysRemaining <= 0 || daysRemaining > alertWindowDays {
			continue
		}

		key := snapshot.StoreSKUKey(po.DeliveryLocation, po.SKUID)
		currentStock := 0
		if inv, ok := idx.InventoryByStoreSKU[key]; ok {
			currentStock = inv.QuantityOnHand
		}
		predictedDemand := 0.0
		if fc, ok := idx.Forecast90ByStoreSKU[key]; ok {
			predictedDemand = fc.PredictedDemand
		}

		atRisk := float64(currentStock) - predictedDemand
		sku, ok := idx.SKUByID[po.SKUID]
		if atRisk <= 0 || !ok {
			continue
		}
		if po.QuantityOrdered <= 0 {
			continue
		}

		unitCost := po.TotalCost / float64(po.QuantityOrdered)
		alerts = append(alerts, domain.UrgentReturnAlert{
			POID:           po.POID,
			SKUID:          po.SKUID,
			ProductName:    sku.ProductName,
			StoreID:        po.DeliveryLocation,
			SupplierName:   supplier.SupplierName,
			DaysRemaining:  daysRemaining,
			AtRiskQuantity: int(math.Floor(atRisk)),
			AtRiskValue:    math.Floor(atRisk * unitCost),
			Deadline:       domain.NewDate(deadline),
		})
	}

	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].DaysRemaining != alerts[j].DaysRemaining {
			return alerts[i].DaysRemaining < alerts[j].DaysRemaining
		}
		return alerts[i].POID < alerts[j].POID
	})
	return alerts
}
