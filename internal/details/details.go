// internal/details/details.go
package details

import (
	"sort"
	"time"

	"github.com/andresuchdata/retail-ops/internal/domain"
	"github.com/andresuchdata/retail-ops/internal/snapshot"
)

const (
	trendWindowDays    = 30
	velocityWindowDays = 90
	recentTxLimit      = 10
)

// FindSKU joins everything known about one SKU into a single read-model.
// Returns nil when the id is unknown.
func FindSKU(idx *snapshot.Index, skuID string, now time.Time) *domain.SKUDetails {
	sku, ok := idx.SKUByID[skuID]
	if !ok {
		return nil
	}

	d := &domain.SKUDetails{
		SKU:          sku,
		Inventory:    sortedInventory(idx.InventoryBySKU[skuID]),
		Forecasts:    sortedForecasts(idx.ForecastsBySKU[skuID]),
		OpenPOs:      sortedPOs(idx.OpenPOsBySKU[skuID]),
		PurchasePlan: SimulatePurchasePlan(sku.CostPrice),
	}
	if supplier, ok := idx.SupplierByID[sku.SupplierID]; ok {
		d.Supplier = &supplier
	}

	sales := idx.SalesBySKU[skuID]
	d.Trend30Day = dailyTrend(sales, now)
	d.Velocity90Day = storeVelocities(sales, now)
	d.RecentTransactions = recentTransactions(sales)

	return d
}

// FindSupplier joins a supplier with its catalogue and purchase history.
// Returns nil when the id is unknown.
func FindSupplier(idx *snapshot.Index, supplierID string) *domain.SupplierDetails {
	supplier, ok := idx.SupplierByID[supplierID]
	if !ok {
		return nil
	}

	skus := append([]domain.SKU(nil), idx.SKUsBySupplier[supplierID]...)
	sort.Slice(skus, func(i, j int) bool { return skus[i].SKUID < skus[j].SKUID })

	var open []domain.PurchaseOrder
	totalValue := 0.0
	pos := idx.POsBySupplier[supplierID]
	for _, po := range pos {
		totalValue += po.TotalCost
		if po.Open() {
			open = append(open, po)
		}
	}

	return &domain.SupplierDetails{
		Supplier:        supplier,
		SKUs:            skus,
		POCount:         len(pos),
		TotalPOValue:    totalValue,
		AvgDeliveryTime: supplier.AvgDeliveryTimeDays,
		OpenPOs:         sortedPOs(open),
	}
}

// SKUList and SupplierList feed the search autocompletion.
func SKUList(snap *domain.Snapshot) []domain.ListEntry {
	entries := make([]domain.ListEntry, 0, len(snap.SKUs))
	for _, sku := range snap.SKUs {
		entries = append(entries, domain.ListEntry{ID: sku.SKUID, Name: sku.ProductName})
	}
	return entries
}

func SupplierList(snap *domain.Snapshot) []domain.ListEntry {
	entries := make([]domain.ListEntry, 0, len(snap.Suppliers))
	for _, s := range snap.Suppliers {
		entries = append(entries, domain.ListEntry{ID: s.SupplierID, Name: s.SupplierName})
	}
	return entries
}

// SimulatePurchasePlan derives demo ordering figures from the cost price
// with a fixed modulo formula. This is placeholder math for the purchase
// plan panel, not a real safety-stock model, and the result says so.
func SimulatePurchasePlan(costPrice float64) domain.PurchasePlan {
	cost := int(costPrice)
	if cost < 0 {
		cost = 0
	}
	safety := 20 + cost%30
	return domain.PurchasePlan{
		SafetyStock:   safety,
		ReorderPoint:  safety + 25 + cost%60,
		OrderQuantity: 60 + cost%140,
		Illustrative:  true,
	}
}

// dailyTrend buckets a SKU's sales into a complete trailing 30-day
// series, zero-filled so chart axes stay contiguous.
func dailyTrend(sales []domain.SaleTransaction, now time.Time) []domain.DailySales {
	start := now.AddDate(0, 0, -(trendWindowDays - 1)).UTC().Truncate(24 * time.Hour)

	type bucket struct {
		units   int
		revenue float64
	}
	byDay := make(map[string]bucket)
	for _, tx := range sales {
		if tx.TransactionDate.Before(start) || tx.TransactionDate.After(now) {
			continue
		}
		key := tx.TransactionDate.Format("2006-01-02")
		b := byDay[key]
		b.units += tx.QuantitySold
		b.revenue += tx.TotalAmount
		byDay[key] = b
	}

	trend := make([]domain.DailySales, 0, trendWindowDays)
	for i := 0; i < trendWindowDays; i++ {
		day := start.AddDate(0, 0, i)
		b := byDay[day.Format("2006-01-02")]
		trend = append(trend, domain.DailySales{
			Date:      domain.NewDate(day),
			UnitsSold: b.units,
			Revenue:   b.revenue,
		})
	}
	return trend
}

// storeVelocities sums trailing 90-day units sold per store.
func storeVelocities(sales []domain.SaleTransaction, now time.Time) []domain.StoreVelocity {
	cutoff := now.AddDate(0, 0, -velocityWindowDays)
	byStore := make(map[string]int)
	for _, tx := range sales {
		if tx.TransactionDate.Before(cutoff) {
			continue
		}
		byStore[tx.StoreID] += tx.QuantitySold
	}

	velocities := make([]domain.StoreVelocity, 0, len(byStore))
	for storeID, units := range byStore {
		velocities = append(velocities, domain.StoreVelocity{StoreID: storeID, UnitsSold: units})
	}
	sort.Slice(velocities, func(i, j int) bool { return velocities[i].StoreID < velocities[j].StoreID })
	return velocities
}

// recentTransactions returns the newest transactions, capped at 10.
func recentTransactions(sales []domain.SaleTransaction) []domain.SaleTransaction {
	recent := append([]domain.SaleTransaction(nil), sales...)
	sort.Slice(recent, func(i, j int) bool {
		if !recent[i].TransactionDate.Equal(recent[j].TransactionDate.Time) {
			return recent[i].TransactionDate.After(recent[j].TransactionDate.Time)
		}
		return recent[i].TransactionID > recent[j].TransactionID
	})
	if len(recent) > recentTxLimit {
		recent = recent[:recentTxLimit]
	}
	return recent
}

func sortedInventory(inv []domain.InventoryRecord) []domain.InventoryRecord {
	out := append([]domain.InventoryRecord(nil), inv...)
	sort.Slice(out, func(i, j int) bool { return out[i].StoreID < out[j].StoreID })
	return out
}

func sortedForecasts(fcs []domain.DemandForecast) []domain.DemandForecast {
	out := append([]domain.DemandForecast(nil), fcs...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].StoreID != out[j].StoreID {
			return out[i].StoreID < out[j].StoreID
		}
		return out[i].ForecastPeriod < out[j].ForecastPeriod
	})
	return out
}

func sortedPOs(pos []domain.PurchaseOrder) []domain.PurchaseOrder {
	out := append([]domain.PurchaseOrder(nil), pos...)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OrderDate.Equal(out[j].OrderDate.Time) {
			return out[i].OrderDate.Before(out[j].OrderDate.Time)
		}
		return out[i].POID < out[j].POID
	})
	return out
}
