// internal/dashboard/kpi.go
package dashboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/andresuchdata/retail-ops/internal/alerts"
	"github.com/andresuchdata/retail-ops/internal/domain"
	"github.com/andresuchdata/retail-ops/internal/snapshot"
)

// Projected sales assume modest growth over the observed monthly average.
const projectedSalesGrowthFactor = 1.1

// Build assembles the home dashboard read-model: capital KPIs, the
// per-store inventory value breakdown, store health cards, the 30-day
// working-capital position and the monthly sales trend.
func Build(snap *domain.Snapshot, idx *snapshot.Index, now time.Time) domain.HomeDashboard {
	action := alerts.BuildActionCenter(snap, idx, now)

	totalValue := 0.0
	valueByStore := make(map[string]float64)
	for _, inv := range snap.Inventory {
		// Unresolvable SKUs count at zero cost; the store still gets a
		// breakdown bucket.
		v := 0.0
		if sku, ok := idx.SKUByID[inv.SKUID]; ok {
			v = float64(inv.QuantityOnHand) * sku.CostPrice
		}
		totalValue += v
		valueByStore[inv.StoreID] += v
	}

	breakdown := make([]domain.StoreValueBreakdown, 0, len(valueByStore))
	for storeID, v := range valueByStore {
		entry := domain.StoreValueBreakdown{StoreID: storeID, Value: v}
		if store, ok := idx.StoreByID[storeID]; ok {
			entry.StoreName = store.StoreName
		}
		if totalValue > 0 {
			entry.Percent = v / totalValue * 100
		}
		breakdown = append(breakdown, entry)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Value != breakdown[j].Value {
			return breakdown[i].Value > breakdown[j].Value
		}
		return breakdown[i].StoreID < breakdown[j].StoreID
	})

	trend, observedMonths := monthlySalesTrend(snap.Sales)

	totalSales := 0.0
	for _, m := range trend {
		totalSales += m.Revenue
	}
	projected := 0.0
	if observedMonths > 0 {
		projected = totalSales / float64(observedMonths) * projectedSalesGrowthFactor
	}

	kpis := domain.CapitalAllocationKPIs{
		TotalInventoryValue: totalValue,
		LiquidatableValue:   action.TotalReturnValue,
		PayablesDue30Days:   action.TotalPayableValue,
		Projected30DaySales: projected,
	}

	net := kpis.Projected30DaySales + kpis.LiquidatableValue - kpis.PayablesDue30Days
	credit := domain.CreditHealth{
		CashIn:       kpis.Projected30DaySales,
		CashOut:      kpis.PayablesDue30Days,
		LiquidAssets: kpis.LiquidatableValue,
		NetPosition:  net,
		Safe:         net > 0,
	}

	return domain.HomeDashboard{
		KPIs:             kpis,
		Breakdown:        breakdown,
		StoreHealthCards: storeHealthCards(snap, idx),
		CreditHealth:     credit,
		SalesTrend:       trend,
		ObservedMonths:   observedMonths,
	}
}

// monthlySalesTrend buckets revenue by calendar month, oldest first.
// The bucket count doubles as the observed-months figure for the
// projected-sales calculation.
func monthlySalesTrend(sales []domain.SaleTransaction) ([]domain.MonthlySales, int) {
	byMonth := make(map[string]float64)
	for _, tx := range sales {
		if tx.TransactionDate.IsZero() {
			continue
		}
		byMonth[tx.TransactionDate.Format("2006-01")] += tx.TotalAmount
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	trend := make([]domain.MonthlySales, 0, len(months))
	for _, m := range months {
		trend = append(trend, domain.MonthlySales{Month: m, Revenue: byMonth[m]})
	}
	return trend, len(trend)
}

// storeHealthCards builds one health card per store. Mall outlets lead
// with their stockout rate, everything else with average stock age.
func storeHealthCards(snap *domain.Snapshot, idx *snapshot.Index) []domain.StoreHealth {
	cards := make([]domain.StoreHealth, 0, len(snap.Stores))

	for _, store := range snap.Stores {
		inv := idx.InventoryByStore[store.StoreID]

		revenue := 0.0
		for _, tx := range idx.SalesByStore[store.StoreID] {
			revenue += tx.TotalAmount
		}

		avgAge := 0.0
		stockoutRate := 0.0
		if len(inv) > 0 {
			ageSum := 0
			stockouts := 0
			for _, rec := range inv {
				ageSum += rec.DaysInStock
				if rec.QuantityOnHand == 0 {
					stockouts++
				}
			}
			avgAge = float64(ageSum) / float64(len(inv))
			stockoutRate = float64(stockouts) / float64(len(inv)) * 100
		}

		card := domain.StoreHealth{
			StoreID:      store.StoreID,
			StoreName:    store.StoreName,
			HealthTier:   store.PerformanceTier,
			AvgStockAge:  avgAge,
			StockoutRate: stockoutRate,
			TotalRevenue: revenue,
		}
		if store.StoreType == "Mall Outlet" {
			card.ProblemStat = "Stockout Rate"
			card.ProblemValue = fmt.Sprintf("%.1f%%", stockoutRate)
		} else {
			card.ProblemStat = "Avg. Stock Age"
			card.ProblemValue = fmt.Sprintf("%.0f days", avgAge)
		}
		cards = append(cards, card)
	}

	return cards
}
