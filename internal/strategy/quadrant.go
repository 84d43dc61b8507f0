// internal/strategy/quadrant.go
package strategy

import (
	"sort"
	"time"

	"github.com/andresuchdata/retail-ops/internal/domain"
	"github.com/andresuchdata/retail-ops/internal/snapshot"
)

// Velocity is measured over the trailing 90 days of sales.
const velocityWindowDays = 90

// classify places a SKU on the velocity/margin grid relative to the
// dataset averages.
func classify(velocity, margin, avgVelocity, avgMargin float64) string {
	switch {
	case velocity >= avgVelocity && margin >= avgMargin:
		return domain.QuadrantCorePerformer
	case velocity < avgVelocity && margin >= avgMargin:
		return domain.QuadrantGrowthPotential
	case velocity >= avgVelocity && margin < avgMargin:
		return domain.QuadrantSlowMoving
	default:
		return domain.QuadrantUnderperformer
	}
}

// Build computes the strategy quadrant chart: every SKU plotted by its
// trailing 90-day unit velocity against its margin, classified relative
// to the averages of the filtered set. SKUs with no sales in the window
// still appear, at velocity zero.
func Build(snap *domain.Snapshot, idx *snapshot.Index, filter domain.StrategyFilter, now time.Time) domain.StrategyData {
	cutoff := now.AddDate(0, 0, -velocityWindowDays)

	storeFilter := filter.Store
	if storeFilter == domain.FilterAll {
		storeFilter = ""
	}
	categoryFilter := filter.Category
	if categoryFilter == domain.FilterAll {
		categoryFilter = ""
	}

	quadrants := make([]domain.QuadrantSKU, 0, len(snap.SKUs))
	var totalVelocity, totalMargin float64

	for _, sku := range snap.SKUs {
		if categoryFilter != "" && sku.Category != categoryFilter {
			continue
		}

		units := 0
		for _, tx := range idx.SalesBySKU[sku.SKUID] {
			if storeFilter != "" && tx.StoreID != storeFilter {
				continue
			}
			if tx.TransactionDate.Before(cutoff) {
				continue
			}
			units += tx.QuantitySold
		}

		q := domain.QuadrantSKU{
			SKUID:       sku.SKUID,
			ProductName: sku.ProductName,
			Category:    sku.Category,
			Velocity:    float64(units),
			Margin:      sku.Margin,
		}
		totalVelocity += q.Velocity
		totalMargin += q.Margin
		quadrants = append(quadrants, q)
	}

	var avgVelocity, avgMargin float64
	if len(quadrants) > 0 {
		avgVelocity = totalVelocity / float64(len(quadrants))
		avgMargin = totalMargin / float64(len(quadrants))
	}
	for i := range quadrants {
		quadrants[i].Quadrant = classify(quadrants[i].Velocity, quadrants[i].Margin, avgVelocity, avgMargin)
	}

	return domain.StrategyData{
		Quadrants:   quadrants,
		AvgVelocity: avgVelocity,
		AvgMargin:   avgMargin,
		Stores:      storeOptions(snap),
		Categories:  categoryOptions(snap),
	}
}

func storeOptions(snap *domain.Snapshot) []string {
	options := []string{domain.FilterAll}
	for _, s := range snap.Stores {
		options = append(options, s.StoreID)
	}
	return options
}

func categoryOptions(snap *domain.Snapshot) []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, sku := range snap.SKUs {
		if _, ok := seen[sku.Category]; ok {
			continue
		}
		seen[sku.Category] = struct{}{}
		categories = append(categories, sku.Category)
	}
	sort.Strings(categories)
	return append([]string{domain.FilterAll}, categories...)
}
