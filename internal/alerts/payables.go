// internal/alerts/payables.go
package alerts

import (
	"sort"
	"time"

	"github.com/andresuchdata/retail-ops/internal/domain"
	"github.com/andresuchdata/retail-ops/internal/snapshot"
)

// paymentTermDays maps supplier payment terms to days from delivery.
// Anything unrecognized falls back to NET 30.
func paymentTermDays(terms string) int {
	switch terms {
	case "NET 45":
		return 45
	case "NET 60":
		return 60
	default:
		return 30
	}
}

// FindUpcomingPayables lists delivered purchase orders whose invoice
// falls due within the next 30 days, soonest first.
func FindUpcomingPayables(snap *domain.Snapshot, idx *snapshot.Index, now time.Time) []domain.UpcomingPayable {
	payables := []domain.UpcomingPayable{}

	for _, po := range snap.PurchaseOrders {
		if !po.Delivered() {
			continue
		}
		supplier, ok := idx.SupplierByID[po.SupplierID]
		if !ok {
			continue
		}

		dueDate := po.ActualDeliveryDate.AddDate(0, 0, paymentTermDays(supplier.PaymentTerms))
		daysUntilDue := daysUntil(dueDate, now)
		if daysUntilDue <= 0 || daysUntilDue > alertWindowDays {
			continue
		}

		payables = append(payables, domain.UpcomingPayable{
			POID:         po.POID,
			SupplierName: supplier.SupplierName,
			AmountDue:    po.TotalCost,
			DueDate:      domain.NewDate(dueDate),
			DaysUntilDue: daysUntilDue,
		})
	}

	sort.Slice(payables, func(i, j int) bool {
		if payables[i].DaysUntilDue != payables[j].DaysUntilDue {
			return payables[i].DaysUntilDue < payables[j].DaysUntilDue
		}
		return payables[i].POID < payables[j].POID
	})
	return payables
}
