// internal/alerts/actioncenter.go
package alerts

import (
	"time"

	"github.com/andresuchdata/retail-ops/internal/domain"
	"github.com/andresuchdata/retail-ops/internal/snapshot"
)

// BuildActionCenter runs the three alert detectors over one snapshot and
// rolls up their totals. Re-running with an unchanged snapshot and clock
// yields identical ordered output.
func BuildActionCenter(snap *domain.Snapshot, idx *snapshot.Index, now time.Time) domain.ActionCenter {
	returns := FindUrgentReturns(snap, idx, now)
	payables := FindUpcomingPayables(snap, idx, now)
	reorders := FindCriticalReorders(snap, idx)

	var totalReturn, totalPayable float64
	for _, a := range returns {
		totalReturn += a.AtRiskValue
	}
	for _, p := range payables {
		totalPayable += p.AmountDue
	}

	return domain.ActionCenter{
		UrgentReturns:     returns,
		UpcomingPayables:  payables,
		CriticalReorders:  reorders,
		TotalReturnValue:  totalReturn,
		TotalPayableValue: totalPayable,
	}
}
