package alerts

import (
	"reflect"
	"testing"
	"time"

	"github.com/andresuchdata/retail-ops/internal/domain"
	"github.com/andresuchdata/retail-ops/internal/snapshot"
)

// Noon UTC anchor matching the demo datasets.
var testNow = time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)

func date(t *testing.T, s string) domain.Date {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return domain.NewDate(parsed)
}

func buildSnapshot(snap *domain.Snapshot) (*domain.Snapshot, *snapshot.Index) {
	return snap, snapshot.BuildIndex(snap)
}

func TestFindUrgentReturns_WindowBoundaries(t *testing.T) {
	tests := []struct {
		name         string
		deliveryDate string
		wantAlert    bool
		wantDays     int
	}{
		{name: "deadline_passed_today", deliveryDate: "2025-10-02", wantAlert: false},
		{name: "one_day_remaining", deliveryDate: "2025-10-03", wantAlert: true, wantDays: 1},
		{name: "exactly_thirty_days", deliveryDate: "2025-11-01", wantAlert: true, wantDays: 30},
		{name: "beyond_window", deliveryDate: "2025-11-02", wantAlert: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap, idx := buildSnapshot(&domain.Snapshot{
				Suppliers: []domain.Supplier{
					{SupplierID: "SUP001", SupplierName: "Acme", ReturnWindowDays: 30},
				},
				SKUs: []domain.SKU{
					{SKUID: "SKU001", ProductName: "Widget"},
				},
				Inventory: []domain.InventoryRecord{
					{StoreID: "ST001", SKUID: "SKU001", QuantityOnHand: 100},
				},
				Forecasts: []domain.DemandForecast{
					{StoreID: "ST001", SKUID: "SKU001", ForecastPeriod: 90, PredictedDemand: 40},
				},
				PurchaseOrders: []domain.PurchaseOrder{
					{
						POID: "PO001", SupplierID: "SUP001", SKUID: "SKU001",
						Status:             domain.POStatusDelivered,
						ActualDeliveryDate: date(t, tc.deliveryDate),
						DeliveryLocation:   "ST001",
						QuantityOrdered:    80,
						TotalCost:          800,
					},
				},
			})

			alerts := FindUrgentReturns(snap, idx, testNow)
			if !tc.wantAlert {
				if len(alerts) != 0 {
					t.Fatalf("expected no alerts, got %d", len(alerts))
				}
				return
			}
			if len(alerts) != 1 {
				t.Fatalf("expected 1 alert, got %d", len(alerts))
			}
			if alerts[0].DaysRemaining != tc.wantDays {
				t.Errorf("expected %d days remaining, got %d", tc.wantDays, alerts[0].DaysRemaining)
			}
		})
	}
}

func TestFindUrgentReturns_AtRiskValue(t *testing.T) {
	snap, idx := buildSnapshot(&domain.Snapshot{
		Suppliers: []domain.Supplier{
			{SupplierID: "SUP001", SupplierName: "Acme", ReturnWindowDays: 30},
		},
		SKUs: []domain.SKU{
			{SKUID: "SKU001", ProductName: "Widget"},
		},
		Inventory: []domain.InventoryRecord{
			{StoreID: "ST001", SKUID: "SKU001", QuantityOnHand: 100},
		},
		Forecasts: []domain.DemandForecast{
			{StoreID: "ST001", SKUID: "SKU001", ForecastPeriod: 90, PredictedDemand: 40},
		},
		PurchaseOrders: []domain.PurchaseOrder{
			{
				POID: "PO001", SupplierID: "SUP001", SKUID: "SKU001",
				Status:             domain.POStatusDelivered,
				ActualDeliveryDate: date(t, "2025-10-15"),
				DeliveryLocation:   "ST001",
				QuantityOrdered:    80,
				TotalCost:          800, // unit cost 10
			},
		},
	})

	alerts := FindUrgentReturns(snap, idx, testNow)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	a := alerts[0]
	if a.AtRiskQuantity != 60 {
		t.Errorf("expected 60 at-risk units, got %d", a.AtRiskQuantity)
	}
	if a.AtRiskValue != 600 {
		t.Errorf("expected at-risk value 600, got %v", a.AtRiskValue)
	}
	if a.DaysRemaining != 13 {
		t.Errorf("expected 13 days remaining, got %d", a.DaysRemaining)
	}
}

func TestFindUrgentReturns_NoExcessStock(t *testing.T) {
	snap, idx := buildSnapshot(&domain.Snapshot{
		Suppliers: []domain.Supplier{
			{SupplierID: "SUP001", SupplierName: "Acme", ReturnWindowDays: 30},
		},
		SKUs: []domain.SKU{{SKUID: "SKU001", ProductName: "Widget"}},
		Inventory: []domain.InventoryRecord{
			{StoreID: "ST001", SKUID: "SKU001", QuantityOnHand: 40},
		},
		Forecasts: []domain.DemandForecast{
			{StoreID: "ST001", SKUID: "SKU001", ForecastPeriod: 90, PredictedDemand: 40},
		},
		PurchaseOrders: []domain.PurchaseOrder{
			{
				POID: "PO001", SupplierID: "SUP001", SKUID: "SKU001",
				Status:             domain.POStatusDelivered,
				ActualDeliveryDate: date(t, "2025-10-15"),
				DeliveryLocation:   "ST001",
				QuantityOrdered:    80,
				TotalCost:          800,
			},
		},
	})

	if alerts := FindUrgentReturns(snap, idx, testNow); len(alerts) != 0 {
		t.Fatalf("stock fully covered by forecast should not alert, got %d", len(alerts))
	}
}

func TestFindUpcomingPayables_PaymentTerms(t *testing.T) {
	tests := []struct {
		name     string
		terms    string
		wantDue  bool
		wantDays int
	}{
		{name: "net_30", terms: "NET 30", wantDue: true, wantDays: 8},
		{name: "net_45", terms: "NET 45", wantDue: true, wantDays: 23},
		{name: "net_60_outside_window", terms: "NET 60", wantDue: false},
		{name: "unknown_terms_default_30", terms: "COD", wantDue: true, wantDays: 8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap, idx := buildSnapshot(&domain.Snapshot{
				Suppliers: []domain.Supplier{
					{SupplierID: "SUP001", SupplierName: "Acme", PaymentTerms: tc.terms},
				},
				PurchaseOrders: []domain.PurchaseOrder{
					{
						POID: "PO001", SupplierID: "SUP001", SKUID: "SKU001",
						Status:             domain.POStatusDelivered,
						ActualDeliveryDate: date(t, "2025-10-10"),
						TotalCost:          1500,
					},
				},
			})

			payables := FindUpcomingPayables(snap, idx, testNow)
			if !tc.wantDue {
				if len(payables) != 0 {
					t.Fatalf("expected no payables, got %d", len(payables))
				}
				return
			}
			if len(payables) != 1 {
				t.Fatalf("expected 1 payable, got %d", len(payables))
			}
			if payables[0].DaysUntilDue != tc.wantDays {
				t.Errorf("expected %d days until due, got %d", tc.wantDays, payables[0].DaysUntilDue)
			}
			if payables[0].AmountDue != 1500 {
				t.Errorf("expected amount due 1500, got %v", payables[0].AmountDue)
			}
		})
	}
}

func TestFindUpcomingPayables_SkipsUndelivered(t *testing.T) {
	snap, idx := buildSnapshot(&domain.Snapshot{
		Suppliers: []domain.Supplier{
			{SupplierID: "SUP001", SupplierName: "Acme", PaymentTerms: "NET 30"},
		},
		PurchaseOrders: []domain.PurchaseOrder{
			{POID: "PO001", SupplierID: "SUP001", Status: domain.POStatusPending},
			{POID: "PO002", SupplierID: "SUP001", Status: domain.POStatusCancelled},
		},
	})

	if payables := FindUpcomingPayables(snap, idx, testNow); len(payables) != 0 {
		t.Fatalf("undelivered orders must not accrue payables, got %d", len(payables))
	}
}

func TestFindCriticalReorders(t *testing.T) {
	tests := []struct {
		name       string
		onHand     int
		forecast30 float64
		wantAlert  bool
		wantDays   int
		wantQty    int
	}{
		{name: "five_days_cover", onHand: 10, forecast30: 60, wantAlert: true, wantDays: 5, wantQty: 72},
		{name: "exactly_seven_days", onHand: 14, forecast30: 60, wantAlert: false},
		{name: "forecast_below_minimum", onHand: 1, forecast30: 45, wantAlert: false},
		{name: "zero_stock", onHand: 0, forecast30: 90, wantAlert: true, wantDays: 0, wantQty: 108},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap, idx := buildSnapshot(&domain.Snapshot{
				Suppliers: []domain.Supplier{
					{SupplierID: "SUP001", SupplierName: "Acme", OnTimeDeliveryPct: 0.92},
				},
				SKUs: []domain.SKU{
					{SKUID: "SKU001", ProductName: "Widget", SupplierID: "SUP001"},
				},
				Inventory: []domain.InventoryRecord{
					{StoreID: "ST001", SKUID: "SKU001", QuantityOnHand: tc.onHand},
				},
				Forecasts: []domain.DemandForecast{
					{StoreID: "ST001", SKUID: "SKU001", ForecastPeriod: 30, PredictedDemand: tc.forecast30},
				},
			})

			alerts := FindCriticalReorders(snap, idx)
			if !tc.wantAlert {
				if len(alerts) != 0 {
					t.Fatalf("expected no alerts, got %d", len(alerts))
				}
				return
			}
			if len(alerts) != 1 {
				t.Fatalf("expected 1 alert, got %d", len(alerts))
			}
			a := alerts[0]
			if a.DaysOfStockLeft != tc.wantDays {
				t.Errorf("expected %d days of stock, got %d", tc.wantDays, a.DaysOfStockLeft)
			}
			if a.RecommendedPOQty != tc.wantQty {
				t.Errorf("expected recommended qty %d, got %d", tc.wantQty, a.RecommendedPOQty)
			}
			if a.SupplierRating != 92 {
				t.Errorf("expected supplier rating 92, got %v", a.SupplierRating)
			}
		})
	}
}

func TestFindStockStatus_Classification(t *testing.T) {
	snap, idx := buildSnapshot(&domain.Snapshot{
		SKUs: []domain.SKU{
			{SKUID: "SKU001", ProductName: "Aged Widget", CostPrice: 10},
			{SKUID: "SKU002", ProductName: "Hot Widget", CostPrice: 20},
			{SKUID: "SKU003", ProductName: "Fresh Widget", CostPrice: 5},
		},
		Inventory: []domain.InventoryRecord{
			// over 3x the 90-day forecast and aged
			{StoreID: "ST001", SKUID: "SKU001", QuantityOnHand: 130, DaysInStock: 70},
			// below safety stock with real demand
			{StoreID: "ST001", SKUID: "SKU002", QuantityOnHand: 5, DaysInStock: 10},
			// over forecast but too young to count as aged
			{StoreID: "ST001", SKUID: "SKU003", QuantityOnHand: 130, DaysInStock: 50},
		},
		Forecasts: []domain.DemandForecast{
			{StoreID: "ST001", SKUID: "SKU001", ForecastPeriod: 90, PredictedDemand: 40},
			{StoreID: "ST001", SKUID: "SKU002", ForecastPeriod: 90, PredictedDemand: 150},
			{StoreID: "ST001", SKUID: "SKU003", ForecastPeriod: 90, PredictedDemand: 40},
		},
	})

	alerts := FindStockStatus(snap, idx)
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}

	over := alerts[0]
	if over.Status != domain.StockStatusOverstocked || over.SKUID != "SKU001" {
		t.Errorf("expected SKU001 overstocked first, got %s %s", over.SKUID, over.Status)
	}
	if over.ReasonDelta != 10 {
		t.Errorf("expected overstock delta 10, got %d", over.ReasonDelta)
	}

	under := alerts[1]
	if under.Status != domain.StockStatusUnderstocked || under.SKUID != "SKU002" {
		t.Errorf("expected SKU002 understocked second, got %s %s", under.SKUID, under.Status)
	}
	if under.ReasonDelta != 5 {
		t.Errorf("expected understock delta 5, got %d", under.ReasonDelta)
	}
	if under.InventoryValue != 100 {
		t.Errorf("expected understock value 100, got %v", under.InventoryValue)
	}
}

func TestFindStockStatus_Caps(t *testing.T) {
	snap := &domain.Snapshot{}
	for i := 0; i < 25; i++ {
		id := string(rune('A' + i))
		snap.SKUs = append(snap.SKUs, domain.SKU{SKUID: "OV" + id, ProductName: "Over " + id, CostPrice: 1})
		snap.Inventory = append(snap.Inventory, domain.InventoryRecord{
			StoreID: "ST001", SKUID: "OV" + id, QuantityOnHand: 200, DaysInStock: 61 + i,
		})
		snap.Forecasts = append(snap.Forecasts, domain.DemandForecast{
			StoreID: "ST001", SKUID: "OV" + id, ForecastPeriod: 90, PredictedDemand: 10,
		})
	}
	for i := 0; i < 10; i++ {
		id := string(rune('A' + i))
		snap.SKUs = append(snap.SKUs, domain.SKU{SKUID: "UN" + id, ProductName: "Under " + id, CostPrice: float64(10 + i)})
		snap.Inventory = append(snap.Inventory, domain.InventoryRecord{
			StoreID: "ST001", SKUID: "UN" + id, QuantityOnHand: 2, DaysInStock: 5,
		})
		snap.Forecasts = append(snap.Forecasts, domain.DemandForecast{
			StoreID: "ST001", SKUID: "UN" + id, ForecastPeriod: 90, PredictedDemand: 150,
		})
	}
	idx := snapshot.BuildIndex(snap)

	alerts := FindStockStatus(snap, idx)
	if len(alerts) != 25 {
		t.Fatalf("expected 18 overstock + 7 understock = 25 alerts, got %d", len(alerts))
	}

	for i := 0; i < 18; i++ {
		if alerts[i].Status != domain.StockStatusOverstocked {
			t.Fatalf("alert %d should be overstocked, got %s", i, alerts[i].Status)
		}
		if i > 0 && alerts[i].DaysInStock > alerts[i-1].DaysInStock {
			t.Errorf("overstock not sorted oldest first at %d", i)
		}
	}
	for i := 18; i < 25; i++ {
		if alerts[i].Status != domain.StockStatusUnderstocked {
			t.Fatalf("alert %d should be understocked, got %s", i, alerts[i].Status)
		}
		if i > 18 && alerts[i].InventoryValue > alerts[i-1].InventoryValue {
			t.Errorf("understock not sorted by value at %d", i)
		}
	}
}

func TestBuildActionCenter_TotalsAndIdempotence(t *testing.T) {
	snap, idx := buildSnapshot(&domain.Snapshot{
		Suppliers: []domain.Supplier{
			{SupplierID: "SUP001", SupplierName: "Acme", ReturnWindowDays: 30, PaymentTerms: "NET 30", OnTimeDeliveryPct: 0.9},
		},
		SKUs: []domain.SKU{
			{SKUID: "SKU001", ProductName: "Widget", SupplierID: "SUP001"},
		},
		Inventory: []domain.InventoryRecord{
			{StoreID: "ST001", SKUID: "SKU001", QuantityOnHand: 100},
		},
		Forecasts: []domain.DemandForecast{
			{StoreID: "ST001", SKUID: "SKU001", ForecastPeriod: 90, PredictedDemand: 40},
		},
		PurchaseOrders: []domain.PurchaseOrder{
			{
				POID: "PO001", SupplierID: "SUP001", SKUID: "SKU001",
				Status:             domain.POStatusDelivered,
				ActualDeliveryDate: date(t, "2025-10-15"),
				DeliveryLocation:   "ST001",
				QuantityOrdered:    80,
				TotalCost:          800,
			},
		},
	})

	first := BuildActionCenter(snap, idx, testNow)
	if first.TotalReturnValue != 600 {
		t.Errorf("expected total return value 600, got %v", first.TotalReturnValue)
	}
	if first.TotalPayableValue != 800 {
		t.Errorf("expected total payable value 800, got %v", first.TotalPayableValue)
	}

	second := BuildActionCenter(snap, idx, testNow)
	if !reflect.DeepEqual(first, second) {
		t.Error("re-running over the same snapshot must produce identical output")
	}
}
