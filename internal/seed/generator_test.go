package seed

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

var testToday = time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

func TestGenerate_Deterministic(t *testing.T) {
	cfg := Config{Seed: 42, SKUCount: 30, Today: testToday}

	first := Generate(cfg)
	second := Generate(cfg)
	if !reflect.DeepEqual(first, second) {
		t.Error("same seed must generate identical datasets")
	}

	other := Generate(Config{Seed: 43, SKUCount: 30, Today: testToday})
	if reflect.DeepEqual(first.Inventory, other.Inventory) {
		t.Error("different seeds should diverge")
	}
}

func TestGenerate_ReferentialIntegrity(t *testing.T) {
	ds := Generate(Config{Seed: 7, SKUCount: 40, Today: testToday})

	stores := make(map[string]bool)
	for _, s := range ds.Stores {
		stores[s.StoreID] = true
	}
	suppliers := make(map[string]bool)
	for _, s := range ds.Suppliers {
		suppliers[s.SupplierID] = true
	}
	skus := make(map[string]bool)
	for _, s := range ds.SKUs {
		skus[s.SKUID] = true
		if !suppliers[s.SupplierID] {
			t.Fatalf("SKU %s references unknown supplier %s", s.SKUID, s.SupplierID)
		}
	}

	for _, inv := range ds.Inventory {
		if !stores[inv.StoreID] || !skus[inv.SKUID] {
			t.Fatalf("inventory references unknown store/SKU: %+v", inv)
		}
	}
	for _, po := range ds.PurchaseOrders {
		if !suppliers[po.SupplierID] || !skus[po.SKUID] || !stores[po.DeliveryLocation] {
			t.Fatalf("purchase order references unknown entity: %+v", po)
		}
		if po.Delivered() && po.ActualDeliveryDate.Before(po.OrderDate.Time) {
			t.Fatalf("PO %s delivered before it was ordered", po.POID)
		}
	}
	for _, fc := range ds.Forecasts {
		if fc.ForecastPeriod != 30 && fc.ForecastPeriod != 90 {
			t.Fatalf("unexpected forecast period %d", fc.ForecastPeriod)
		}
	}

	seen := make(map[string]bool)
	for _, tx := range ds.Sales {
		if seen[tx.TransactionID] {
			t.Fatalf("duplicate transaction id %s", tx.TransactionID)
		}
		seen[tx.TransactionID] = true
	}
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	ds := Generate(Config{Seed: 1, SKUCount: 10, Today: testToday})

	if err := WriteAll(ds, dir); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	names := []string{
		"stores.json", "suppliers.json", "skus.json", "inventory.json",
		"purchase_orders.json", "sales_transactions.json", "demand_forecast.json",
	}
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
		var records []json.RawMessage
		if err := json.Unmarshal(data, &records); err != nil {
			t.Fatalf("%s is not a JSON array: %v", name, err)
		}
	}
}
