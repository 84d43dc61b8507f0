// internal/seed/generator.go
package seed

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/andresuchdata/retail-ops/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Config controls the generated dataset shape. The same config always
// produces byte-identical fixture files.
type Config struct {
	Seed     int64
	SKUCount int
	Today    time.Time
}

// Datasets holds the seven generated fixture slices before writing.
type Datasets struct {
	Stores         []domain.Store
	Suppliers      []domain.Supplier
	SKUs           []domain.SKU
	Inventory      []domain.InventoryRecord
	PurchaseOrders []domain.PurchaseOrder
	Sales          []domain.SaleTransaction
	Forecasts      []domain.DemandForecast
}

var storeCatalog = []domain.Store{
	{StoreID: "ST001", StoreName: "Downtown Flagship", StoreType: "Flagship", PerformanceTier: "High", SqFt: 12000, AvgBasketSize: 82.5, Location: "Jakarta"},
	{StoreID: "ST002", StoreName: "Grand Mall Outlet", StoreType: "Mall Outlet", PerformanceTier: "Medium", SqFt: 4500, AvgBasketSize: 48.0, Location: "Jakarta"},
	{StoreID: "ST003", StoreName: "Riverside Street Store", StoreType: "Street Store", PerformanceTier: "Medium", SqFt: 2800, AvgBasketSize: 36.2, Location: "Bandung"},
	{StoreID: "ST004", StoreName: "Central Mall Outlet", StoreType: "Mall Outlet", PerformanceTier: "Low", SqFt: 3900, AvgBasketSize: 41.7, Location: "Surabaya"},
	{StoreID: "ST005", StoreName: "Harbor Flagship", StoreType: "Flagship", PerformanceTier: "High", SqFt: 10500, AvgBasketSize: 75.3, Location: "Surabaya"},
	{StoreID: "ST006", StoreName: "Northgate Street Store", StoreType: "Street Store", PerformanceTier: "Low", SqFt: 2200, AvgBasketSize: 29.8, Location: "Medan"},
}

var supplierNames = []string{
	"Nusantara Textiles", "Java Footwear Co", "Borneo Apparel",
	"Sumatra Leatherworks", "Bali Casuals", "Celebes Sportswear",
	"Archipelago Accessories", "Merdeka Garments",
}

var categories = []string{"Apparel", "Footwear", "Accessories", "Sportswear", "Outerwear"}

var paymentTerms = []string{"NET 30", "NET 45", "NET 60"}

var timesOfDay = []string{"Morning", "Afternoon", "Evening"}

var paymentMethods = []string{"Cash", "Card", "QRIS", "Transfer"}

// Generate builds the full fixture set from the config.
func Generate(cfg Config) *Datasets {
	if cfg.SKUCount <= 0 {
		cfg.SKUCount = 120
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	today := cfg.Today

	ds := &Datasets{Stores: storeCatalog}

	for i, name := range supplierNames {
		ds.Suppliers = append(ds.Suppliers, domain.Supplier{
			SupplierID:          fmt.Sprintf("SUP%03d", i+1),
			SupplierName:        name,
			ReturnWindowDays:    14 + rng.Intn(4)*14, // 14, 28, 42 or 56
			AvgDeliveryTimeDays: round2(3 + rng.Float64()*12),
			OnTimeDeliveryPct:   round2(0.6 + rng.Float64()*0.39),
			QualityRating:       round2(3 + rng.Float64()*2),
			PaymentTerms:        paymentTerms[rng.Intn(len(paymentTerms))],
		})
	}

	for i := 0; i < cfg.SKUCount; i++ {
		category := categories[rng.Intn(len(categories))]
		cost := round2(5 + rng.Float64()*195)
		markup := 1.2 + rng.Float64()*1.3
		selling := round2(cost * markup)
		ds.SKUs = append(ds.SKUs, domain.SKU{
			SKUID:        fmt.Sprintf("SKU%04d", i+1),
			ProductName:  fmt.Sprintf("%s Item %04d", category, i+1),
			Category:     category,
			CostPrice:    cost,
			SellingPrice: selling,
			Margin:       round2((selling - cost) / selling),
			SupplierID:   ds.Suppliers[rng.Intn(len(ds.Suppliers))].SupplierID,
		})
	}

	ds.Inventory = generateInventory(rng, ds)
	ds.PurchaseOrders = generatePurchaseOrders(rng, ds, today)
	ds.Sales = generateSales(rng, ds, today)
	ds.Forecasts = generateForecasts(rng, ds, today)

	return ds
}

func generateInventory(rng *rand.Rand, ds *Datasets) []domain.InventoryRecord {
	records := make([]domain.InventoryRecord, 0, len(ds.Stores)*len(ds.SKUs))
	for _, store := range ds.Stores {
		for _, sku := range ds.SKUs {
			// roughly a third of the catalog is not stocked per store
			if rng.Float64() < 0.35 {
				continue
			}
			records = append(records, domain.InventoryRecord{
				StoreID:        store.StoreID,
				SKUID:          sku.SKUID,
				QuantityOnHand: rng.Intn(400),
				DaysInStock:    rng.Intn(180),
			})
		}
	}
	return records
}

func generatePurchaseOrders(rng *rand.Rand, ds *Datasets, today time.Time) []domain.PurchaseOrder {
	orders := make([]domain.PurchaseOrder, 0, len(ds.SKUs)*3)
	seq := 0
	for _, sku := range ds.SKUs {
		supplier := supplierByID(ds, sku.SupplierID)
		for n := 0; n < 1+rng.Intn(4); n++ {
			seq++
			orderDate := today.AddDate(0, 0, -(10 + rng.Intn(170)))
			qty := 20 + rng.Intn(280)
			po := domain.PurchaseOrder{
				POID:             fmt.Sprintf("PO%05d", seq),
				SupplierID:       sku.SupplierID,
				SKUID:            sku.SKUID,
				OrderDate:        domain.NewDate(orderDate),
				QuantityOrdered:  qty,
				DeliveryLocation: ds.Stores[rng.Intn(len(ds.Stores))].StoreID,
				TotalCost:        money(decimal.NewFromFloat(sku.CostPrice).Mul(decimal.NewFromInt(int64(qty)))),
			}
			switch roll := rng.Float64(); {
			case roll < 0.7:
				po.Status = domain.POStatusDelivered
				lead := int(supplier.AvgDeliveryTimeDays) + rng.Intn(7)
				po.ActualDeliveryDate = domain.NewDate(orderDate.AddDate(0, 0, lead))
			case roll < 0.9:
				po.Status = domain.POStatusPending
			default:
				po.Status = domain.POStatusCancelled
			}
			orders = append(orders, po)
		}
	}
	return orders
}

func generateSales(rng *rand.Rand, ds *Datasets, today time.Time) []domain.SaleTransaction {
	sales := make([]domain.SaleTransaction, 0, len(ds.Inventory)*2)
	for _, inv := range ds.Inventory {
		sku := skuByID(ds, inv.SKUID)
		for n := 0; n < rng.Intn(5); n++ {
			txDate := today.AddDate(0, 0, -rng.Intn(120))
			qty := 1 + rng.Intn(6)
			sales = append(sales, domain.SaleTransaction{
				TransactionID:   transactionID(inv.StoreID, inv.SKUID, len(sales)),
				StoreID:         inv.StoreID,
				SKUID:           inv.SKUID,
				TransactionDate: domain.NewDate(txDate),
				QuantitySold:    qty,
				TotalAmount:     money(decimal.NewFromFloat(sku.SellingPrice).Mul(decimal.NewFromInt(int64(qty)))),
				TimeOfDay:       timesOfDay[rng.Intn(len(timesOfDay))],
				PaymentMethod:   paymentMethods[rng.Intn(len(paymentMethods))],
			})
		}
	}
	return sales
}

func generateForecasts(rng *rand.Rand, ds *Datasets, today time.Time) []domain.DemandForecast {
	forecasts := make([]domain.DemandForecast, 0, len(ds.Inventory)*2)
	for _, inv := range ds.Inventory {
		base := rng.Float64() * 120
		for _, period := range []int{domain.ForecastPeriod30, domain.ForecastPeriod90} {
			forecasts = append(forecasts, domain.DemandForecast{
				SKUID:           inv.SKUID,
				StoreID:         inv.StoreID,
				ForecastDate:    domain.NewDate(today),
				ForecastPeriod:  period,
				PredictedDemand: round2(base * float64(period) / 30),
			})
		}
	}
	return forecasts
}

// transactionID derives a stable UUID so regenerated fixtures diff cleanly.
func transactionID(storeID, skuID string, seq int) string {
	name := fmt.Sprintf("%s/%s/%d", storeID, skuID, seq)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

// WriteAll writes the seven fixture files into dir.
func WriteAll(ds *Datasets, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed creating %s: %w", dir, err)
	}

	files := map[string]any{
		"stores.json":             ds.Stores,
		"suppliers.json":          ds.Suppliers,
		"skus.json":               ds.SKUs,
		"inventory.json":          ds.Inventory,
		"purchase_orders.json":    ds.PurchaseOrders,
		"sales_transactions.json": ds.Sales,
		"demand_forecast.json":    ds.Forecasts,
	}
	for name, payload := range files {
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("failed encoding %s: %w", name, err)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed writing %s: %w", path, err)
		}
		log.Info().Str("file", name).Int("bytes", len(data)).Msg("fixture written")
	}
	return nil
}

func supplierByID(ds *Datasets, id string) domain.Supplier {
	for _, s := range ds.Suppliers {
		if s.SupplierID == id {
			return s
		}
	}
	return domain.Supplier{}
}

func skuByID(ds *Datasets, id string) domain.SKU {
	for _, s := range ds.SKUs {
		if s.SKUID == id {
			return s
		}
	}
	return domain.SKU{}
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func round2(v float64) float64 {
	return money(decimal.NewFromFloat(v))
}
