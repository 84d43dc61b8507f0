// internal/domain/models.go
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date carried in the fixture files as "2006-01-02".
// Purchase orders omit the delivery date until delivered, so the zero
// value means "not set".
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func NewDate(t time.Time) Date {
	return Date{Time: t.UTC().Truncate(24 * time.Hour)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", raw, err)
	}
	d.Time = t
	return nil
}

// Store represents one of the retail locations
type Store struct {
	StoreID         string  `json:"store_id"`
	StoreName       string  `json:"store_name"`
	StoreType       string  `json:"store_type"`
	PerformanceTier string  `json:"performance_tier"`
	SqFt            float64 `json:"sq_ft"`
	AvgBasketSize   float64 `json:"avg_basket_size"`
	Location        string  `json:"location"`
}

// Supplier represents a supplier and its commercial terms
type Supplier struct {
	SupplierID          string  `json:"supplier_id"`
	SupplierName        string  `json:"supplier_name"`
	ReturnWindowDays    int     `json:"return_window_days"`
	AvgDeliveryTimeDays float64 `json:"avg_delivery_time_days"`
	OnTimeDeliveryPct   float64 `json:"on_time_delivery_pct"`
	QualityRating       float64 `json:"quality_rating"`
	PaymentTerms        string  `json:"payment_terms"`
}

// SKU represents a master product record
type SKU struct {
	SKUID        string  `json:"sku_id"`
	ProductName  string  `json:"product_name"`
	Category     string  `json:"category"`
	CostPrice    float64 `json:"cost_price"`
	SellingPrice float64 `json:"selling_price"`
	Margin       float64 `json:"margin"`
	SupplierID   string  `json:"supplier_id"`
}

// InventoryRecord is the on-hand stock of one SKU at one store.
// Unique per (store, SKU).
type InventoryRecord struct {
	StoreID        string `json:"store_id"`
	SKUID          string `json:"sku_id"`
	QuantityOnHand int    `json:"quantity_on_hand"`
	DaysInStock    int    `json:"days_in_stock"`
}

// Purchase order status values. Status only moves forward; a delivered
// PO never loses its delivery date.
const (
	POStatusDelivered = "Delivered"
	POStatusPending   = "Pending"
	POStatusCancelled = "Cancelled"
)

// PurchaseOrder represents a historical re-stocking event
type PurchaseOrder struct {
	POID               string  `json:"po_id"`
	SupplierID         string  `json:"supplier_id"`
	SKUID              string  `json:"sku_id"`
	OrderDate          Date    `json:"order_date"`
	ActualDeliveryDate Date    `json:"actual_delivery_date"`
	QuantityOrdered    int     `json:"quantity_ordered"`
	Status             string  `json:"status"`
	DeliveryLocation   string  `json:"delivery_location"`
	TotalCost          float64 `json:"total_cost"`
}

// Delivered reports whether the PO has been delivered and carries a
// usable delivery date.
func (po PurchaseOrder) Delivered() bool {
	return po.Status == POStatusDelivered && !po.ActualDeliveryDate.IsZero()
}

// Open reports whether the PO is still in flight.
func (po PurchaseOrder) Open() bool {
	return po.Status != POStatusDelivered && po.Status != POStatusCancelled
}

// SaleTransaction is a single historical sale line
type SaleTransaction struct {
	TransactionID   string  `json:"transaction_id"`
	StoreID         string  `json:"store_id"`
	SKUID           string  `json:"sku_id"`
	TransactionDate Date    `json:"transaction_date"`
	QuantitySold    int     `json:"quantity_sold"`
	TotalAmount     float64 `json:"total_amount"`
	TimeOfDay       string  `json:"time_of_day"`
	PaymentMethod   string  `json:"payment_method"`
}

// Forecast horizons carried in demand_forecast.json
const (
	ForecastPeriod30 = 30
	ForecastPeriod90 = 90
)

// DemandForecast is the predicted demand for a (SKU, store, period) triple
type DemandForecast struct {
	SKUID           string  `json:"sku_id"`
	StoreID         string  `json:"store_id"`
	ForecastDate    Date    `json:"forecast_date"`
	ForecastPeriod  int     `json:"forecast_period"`
	PredictedDemand float64 `json:"predicted_demand"`
}

// Snapshot holds the seven datasets loaded at startup. It is treated as
// immutable for the lifetime of the session; every derivation is a pure
// function over it.
type Snapshot struct {
	Version        string            `json:"version"`
	LoadedAt       time.Time         `json:"loaded_at"`
	Stores         []Store           `json:"stores"`
	Suppliers      []Supplier        `json:"suppliers"`
	SKUs           []SKU             `json:"skus"`
	Inventory      []InventoryRecord `json:"inventory"`
	PurchaseOrders []PurchaseOrder   `json:"purchase_orders"`
	Sales          []SaleTransaction `json:"sales"`
	Forecasts      []DemandForecast  `json:"forecasts"`
}
