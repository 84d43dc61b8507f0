// internal/domain/alerts.go
package domain

// UrgentReturnAlert flags stock that can still be returned to its
// supplier before the return window closes.
type UrgentReturnAlert struct {
	POID           string  `json:"po_id"`
	SKUID          string  `json:"sku_id"`
	ProductName    string  `json:"product_name"`
	StoreID        string  `json:"store_id"`
	SupplierName   string  `json:"supplier_name"`
	DaysRemaining  int     `json:"days_remaining"`
	AtRiskQuantity int     `json:"at_risk_quantity"`
	AtRiskValue    float64 `json:"at_risk_value"`
	Deadline       Date    `json:"deadline"`
}

// UpcomingPayable is an invoice falling due within the next 30 days.
type UpcomingPayable struct {
	POID         string  `json:"po_id"`
	SupplierName string  `json:"supplier_name"`
	AmountDue    float64 `json:"amount_due"`
	DueDate      Date    `json:"due_date"`
	DaysUntilDue int     `json:"days_until_due"`
}

// ReorderAlert flags a (store, SKU) pair about to stock out against its
// 30-day forecast.
type ReorderAlert struct {
	ID               string  `json:"id"`
	SKUID            string  `json:"sku_id"`
	ProductName      string  `json:"product_name"`
	StoreID          string  `json:"store_id"`
	CurrentStock     int     `json:"current_stock"`
	DaysOfStockLeft  int     `json:"days_of_stock_left"`
	Forecast30Day    float64 `json:"forecast_30_day"`
	SupplierName     string  `json:"supplier_name"`
	SupplierRating   float64 `json:"supplier_rating"`
	RecommendedPOQty int     `json:"recommended_po_qty"`
}

// Stock status labels for the inventory breakdown.
const (
	StockStatusOverstocked  = "Overstocked"
	StockStatusUnderstocked = "Understocked"
)

// StockStatusAlert is an overstock or understock finding. ReasonDelta is
// units above the overstock threshold, or units below the safety minimum.
type StockStatusAlert struct {
	StoreID        string  `json:"store_id"`
	SKUID          string  `json:"sku_id"`
	ProductName    string  `json:"product_name"`
	Status         string  `json:"status"`
	QuantityOnHand int     `json:"quantity_on_hand"`
	DaysInStock    int     `json:"days_in_stock"`
	Forecast90Day  float64 `json:"forecast_90_day"`
	ReasonDelta    int     `json:"reason_delta"`
	InventoryValue float64 `json:"inventory_value"`
}

// ActionCenter bundles the three alert feeds with their rollup totals.
type ActionCenter struct {
	UrgentReturns     []UrgentReturnAlert `json:"urgent_returns"`
	UpcomingPayables  []UpcomingPayable   `json:"upcoming_payables"`
	CriticalReorders  []ReorderAlert      `json:"critical_reorders"`
	TotalReturnValue  float64             `json:"total_return_value"`
	TotalPayableValue float64             `json:"total_payable_value"`
}
