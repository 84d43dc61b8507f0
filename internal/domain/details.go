// internal/domain/details.go
package domain

// StoreVelocity is a store's trailing 90-day unit velocity for one SKU.
type StoreVelocity struct {
	StoreID   string `json:"store_id"`
	UnitsSold int    `json:"units_sold"`
}

// DailySales is one day of a SKU's trailing sales trend.
type DailySales struct {
	Date      Date    `json:"date"`
	UnitsSold int     `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
}

// PurchasePlan carries simulated ordering figures derived from the SKU's
// cost price by a fixed modulo formula. Illustrative is always true: this
// is demo math, not an inventory-optimization policy.
type PurchasePlan struct {
	SafetyStock   int  `json:"safety_stock"`
	ReorderPoint  int  `json:"reorder_point"`
	OrderQuantity int  `json:"order_quantity"`
	Illustrative  bool `json:"illustrative"`
}

// SKUDetails is the deep-dive read-model for a single SKU.
type SKUDetails struct {
	SKU                SKU               `json:"sku"`
	Supplier           *Supplier         `json:"supplier,omitempty"`
	Inventory          []InventoryRecord `json:"inventory"`
	Forecasts          []DemandForecast  `json:"forecasts"`
	Trend30Day         []DailySales      `json:"trend_30_day"`
	Velocity90Day      []StoreVelocity   `json:"velocity_90_day"`
	RecentTransactions []SaleTransaction `json:"recent_transactions"`
	OpenPOs            []PurchaseOrder   `json:"open_purchase_orders"`
	PurchasePlan       PurchasePlan      `json:"purchase_plan"`
}

// SupplierDetails is the deep-dive read-model for a single supplier.
type SupplierDetails struct {
	Supplier        Supplier        `json:"supplier"`
	SKUs            []SKU           `json:"skus"`
	POCount         int             `json:"po_count"`
	TotalPOValue    float64         `json:"total_po_value"`
	AvgDeliveryTime float64         `json:"avg_delivery_time_days"`
	OpenPOs         []PurchaseOrder `json:"open_purchase_orders"`
}

// ListEntry is an (id, name) pair for search autocompletion.
type ListEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
