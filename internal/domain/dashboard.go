// internal/domain/dashboard.go
package domain

// CapitalAllocationKPIs are the headline numbers on the home dashboard.
type CapitalAllocationKPIs struct {
	TotalInventoryValue float64 `json:"total_inventory_value"`
	LiquidatableValue   float64 `json:"liquidatable_value"`
	PayablesDue30Days   float64 `json:"payables_due_30_days"`
	Projected30DaySales float64 `json:"projected_30_day_sales"`
}

// StoreValueBreakdown is one store's share of the total inventory value.
type StoreValueBreakdown struct {
	StoreID   string  `json:"store_id"`
	StoreName string  `json:"store_name"`
	Value     float64 `json:"value"`
	Percent   float64 `json:"percent"`
}

// StoreHealth is the per-store health card: revenue, the store's leading
// problem metric and its fixed performance tier.
type StoreHealth struct {
	StoreID      string  `json:"store_id"`
	StoreName    string  `json:"store_name"`
	HealthTier   string  `json:"health_tier"`
	ProblemStat  string  `json:"problem_stat"`
	ProblemValue string  `json:"problem_value"`
	AvgStockAge  float64 `json:"avg_stock_age_days"`
	StockoutRate float64 `json:"stockout_rate_pct"`
	TotalRevenue float64 `json:"total_revenue"`
}

// CreditHealth is the 30-day working-capital position: projected cash in
// plus liquidatable stock against payables falling due.
type CreditHealth struct {
	CashIn       float64 `json:"cash_in"`
	CashOut      float64 `json:"cash_out"`
	LiquidAssets float64 `json:"liquid_assets"`
	NetPosition  float64 `json:"net_position"`
	Safe         bool    `json:"safe"`
}

// MonthlySales is one month of revenue for the sales trend chart.
type MonthlySales struct {
	Month   string  `json:"month"` // "2025-03"
	Revenue float64 `json:"revenue"`
}

// HomeDashboard is the full read-model behind the home view.
type HomeDashboard struct {
	KPIs             CapitalAllocationKPIs `json:"kpis"`
	Breakdown        []StoreValueBreakdown `json:"inventory_breakdown"`
	StoreHealthCards []StoreHealth         `json:"store_health_cards"`
	CreditHealth     CreditHealth          `json:"credit_health"`
	SalesTrend       []MonthlySales        `json:"sales_trend"`
	ObservedMonths   int                   `json:"observed_months"`
}
