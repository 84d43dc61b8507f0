// internal/domain/strategy.go
package domain

// Strategy quadrant labels. Classification is against the dataset-wide
// average velocity and margin.
const (
	QuadrantCorePerformer   = "Core Performer"
	QuadrantGrowthPotential = "Growth Potential"
	QuadrantSlowMoving      = "Slow-Moving"
	QuadrantUnderperformer  = "Underperformer"
)

// QuadrantSKU is one point on the strategy scatter: trailing 90-day unit
// velocity against product margin.
type QuadrantSKU struct {
	SKUID       string  `json:"sku_id"`
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Velocity    float64 `json:"velocity"`
	Margin      float64 `json:"margin"`
	Quadrant    string  `json:"quadrant"`
}

// FilterAll disables filtering on an axis.
const FilterAll = "ALL"

// StrategyFilter narrows the quadrant chart to one store and/or category.
// Empty or "ALL" means no filtering on that axis.
type StrategyFilter struct {
	Store    string `json:"store"`
	Category string `json:"category"`
}

// StrategyData is the quadrant read-model plus the filter option lists.
type StrategyData struct {
	Quadrants   []QuadrantSKU `json:"quadrants"`
	AvgVelocity float64       `json:"avg_velocity"`
	AvgMargin   float64       `json:"avg_margin"`
	Stores      []string      `json:"stores"`
	Categories  []string      `json:"categories"`
}
