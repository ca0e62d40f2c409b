package game

import "fmt"

const (
	TechFasterProduction = "tech-1"
	TechFasterShipping   = "tech-2"
	TechOrderFrequency   = "tech-3"
	TechShippingDiscount = "tech-4"
	TechRevenueBoost     = "tech-5"
	TechBulkProduction   = "tech-6"
	TechAutoBuild        = "tech-7"
	TechAutoShip         = "tech-8"
)

var technologyCatalog = []Technology{
	{
		ID:          TechFasterProduction,
		Name:        "Faster Production",
		Description: "Increases production speed by 33% per level",
		Type:        TechEfficiency,
		Cost:        100,
		Effect:      0.33,
		Icon:        "⚡",
		LevelNames:  []string{"Manual Assembly", "Basic Automation", "Batch Processing", "Advanced Assembly Line", "Smart Manufacturing"},
	},
	{
		ID:          TechAutoBuild,
		Name:        "Auto-Build",
		Description: "Automatically starts building a new product when the previous one is completed",
		Type:        TechAutomation,
		Cost:        1000,
		Effect:      1,
		Icon:        "🤖",
		LevelNames:  []string{"Manual Building", "Automated Building"},
	},
	{
		ID:          TechAutoShip,
		Name:        "Auto-Ship",
		Description: "Automatically starts shipping a new order when the previous one is completed",
		Type:        TechAutomation,
		Cost:        1000,
		Effect:      1,
		Icon:        "📦",
		LevelNames:  []string{"Manual Shipping", "Automated Shipping"},
	},
	{
		ID:          TechFasterShipping,
		Name:        "Faster Shipping",
		Description: "Increases shipping speed by 33% per level",
		Type:        TechEfficiency,
		Cost:        100,
		Effect:      0.33,
		Icon:        "🚚",
		LevelNames:  []string{"Manual Shipping", "Shipping Presets", "Batch Shipping", "Automated Rate Selection", "Priority Processing"},
	},
	{
		ID:          TechOrderFrequency,
		Name:        "Order Frequency",
		Description: "Orders come in 25% faster per level",
		Type:        TechEfficiency,
		Cost:        150,
		Effect:      0.25,
		Icon:        "📊",
		LevelNames:  []string{"Basic Marketplace", "Branded Storefront", "Multi-Channel Integration", "Marketplace Optimizer", "Global Marketplace Hub"},
	},
	{
		ID:          TechShippingDiscount,
		Name:        "Shipping Discount",
		Description: "Reduces shipping costs by 15% per level",
		Type:        TechCost,
		Cost:        120,
		Effect:      0.15,
		Icon:        "💸",
		LevelNames:  []string{"Basic Rates", "Discount Codes", "Carrier Negotiation", "Rate Shopping", "Enterprise Rates"},
	},
	{
		ID:          TechRevenueBoost,
		Name:        "Revenue Boost",
		Description: "Increases order value by 20% per level",
		Type:        TechRevenue,
		Cost:        200,
		Effect:      0.20,
		Icon:        "💰",
		LevelNames:  []string{"Basic Pricing", "Value-Based Pricing", "Premium Packaging", "Upsell Automation", "Dynamic Pricing"},
	},
	{
		ID:          TechBulkProduction,
		Name:        "Bulk Production",
		Description: "Produces 1 additional product per build per level",
		Type:        TechProduction,
		Cost:        250,
		Effect:      1,
		Icon:        "📦",
		LevelNames:  []string{"Single Production", "Dual Production", "Small Batch", "Large Batch", "Mass Production"},
	},
}

// DefaultTechnologies returns a fresh, unpurchased copy of the catalog.
func DefaultTechnologies() []Technology {
	out := make([]Technology, len(technologyCatalog))
	for i, t := range technologyCatalog {
		t.LevelNames = append([]string(nil), t.LevelNames...)
		out[i] = t
	}
	return out
}

// UpgradeCost is the price of taking a purchased technology to the next level.
func UpgradeCost(t Technology) int64 {
	return t.Cost * int64(t.Level+1)
}

// LevelName labels the current level. Levels past the defined names get a
// generic label.
func LevelName(t Technology) string {
	if t.Level >= 0 && t.Level < len(t.LevelNames) {
		return t.LevelNames[t.Level]
	}
	return fmt.Sprintf("Level %d", t.Level)
}
