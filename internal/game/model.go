package game

import (
	"errors"
	"math"
	"strings"
	"time"
)

const (
	StartingMoney      = int64(250)
	StartingReputation = 50
	MaxReputation      = 100

	ProductionCost = int64(10)

	// A default cycle completes in three ticks.
	BaseProgressPerTick = 100.0 / 3
	ProgressComplete    = 100.0

	ShippingCostRate = 0.2

	BaseOrderInterval = 30 * time.Second
	MinOrderInterval  = 5 * time.Second
	MinOrderDeadline  = 60 * time.Second

	ExpiryReputationLoss = 2
	TerminalOrderTTL     = 60 * time.Second

	SnapshotName = "click-ship-tycoon-storage"
)

const progressEpsilon = 1e-9

var (
	ErrNoBusiness        = errors.New("no current business")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadyProducing  = errors.New("production already running")
	ErrNotProducing      = errors.New("production not running")
	ErrAlreadyShipping   = errors.New("shipping already running")
	ErrNotShipping       = errors.New("shipping not running")
	ErrNoInventory       = errors.New("no inventory available")
	ErrNoPendingOrders   = errors.New("no pending orders")
	ErrUnknownTechnology = errors.New("technology not found")
	ErrAlreadyPurchased  = errors.New("technology already purchased")
	ErrNotPurchased      = errors.New("technology not purchased")
	ErrUnknownBusiness   = errors.New("business not found")
	ErrInvalidGameState  = errors.New("game state must be setup or playing")
	ErrInvalidName       = errors.New("business name and product type are required")
	ErrNoChange          = errors.New("nothing to update")
)

// progressIncrement is the per-tick progress with an optional speed
// technology applied linearly by level.
func progressIncrement(st *State, speedTechID string) float64 {
	inc := BaseProgressPerTick
	if tech, ok := st.PurchasedTechnology(speedTechID); ok {
		inc += inc * float64(tech.Level) * tech.Effect
	}
	return inc
}

func progressDone(p float64) bool {
	return p+progressEpsilon >= ProgressComplete
}

// ProductionYield is the number of products one completed cycle adds.
func ProductionYield(st *State) int64 {
	qty := int64(1)
	if tech, ok := st.PurchasedTechnology(TechBulkProduction); ok {
		qty += int64(math.Floor(float64(tech.Level) * tech.Effect))
	}
	return qty
}

// ShippingCostFor returns the cost of shipping an order of the given value
// after any discount technology.
func ShippingCostFor(st *State, value int64) int64 {
	cost := int64(math.Floor(float64(value) * ShippingCostRate))
	if tech, ok := st.PurchasedTechnology(TechShippingDiscount); ok {
		discount := int64(math.Floor(float64(cost) * float64(tech.Level) * tech.Effect))
		cost -= discount
	}
	return cost
}

// OrderInterval is how often new orders arrive.
func OrderInterval(st *State) time.Duration {
	interval := BaseOrderInterval
	if tech, ok := st.PurchasedTechnology(TechOrderFrequency); ok {
		factor := 1 - float64(tech.Level)*tech.Effect
		interval = time.Duration(float64(BaseOrderInterval) * factor)
	}
	if interval < MinOrderInterval {
		return MinOrderInterval
	}
	return interval
}

func clampReputation(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxReputation {
		return MaxReputation
	}
	return v
}

// ValidateBusinessInput rejects blank business names and product types.
func ValidateBusinessInput(name, productType string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(productType) == "" {
		return ErrInvalidName
	}
	return nil
}
