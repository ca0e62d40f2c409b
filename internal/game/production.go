package game

import "time"

type followUp int

const (
	followAutoBuild followUp = iota + 1
	followAutoShip
	followLeaderboard
)

func (f followUp) String() string {
	switch f {
	case followAutoBuild:
		return "auto_build"
	case followAutoShip:
		return "auto_ship"
	case followLeaderboard:
		return "leaderboard"
	default:
		return "unknown"
	}
}

func startProduction(st *State, _ time.Time) ([]followUp, error) {
	if st.IsProducing {
		return nil, ErrAlreadyProducing
	}
	b := st.CurrentBusiness()
	if b == nil {
		return nil, ErrNoBusiness
	}
	if b.Money < ProductionCost {
		return nil, ErrInsufficientFunds
	}
	b.Money -= ProductionCost
	st.spend(ProductionCost)
	st.IsProducing = true
	st.ProductionProgress = 0
	st.ProductionCost = ProductionCost
	return nil, nil
}

func tickProduction(st *State, _ time.Time) ([]followUp, error) {
	if !st.IsProducing {
		return nil, ErrNotProducing
	}
	st.ProductionProgress += progressIncrement(st, TechFasterProduction)
	if !progressDone(st.ProductionProgress) {
		return nil, nil
	}

	qty := ProductionYield(st)
	st.Inventory += qty
	st.Statistics.ProductsCreated += qty
	st.ProductionProgress = 0
	st.IsProducing = false

	if _, ok := st.PurchasedTechnology(TechAutoBuild); ok {
		return []followUp{followAutoBuild}, nil
	}
	return nil, nil
}
