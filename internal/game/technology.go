package game

import "time"

func purchaseTechnology(id string) func(st *State, now time.Time) ([]followUp, error) {
	return func(st *State, _ time.Time) ([]followUp, error) {
		idx := st.technologyIndex(id)
		if idx < 0 {
			return nil, ErrUnknownTechnology
		}
		tech := &st.Technologies[idx]
		if tech.Purchased {
			return nil, ErrAlreadyPurchased
		}
		b := st.CurrentBusiness()
		if b == nil {
			return nil, ErrNoBusiness
		}
		if b.Money < tech.Cost {
			return nil, ErrInsufficientFunds
		}

		b.Money -= tech.Cost
		st.spend(tech.Cost)
		tech.Purchased = true
		tech.Level = 1
		return []followUp{followLeaderboard}, nil
	}
}

func upgradeTechnology(id string) func(st *State, now time.Time) ([]followUp, error) {
	return func(st *State, _ time.Time) ([]followUp, error) {
		idx := st.technologyIndex(id)
		if idx < 0 {
			return nil, ErrUnknownTechnology
		}
		tech := &st.Technologies[idx]
		if !tech.Purchased {
			return nil, ErrNotPurchased
		}
		b := st.CurrentBusiness()
		if b == nil {
			return nil, ErrNoBusiness
		}
		cost := UpgradeCost(*tech)
		if b.Money < cost {
			return nil, ErrInsufficientFunds
		}

		b.Money -= cost
		st.spend(cost)
		tech.Level++
		return []followUp{followLeaderboard}, nil
	}
}
