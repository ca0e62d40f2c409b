package game

import "time"

func startShipping(st *State, _ time.Time) ([]followUp, error) {
	if st.IsShipping {
		return nil, ErrAlreadyShipping
	}
	if st.Inventory <= 0 {
		return nil, ErrNoInventory
	}
	idx := st.firstPendingOrder()
	if idx < 0 {
		return nil, ErrNoPendingOrders
	}
	b := st.CurrentBusiness()
	if b == nil {
		return nil, ErrNoBusiness
	}

	order := &st.Orders[idx]
	cost := ShippingCostFor(st, order.Value)

	// Shipping is allowed to overdraw; production is not.
	b.Money -= cost
	st.spend(cost)
	order.Status = OrderInProgress

	st.IsShipping = true
	st.ShippingProgress = 0
	st.CurrentShippingOrderID = order.ID
	st.ShippingCost = cost
	return nil, nil
}

func tickShipping(st *State, now time.Time) ([]followUp, error) {
	if !st.IsShipping {
		return nil, ErrNotShipping
	}
	st.ShippingProgress += progressIncrement(st, TechFasterShipping)
	if !progressDone(st.ShippingProgress) {
		return nil, nil
	}

	idx := st.orderIndex(st.CurrentShippingOrderID)
	if idx < 0 || st.Orders[idx].Status != OrderInProgress {
		// The order expired or was pruned mid-cycle; the cost stays spent.
		abandonShipping(st)
		return nil, nil
	}
	b := st.CurrentBusiness()
	if b == nil {
		abandonShipping(st)
		return nil, nil
	}

	order := &st.Orders[idx]
	shippedAt := now
	order.Status = OrderShipped
	order.StatusChangedAt = &shippedAt

	profit := order.Value - st.ShippingCost
	b.Money += profit
	b.Reputation = clampReputation(b.Reputation + 1)
	b.LastPlayedAt = now

	st.Inventory--
	st.Statistics.OrdersShipped++
	st.Statistics.TotalRevenue += profit
	st.Statistics.TotalMoneyEarned += order.Value

	st.ShippingProgress = 0
	st.IsShipping = false
	st.CurrentShippingOrderID = ""

	follow := []followUp{followLeaderboard}
	if _, ok := st.PurchasedTechnology(TechAutoShip); ok {
		follow = append(follow, followAutoShip)
	}
	return follow, nil
}

func abandonShipping(st *State) {
	st.ShippingProgress = 0
	st.IsShipping = false
	st.CurrentShippingOrderID = ""
}
