package game

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Rand is the subset of *math/rand.Rand the order generator draws from.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

func generateOrder(rng Rand) func(st *State, now time.Time) ([]followUp, error) {
	return func(st *State, now time.Time) ([]followUp, error) {
		b := st.CurrentBusiness()
		if b == nil {
			return nil, ErrNoBusiness
		}

		complexity := rng.Intn(3) + 1
		baseValue := int64(50 + complexity*10)
		value := int64(rng.Intn(20)) + baseValue
		if tech, ok := st.PurchasedTechnology(TechRevenueBoost); ok {
			value += int64(math.Floor(float64(value) * float64(tech.Level) * tech.Effect))
		}
		window := time.Duration(float64(MinOrderDeadline) * (rng.Float64()*2 + 1))

		st.Orders = append(st.Orders, Order{
			ID:          uuid.NewString(),
			ProductType: b.ProductType,
			Status:      OrderPending,
			Value:       value,
			Complexity:  complexity,
			CreatedAt:   now,
			Deadline:    now.Add(window),
		})
		st.Statistics.OrdersReceived++
		return nil, nil
	}
}

func checkExpiredOrders(st *State, now time.Time) ([]followUp, error) {
	expired := 0
	for i := range st.Orders {
		o := &st.Orders[i]
		if o.Status.Terminal() {
			continue
		}
		if o.Deadline.Before(now) {
			at := now
			o.Status = OrderExpired
			o.StatusChangedAt = &at
			expired++
		}
	}

	kept := st.Orders[:0]
	pruned := 0
	for _, o := range st.Orders {
		if o.Status.Terminal() && now.Sub(terminalSince(o)) >= TerminalOrderTTL {
			pruned++
			continue
		}
		kept = append(kept, o)
	}
	st.Orders = kept

	if expired == 0 && pruned == 0 {
		return nil, ErrNoChange
	}
	if expired > 0 {
		if b := st.CurrentBusiness(); b != nil {
			b.Reputation = clampReputation(b.Reputation - expired*ExpiryReputationLoss)
			st.Statistics.OrdersExpired += int64(expired)
		}
	}
	return nil, nil
}

// terminalSince falls back to the deadline for expired orders without a
// status timestamp; shipped orders without one are treated as ancient.
func terminalSince(o Order) time.Time {
	if o.StatusChangedAt != nil {
		return *o.StatusChangedAt
	}
	if o.Status == OrderExpired {
		return o.Deadline
	}
	return time.Time{}
}
