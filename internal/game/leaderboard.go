package game

import (
	"sort"
	"time"
)

func updateLeaderboard(st *State, now time.Time) ([]followUp, error) {
	b := st.CurrentBusiness()
	if b == nil {
		return nil, ErrNoBusiness
	}
	row := LeaderboardEntry{
		BusinessID:       b.ID,
		BusinessName:     b.Name,
		Money:            b.Money,
		TotalMoneyEarned: st.Statistics.TotalMoneyEarned,
		OrdersShipped:    st.Statistics.OrdersShipped,
		LastUpdated:      now,
	}
	for i := range st.Leaderboard {
		if st.Leaderboard[i].BusinessID == b.ID {
			st.Leaderboard[i] = row
			return nil, nil
		}
	}
	st.Leaderboard = append(st.Leaderboard, row)
	return nil, nil
}

// MoneyLeaderboard ranks entries by cumulative earnings, highest first.
func MoneyLeaderboard(entries []LeaderboardEntry) []LeaderboardEntry {
	out := append([]LeaderboardEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalMoneyEarned > out[j].TotalMoneyEarned
	})
	return out
}

// ShippingLeaderboard ranks entries by shipped orders, highest first.
func ShippingLeaderboard(entries []LeaderboardEntry) []LeaderboardEntry {
	out := append([]LeaderboardEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrdersShipped > out[j].OrdersShipped
	})
	return out
}
