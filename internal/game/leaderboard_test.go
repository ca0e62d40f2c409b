package game

import (
	"testing"
	"time"
)

func TestUpdateLeaderboardIsIdempotent(t *testing.T) {
	svc, clk := newTestService(t, nil)
	st := playingState(120)
	st.Statistics.TotalMoneyEarned = 500
	st.Statistics.OrdersShipped = 4
	svc.Restore(st)

	svc.UpdateLeaderboard()
	clk.Advance(time.Minute)
	st = svc.UpdateLeaderboard()

	if len(st.Leaderboard) != 1 {
		t.Fatalf("expected a single entry, got %d", len(st.Leaderboard))
	}
	row := st.Leaderboard[0]
	if row.BusinessID != "biz-1" || row.BusinessName != "Acme Widgets" {
		t.Fatalf("unexpected entry %+v", row)
	}
	if row.Money != 120 || row.TotalMoneyEarned != 500 || row.OrdersShipped != 4 {
		t.Fatalf("unexpected figures %+v", row)
	}
	if !row.LastUpdated.Equal(testStart.Add(time.Minute)) {
		t.Fatalf("expected refreshed timestamp, got %v", row.LastUpdated)
	}
}

func TestUpdateLeaderboardWithoutBusiness(t *testing.T) {
	svc, _ := newTestService(t, nil)
	st := svc.UpdateLeaderboard()
	if len(st.Leaderboard) != 0 {
		t.Fatalf("expected empty leaderboard, got %+v", st.Leaderboard)
	}
}

func TestLeaderboardRankings(t *testing.T) {
	entries := []LeaderboardEntry{
		{BusinessID: "a", TotalMoneyEarned: 100, OrdersShipped: 9},
		{BusinessID: "b", TotalMoneyEarned: 300, OrdersShipped: 1},
		{BusinessID: "c", TotalMoneyEarned: 200, OrdersShipped: 5},
	}

	money := MoneyLeaderboard(entries)
	if money[0].BusinessID != "b" || money[1].BusinessID != "c" || money[2].BusinessID != "a" {
		t.Fatalf("unexpected money order %+v", money)
	}
	shipping := ShippingLeaderboard(entries)
	if shipping[0].BusinessID != "a" || shipping[1].BusinessID != "c" || shipping[2].BusinessID != "b" {
		t.Fatalf("unexpected shipping order %+v", shipping)
	}
	if entries[0].BusinessID != "a" {
		t.Fatalf("input slice must not be reordered")
	}
}
