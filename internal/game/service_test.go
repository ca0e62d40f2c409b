package game

import (
	"testing"
	"time"
)

func TestCreateBusiness(t *testing.T) {
	svc, _ := newTestService(t, nil)
	st := svc.CreateBusiness("  Acme  ", "widgets")
	if len(st.Businesses) != 1 {
		t.Fatalf("expected one business, got %d", len(st.Businesses))
	}
	b := st.Businesses[0]
	if b.Name != "Acme" || b.Money != StartingMoney || b.Reputation != StartingReputation {
		t.Fatalf("unexpected business %+v", b)
	}
	if st.CurrentBusinessID != b.ID || st.GameState != GameStatePlaying {
		t.Fatalf("expected new business to be current and playing")
	}
}

func TestCreateBusinessRejectsBlankName(t *testing.T) {
	svc, _ := newTestService(t, nil)
	st := svc.CreateBusiness(" ", "widgets")
	if len(st.Businesses) != 0 || st.GameState != GameStateSetup {
		t.Fatalf("blank name must be rejected: %+v", st)
	}
}

func TestSelectBusiness(t *testing.T) {
	svc, clk := newTestService(t, nil)
	first := svc.CreateBusiness("One", "mugs").Businesses[0]
	svc.CreateBusiness("Two", "hats")

	clk.Advance(time.Hour)
	st := svc.SelectBusiness(first.ID)
	if st.CurrentBusinessID != first.ID {
		t.Fatalf("expected %s selected, got %s", first.ID, st.CurrentBusinessID)
	}
	if !st.Businesses[0].LastPlayedAt.Equal(testStart.Add(time.Hour)) {
		t.Fatalf("expected last played refreshed, got %v", st.Businesses[0].LastPlayedAt)
	}

	st = svc.SelectBusiness("missing")
	if st.CurrentBusinessID != first.ID {
		t.Fatalf("unknown id must not change selection")
	}
}

func TestSetGameState(t *testing.T) {
	svc, _ := newTestService(t, nil)
	svc.CreateBusiness("One", "mugs")
	if st := svc.SetGameState(GameStateSetup); st.GameState != GameStateSetup {
		t.Fatalf("expected setup, got %s", st.GameState)
	}
	if st := svc.SetGameState("paused"); st.GameState != GameStateSetup {
		t.Fatalf("invalid state accepted: %s", st.GameState)
	}
}

func TestResetGameKeepsBusinesses(t *testing.T) {
	svc, _ := newTestService(t, nil)
	st := withTech(playingState(500), TechAutoBuild, 1)
	st.Inventory = 4
	st.Orders = []Order{pendingOrder("o1", 70, testStart.Add(time.Hour))}
	st.Leaderboard = []LeaderboardEntry{{BusinessID: "biz-1", TotalMoneyEarned: 10}}
	st.Statistics.OrdersShipped = 3
	svc.Restore(st)

	st = svc.ResetGame()
	if st.GameState != GameStateSetup || st.CurrentBusinessID != "" {
		t.Fatalf("expected setup without selection: %+v", st)
	}
	if len(st.Businesses) != 1 || len(st.Leaderboard) != 1 {
		t.Fatalf("businesses and leaderboard must survive reset")
	}
	if len(st.Orders) != 0 || st.Inventory != 0 || st.Statistics != (Statistics{}) {
		t.Fatalf("expected cleared progress: %+v", st)
	}
	if _, ok := st.PurchasedTechnology(TechAutoBuild); ok {
		t.Fatalf("technologies must be reset")
	}
}

func TestSubscribeReceivesLatest(t *testing.T) {
	svc, _ := newTestService(t, nil)
	updates, cancel := svc.Subscribe()
	defer cancel()

	svc.CreateBusiness("One", "mugs")
	svc.StartProduction()
	svc.TickProduction()

	got := <-updates
	want := svc.State()
	if got.ProductionProgress != want.ProductionProgress || got.Businesses[0].Money != want.Businesses[0].Money {
		t.Fatalf("expected latest snapshot, got progress=%v money=%d", got.ProductionProgress, got.Businesses[0].Money)
	}
	select {
	case st := <-updates:
		t.Fatalf("unexpected extra snapshot %+v", st)
	default:
	}
}

func TestSubscribeCancelClosesChannel(t *testing.T) {
	svc, _ := newTestService(t, nil)
	updates, cancel := svc.Subscribe()
	cancel()
	cancel()
	if _, ok := <-updates; ok {
		t.Fatalf("expected closed channel")
	}
	svc.CreateBusiness("One", "mugs")
}

func TestRejectedActionDoesNotPublish(t *testing.T) {
	svc, _ := newTestService(t, nil)
	updates, cancel := svc.Subscribe()
	defer cancel()

	svc.StartProduction()
	select {
	case st := <-updates:
		t.Fatalf("rejected action published %+v", st)
	default:
	}
}

func TestSnapshotRoundTripNormalizes(t *testing.T) {
	st, err := DecodeSnapshot([]byte(`{"game_state":"bogus","inventory":3}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.GameState != GameStateSetup {
		t.Fatalf("expected setup, got %s", st.GameState)
	}
	if len(st.Technologies) != len(DefaultTechnologies()) || st.Orders == nil || st.Businesses == nil {
		t.Fatalf("expected defaults filled in: %+v", st)
	}

	src := withTech(playingState(77), TechRevenueBoost, 2)
	raw, err := EncodeSnapshot(src)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := DecodeSnapshot(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.Businesses[0].Money != 77 || back.CurrentBusinessID != "biz-1" {
		t.Fatalf("unexpected business after round trip %+v", back.Businesses)
	}
	if tech, ok := back.PurchasedTechnology(TechRevenueBoost); !ok || tech.Level != 2 {
		t.Fatalf("expected revenue boost level 2, got %+v", tech)
	}

	if _, err := DecodeSnapshot([]byte("{")); err == nil {
		t.Fatalf("expected error for malformed snapshot")
	}
}

func TestStateLookupsOnSnapshot(t *testing.T) {
	svc, _ := newTestService(t, nil)
	st := withTech(playingState(100), TechAutoShip, 1)
	st.Orders = []Order{pendingOrder("o1", 70, testStart.Add(time.Hour))}
	svc.Restore(st)

	if !svc.State().HasPendingOrder() {
		t.Fatalf("expected pending order on snapshot")
	}
	if _, ok := svc.State().Business("biz-1"); !ok {
		t.Fatalf("expected business lookup on snapshot")
	}
	if tech, ok := svc.State().Technology(TechAutoShip); !ok || tech.Level != 1 {
		t.Fatalf("expected technology lookup on snapshot, got %+v", tech)
	}
	if _, ok := svc.State().PurchasedTechnology(TechAutoShip); !ok {
		t.Fatalf("expected purchased lookup on snapshot")
	}
}

func TestUpdateBusiness(t *testing.T) {
	svc, _ := newTestService(t, nil)
	st := playingState(100)
	st.Leaderboard = []LeaderboardEntry{{BusinessID: "biz-1", BusinessName: "Acme Widgets"}}
	svc.Restore(st)

	st = svc.UpdateBusiness("biz-1", "  Acme Mugs ", "")
	if st.Businesses[0].Name != "Acme Mugs" || st.Businesses[0].ProductType != "widgets" {
		t.Fatalf("unexpected business %+v", st.Businesses[0])
	}
	if st.Leaderboard[0].BusinessName != "Acme Mugs" {
		t.Fatalf("expected leaderboard name updated, got %q", st.Leaderboard[0].BusinessName)
	}

	st = svc.UpdateBusiness("missing", "Other", "")
	if len(st.Businesses) != 1 || st.Businesses[0].Name != "Acme Mugs" {
		t.Fatalf("unknown id must not change anything")
	}
}

func TestDeleteCurrentBusiness(t *testing.T) {
	svc, _ := newTestService(t, nil)
	st := playingState(100)
	st.Businesses = append(st.Businesses, Business{ID: "biz-2", Name: "Other", ProductType: "hats", Money: 10})
	st.Orders = []Order{pendingOrder("o1", 70, testStart.Add(time.Hour))}
	st.Orders[0].Status = OrderInProgress
	st.IsShipping = true
	st.CurrentShippingOrderID = "o1"
	st.IsProducing = true
	st.ProductionProgress = 40
	st.Leaderboard = []LeaderboardEntry{{BusinessID: "biz-1"}, {BusinessID: "biz-2"}}
	svc.Restore(st)

	st = svc.DeleteBusiness("biz-1")
	if len(st.Businesses) != 1 || st.Businesses[0].ID != "biz-2" {
		t.Fatalf("unexpected businesses %+v", st.Businesses)
	}
	if len(st.Leaderboard) != 1 || st.Leaderboard[0].BusinessID != "biz-2" {
		t.Fatalf("unexpected leaderboard %+v", st.Leaderboard)
	}
	if st.CurrentBusinessID != "" || st.GameState != GameStateSetup {
		t.Fatalf("expected setup without selection: %+v", st)
	}
	if st.IsShipping || st.IsProducing || st.ProductionProgress != 0 {
		t.Fatalf("expected cycles stopped: %+v", st)
	}
	if st.Orders[0].Status != OrderPending {
		t.Fatalf("expected order returned to pending, got %s", st.Orders[0].Status)
	}
}

func TestDeleteOtherBusinessKeepsSession(t *testing.T) {
	svc, _ := newTestService(t, nil)
	st := playingState(100)
	st.Businesses = append(st.Businesses, Business{ID: "biz-2", Name: "Other", ProductType: "hats"})
	st.IsProducing = true
	svc.Restore(st)

	st = svc.DeleteBusiness("biz-2")
	if len(st.Businesses) != 1 || st.CurrentBusinessID != "biz-1" || !st.IsProducing {
		t.Fatalf("deleting another business must not touch the session: %+v", st)
	}
	if got := svc.DeleteBusiness("missing"); len(got.Businesses) != 1 {
		t.Fatalf("unknown id must be a no-op")
	}
}
