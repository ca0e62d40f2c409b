package game

import (
	"reflect"
	"testing"
)

func TestStartProductionBelowCostIsNoop(t *testing.T) {
	svc, _ := newTestService(t, nil)
	svc.Restore(playingState(9))
	before := svc.State()

	after := svc.StartProduction()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("expected unchanged state\nbefore=%+v\nafter=%+v", before, after)
	}
}

func TestStartProductionWithoutBusinessIsNoop(t *testing.T) {
	svc, _ := newTestService(t, nil)
	st := svc.StartProduction()
	if st.IsProducing {
		t.Fatalf("production should not start without a business")
	}
}

func TestProductionCompletesInThreeTicks(t *testing.T) {
	svc, _ := newTestService(t, nil)
	svc.Restore(playingState(100))

	st := svc.StartProduction()
	if !st.IsProducing {
		t.Fatalf("expected production to start")
	}
	if st.Businesses[0].Money != 90 || st.Statistics.TotalSpent != ProductionCost {
		t.Fatalf("expected cost deducted, got money=%d spent=%d", st.Businesses[0].Money, st.Statistics.TotalSpent)
	}

	for i := 0; i < 2; i++ {
		st = svc.TickProduction()
		if st.Inventory != 0 || !st.IsProducing {
			t.Fatalf("tick %d finished early: %+v", i+1, st)
		}
	}
	st = svc.TickProduction()
	if st.Inventory != 1 {
		t.Fatalf("expected inventory 1 after three ticks, got %d", st.Inventory)
	}
	if st.IsProducing || st.ProductionProgress != 0 {
		t.Fatalf("expected idle cycle, producing=%v progress=%v", st.IsProducing, st.ProductionProgress)
	}
	if st.Statistics.ProductsCreated != 1 {
		t.Fatalf("expected products created 1, got %d", st.Statistics.ProductsCreated)
	}
}

func TestStartProductionTwiceChargesOnce(t *testing.T) {
	svc, _ := newTestService(t, nil)
	svc.Restore(playingState(100))
	svc.StartProduction()
	st := svc.StartProduction()
	if st.Businesses[0].Money != 90 {
		t.Fatalf("expected a single charge, money=%d", st.Businesses[0].Money)
	}
}

func TestTickProductionWhenIdleIsNoop(t *testing.T) {
	svc, _ := newTestService(t, nil)
	svc.Restore(playingState(100))
	st := svc.TickProduction()
	if st.ProductionProgress != 0 || st.Inventory != 0 {
		t.Fatalf("idle tick changed state: %+v", st)
	}
}

func TestFasterProductionShortensCycle(t *testing.T) {
	svc, _ := newTestService(t, nil)
	svc.Restore(withTech(playingState(100), TechFasterProduction, 3))
	svc.StartProduction()
	st := svc.TickProduction()
	// 33.33 * (1 + 3*0.33) ≈ 66.3
	if st.ProductionProgress < 66 || st.ProductionProgress > 67 {
		t.Fatalf("unexpected progress %v", st.ProductionProgress)
	}
	st = svc.TickProduction()
	if st.Inventory != 1 {
		t.Fatalf("expected completion on second tick, inventory=%d", st.Inventory)
	}
}

func TestBulkProductionAddsUnits(t *testing.T) {
	svc, _ := newTestService(t, nil)
	svc.Restore(withTech(playingState(100), TechBulkProduction, 2))
	svc.StartProduction()
	var st State
	for i := 0; i < 3; i++ {
		st = svc.TickProduction()
	}
	if st.Inventory != 3 || st.Statistics.ProductsCreated != 3 {
		t.Fatalf("expected 3 units, inventory=%d created=%d", st.Inventory, st.Statistics.ProductsCreated)
	}
}

func TestAutoBuildRestartsProduction(t *testing.T) {
	svc, _ := newTestService(t, nil)
	svc.Restore(withTech(playingState(100), TechAutoBuild, 1))
	svc.StartProduction()
	for i := 0; i < 3; i++ {
		svc.TickProduction()
	}
	st := svc.State()
	if st.Inventory != 1 {
		t.Fatalf("expected first unit, inventory=%d", st.Inventory)
	}
	if !st.IsProducing || st.ProductionProgress != 0 {
		t.Fatalf("expected auto-build to start a new cycle")
	}
	if st.Businesses[0].Money != 80 {
		t.Fatalf("expected two production charges, money=%d", st.Businesses[0].Money)
	}
}

func TestAutoBuildStopsWhenBroke(t *testing.T) {
	svc, _ := newTestService(t, nil)
	svc.Restore(withTech(playingState(15), TechAutoBuild, 1))
	svc.StartProduction()
	for i := 0; i < 3; i++ {
		svc.TickProduction()
	}
	st := svc.State()
	if st.IsProducing {
		t.Fatalf("auto-build should not start with money=%d", st.Businesses[0].Money)
	}
	if st.Businesses[0].Money != 5 {
		t.Fatalf("expected money 5, got %d", st.Businesses[0].Money)
	}
}
