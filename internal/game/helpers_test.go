package game

import (
	"io"
	"log/slog"
	mathrand "math/rand"
	"testing"
	"time"

	"clickship/internal/clock"
)

var testStart = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fixedRand struct {
	ints   []int
	floats []float64
}

func (r *fixedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *fixedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func newTestService(t *testing.T, rng Rand) (*Service, *clock.Fake) {
	t.Helper()
	if rng == nil {
		rng = mathrand.New(mathrand.NewSource(1))
	}
	clk := clock.NewFake(testStart)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, clk, rng), clk
}

func playingState(money int64) State {
	st := NewState()
	st.GameState = GameStatePlaying
	st.Businesses = []Business{{
		ID:          "biz-1",
		Name:        "Acme Widgets",
		ProductType: "widgets",
		Money:       money,
		Reputation:  StartingReputation,
		CreatedAt:   testStart,
	}}
	st.CurrentBusinessID = "biz-1"
	return st
}

func pendingOrder(id string, value int64, deadline time.Time) Order {
	return Order{
		ID:          id,
		ProductType: "widgets",
		Status:      OrderPending,
		Value:       value,
		Complexity:  1,
		CreatedAt:   testStart,
		Deadline:    deadline,
	}
}

func withTech(st State, id string, level int) State {
	for i := range st.Technologies {
		if st.Technologies[i].ID == id {
			st.Technologies[i].Purchased = level > 0
			st.Technologies[i].Level = level
		}
	}
	return st
}

func assertTechInvariants(t *testing.T, st State) {
	t.Helper()
	for _, tech := range st.Technologies {
		if tech.Level < 0 {
			t.Fatalf("tech %s has negative level %d", tech.ID, tech.Level)
		}
		if !tech.Purchased && tech.Level != 0 {
			t.Fatalf("unpurchased tech %s has level %d", tech.ID, tech.Level)
		}
	}
}
