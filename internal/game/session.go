package game

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

func createBusiness(name, productType string) func(st *State, now time.Time) ([]followUp, error) {
	return func(st *State, now time.Time) ([]followUp, error) {
		if err := ValidateBusinessInput(name, productType); err != nil {
			return nil, err
		}
		b := Business{
			ID:           uuid.NewString(),
			Name:         strings.TrimSpace(name),
			ProductType:  strings.TrimSpace(productType),
			Money:        StartingMoney,
			Reputation:   StartingReputation,
			CreatedAt:    now,
			LastPlayedAt: now,
		}
		st.Businesses = append(st.Businesses, b)
		st.CurrentBusinessID = b.ID
		st.GameState = GameStatePlaying
		return nil, nil
	}
}

func selectBusiness(id string) func(st *State, now time.Time) ([]followUp, error) {
	return func(st *State, now time.Time) ([]followUp, error) {
		for i := range st.Businesses {
			if st.Businesses[i].ID == id {
				st.Businesses[i].LastPlayedAt = now
				st.CurrentBusinessID = id
				st.GameState = GameStatePlaying
				return nil, nil
			}
		}
		return nil, ErrUnknownBusiness
	}
}

func setGameState(gs GameState) func(st *State, now time.Time) ([]followUp, error) {
	return func(st *State, _ time.Time) ([]followUp, error) {
		if gs != GameStateSetup && gs != GameStatePlaying {
			return nil, ErrInvalidGameState
		}
		st.GameState = gs
		return nil, nil
	}
}

// resetGame keeps businesses and the leaderboard and starts everything
// else from scratch.
func resetGame(st *State, _ time.Time) ([]followUp, error) {
	fresh := NewState()
	fresh.Businesses = st.Businesses
	fresh.Leaderboard = st.Leaderboard
	*st = fresh
	return nil, nil
}

// updateBusiness renames a business. Blank fields are left unchanged.
func updateBusiness(id, name, productType string) func(st *State, now time.Time) ([]followUp, error) {
	return func(st *State, _ time.Time) ([]followUp, error) {
		name, productType := strings.TrimSpace(name), strings.TrimSpace(productType)
		if name == "" && productType == "" {
			return nil, ErrNoChange
		}
		for i := range st.Businesses {
			b := &st.Businesses[i]
			if b.ID != id {
				continue
			}
			if name != "" {
				b.Name = name
			}
			if productType != "" {
				b.ProductType = productType
			}
			for j := range st.Leaderboard {
				if st.Leaderboard[j].BusinessID == id {
					st.Leaderboard[j].BusinessName = b.Name
				}
			}
			return nil, nil
		}
		return nil, ErrUnknownBusiness
	}
}

// deleteBusiness removes a business and its leaderboard row. Deleting the
// current business stops both cycles, returns the order being shipped to
// pending and goes back to setup.
func deleteBusiness(id string) func(st *State, now time.Time) ([]followUp, error) {
	return func(st *State, _ time.Time) ([]followUp, error) {
		idx := -1
		for i := range st.Businesses {
			if st.Businesses[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, ErrUnknownBusiness
		}
		st.Businesses = append(st.Businesses[:idx], st.Businesses[idx+1:]...)

		rows := st.Leaderboard[:0]
		for _, row := range st.Leaderboard {
			if row.BusinessID != id {
				rows = append(rows, row)
			}
		}
		st.Leaderboard = rows

		if st.CurrentBusinessID != id {
			return nil, nil
		}
		if oi := st.orderIndex(st.CurrentShippingOrderID); oi >= 0 && st.Orders[oi].Status == OrderInProgress {
			st.Orders[oi].Status = OrderPending
		}
		abandonShipping(st)
		st.IsProducing = false
		st.ProductionProgress = 0
		st.CurrentBusinessID = ""
		st.GameState = GameStateSetup
		return nil, nil
	}
}
