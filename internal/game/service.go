package game

import (
	"errors"
	"log/slog"
	mathrand "math/rand"
	"sync"
	"time"

	"clickship/internal/clock"
)

type transition func(st *State, now time.Time) ([]followUp, error)

// Service owns the game state. Every action runs as one serialized
// mutation on a clone which then replaces the current state; follow-ups
// requested by an action run afterwards as mutations of their own.
type Service struct {
	log  *slog.Logger
	clk  clock.Clock
	mu   sync.Mutex
	rand Rand
	st   State

	subs    map[int]chan State
	nextSub int
}

func NewService(logger *slog.Logger, clk clock.Clock, rng Rand) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	if rng == nil {
		rng = mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		log:  logger,
		clk:  clk,
		rand: rng,
		st:   NewState(),
		subs: make(map[int]chan State),
	}
}

func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Clone()
}

// Restore replaces the whole state, e.g. with a loaded snapshot.
func (s *Service) Restore(st State) {
	st = normalize(st)
	s.mu.Lock()
	s.st = st.Clone()
	s.publishLocked(s.st)
	s.mu.Unlock()
}

// Subscribe returns a channel that always holds the most recent snapshot
// not yet received. The returned func cancels the subscription.
func (s *Service) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan State, 1)
	s.subs[id] = ch
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

func (s *Service) CreateBusiness(name, productType string) State {
	return s.apply("create_business", createBusiness(name, productType))
}

func (s *Service) SelectBusiness(id string) State {
	return s.apply("select_business", selectBusiness(id))
}

func (s *Service) UpdateBusiness(id, name, productType string) State {
	return s.apply("update_business", updateBusiness(id, name, productType))
}

func (s *Service) DeleteBusiness(id string) State {
	return s.apply("delete_business", deleteBusiness(id))
}

func (s *Service) SetGameState(gs GameState) State {
	return s.apply("set_game_state", setGameState(gs))
}

func (s *Service) ResetGame() State {
	return s.apply("reset_game", resetGame)
}

func (s *Service) StartProduction() State {
	return s.apply("start_production", startProduction)
}

func (s *Service) TickProduction() State {
	return s.apply("tick_production", tickProduction)
}

func (s *Service) StartShipping() State {
	return s.apply("start_shipping", startShipping)
}

func (s *Service) TickShipping() State {
	return s.apply("tick_shipping", tickShipping)
}

func (s *Service) GenerateOrder() State {
	return s.apply("generate_order", generateOrder(s.rand))
}

func (s *Service) CheckExpiredOrders() State {
	return s.apply("check_expired_orders", checkExpiredOrders)
}

func (s *Service) PurchaseTechnology(id string) State {
	return s.apply("purchase_technology", purchaseTechnology(id))
}

func (s *Service) UpgradeTechnology(id string) State {
	return s.apply("upgrade_technology", upgradeTechnology(id))
}

func (s *Service) UpdateLeaderboard() State {
	return s.apply("update_leaderboard", updateLeaderboard)
}

func (s *Service) MoneyLeaderboard() []LeaderboardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return MoneyLeaderboard(s.st.Leaderboard)
}

func (s *Service) ShippingLeaderboard() []LeaderboardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ShippingLeaderboard(s.st.Leaderboard)
}

func (s *Service) OrderInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return OrderInterval(&s.st)
}

func (s *Service) apply(action string, fn transition) State {
	s.mu.Lock()
	next := s.st.Clone()
	follow, err := fn(&next, s.clk.Now())
	if err != nil {
		snap := s.st.Clone()
		s.mu.Unlock()
		if !errors.Is(err, ErrNoChange) {
			s.log.Debug("action ignored", "action", action, "err", err)
		}
		return snap
	}
	s.st = next
	snap := s.st.Clone()
	s.publishLocked(snap)
	s.mu.Unlock()

	for _, f := range follow {
		s.runFollowUp(f)
	}
	return snap
}

func (s *Service) runFollowUp(f followUp) {
	switch f {
	case followAutoBuild:
		s.apply(f.String(), startProduction)
	case followAutoShip:
		s.apply(f.String(), startShipping)
	case followLeaderboard:
		s.apply(f.String(), updateLeaderboard)
	}
}

func (s *Service) publishLocked(snap State) {
	for _, ch := range s.subs {
		snap := snap.Clone()
		select {
		case ch <- snap:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

func normalize(st State) State {
	if st.GameState != GameStatePlaying {
		st.GameState = GameStateSetup
	}
	if st.Businesses == nil {
		st.Businesses = []Business{}
	}
	if st.Orders == nil {
		st.Orders = []Order{}
	}
	if st.Leaderboard == nil {
		st.Leaderboard = []LeaderboardEntry{}
	}
	if len(st.Technologies) == 0 {
		st.Technologies = DefaultTechnologies()
	}
	return st
}
