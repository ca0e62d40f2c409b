package game

import "time"

type GameState string

const (
	GameStateSetup   GameState = "setup"
	GameStatePlaying GameState = "playing"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderInProgress OrderStatus = "in_progress"
	OrderShipped    OrderStatus = "shipped"
	OrderExpired    OrderStatus = "expired"
)

// Terminal reports whether the order can no longer change status.
func (s OrderStatus) Terminal() bool {
	return s == OrderShipped || s == OrderExpired
}

type TechnologyType string

const (
	TechAutomation TechnologyType = "automation"
	TechEfficiency TechnologyType = "efficiency"
	TechCost       TechnologyType = "cost"
	TechRevenue    TechnologyType = "revenue"
	TechProduction TechnologyType = "production"
)

type Business struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ProductType  string    `json:"product_type"`
	Money        int64     `json:"money"`
	Reputation   int       `json:"reputation"`
	CreatedAt    time.Time `json:"created_at"`
	LastPlayedAt time.Time `json:"last_played_at"`
}

type Order struct {
	ID              string      `json:"id"`
	ProductType     string      `json:"product_type"`
	Status          OrderStatus `json:"status"`
	Value           int64       `json:"value"`
	Complexity      int         `json:"complexity"`
	CreatedAt       time.Time   `json:"created_at"`
	Deadline        time.Time   `json:"deadline"`
	StatusChangedAt *time.Time  `json:"status_changed_at,omitempty"`
}

type Technology struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Type        TechnologyType `json:"type"`
	Level       int            `json:"level"`
	Cost        int64          `json:"cost"`
	Effect      float64        `json:"effect"`
	Purchased   bool           `json:"purchased"`
	LevelNames  []string       `json:"level_names,omitempty"`
	Icon        string         `json:"icon,omitempty"`
}

type Statistics struct {
	OrdersReceived   int64 `json:"orders_received"`
	ProductsCreated  int64 `json:"products_created"`
	OrdersShipped    int64 `json:"orders_shipped"`
	OrdersExpired    int64 `json:"orders_expired"`
	TotalRevenue     int64 `json:"total_revenue"`
	TotalSpent       int64 `json:"total_spent"`
	TotalMoneyEarned int64 `json:"total_money_earned"`
}

type LeaderboardEntry struct {
	BusinessID       string    `json:"business_id"`
	BusinessName     string    `json:"business_name"`
	Money            int64     `json:"money"`
	TotalMoneyEarned int64     `json:"total_money_earned"`
	OrdersShipped    int64     `json:"orders_shipped"`
	LastUpdated      time.Time `json:"last_updated"`
}

// State is the whole game store. Values handed out by Service are clones,
// so callers may keep them without synchronization.
type State struct {
	GameState              GameState          `json:"game_state"`
	CurrentBusinessID      string             `json:"current_business_id,omitempty"`
	Businesses             []Business         `json:"businesses"`
	Orders                 []Order            `json:"orders"`
	Technologies           []Technology       `json:"technologies"`
	Statistics             Statistics         `json:"statistics"`
	ProductionProgress     float64            `json:"production_progress"`
	ShippingProgress       float64            `json:"shipping_progress"`
	Inventory              int64              `json:"inventory"`
	IsProducing            bool               `json:"is_producing"`
	IsShipping             bool               `json:"is_shipping"`
	CurrentShippingOrderID string             `json:"current_shipping_order_id,omitempty"`
	ProductionCost         int64              `json:"production_cost"`
	ShippingCost           int64              `json:"shipping_cost"`
	Leaderboard            []LeaderboardEntry `json:"leaderboard"`
}

func NewState() State {
	return State{
		GameState:    GameStateSetup,
		Businesses:   []Business{},
		Orders:       []Order{},
		Technologies: DefaultTechnologies(),
		Leaderboard:  []LeaderboardEntry{},
	}
}

func (st State) Clone() State {
	out := st
	out.Businesses = append([]Business(nil), st.Businesses...)
	out.Orders = make([]Order, len(st.Orders))
	for i, o := range st.Orders {
		if o.StatusChangedAt != nil {
			at := *o.StatusChangedAt
			o.StatusChangedAt = &at
		}
		out.Orders[i] = o
	}
	out.Technologies = make([]Technology, len(st.Technologies))
	for i, t := range st.Technologies {
		t.LevelNames = append([]string(nil), t.LevelNames...)
		out.Technologies[i] = t
	}
	out.Leaderboard = append([]LeaderboardEntry(nil), st.Leaderboard...)
	return out
}

// CurrentBusiness returns a pointer into st.Businesses, or nil.
func (st *State) CurrentBusiness() *Business {
	if st.CurrentBusinessID == "" {
		return nil
	}
	for i := range st.Businesses {
		if st.Businesses[i].ID == st.CurrentBusinessID {
			return &st.Businesses[i]
		}
	}
	return nil
}

func (st State) orderIndex(id string) int {
	for i := range st.Orders {
		if st.Orders[i].ID == id {
			return i
		}
	}
	return -1
}

func (st State) firstPendingOrder() int {
	for i := range st.Orders {
		if st.Orders[i].Status == OrderPending {
			return i
		}
	}
	return -1
}

func (st State) Business(id string) (Business, bool) {
	for _, b := range st.Businesses {
		if b.ID == id {
			return b, true
		}
	}
	return Business{}, false
}

func (st State) Technology(id string) (Technology, bool) {
	idx := st.technologyIndex(id)
	if idx < 0 {
		return Technology{}, false
	}
	return st.Technologies[idx], true
}

// HasPendingOrder reports whether any order awaits shipping.
func (st State) HasPendingOrder() bool {
	return st.firstPendingOrder() >= 0
}

func (st State) technologyIndex(id string) int {
	for i := range st.Technologies {
		if st.Technologies[i].ID == id {
			return i
		}
	}
	return -1
}

// PurchasedTechnology returns the technology with the given id if it has
// been bought.
func (st State) PurchasedTechnology(id string) (Technology, bool) {
	idx := st.technologyIndex(id)
	if idx < 0 || !st.Technologies[idx].Purchased {
		return Technology{}, false
	}
	return st.Technologies[idx], true
}

func (st *State) spend(amount int64) {
	st.Statistics.TotalSpent += amount
}
