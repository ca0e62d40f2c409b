package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"clickship/internal/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

var errSnapshotsDisabled = errors.New("snapshots are not configured")

// SnapshotSaver persists the current game state on demand.
type SnapshotSaver interface {
	Save(ctx context.Context) error
}

type Server struct {
	log      *slog.Logger
	game     *game.Service
	saver    SnapshotSaver
	mux      *chi.Mux
	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, gameSvc *game.Service, saver SnapshotSaver) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		log:   logger,
		game:  gameSvc,
		saver: saver,
		mux:   chi.NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/stream", s.handleStream)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Get("/state", s.handleState)
			r.Post("/businesses", s.handleCreateBusiness)
			r.Put("/businesses/{id}", s.handleUpdateBusiness)
			r.Delete("/businesses/{id}", s.handleDeleteBusiness)
			r.Post("/businesses/{id}/select", s.handleSelectBusiness)
			r.Post("/game/state", s.handleSetGameState)
			r.Post("/game/reset", s.handleReset)

			r.Post("/production/start", s.handleStartProduction)
			r.Post("/shipping/start", s.handleStartShipping)
			r.Get("/orders", s.handleOrders)

			r.Get("/technologies", s.handleTechnologies)
			r.Post("/technologies/{id}/purchase", s.handlePurchaseTechnology)
			r.Post("/technologies/{id}/upgrade", s.handleUpgradeTechnology)

			r.Get("/leaderboard/money", s.handleMoneyLeaderboard)
			r.Get("/leaderboard/shipping", s.handleShippingLeaderboard)
			r.Post("/leaderboard/refresh", s.handleRefreshLeaderboard)

			r.Post("/snapshot", s.handleSnapshot)
		})
	})
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.game.State())
}

func (s *Server) handleCreateBusiness(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name        string `json:"name"`
		ProductType string `json:"product_type"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := game.ValidateBusinessInput(in.Name, in.ProductType); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.game.CreateBusiness(in.Name, in.ProductType))
}

func (s *Server) handleSelectBusiness(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.game.State().Business(id); !ok {
		writeDomainError(w, game.ErrUnknownBusiness)
		return
	}
	writeJSON(w, http.StatusOK, s.game.SelectBusiness(id))
}

func (s *Server) handleUpdateBusiness(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in struct {
		Name        string `json:"name"`
		ProductType string `json:"product_type"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(in.Name) == "" && strings.TrimSpace(in.ProductType) == "" {
		writeDomainError(w, game.ErrInvalidName)
		return
	}
	if _, ok := s.game.State().Business(id); !ok {
		writeDomainError(w, game.ErrUnknownBusiness)
		return
	}
	writeJSON(w, http.StatusOK, s.game.UpdateBusiness(id, in.Name, in.ProductType))
}

func (s *Server) handleDeleteBusiness(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.game.State().Business(id); !ok {
		writeDomainError(w, game.ErrUnknownBusiness)
		return
	}
	writeJSON(w, http.StatusOK, s.game.DeleteBusiness(id))
}

func (s *Server) handleSetGameState(w http.ResponseWriter, r *http.Request) {
	var in struct {
		State string `json:"state"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	gs := game.GameState(strings.ToLower(strings.TrimSpace(in.State)))
	if gs != game.GameStateSetup && gs != game.GameStatePlaying {
		writeDomainError(w, game.ErrInvalidGameState)
		return
	}
	writeJSON(w, http.StatusOK, s.game.SetGameState(gs))
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.game.ResetGame())
}

func (s *Server) handleStartProduction(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.game.StartProduction())
}

func (s *Server) handleStartShipping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.game.StartShipping())
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	st := s.game.State()
	status := game.OrderStatus(strings.TrimSpace(r.URL.Query().Get("status")))
	out := make([]game.Order, 0, len(st.Orders))
	for _, o := range st.Orders {
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"orders":    out,
		"inventory": st.Inventory,
	})
}

type technologyView struct {
	game.Technology
	LevelName   string `json:"level_name"`
	UpgradeCost int64  `json:"upgrade_cost"`
}

func (s *Server) handleTechnologies(w http.ResponseWriter, _ *http.Request) {
	st := s.game.State()
	out := make([]technologyView, 0, len(st.Technologies))
	for _, t := range st.Technologies {
		out = append(out, technologyView{
			Technology:  t,
			LevelName:   game.LevelName(t),
			UpgradeCost: game.UpgradeCost(t),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"technologies": out})
}

func (s *Server) handlePurchaseTechnology(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.requireTechnology(id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.game.PurchaseTechnology(id))
}

func (s *Server) handleUpgradeTechnology(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.requireTechnology(id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.game.UpgradeTechnology(id))
}

func (s *Server) requireTechnology(id string) error {
	if _, ok := s.game.State().Technology(id); !ok {
		return game.ErrUnknownTechnology
	}
	return nil
}

func (s *Server) handleMoneyLeaderboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"entries": s.game.MoneyLeaderboard()})
}

func (s *Server) handleShippingLeaderboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"entries": s.game.ShippingLeaderboard()})
}

func (s *Server) handleRefreshLeaderboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.game.UpdateLeaderboard())
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.saver == nil {
		writeDomainError(w, errSnapshotsDisabled)
		return
	}
	if err := s.saver.Save(r.Context()); err != nil {
		s.log.Error("snapshot save failed", "err", err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved": true})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrUnknownBusiness), errors.Is(err, game.ErrUnknownTechnology):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrInvalidName), errors.Is(err, game.ErrInvalidGameState):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errSnapshotsDisabled):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
