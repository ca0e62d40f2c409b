package api

import (
	"net/http"
	"time"

	"clickship/internal/game"
)

const streamWriteWait = 10 * time.Second

type streamMessage struct {
	Type  string     `json:"type"`
	State game.State `json:"state"`
}

// handleStream pushes every published snapshot to a websocket client,
// starting with the current one.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("stream upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	updates, cancel := s.game.Subscribe()
	defer cancel()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func(st game.State) error {
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		return conn.WriteJSON(streamMessage{Type: "state", State: st})
	}
	if err := send(s.game.State()); err != nil {
		return
	}

	s.log.Debug("stream client connected", "remote", r.RemoteAddr)
	for {
		select {
		case <-r.Context().Done():
			return
		case <-closed:
			s.log.Debug("stream client disconnected", "remote", r.RemoteAddr)
			return
		case st, ok := <-updates:
			if !ok {
				return
			}
			if err := send(st); err != nil {
				s.log.Debug("stream write failed", "err", err)
				return
			}
		}
	}
}
