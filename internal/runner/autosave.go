package runner

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"clickship/internal/game"
	"clickship/internal/store"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Snapshotter saves and restores the service state under one snapshot name.
type Snapshotter struct {
	svc   *game.Service
	store store.Store
	name  string
	log   *slog.Logger

	mu   sync.Mutex
	last []byte
}

func NewSnapshotter(svc *game.Service, st store.Store, name string, logger *slog.Logger) *Snapshotter {
	if logger == nil {
		logger = slog.Default()
	}
	if name == "" {
		name = game.SnapshotName
	}
	return &Snapshotter{svc: svc, store: st, name: name, log: logger}
}

// Restore loads the saved snapshot into the service. It reports false when
// no snapshot exists yet.
func (s *Snapshotter) Restore(ctx context.Context) (bool, error) {
	st, ok, err := store.LoadState(ctx, s.store, s.name)
	if err != nil || !ok {
		return false, err
	}
	s.svc.Restore(st)
	return true, nil
}

// Save writes the current state unless it is identical to the last save.
func (s *Snapshotter) Save(ctx context.Context) error {
	raw, err := game.EncodeSnapshot(s.svc.State())
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if bytes.Equal(raw, s.last) {
		return nil
	}
	if err := s.store.Save(ctx, s.name, raw); err != nil {
		return fmt.Errorf("save %s: %w", s.name, err)
	}
	s.last = raw
	return nil
}

// Schedule starts a cron job saving on the given schedule, e.g. "@every 15s".
// Stop the returned cron to end autosaving.
func (s *Snapshotter) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithParser(cronParser))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Save(ctx); err != nil {
			s.log.Error("autosave failed", "snapshot", s.name, "err", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("autosave schedule %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
