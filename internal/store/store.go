package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clickship/internal/game"
)

var ErrNotFound = errors.New("snapshot not found")

// Store keeps named game snapshots.
type Store interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, raw []byte) error
	Close() error
}

type Options struct {
	DatabaseURL string
	SQLitePath  string
	Dir         string
}

// Open picks Postgres when a database url is set, then SQLite, then plain
// files.
func Open(ctx context.Context, opts Options) (Store, error) {
	if strings.TrimSpace(opts.DatabaseURL) != "" {
		s, err := OpenPostgres(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	if strings.TrimSpace(opts.SQLitePath) != "" {
		s, err := OpenSQLite(opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	s, err := NewFileStore(opts.Dir)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// LoadState returns the saved state, or false when nothing was saved yet.
func LoadState(ctx context.Context, s Store, name string) (game.State, bool, error) {
	raw, err := s.Load(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return game.State{}, false, nil
	}
	if err != nil {
		return game.State{}, false, fmt.Errorf("load %s: %w", name, err)
	}
	st, err := game.DecodeSnapshot(raw)
	if err != nil {
		return game.State{}, false, err
	}
	return st, true, nil
}

func validName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid snapshot name %q", name)
	}
	return nil
}
