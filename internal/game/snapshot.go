package game

import (
	"encoding/json"
	"fmt"
)

func EncodeSnapshot(st State) ([]byte, error) {
	raw, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return raw, nil
}

// DecodeSnapshot restores a state saved by EncodeSnapshot. Missing
// collections are filled with defaults.
func DecodeSnapshot(raw []byte) (State, error) {
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return State{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return normalize(st), nil
}
