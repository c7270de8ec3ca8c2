package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pfrederiksen/closest-arcade/internal/arcade"
)

// ErrCorruptState is returned when stored state exists but is not a valid closest result
var ErrCorruptState = errors.New("corrupt state")

// Store loads and saves the persisted closest result
type Store interface {
	// Load returns nil, nil when no state has been saved yet
	Load(ctx context.Context) (*arcade.State, error)
	Save(ctx context.Context, state *arcade.State) error
}

// decodeState parses and validates a stored document
func decodeState(data []byte) (*arcade.State, error) {
	var state arcade.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: parsing state: %w", ErrCorruptState, err)
	}
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	return &state, nil
}

func encodeState(state *arcade.State) ([]byte, error) {
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to save invalid state: %w", err)
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return data, nil
}
