package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/closest-arcade/internal/arcade"
)

// DefaultStatePath is used when no state file is configured
const DefaultStatePath = "data/closest.json"

// FileStore keeps the state in a JSON file
type FileStore struct {
	path string
}

// Compile-time assertion that FileStore implements Store.
var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore for path, expanding a leading ~/
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		path = DefaultStatePath
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	return &FileStore{path: path}, nil
}

// Path returns the state file location
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the state file. A missing file is no state; a file that exists but
// cannot be read or decoded is ErrCorruptState.
func (s *FileStore) Load(_ context.Context) (*arcade.State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: reading state: %w", ErrCorruptState, err)
	}

	return decodeState(data)
}

// Save writes the state to a temporary file next to the target and renames it into place,
// so readers see either the old or the new document
func (s *FileStore) Save(_ context.Context, state *arcade.State) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing state: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing state: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("setting state permissions: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing state: %w", err)
	}

	return nil
}
