package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// SnapshotStore persists a full cart snapshot as one keyed blob. Save
// overwrites the previous snapshot; it is not an append log.
type SnapshotStore interface {
	// Load returns the last saved entries, or (nil, nil) when no
	// snapshot exists. An unparseable snapshot returns an error
	// wrapping ErrSnapshotCorrupt.
	Load() ([]Item, error)
	Save(items []Item) error
}

// FileStore is a SnapshotStore backed by a single JSON file, the
// server-side analog of the browser's local storage slot.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed snapshot store at path. Parent
// directories are created on the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() ([]Item, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart snapshot: %w", err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotCorrupt, err)
	}
	return items, nil
}

// Save writes the snapshot atomically via a temp file and rename, so a
// crash mid-write never leaves a truncated snapshot behind.
func (f *FileStore) Save(items []Item) error {
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".cart-*")
	if err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	return nil
}

// MemoryStore is a SnapshotStore for tests. It round-trips entries
// through JSON so serialization fidelity is exercised the same way the
// file store exercises it.
type MemoryStore struct {
	data  []byte
	saves int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Seed sets the raw stored bytes, bypassing Save. Tests use it to
// simulate pre-existing and corrupt snapshots.
func (m *MemoryStore) Seed(data []byte) {
	m.data = data
}

// Saves reports how many times Save has been called.
func (m *MemoryStore) Saves() int {
	return m.saves
}

func (m *MemoryStore) Load() ([]Item, error) {
	if m.data == nil {
		return nil, nil
	}
	var items []Item
	if err := json.Unmarshal(m.data, &items); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotCorrupt, err)
	}
	return items, nil
}

func (m *MemoryStore) Save(items []Item) error {
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	m.data = data
	m.saves++
	return nil
}
