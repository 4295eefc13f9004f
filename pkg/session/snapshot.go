package session

import (
	"errors"
	"io/fs"
	"os"
	"sync"
)

const snapshotPermission = 0600

// Snapshot is the durable key-value slot the session mirrors into. Load
// returns nil bytes when no snapshot exists; that is not an error.
type Snapshot interface {
	Load() ([]byte, error)
	Store(data []byte) error
	Clear() error
}

// FileSnapshot keeps the snapshot as one JSON file, the closest local
// analogue of a browser's localStorage record.
type FileSnapshot struct {
	path string
}

func NewFileSnapshot(path string) *FileSnapshot {
	return &FileSnapshot{path: path}
}

func (f *FileSnapshot) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

func (f *FileSnapshot) Store(data []byte) error {
	return os.WriteFile(f.path, data, snapshotPermission)
}

func (f *FileSnapshot) Clear() error {
	err := os.Remove(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// MemorySnapshot is the in-process implementation used by tests and by
// callers that want no persistence at all.
type MemorySnapshot struct {
	mu   sync.Mutex
	data []byte
}

func NewMemorySnapshot() *MemorySnapshot {
	return &MemorySnapshot{}
}

func (m *MemorySnapshot) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemorySnapshot) Store(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *MemorySnapshot) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}
