// Package backend selects and constructs the blob store the data store
// persists through, based on configuration.
package backend

import (
	"fmt"

	"fincontrol/internal/blob"
	"fincontrol/internal/blob/file"
	"fincontrol/internal/blob/memory"
	"fincontrol/internal/blob/sqlite"
)

type Type string

const (
	FileBackend   Type = "file"
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) IsValid() bool {
	switch t {
	case FileBackend, SQLiteBackend, MemoryBackend:
		return true
	}
	return false
}

// CleanupFunc releases backend resources; nil when there is nothing to
// release.
type CleanupFunc func() error

type Config struct {
	Type         Type
	DataFilePath string
	SQLiteDBPath string
}

// Result holds the constructed store and its optional cleanup.
type Result struct {
	Store   blob.Store
	Cleanup CleanupFunc
}

// Open constructs the configured blob store.
func Open(cfg Config) (*Result, error) {
	switch cfg.Type {
	case FileBackend:
		return &Result{Store: file.New(cfg.DataFilePath)}, nil
	case SQLiteBackend:
		st, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		return &Result{Store: st, Cleanup: st.Close}, nil
	case MemoryBackend:
		return &Result{Store: memory.New()}, nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}
