// Package memory provides an in-memory blob store, used as the test fake
// and as a throwaway backend for experimenting with the CLI.
package memory

import (
	"context"
	"sync"
)

type Store struct {
	mu   sync.Mutex
	data []byte
	set  bool

	// FailNextPut makes the next Put return the given error, for
	// exercising persistence failure paths in tests.
	FailNextPut error
}

func New() *Store {
	return &Store{}
}

// Seeded returns a store preloaded with the given blob.
func Seeded(data []byte) *Store {
	s := New()
	s.data = append([]byte(nil), data...)
	s.set = true
	return s
}

func (s *Store) Get(_ context.Context) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return nil, false, nil
	}
	out := append([]byte(nil), s.data...)
	return out, true, nil
}

func (s *Store) Put(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.FailNextPut; err != nil {
		s.FailNextPut = nil
		return err
	}
	s.data = append([]byte(nil), data...)
	s.set = true
	return nil
}

func (s *Store) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	s.set = false
	return nil
}
