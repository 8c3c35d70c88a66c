package fake

import (
	"sync"

	"github.com/renato0307/gitlink/internal/ports"
)

// MarkerStore keeps the redirect marker in memory
type MarkerStore struct {
	mu     sync.Mutex
	marker string
}

var _ ports.RedirectMarkerStore = (*MarkerStore)(nil)

func (s *MarkerStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marker = ""
	return nil
}

func (s *MarkerStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marker, s.marker != ""
}

func (s *MarkerStore) Set(marker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marker = marker
	return nil
}
