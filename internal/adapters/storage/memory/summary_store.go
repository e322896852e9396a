package memory

import (
	"sync"

	"github.com/aliciamoraes/sana-agent/internal/domain"
)

// SummaryStore is an in-memory implementation of domain.SummaryStore.
// Entries live only for the lifetime of the process.
type SummaryStore struct {
	mu        sync.RWMutex
	bySession map[domain.SessionID][]*domain.SummaryEntry
}

func NewSummaryStore() *SummaryStore {
	return &SummaryStore{
		bySession: make(map[domain.SessionID][]*domain.SummaryEntry),
	}
}

func (s *SummaryStore) AppendSummary(entry *domain.SummaryEntry) error {
	if entry == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.bySession[entry.SessionID] = append(s.bySession[entry.SessionID], entry)
	return nil
}

func (s *SummaryStore) ListBySession(sessionID domain.SessionID) ([]*domain.SummaryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.bySession[sessionID]
	out := make([]*domain.SummaryEntry, len(entries))
	copy(out, entries)
	return out, nil
}
