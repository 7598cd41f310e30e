package history

import (
	"sync"

	"passport-extractor/internal/model"
)

// Store keeps each session's extraction history in process memory. Entries
// are append-only and ordered by extraction time; nothing survives a restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[string][]model.ExtractionResult
}

func NewStore() *Store {
	return &Store{sessions: make(map[string][]model.ExtractionResult)}
}

// Append records one successful extraction. Failed attempts must never reach
// this method.
func (s *Store) Append(sessionID string, result model.ExtractionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], result)
}

// List returns a copy of the session's history in extraction order.
func (s *Store) List(sessionID string) []model.ExtractionResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.sessions[sessionID]
	out := make([]model.ExtractionResult, len(entries))
	copy(out, entries)
	return out
}

// Get finds one history entry by extraction id.
func (s *Store) Get(sessionID, extractionID string) (model.ExtractionResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.sessions[sessionID] {
		if entry.ID == extractionID {
			return entry, true
		}
	}
	return model.ExtractionResult{}, false
}

// Len reports how many extractions the session has performed.
func (s *Store) Len(sessionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions[sessionID])
}

// Clear wipes one session's history.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Reset wipes every session. Used on shutdown.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string][]model.ExtractionResult)
}
