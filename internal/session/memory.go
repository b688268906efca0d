package session

import "sync"

// MemoryStore is an in-memory Store with no persistence and no expiry
// timer. Handler tests use it in place of the file-backed store.
type MemoryStore struct {
	mu            sync.Mutex
	authenticated bool
	routeID       string
	routeName     string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

func (s *MemoryStore) CurrentRoute() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.routeID, s.routeName
}

func (s *MemoryStore) Establish(routeID, routeName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = true
	s.routeID = routeID
	s.routeName = routeName
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
	s.routeID = ""
	s.routeName = ""
}
