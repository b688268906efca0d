// Package session tracks which route is currently logged in on this device.
// The store mirrors the three persisted values the frontend keys on
// (isAuthenticated, routeId, routeName) and expires them at local midnight.
package session

import (
	"encoding/json"
	"log"
	"os"
	"sync"
	"time"
)

// Store is the session-state surface handlers depend on. Tests substitute
// an in-memory fake; production uses the file-backed store below.
type Store interface {
	IsAuthenticated() bool
	CurrentRoute() (id, name string)
	Establish(routeID, routeName string)
	Clear()
}

type state struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	RouteID         string `json:"routeId"`
	RouteName       string `json:"routeName"`
	Date            string `json:"date"`
}

// FileStore persists session state to a small JSON file and arms a timer
// that clears it at the next local midnight. If the process restarts the
// timer is lost; state from a previous day is treated as expired on load,
// same-day state silently remains valid until an explicit logout.
type FileStore struct {
	mu    sync.Mutex
	path  string
	st    state
	timer *time.Timer
	now   func() time.Time
}

func NewFileStore(path string) *FileStore {
	s := &FileStore{path: path, now: time.Now}
	s.load()
	return s
}

func (s *FileStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return // no prior state
	}
	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		log.Println("Warning: could not parse session state file, ignoring:", err)
		return
	}
	if st.Date != s.now().Format("2006-01-02") {
		// stale day: the midnight timer would already have fired
		_ = os.Remove(s.path)
		return
	}
	s.st = st
	if s.st.IsAuthenticated {
		s.armTimer()
	}
}

func (s *FileStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.IsAuthenticated
}

func (s *FileStore) CurrentRoute() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.RouteID, s.st.RouteName
}

func (s *FileStore) Establish(routeID, routeName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st = state{
		IsAuthenticated: true,
		RouteID:         routeID,
		RouteName:       routeName,
		Date:            s.now().Format("2006-01-02"),
	}
	s.persist()
	s.armTimer()
}

func (s *FileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *FileStore) clearLocked() {
	s.st = state{}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		log.Println("Warning: could not remove session state file:", err)
	}
}

// armTimer schedules the daily expiry. Caller holds the lock.
func (s *FileStore) armTimer() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(NextMidnight(s.now()).Sub(s.now()), func() {
		log.Println("Session expired at midnight, logging route out")
		s.mu.Lock()
		defer s.mu.Unlock()
		s.clearLocked()
	})
}

func (s *FileStore) persist() {
	data, err := json.Marshal(s.st)
	if err != nil {
		log.Println("Warning: could not encode session state:", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		log.Println("Warning: could not write session state file:", err)
	}
}

// NextMidnight returns the first instant of the day after t, in t's location.
func NextMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, t.Location())
}
