package session

import (
	"sync"
	"time"
)

// Stage identifies which dialogue step a user's next turn belongs to.
type Stage int

const (
	StageNone Stage = iota
	StageAwaitTitle
	StageAwaitDate
	StageAwaitTime
	StageAwaitDuration
	StageAwaitLocation
	StageAwaitSelection
)

func (s Stage) String() string {
	switch s {
	case StageNone:
		return "none"
	case StageAwaitTitle:
		return "await_title"
	case StageAwaitDate:
		return "await_date"
	case StageAwaitTime:
		return "await_time"
	case StageAwaitDuration:
		return "await_duration"
	case StageAwaitLocation:
		return "await_location"
	case StageAwaitSelection:
		return "await_selection"
	}
	return "unknown"
}

// Draft accumulates the fields of an event under construction. Fields are
// filled strictly in stage order; everything past the current stage is zero.
type Draft struct {
	Title           string
	Date            time.Time // midnight in the configured zone
	Hour            int
	Minute          int
	DurationHours   int
	DurationMinutes int
	Location        string
}

// Candidate is one deletion candidate, valid only while the deletion
// dialogue is open. Order matches fetch order; user-facing indices are
// 1-based into this slice.
type Candidate struct {
	ID    string
	Title string
}

// Session is one user's in-progress dialogue state.
type Session struct {
	Stage      Stage
	Draft      Draft
	Candidates []Candidate
}

// Store holds per-user dialogue sessions. It is process-wide, keyed by user
// ID, and deliberately not persisted: sessions are short-lived and do not
// survive a restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*Session),
	}
}

// Begin opens a new dialogue for the user at the given stage, discarding any
// other open dialogue's state. At most one dialogue is open per user.
func (s *Store) Begin(userID int64, stage Stage) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &Session{Stage: stage}
	s.sessions[userID] = sess
	return sess
}

// Get returns the user's open session, or nil when no dialogue is open.
func (s *Store) Get(userID int64) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[userID]
}

// Stage returns the user's current dialogue stage, StageNone when no
// dialogue is open.
func (s *Store) Stage(userID int64) Stage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sess, ok := s.sessions[userID]; ok {
		return sess.Stage
	}
	return StageNone
}

// End destroys the user's session, returning to the no-dialogue state.
func (s *Store) End(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Len reports the number of open sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
