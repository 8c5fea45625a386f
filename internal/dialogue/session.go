package dialogue

import (
	"maps"
	"slices"
	"sync"
	"time"
)

// Campaign is the lottery configuration collected over a dialogue.
type Campaign struct {
	Channels     []string
	Message      string
	PhotoFileID  string
	StartsAt     time.Time
	EndsAt       time.Time
	WinnersCount int
	Settings     map[string]string
}

// Session is the dialogue state of one user.
type Session struct {
	UserID    int64
	ChatID    int64
	State     State
	Campaign  Campaign
	StartedAt time.Time
	UpdatedAt time.Time
}

func (s Session) clone() Session {
	s.Campaign.Channels = slices.Clone(s.Campaign.Channels)
	s.Campaign.Settings = maps.Clone(s.Campaign.Settings)
	return s
}

// SessionStore holds at most one session per user. Implementations must be
// safe for concurrent use.
type SessionStore interface {
	Get(userID int64) (Session, bool)
	Put(s Session)
	Delete(userID int64)
	// DeleteIdle removes sessions last updated before cutoff and returns their count.
	DeleteIdle(cutoff time.Time) int
}

// MemoryStore is an in-process SessionStore. Sessions are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]Session
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]Session)}
}

func (m *MemoryStore) Get(userID int64) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[userID]
	if !ok {
		return Session{}, false
	}
	return s.clone(), true
}

func (m *MemoryStore) Put(s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[s.UserID] = s.clone()
}

func (m *MemoryStore) Delete(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
}

func (m *MemoryStore) DeleteIdle(cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, s := range m.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Len returns the number of active sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}
