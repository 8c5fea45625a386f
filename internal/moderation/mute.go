package moderation

import "sync"

// MuteRegistry is the set of users whose messages in the moderated chat are
// deleted on sight. It is safe for concurrent use and is not persisted.
type MuteRegistry struct {
	mu    sync.RWMutex
	users map[int64]struct{}
}

// NewMuteRegistry creates an empty registry.
func NewMuteRegistry() *MuteRegistry {
	return &MuteRegistry{users: make(map[int64]struct{})}
}

// Contains reports whether userID is muted.
func (r *MuteRegistry) Contains(userID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[userID]
	return ok
}

// Add mutes userID. Adding an already muted user is a no-op.
func (r *MuteRegistry) Add(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[userID] = struct{}{}
}

// Remove unmutes userID. Removing an unknown user is a no-op.
func (r *MuteRegistry) Remove(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, userID)
}

// Len returns the number of muted users.
func (r *MuteRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.users)
}
