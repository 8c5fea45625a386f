// Package keylock provides per-key mutual exclusion.
package keylock

import "sync"

// Locks serialises work per key while letting different keys run in parallel.
// Entries are dropped as soon as no goroutine holds or waits for them.
type Locks struct {
	mu    sync.Mutex
	locks map[int64]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New returns an empty Locks.
func New() *Locks {
	return &Locks{locks: make(map[int64]*entry)}
}

// Lock blocks until key is free and returns the matching unlock.
func (l *Locks) Lock(key int64) func() {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

// Len returns the number of keys currently held or waited for.
func (l *Locks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
