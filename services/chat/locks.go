package chat

import "sync"

// sessionLocks serializes turns per session: a session is a single-writer
// resource, while turns on different sessions proceed independently.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *sessionLocks) lock(sessionID string) *sync.Mutex {
	l.mu.Lock()
	m, ok := l.locks[sessionID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[sessionID] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m
}

func (l *sessionLocks) forget(sessionID string) {
	l.mu.Lock()
	delete(l.locks, sessionID)
	l.mu.Unlock()
}
