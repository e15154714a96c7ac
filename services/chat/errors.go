package chat

import "fmt"

// SessionClosedError is returned when a turn is submitted to a terminal
// session. The session itself is left untouched.
type SessionClosedError struct {
	SessionID string
	Status    string
}

func (e *SessionClosedError) Error() string {
	return fmt.Sprintf("session %s is closed (%s)", e.SessionID, e.Status)
}

// SessionNotFoundError is returned when the session id resolves to nothing,
// either because it never existed or because its store entry expired.
type SessionNotFoundError struct {
	SessionID string
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("session %s not found or expired", e.SessionID)
}
