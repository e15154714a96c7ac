package models

import "time"

// SessionStatus tracks where a quote conversation is in its lifecycle.
type SessionStatus string

const (
	SessionCollecting   SessionStatus = "collecting"
	SessionReadyToScore SessionStatus = "ready_to_score"
	SessionCompleted    SessionStatus = "completed"
	SessionAbandoned    SessionStatus = "abandoned"
)

// Terminal reports whether the session accepts no further turns.
func (s SessionStatus) Terminal() bool {
	return s == SessionCompleted || s == SessionAbandoned
}

// TurnOutcome records how a single turn was resolved.
type TurnOutcome string

const (
	TurnMerged  TurnOutcome = "merged"
	TurnFailed  TurnOutcome = "failed"
	TurnNoMatch TurnOutcome = "no_match"
)

// SessionTurn is one immutable entry in a session's turn log.
type SessionTurn struct {
	Utterance string              `json:"utterance"`
	Extracted PartialPrintRequest `json:"extracted,omitzero"`
	Outcome   TurnOutcome         `json:"outcome"`
	At        time.Time           `json:"at"`
}

// QuoteSession holds the conversation state between chat turns: the ordered
// turn log and the accumulated request projected from it.
type QuoteSession struct {
	ID              string                 `json:"sessionId"`
	Turns           []SessionTurn          `json:"turns"`
	Accumulated     PartialPrintRequest    `json:"accumulated"`
	Status          SessionStatus          `json:"status"`
	Recommendations []RankedRecommendation `json:"recommendations,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	LastActiveAt    time.Time              `json:"lastActiveAt"`
}
