package models

// ChatRequest is the payload coming from the frontend into /api/chat/message.
type ChatRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// ChatResponse is what the chat handler returns after each turn.
type ChatResponse struct {
	SessionID       string                 `json:"sessionId"`
	Status          SessionStatus          `json:"status"`
	Missing         []string               `json:"missing,omitempty"`
	NextField       string                 `json:"nextField,omitempty"`
	Recommendations []RankedRecommendation `json:"recommendations,omitempty"`
	NoMatch         bool                   `json:"noMatch,omitempty"`
	Degraded        bool                   `json:"degraded,omitempty"`
}

// ScoreRequest is the payload for the direct scoring endpoint.
type ScoreRequest struct {
	Request   PrintRequest `json:"request" binding:"required"`
	VendorIDs []string     `json:"vendorIds" binding:"required"`
	Limit     int          `json:"limit,omitempty"`
}
