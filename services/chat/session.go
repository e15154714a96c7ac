package chat

import (
	"time"

	"oneq/models"
)

// newSession builds a fresh collecting session, optionally seeded with a
// category known up front.
func newSession(id string, category *models.Category) *models.QuoteSession {
	now := time.Now()
	sess := &models.QuoteSession{
		ID:           id,
		Status:       models.SessionCollecting,
		CreatedAt:    now,
		LastActiveAt: now,
	}
	if category != nil && category.IsValid() {
		c := *category
		sess.Accumulated.Category = &c
	}
	return sess
}

// mergeExtracted folds extracted fields into the accumulated request using
// last-non-null-wins semantics. The category is the one exception: once
// set it is immutable for the session, and a conflicting extraction is
// reported rather than applied.
func mergeExtracted(acc *models.PartialPrintRequest, in models.PartialPrintRequest) (categoryConflict bool) {
	if in.Category != nil && in.Category.IsValid() {
		if acc.Category == nil {
			acc.Category = in.Category
		} else if *acc.Category != *in.Category {
			categoryConflict = true
		}
	}
	if in.Quantity != nil && *in.Quantity > 0 {
		acc.Quantity = in.Quantity
	}
	if in.DueDays != nil && *in.DueDays > 0 {
		acc.DueDays = in.DueDays
	}
	if in.Budget != nil {
		acc.Budget = in.Budget
	}
	if in.Region != "" {
		acc.Region = in.Region
	}
	if len(in.Options) > 0 {
		if acc.Options == nil {
			acc.Options = make(map[string]string, len(in.Options))
		}
		// Only option keys valid for the session's category are kept.
		allowed := map[string]bool{}
		if acc.Category != nil {
			for _, key := range models.CategoryOptionKeys[*acc.Category] {
				allowed[key] = true
			}
		}
		for k, v := range in.Options {
			if v == "" {
				continue
			}
			if acc.Category == nil || allowed[k] {
				acc.Options[k] = v
			}
		}
	}
	return categoryConflict
}

// recordTurn appends an immutable entry to the session's turn log and
// bumps the activity timestamp.
func recordTurn(sess *models.QuoteSession, utterance string, extracted models.PartialPrintRequest, outcome models.TurnOutcome) {
	now := time.Now()
	sess.Turns = append(sess.Turns, models.SessionTurn{
		Utterance: utterance,
		Extracted: extracted,
		Outcome:   outcome,
		At:        now,
	})
	sess.LastActiveAt = now
}
