package chat

import (
	"context"
	"errors"
	"time"

	"oneq/models"
	"oneq/services/scoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionOrchestrator drives the conversation state machine and decides
// when the recommendation engine runs.
type SessionOrchestrator interface {
	StartSession(ctx context.Context, category *models.Category) (*models.QuoteSession, error)
	HandleTurn(ctx context.Context, sessionID, utterance string) (*models.ChatResponse, error)
	Abandon(ctx context.Context, sessionID string) error
	AbandonIdle(ctx context.Context, idleFor time.Duration) (int, error)
}

// DefaultSessionOrchestrator wires the store, the NLU extractor and the
// matcher together.
type DefaultSessionOrchestrator struct {
	Store          SessionStore
	Extractor      Extractor
	Matcher        scoring.MatcherService
	ExtractTimeout time.Duration
	RecommendLimit int
	Logger         *zap.Logger

	locks *sessionLocks
}

func NewSessionOrchestrator(store SessionStore, extractor Extractor, matcher scoring.MatcherService, extractTimeout time.Duration, recommendLimit int, logger *zap.Logger) *DefaultSessionOrchestrator {
	return &DefaultSessionOrchestrator{
		Store:          store,
		Extractor:      extractor,
		Matcher:        matcher,
		ExtractTimeout: extractTimeout,
		RecommendLimit: recommendLimit,
		Logger:         logger,
		locks:          newSessionLocks(),
	}
}

// StartSession creates a new collecting session.
func (o *DefaultSessionOrchestrator) StartSession(ctx context.Context, category *models.Category) (*models.QuoteSession, error) {
	sess := newSession(uuid.New().String(), category)
	if err := o.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	o.Logger.Info("session started", zap.String("sessionId", sess.ID))
	return sess, nil
}

// HandleTurn processes one utterance for a session. Turns for the same
// session are serialized; the extractor call is bounded by the configured
// timeout, and a timed-out turn is recorded as failed without touching the
// accumulated request.
func (o *DefaultSessionOrchestrator) HandleTurn(ctx context.Context, sessionID, utterance string) (*models.ChatResponse, error) {
	m := o.locks.lock(sessionID)
	defer m.Unlock()

	sess, err := o.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status.Terminal() {
		o.locks.forget(sessionID)
		return nil, &SessionClosedError{SessionID: sessionID, Status: string(sess.Status)}
	}

	extractCtx, cancel := context.WithTimeout(ctx, o.ExtractTimeout)
	extracted, extractErr := o.Extractor.Extract(extractCtx, sess.Turns, utterance)
	cancel()

	if extractErr != nil {
		// No-op merge: the turn is logged as failed, accumulated state is
		// untouched and the session stays where it was.
		o.Logger.Warn("extraction failed",
			zap.String("sessionId", sessionID), zap.Error(extractErr))
		recordTurn(sess, utterance, models.PartialPrintRequest{}, models.TurnFailed)
		if err := o.Store.Save(ctx, sess); err != nil {
			return nil, err
		}
		return o.response(sess, false, true), nil
	}

	conflict := mergeExtracted(&sess.Accumulated, extracted)
	if conflict {
		o.Logger.Info("category change ignored; a new session is required to switch category",
			zap.String("sessionId", sessionID))
	}
	recordTurn(sess, utterance, extracted, models.TurnMerged)

	if sess.Status == models.SessionCollecting && sess.Accumulated.Complete() {
		sess.Status = models.SessionReadyToScore
	}

	noMatch := false
	degraded := false
	if sess.Status == models.SessionReadyToScore {
		noMatch, degraded = o.score(sess)
	}

	if err := o.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	if sess.Status.Terminal() {
		o.locks.forget(sessionID)
	}
	return o.response(sess, noMatch, degraded), nil
}

// score runs the engine against the current catalog snapshot. On success
// the ranking is attached and the session completes. An empty candidate
// set is a genuine "no match"; any other failure (catalog unreachable,
// engine fault) is a degraded turn, never a "no results" answer. Both
// leave the session in ReadyToScore so a later turn can retry.
func (o *DefaultSessionOrchestrator) score(sess *models.QuoteSession) (noMatch, degraded bool) {
	req := sess.Accumulated.ToPrintRequest()
	ranked, err := o.Matcher.RecommendForCategory(req, o.RecommendLimit)
	if err != nil {
		var empty *scoring.EmptyCandidateSetError
		if errors.As(err, &empty) {
			o.Logger.Info("no vendors match the completed request",
				zap.String("sessionId", sess.ID), zap.String("category", string(req.Category)))
			if n := len(sess.Turns); n > 0 {
				sess.Turns[n-1].Outcome = models.TurnNoMatch
			}
			return true, false
		}
		o.Logger.Error("recommendation failed", zap.String("sessionId", sess.ID), zap.Error(err))
		if n := len(sess.Turns); n > 0 {
			sess.Turns[n-1].Outcome = models.TurnFailed
		}
		return false, true
	}
	sess.Recommendations = ranked
	sess.Status = models.SessionCompleted
	return false, false
}

// Abandon marks the session abandoned. Terminal sessions are left as-is.
func (o *DefaultSessionOrchestrator) Abandon(ctx context.Context, sessionID string) error {
	m := o.locks.lock(sessionID)
	defer m.Unlock()
	defer o.locks.forget(sessionID)

	sess, err := o.Store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess.Status.Terminal() {
		return nil
	}
	sess.Status = models.SessionAbandoned
	sess.LastActiveAt = time.Now()
	return o.Store.Save(ctx, sess)
}

// AbandonIdle sweeps every stored session and abandons those inactive for
// longer than idleFor. It returns how many sessions were abandoned.
func (o *DefaultSessionOrchestrator) AbandonIdle(ctx context.Context, idleFor time.Duration) (int, error) {
	ids, err := o.Store.ListIDs(ctx)
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().Add(-idleFor)
	abandoned := 0
	for _, id := range ids {
		sess, err := o.Store.Get(ctx, id)
		if err != nil {
			var notFound *SessionNotFoundError
			if errors.As(err, &notFound) {
				// Expired from the store; drop the stale index entry.
				_ = o.Store.Delete(ctx, id)
				continue
			}
			return abandoned, err
		}
		if sess.Status.Terminal() || sess.LastActiveAt.After(cutoff) {
			continue
		}
		if err := o.Abandon(ctx, id); err != nil {
			return abandoned, err
		}
		abandoned++
	}
	return abandoned, nil
}

// response projects the session into the wire shape for the chat handler.
func (o *DefaultSessionOrchestrator) response(sess *models.QuoteSession, noMatch, degraded bool) *models.ChatResponse {
	resp := &models.ChatResponse{
		SessionID: sess.ID,
		Status:    sess.Status,
		NoMatch:   noMatch,
		Degraded:  degraded,
	}
	if sess.Status == models.SessionCollecting {
		resp.Missing = sess.Accumulated.MissingFields()
		if len(resp.Missing) > 0 {
			resp.NextField = resp.Missing[0]
		}
	}
	if sess.Status == models.SessionCompleted {
		resp.Recommendations = sess.Recommendations
	}
	return resp
}
