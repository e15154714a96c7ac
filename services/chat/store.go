package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"oneq/models"

	"github.com/go-redis/redis/v8"
)

const (
	sessionKeyPrefix = "oneq:session:"
	sessionIndexKey  = "oneq:sessions"
)

// SessionStore persists quote sessions between turns.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.QuoteSession, error)
	Save(ctx context.Context, sess *models.QuoteSession) error
	Delete(ctx context.Context, sessionID string) error
	// ListIDs returns every session id known to the store, for the idle
	// sweeper. Expired entries may still appear and resolve to not-found.
	ListIDs(ctx context.Context) ([]string, error)
}

// RedisSessionStore keeps sessions as JSON blobs with a TTL, plus a set of
// ids the sweeper can scan.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.QuoteSession, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, &SessionNotFoundError{SessionID: sessionID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	var sess models.QuoteSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", sessionID, err)
	}
	return &sess, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, sess *models.QuoteSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", sess.ID, err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+sess.ID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session %s: %w", sess.ID, err)
	}
	if err := s.client.SAdd(ctx, sessionIndexKey, sess.ID).Err(); err != nil {
		return fmt.Errorf("failed to index session %s: %w", sess.ID, err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	return s.client.SRem(ctx, sessionIndexKey, sessionID).Err()
}

func (s *RedisSessionStore) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, sessionIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return ids, nil
}
