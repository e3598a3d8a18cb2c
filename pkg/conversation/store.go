// Package conversation keeps per-session chat history in Redis so a
// follow-up request can refine the previous estimate.
package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pc-estimate-be/pkg/parts"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	// DefaultMaxTurns bounds how much history a session carries.
	DefaultMaxTurns = 20

	// DefaultTTL is the sliding idle window after which a session is
	// forgotten.
	DefaultTTL = 6 * time.Hour

	keyPrefix = "chat:"
)

// Turn is one message in a session's history.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Store persists conversation turns in a Redis list, newest at the
// tail. Every access refreshes the session TTL.
type Store struct {
	rdb      *redis.Client
	maxTurns int
	ttl      time.Duration
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb, maxTurns: DefaultMaxTurns, ttl: DefaultTTL}
}

// NewStoreWithLimits overrides retention for tests and tuning.
func NewStoreWithLimits(rdb *redis.Client, maxTurns int, ttl time.Duration) *Store {
	return &Store{rdb: rdb, maxTurns: maxTurns, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return keyPrefix + sessionID
}

// Append pushes a turn onto the session, trims to the retention limit
// and refreshes the TTL.
func (s *Store) Append(ctx context.Context, sessionID string, turn Turn) error {
	payload, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("marshal turn: %w", err)
	}

	key := sessionKey(sessionID)
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.LTrim(ctx, key, int64(-s.maxTurns), -1)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append turn: %w", err)
	}
	return nil
}

// History returns the session's turns oldest-first. An unknown session
// yields an empty slice, not an error.
func (s *Store) History(ctx context.Context, sessionID string) ([]Turn, error) {
	key := sessionKey(sessionID)
	raws, err := s.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	if len(raws) > 0 {
		// Reading is activity too; keep the session alive.
		s.rdb.Expire(ctx, key, s.ttl)
	}

	turns := make([]Turn, 0, len(raws))
	for _, raw := range raws {
		var t Turn
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			continue // skip a corrupt entry rather than losing the session
		}
		turns = append(turns, t)
	}
	return turns, nil
}

// LatestEstimate scans the history backwards for the most recent
// assistant turn that carries a usable estimate. A turn qualifies only
// when it parses as a JSON object with both a cpu and a gpu part;
// refusal or free-text replies never qualify.
func (s *Store) LatestEstimate(ctx context.Context, sessionID string) (*parts.Estimate, error) {
	turns, err := s.History(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role != RoleAssistant {
			continue
		}
		var est parts.Estimate
		if err := json.Unmarshal([]byte(turns[i].Content), &est); err != nil {
			continue
		}
		if est.CPU == nil || est.GPU == nil {
			continue
		}
		return &est, nil
	}
	return nil, nil
}

// Clear drops a session outright.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
