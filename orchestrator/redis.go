package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each record as JSON under <prefix>:analysis:<id> and a
// newest-first list of record ids under <prefix>:session:<session id>.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore wraps client. A ttl of 0 keeps records forever.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(parts ...string) string {
	k := s.prefix
	for _, p := range parts {
		if k == "" {
			k = p
			continue
		}
		k += ":" + p
	}
	return k
}

func (s *RedisStore) Save(ctx context.Context, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("redis store marshal %q: %w", rec.ID, err)
	}
	sessKey := s.key("session", rec.SessionID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key("analysis", rec.ID), data, s.ttl)
		pipe.LPush(ctx, sessKey, rec.ID)
		if s.ttl > 0 {
			pipe.Expire(ctx, sessKey, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis store save %q: %w", rec.ID, err)
	}
	return nil
}

func (s *RedisStore) Latest(ctx context.Context, sessionID string) (*Record, error) {
	id, err := s.client.LIndex(ctx, s.key("session", sessionID), 0).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoAnalysis
	}
	if err != nil {
		return nil, fmt.Errorf("redis store latest %q: %w", sessionID, err)
	}
	raw, err := s.client.Get(ctx, s.key("analysis", id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoAnalysis
	}
	if err != nil {
		return nil, fmt.Errorf("redis store load %q: %w", id, err)
	}
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("redis store unmarshal %q: %w", id, err)
	}
	return &rec, nil
}
