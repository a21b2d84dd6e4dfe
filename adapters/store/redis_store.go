package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/janus-auth/janus/core"
	"github.com/janus-auth/janus/ports"
	"github.com/redis/go-redis/v9"
)

// Keys follow the wire contract "RT:" + subject.
const keyPrefix = "RT:"

const (
	replaceStatusAbsent   int64 = 0
	replaceStatusMismatch int64 = 1
	replaceStatusSwapped  int64 = 2
)

// replaceScript compares the stored refresh token with the presented one and
// overwrites it in the same operation, so two rotations racing on the same
// subject cannot both pass the comparison.
const replaceScript = `
local current = redis.call("GET", KEYS[1])
if current == false then
  return 0
end
if current ~= ARGV[1] then
  return 1
end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 2
`

var replaceLua = redis.NewScript(replaceScript)

// RedisStore is a Redis implementation of the SessionStore interface.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis session store.
func NewRedisStore(client *redis.Client) ports.SessionStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) key(subject string) string {
	return keyPrefix + subject
}

// Put overwrites the refresh token record for subject.
func (s *RedisStore) Put(ctx context.Context, subject, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(subject), token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// Get returns the authoritative refresh token for subject.
func (s *RedisStore) Get(ctx context.Context, subject string) (string, error) {
	value, err := s.client.Get(ctx, s.key(subject)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", core.ErrNoSession
		}
		return "", fmt.Errorf("failed to read refresh token: %w", err)
	}
	return value, nil
}

// Replace swaps the stored token for next if and only if it currently equals
// presented.
func (s *RedisStore) Replace(ctx context.Context, subject, presented, next string, ttl time.Duration) error {
	status, err := replaceLua.Run(ctx, s.client, []string{s.key(subject)}, presented, next, ttl.Milliseconds()).Int64()
	if err != nil {
		return fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	switch status {
	case replaceStatusAbsent:
		return core.ErrNoSession
	case replaceStatusMismatch:
		return core.ErrSessionMismatch
	}
	return nil
}
