package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisSessionKey = "mcp-bridge:session"

// RedisStore keeps the single session slot in Redis, for deployments where
// multiple bridge processes share one login. The expiry window is enforced
// both by a server-side TTL and by the same age check the file store uses.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed session store from a redis:// URL.
func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// NewRedisStoreWithClient wraps an existing client, used by tests.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Put writes the session, stamping CreatedAt.
func (s *RedisStore) Put(session *Session) error {
	session.CreatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.client.Set(ctx, redisSessionKey, data, Expiry).Err(); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Get returns the saved session, or ErrNoSession for a missing, corrupt,
// or expired record. An expired record is deleted as a side effect.
func (s *RedisStore) Get() (*Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	data, err := s.client.Get(ctx, redisSessionKey).Result()
	if err != nil {
		return nil, ErrNoSession
	}

	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		_ = s.Delete()
		return nil, ErrNoSession
	}

	if session.IsExpired() {
		_ = s.Delete()
		return nil, ErrNoSession
	}
	return &session, nil
}

// Delete removes the session. It is idempotent.
func (s *RedisStore) Delete() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.client.Del(ctx, redisSessionKey).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
