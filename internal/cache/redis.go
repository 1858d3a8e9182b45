package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"estate-backoffice/internal/config"
	"estate-backoffice/internal/models"

	"github.com/redis/go-redis/v9"
)

// SessionKeyFmt is the Redis key of a console session
const SessionKeyFmt = "session:%s"

var client *redis.Client

// Init connects to Redis when enabled. On failure the client stays nil and
// callers fall back to the in-memory store.
func Init(cfg *config.Config) error {
	if !cfg.Redis.Enabled {
		return nil
	}

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client, nil when Redis is not in use
func GetClient() *redis.Client {
	return client
}

// Close releases the Redis connection
func Close() {
	if client != nil {
		client.Close()
		client = nil
	}
}

// ErrSessionNotFound is returned for unknown or expired sessions
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists console sessions between requests
type SessionStore interface {
	Save(ctx context.Context, s *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

// NewSessionStore returns a Redis-backed store when connected, in-memory otherwise
func NewSessionStore() SessionStore {
	if client != nil {
		log.Printf("[Cache] Using Redis session store")
		return NewRedisSessionStore(client)
	}
	log.Printf("[Cache] Redis unavailable, using in-memory session store")
	return NewMemorySessionStore(time.Now)
}

// RedisSessionStore keeps sessions as JSON with a TTL matching their expiry
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(c *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: c}
}

func (r *RedisSessionStore) Save(ctx context.Context, s *models.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	var ttl time.Duration
	if !s.ExpiresAt.IsZero() {
		ttl = time.Until(s.ExpiresAt)
		if ttl <= 0 {
			return ErrSessionNotFound
		}
	}
	return r.client.Set(ctx, fmt.Sprintf(SessionKeyFmt, s.ID), data, ttl).Err()
}

func (r *RedisSessionStore) Get(ctx context.Context, id string) (*models.Session, error) {
	data, err := r.client.Get(ctx, fmt.Sprintf(SessionKeyFmt, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &s, nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, fmt.Sprintf(SessionKeyFmt, id)).Err()
}
