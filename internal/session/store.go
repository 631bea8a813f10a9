package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/skillgateway/backend/internal/models"
)

// ErrNoSession is returned when the session id is unknown or expired
var ErrNoSession = errors.New("session not found")

// Store keeps session payloads in Redis under a TTL. The cookie carries only
// the session id; the user snapshot lives server side.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a new session store
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(sid string) string {
	return "session:" + sid
}

// Create stores a new session for the user and returns its id
func (s *Store) Create(ctx context.Context, user models.SessionUser) (string, error) {
	sid := uuid.New().String()

	data, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(sid), data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return sid, nil
}

// Get retrieves the session user for a session id
func (s *Store) Get(ctx context.Context, sid string) (*models.SessionUser, error) {
	data, err := s.client.Get(ctx, sessionKey(sid)).Bytes()
	if err == redis.Nil {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var user models.SessionUser
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &user, nil
}

// Update replaces the stored user snapshot, keeping the remaining TTL
func (s *Store) Update(ctx context.Context, sid string, user models.SessionUser) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(sid), data, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

// Delete removes a session
func (s *Store) Delete(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, sessionKey(sid)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
