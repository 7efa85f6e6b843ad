// Package session holds the server-side login state: an opaque cookie
// token mapped to a small user record in Redis.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the browser-side session cookie.
	CookieName = "studio_session"

	keyPrefix = "session:" // session:{token}
)

// ErrNotFound is returned when a presented token has no server-side
// record (expired, logged out, or never issued).
var ErrNotFound = errors.New("session not found")

// Record is the server-held view of the logged-in principal.
type Record struct {
	UserID  int64  `json:"user_id"`
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// Store persists session records in Redis with a TTL.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Store{client: client, ttl: ttl}
}

// Create stores rec under a fresh opaque token and returns the token.
func (s *Store) Create(ctx context.Context, rec Record) (string, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	token := newToken()
	if err := s.client.Set(ctx, keyPrefix+token, data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Get resolves a token to its record, refreshing the TTL on hit.
func (s *Store) Get(ctx context.Context, token string) (*Record, error) {
	if token == "" {
		return nil, ErrNotFound
	}

	data, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var rec Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	// Sliding expiry: active sessions stay alive.
	_ = s.client.Expire(ctx, keyPrefix+token, s.ttl).Err()

	return &rec, nil
}

// Delete clears a token. Deleting an unknown token is not an error.
func (s *Store) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func newToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failure is unrecoverable for session issuance
		panic(fmt.Sprintf("session token: %v", err))
	}
	return hex.EncodeToString(b)
}
