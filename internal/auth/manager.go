// Package auth resolves bearer tokens to owner identities. Identity
// verification itself lives in an external provider; this package only
// maintains the session tokens issued after that verification.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/billfold/billfold/internal/shared"
)

// Manager stores session tokens in Redis keyed per owner.
type Manager struct {
	client *redis.Client
	ttl    time.Duration
}

// NewManager constructs a Manager.
func NewManager(client *redis.Client, ttl time.Duration) *Manager {
	return &Manager{client: client, ttl: ttl}
}

// Create issues an opaque session token for the given owner.
func (m *Manager) Create(ctx context.Context, ownerID uuid.UUID) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("auth: generate token: %w", err)
	}
	if err := m.client.Set(ctx, redisKey(token), ownerID.String(), m.ttl).Err(); err != nil {
		return "", fmt.Errorf("auth: store session: %w", err)
	}
	return token, nil
}

// Resolve returns the owner id a token was issued for.
func (m *Manager) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	raw, err := m.client.Get(ctx, redisKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, shared.ErrSessionExpired
		}
		return uuid.Nil, fmt.Errorf("auth: load session: %w", err)
	}
	ownerID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("auth: corrupt session payload: %w", err)
	}
	return ownerID, nil
}

// Revoke deletes a session token.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	return m.client.Del(ctx, redisKey(token)).Err()
}

func redisKey(token string) string {
	return "billfold:session:" + token
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
