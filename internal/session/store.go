// Package session stores opaque bearer tokens in Redis.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrNoSession = errors.New("session not found")

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func key(token string) string { return "session:" + token }

// Create issues a new token for userID, valid for the store TTL.
func (s *Store) Create(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, key(token), userID, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// UserID resolves a token to the owning user id.
func (s *Store) UserID(ctx context.Context, token string) (string, error) {
	v, err := s.client.Get(ctx, key(token)).Result()
	if err == redis.Nil {
		return "", ErrNoSession
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *Store) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, key(token)).Err()
}
