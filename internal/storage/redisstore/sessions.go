package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"minderbook/internal/config"
	"minderbook/internal/models"
	"minderbook/internal/storage"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// Session is the server-side state behind the opaque cookie token.
type Session struct {
	UserID             string                    `json:"user_id"`
	Role               models.Role               `json:"role"`
	Name               string                    `json:"name"`
	Email              string                    `json:"email"`
	SubscriptionStatus models.SubscriptionStatus `json:"subscription_status"`
}

type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func New(ctx context.Context, cfg *config.Redis) (*SessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &SessionStore{client: client, ttl: cfg.SessionTTL}, nil
}

func (s *SessionStore) Close() error {
	return s.client.Close()
}

// Create issues a fresh opaque token for the user and stores the
// session under it with the configured TTL.
func (s *SessionStore) Create(ctx context.Context, u *models.User) (string, error) {
	token := uuid.NewString()

	payload, err := json.Marshal(Session{
		UserID:             u.ID,
		Role:               u.Role,
		Name:               u.Name,
		Email:              u.Email,
		SubscriptionStatus: u.SubscriptionStatus,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return token, nil
}

func (s *SessionStore) Get(ctx context.Context, token string) (*Session, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
