package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenKind selects the key namespace of a registered token.
type TokenKind string

const (
	AccessTokenKind  TokenKind = "access_token"
	RefreshTokenKind TokenKind = "refresh_token"
)

// TokenRegistry is the allow-list of issued tokens. A token that is not
// registered is treated as revoked.
type TokenRegistry interface {
	Register(ctx context.Context, kind TokenKind, userID uuid.UUID, tokenID string, ttl time.Duration) error
	IsActive(ctx context.Context, kind TokenKind, userID uuid.UUID, tokenID string) (bool, error)
	Revoke(ctx context.Context, kind TokenKind, userID uuid.UUID, tokenID string) error
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

type redisTokenRegistry struct {
	redisClient *redis.Client
}

func NewRedisTokenRegistry(redisClient *redis.Client) TokenRegistry {
	return &redisTokenRegistry{redisClient: redisClient}
}

// TokenKey is "<kind>:<user id>:<token id>".
func TokenKey(kind TokenKind, userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s:%s:%s", kind, userID.String(), tokenID)
}

func (r *redisTokenRegistry) Register(ctx context.Context, kind TokenKind, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	return r.redisClient.Set(ctx, TokenKey(kind, userID, tokenID), "valid", ttl).Err()
}

func (r *redisTokenRegistry) IsActive(ctx context.Context, kind TokenKind, userID uuid.UUID, tokenID string) (bool, error) {
	exists, err := r.redisClient.Exists(ctx, TokenKey(kind, userID, tokenID)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (r *redisTokenRegistry) Revoke(ctx context.Context, kind TokenKind, userID uuid.UUID, tokenID string) error {
	return r.redisClient.Del(ctx, TokenKey(kind, userID, tokenID)).Err()
}

// RevokeAll drops every access and refresh token of the user.
func (r *redisTokenRegistry) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	for _, kind := range []TokenKind{AccessTokenKind, RefreshTokenKind} {
		pattern := fmt.Sprintf("%s:%s:*", kind, userID.String())
		iter := r.redisClient.Scan(ctx, 0, pattern, 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.redisClient.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
	}
	return nil
}
