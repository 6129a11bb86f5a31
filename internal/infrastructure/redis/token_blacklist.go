package redis

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const blacklistPrefix = "iam:blacklist:"

// TokenBlacklist checks the shared IAM token blacklist in Redis.
// Keys are written by the IAM service on logout and are not service-prefixed.
type TokenBlacklist struct {
	client *Client
}

// NewTokenBlacklist creates a blacklist checker on an existing connection.
func NewTokenBlacklist(client *Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

// IsBlacklisted checks if a token JTI is on the blacklist.
func (tb *TokenBlacklist) IsBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	exists, err := tb.client.Redis().Exists(ctx, blacklistPrefix+tokenID).Result()
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false, err
		}
		return false, fmt.Errorf("blacklist check failed: %w", err)
	}
	return exists > 0, nil
}

// Add blacklists a token JTI until ttl elapses.
func (tb *TokenBlacklist) Add(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := tb.client.Redis().Set(ctx, blacklistPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklist add failed: %w", err)
	}
	return nil
}
