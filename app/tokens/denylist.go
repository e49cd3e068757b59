// Package tokens tracks revoked JWT ids in redis so logout takes effect
// before the token expires on its own.
package tokens

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cardsapi:revoked:"

type Denylist struct {
	rdb *redis.Client
}

// NewDenylist wraps the redis client. A nil client yields a no-op denylist,
// which keeps revocation optional in deployments without redis.
func NewDenylist(rdb *redis.Client) *Denylist {
	return &Denylist{rdb: rdb}
}

// Revoke marks the token id revoked until its natural expiry.
func (d *Denylist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if d == nil || d.rdb == nil || jti == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return d.rdb.Set(ctx, keyPrefix+jti, 1, ttl).Err()
}

func (d *Denylist) IsRevoked(ctx context.Context, jti string) bool {
	if d == nil || d.rdb == nil || jti == "" {
		return false
	}
	n, err := d.rdb.Exists(ctx, keyPrefix+jti).Result()
	return err == nil && n > 0
}
