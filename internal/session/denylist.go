package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "session:revoked:"

// Denylist guarda los tokens revocados (logout) hasta que expiran.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisDenylist implementa Denylist sobre Redis con claves que expiran solas.
type RedisDenylist struct {
	client redis.Cmdable
}

// NewRedisDenylist crea un denylist sobre el cliente dado.
func NewRedisDenylist(client redis.Cmdable) *RedisDenylist {
	return &RedisDenylist{client: client}
}

// Revoke marca el token como revocado durante ttl.
// Un ttl <= 0 significa que el token ya expiró: no hay nada que guardar.
func (denylist *RedisDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return denylist.client.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err()
}

// IsRevoked indica si el token fue revocado.
func (denylist *RedisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := denylist.client.Get(ctx, revokedKeyPrefix+tokenID).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		return false, err
	}
}
