package db

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

var (
	newRedisClient = redis.NewClient
	pingRedis      = func(ctx context.Context, client redisPinger) error {
		return client.Ping(ctx).Err()
	}
	closeRedis = func(client redisPinger) {
		_ = client.Close()
	}
)

// NewRedis crea el cliente de Redis donde viven las sesiones revocadas.
// Igual que con Postgres, si no responde al arrancar devolvemos error.
func NewRedis(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := newRedisClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  connectTimeout,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := pingRedis(ctx, client); err != nil {
		closeRedis(client)
		return nil, err
	}

	return client, nil
}
