package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKey       = "console:" + TokenKey
	defaultTimeout = 5 * time.Second
)

// RedisConfig captures the settings for establishing a Redis connection.
type RedisConfig struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect initialises a Redis client and validates connectivity with a ping.
// A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// Redis stores the token under a single fixed key with no expiry; the
// session ends only through logout or a 401, never a TTL.
type Redis struct {
	client *redis.Client
	ctx    func() context.Context
}

// NewRedis returns a Redis-backed store wrapping the given client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client, ctx: context.Background}
}

func (r *Redis) Load() (string, bool, error) {
	token, err := r.client.Get(r.ctx(), redisKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load token: %w", err)
	}
	return token, token != "", nil
}

func (r *Redis) Save(token string) error {
	if err := r.client.Set(r.ctx(), redisKey, token, 0).Err(); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (r *Redis) Clear() error {
	if err := r.client.Del(r.ctx(), redisKey).Err(); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
