package session

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "shorty:credential:"

const defaultRedisTimeout = 2 * time.Second

var errRedisAddr = errors.New("redis address is empty")

// RedisConfig controls the client used by RedisStore. Timeout bounds
// dialing, each command and the initial ping.
type RedisConfig struct {
	Addr    string
	Timeout time.Duration
}

// OpenRedis connects to cfg.Addr and checks the connection with a PING.
func OpenRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, errRedisAddr
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRedisTimeout
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrapf(err, "ping redis at %s", cfg.Addr)
	}
	return rdb, nil
}

// RedisStore shares one credential per origin between every client
// pointed at the same Redis.
type RedisStore struct {
	rdb *redis.Client
	key string
}

func NewRedisStore(rdb *redis.Client, origin string) *RedisStore {
	return &RedisStore{rdb: rdb, key: redisKeyPrefix + origin}
}

func (rs *RedisStore) Get(ctx context.Context) (string, error) {
	token, err := rs.rdb.Get(ctx, rs.key).Result()
	if errors.Is(err, redis.Nil) || (err == nil && token == "") {
		return "", ErrNoCredential
	}
	if err != nil {
		return "", errors.Wrap(err, "redis get credential")
	}
	return token, nil
}

func (rs *RedisStore) Set(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	return errors.Wrap(rs.rdb.Set(ctx, rs.key, token, 0).Err(), "redis set credential")
}

func (rs *RedisStore) Clear(ctx context.Context) error {
	return errors.Wrap(rs.rdb.Del(ctx, rs.key).Err(), "redis clear credential")
}

func (rs *RedisStore) Close() error {
	return rs.rdb.Close()
}
