package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisOptions configures the Redis backend.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// Prefix namespaces every bucket key as "<prefix>:<bucket>".
	Prefix string
}

type redisKV struct {
	rdb    *goredis.Client
	prefix string
}

// OpenRedis creates a Store whose buckets live as Redis string keys.
// The server is pinged before returning.
func OpenRedis(ctx context.Context, opts RedisOptions) (*Store, error) {
	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "upskill"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return New(&redisKV{rdb: rdb, prefix: prefix}), nil
}

func (r *redisKV) key(bucket string) string {
	return r.prefix + ":" + bucket
}

func (r *redisKV) Load(ctx context.Context, bucket string) ([]byte, error) {
	data, err := r.rdb.Get(ctx, r.key(bucket)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", bucket, err)
	}
	return data, nil
}

func (r *redisKV) Save(ctx context.Context, bucket string, data []byte) error {
	if err := r.rdb.Set(ctx, r.key(bucket), data, 0).Err(); err != nil {
		return fmt.Errorf("save %s: %w", bucket, err)
	}
	return nil
}

func (r *redisKV) Delete(ctx context.Context, bucket string) error {
	if err := r.rdb.Del(ctx, r.key(bucket)).Err(); err != nil {
		return fmt.Errorf("delete %s: %w", bucket, err)
	}
	return nil
}

func (r *redisKV) Close() error {
	return r.rdb.Close()
}
