package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/redis/go-redis/v9"

	"github.com/cybernews-agent/cybernews/pkg/domain"
)

// DefaultKey is the redis key of the latest result
const DefaultKey = "cybernews:latest"

const pingTimeout = 5 * time.Second

// RedisOpts configures the redis cache
type RedisOpts struct {
	Addr     string
	Password string
	DB       int
	Key      string
	TTL      time.Duration
}

// Redis keeps the snapshot as a json document under a single key with expiration
type Redis struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedis connects to redis and checks the connection
func NewRedis(opts RedisOpts) (*Redis, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis address is required")
	}
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}

	client := redis.NewClient(&redis.Options{Addr: opts.Addr, Password: opts.Password, DB: opts.DB})
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Redis{client: client, key: opts.Key, ttl: opts.TTL}, nil
}

// Get returns the stored snapshot, redis or decode errors are reported as a miss
func (r *Redis) Get(ctx context.Context) (domain.PipelineResult, bool) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			lgr.Printf("[WARN] failed to read cached result: %v", err)
		}
		return domain.PipelineResult{}, false
	}

	var res domain.PipelineResult
	if err := json.Unmarshal(data, &res); err != nil {
		lgr.Printf("[WARN] failed to decode cached result: %v", err)
		return domain.PipelineResult{}, false
	}
	return res, true
}

// Set stores the snapshot with ttl
func (r *Redis) Set(ctx context.Context, res domain.PipelineResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := r.client.Set(ctx, r.key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("store result: %w", err)
	}
	return nil
}

// Close closes the redis client
func (r *Redis) Close() error {
	return r.client.Close()
}
