package redis

import (
	"context"
	"time"

	goRedis "github.com/redis/go-redis/v9"

	"github.com/fastygo/tasknest/domain"
	"github.com/fastygo/tasknest/internal/config"
)

// NewClient connects to the Redis instance holding the task slot and pings it
// within pingTimeout. An unreachable server is reported as ErrCodeUnavailable.
func NewClient(ctx context.Context, cfg config.RedisConfig, pingTimeout time.Duration) (*goRedis.Client, error) {
	opts, err := goRedis.ParseURL(cfg.URL)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "invalid REDIS_URL", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}

	client := goRedis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "redis unreachable", err)
	}
	return client, nil
}
