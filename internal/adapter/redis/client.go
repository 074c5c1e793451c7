package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/ferreteria-nea/cart-widget/internal/app/config"
	"github.com/ferreteria-nea/cart-widget/internal/repository"
	"github.com/redis/go-redis/v9"
)

const dialTimeout = 5 * time.Second

func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	if _, err := client.Ping(dialCtx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: redis ping failed: %w", repository.ErrConnectionFailed, err)
	}

	return client, nil
}
