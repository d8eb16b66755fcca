package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisekadhikari/burningsawals/internal/config"
	"github.com/redis/go-redis/v9"
)

// Redis wraps the go-redis client used by the abuse guard counters.
type Redis struct {
	Client *redis.Client
	logger *slog.Logger
}

func NewRedis(cfg *config.RedisConfig, logger *slog.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to ping redis: %w", err)
	}

	logger.Info("redis connection established", slog.String("addr", cfg.Addr))

	return &Redis{Client: client, logger: logger}, nil
}

func (r *Redis) Close() error {
	r.logger.Info("closing redis connection")
	return r.Client.Close()
}
