package store

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/techfacts/factbot/internal/config"
)

// Open builds the fact store selected by cfg, fronted by the Redis cache when
// REDIS_ADDR is set.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (FactStore, error) {
	var fs FactStore
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		pg, err := OpenPostgres(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, err
		}
		fs = pg
	default:
		b, err := NewBoltStore(filepath.Join(cfg.DataDir, "factbot.db"))
		if err != nil {
			return nil, err
		}
		fs = b
	}

	if cfg.RedisAddr == "" {
		return fs, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     10,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		// The cache is optional; lookups fall through while Redis is down.
		log.Warn("store: redis ping failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	log.Info("store: fact cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL))

	return NewCachedStore(fs, rdb, cfg.CacheTTL, log), nil
}

// Describe names the backend for logs.
func Describe(cfg *config.Config) string {
	desc := cfg.StoreDriver
	if cfg.RedisAddr != "" {
		desc += "+redis"
	}
	return fmt.Sprintf("%s (%s)", desc, Collection)
}
