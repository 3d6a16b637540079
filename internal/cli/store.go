package cli

import (
	"context"
	"fmt"
	"time"

	"quizlink/internal/app"
	"quizlink/internal/config"
	"quizlink/internal/infra/memory"
	pgstore "quizlink/internal/infra/postgres"
	redisstore "quizlink/internal/infra/redis"
	"quizlink/internal/infra/sqlite"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// openStore builds the key/value store selected by storage.driver. Remote
// stores get a read-through cache when storage.cache_ttl is set.
func openStore(ctx context.Context, cfg config.Config, logger zerolog.Logger) (app.KeyValueStore, func() error, error) {
	cacheTTL := config.TTLDuration(cfg.Storage.CacheTTL, 0)

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return memory.NewStore(), func() error { return nil }, nil

	case config.DriverSQLite, "":
		store, err := sqlite.Open(ctx, cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug().Str("path", cfg.Storage.Path).Msg("sqlite store opened")
		return store, store.Close, nil

	case config.DriverRedis:
		if cfg.Redis.Addr == "" {
			return nil, nil, fmt.Errorf("redis addr not configured")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store := redisstore.NewStore(client, cfg.Redis.Prefix, config.TTLDuration(cfg.Redis.TTL, 0))
		if err := store.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		logger.Debug().Str("addr", cfg.Redis.Addr).Msg("redis store opened")
		return withCache(store, cacheTTL), client.Close, nil

	case config.DriverPostgres:
		if cfg.Postgres.URL == "" {
			return nil, nil, fmt.Errorf("postgres url not configured")
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		logger.Debug().Msg("postgres store opened")
		return withCache(pgstore.NewStore(pool), cacheTTL), func() error { pool.Close(); return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func withCache(store memory.Backend, ttl time.Duration) app.KeyValueStore {
	if ttl <= 0 {
		return store
	}
	return memory.NewCachedStore(store, ttl)
}
