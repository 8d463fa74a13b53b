package app

import (
	"context"
	"database/sql"
	"fmt"

	"session-service/internal/config"
	"session-service/internal/db"
	"session-service/internal/logger"
	"session-service/internal/redis"
	"session-service/internal/session"

	_ "github.com/lib/pq"
)

// setupStore builds the configured session store backend and returns it
// together with a cleanup closure for whatever connections it opened.
func setupStore(ctx context.Context, cfg config.Config) (session.Store, func() error, error) {
	switch cfg.SessionBackend {
	case "postgres":
		sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}

		if err := sqlDB.PingContext(ctx); err != nil {
			return nil, nil, err
		}

		if err := db.RunSessionsMigration(ctx, sqlDB); err != nil {
			return nil, nil, err
		}

		logger.Info("database ready", nil)
		return session.NewPostgresStore(sqlDB), sqlDB.Close, nil

	case "redis":
		redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisPingTimeout)
		if err != nil {
			return nil, nil, err
		}

		logger.Info("redis ready", nil)
		return session.NewRedisStore(redisClient.Client, cfg.SessionRetention), redisClient.Close, nil

	case "memory":
		logger.Warn("using in-memory session store, sessions will not survive restarts", nil)
		return session.NewMemoryStore(), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}
