package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/nogg-truth/internal/config"
	"github.com/yourusername/nogg-truth/internal/database"
)

// OpenOrUnavailable is Open for callers that must keep scoring when the
// backend is down: an open failure is logged and an UnavailableStore is
// returned in its place.
func OpenOrUnavailable(ctx context.Context, cfg *config.Config, log *logrus.Logger) Backend {
	backend, err := Open(ctx, cfg, log)
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"component": "store",
			"backend":   cfg.Store.Backend,
		}).Warn("Pattern store unavailable, scoring without history")
		return NewUnavailableStore(err)
	}
	return backend
}

// Open connects the backend selected by cfg.Store.Backend.
func Open(ctx context.Context, cfg *config.Config, log *logrus.Logger) (Backend, error) {
	entry := log.WithFields(logrus.Fields{
		"component": "store",
		"backend":   cfg.Store.Backend,
	})

	switch cfg.Store.Backend {
	case config.BackendMemory:
		entry.Warn("Using in-memory pattern store, history will not survive restarts")
		return NewMemoryStore(), nil

	case config.BackendFile:
		fs, err := NewFileStore(cfg.Store.FileDir)
		if err != nil {
			return nil, err
		}
		entry.WithField("dir", cfg.Store.FileDir).Info("File pattern store ready")
		return fs, nil

	case config.BackendPostgres:
		db, err := database.NewDB(ctx, cfg.GetDatabaseDSN(), cfg.Database.MaxConnections)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		ps, err := NewPostgresStore(ctx, db, cfg.Database.Table)
		if err != nil {
			db.Close()
			return nil, err
		}
		entry.WithFields(logrus.Fields{
			"host":  cfg.Database.Host,
			"table": cfg.Database.Table,
		}).Info("Postgres pattern store ready")
		return ps, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		entry.WithField("addr", cfg.Redis.Addr).Info("Redis pattern store ready")
		return NewRedisStore(client, cfg.Redis.KeyPrefix), nil

	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}
