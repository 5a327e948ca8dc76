package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/resume-editor/internal/config"
	"github.com/jonathan/resume-editor/internal/db"
	"github.com/jonathan/resume-editor/internal/persistence"
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/sirupsen/logrus"
)

// openStore opens the configured backend. Remote backends key their record by
// the installation id, which is cached in the local SQLite file. The returned
// func releases everything opened.
func openStore(ctx context.Context, cfg config.Config, logger logrus.FieldLogger) (persistence.Store, func(), error) {
	log := logger.WithField("store", cfg.Store)

	switch cfg.Store {
	case config.StoreMemory:
		log.Info("using in-memory store; nothing will survive a restart")
		return persistence.NewMemoryStore(), func() {}, nil

	case config.StoreLocal:
		local, err := persistence.OpenSQLite(cfg.StorePath)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("path", cfg.StorePath).Info("using local store")
		return local, closer(log, local.Close), nil

	case config.StorePostgres:
		local, id, err := installation(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			_ = local.Close()
			return nil, nil, err
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			_ = local.Close()
			return nil, nil, err
		}
		log.WithField("installation_id", id).Info("using postgres store")
		return persistence.NewPostgresStore(database, id), func() {
			database.Close()
			_ = local.Close()
		}, nil

	case config.StoreRedis:
		local, id, err := installation(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		rdb, err := persistence.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			_ = local.Close()
			return nil, nil, err
		}
		log.WithField("installation_id", id).Info("using redis store")
		return persistence.NewRedisStore(rdb, id), func() {
			if err := rdb.Close(); err != nil {
				log.WithError(err).Warn("failed to close redis client")
			}
			_ = local.Close()
		}, nil
	}

	return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
}

func installation(ctx context.Context, cfg config.Config) (*persistence.SQLiteStore, string, error) {
	local, err := persistence.OpenSQLite(cfg.StorePath)
	if err != nil {
		return nil, "", err
	}
	id, err := persistence.InstallationID(ctx, local)
	if err != nil {
		_ = local.Close()
		return nil, "", err
	}
	return local, id, nil
}

func closer(log logrus.FieldLogger, closeFn func() error) func() {
	return func() {
		if err := closeFn(); err != nil {
			log.WithError(err).Warn("failed to close store")
		}
	}
}

// loadDocuments reads documents from a JSON file when path is set, otherwise
// from the configured store. With nothing saved the bundled sample is used.
func loadDocuments(ctx context.Context, path string, cfg config.Config, logger logrus.FieldLogger) (types.Documents, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return types.Documents{}, fmt.Errorf("failed to read %s: %w", path, err)
		}
		docs, err := persistence.Decode(data)
		if err != nil {
			return types.Documents{}, fmt.Errorf("invalid documents in %s: %w", path, err)
		}
		return *docs, nil
	}

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return types.Documents{}, err
	}
	defer closeStore()

	adapter := persistence.NewAdapter(store, cfg.SaveDebounce(), logger)
	if docs, ok := adapter.Load(ctx); ok {
		return *docs, nil
	}
	logger.Info("no saved documents; using the sample")
	return types.SampleDocuments(time.Now()), nil
}
