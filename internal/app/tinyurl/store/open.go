package store

import (
	"context"
	"fmt"
	"log/slog"

	"tinyurl.local/internal/app/tinyurl"
	"tinyurl.local/internal/platform/config"
	"tinyurl.local/internal/platform/db"
	"tinyurl.local/internal/platform/dynamo"
	"tinyurl.local/internal/platform/kv"
	"tinyurl.local/internal/platform/migrate"
)

// Open builds the backend named by cfg.StoreBackend and wraps it with
// Instrument. The returned close func releases the backend's connections.
func Open(ctx context.Context, cfg config.Config) (tinyurl.MappingStore, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendDynamo:
		client, err := dynamo.NewClient(ctx, dynamo.Options{
			Region:   cfg.AWSRegion,
			Endpoint: cfg.DynamoEndpoint,
			Local:    cfg.SAMLocal,
			Tracing:  cfg.TracingEnabled,
		})
		if err != nil {
			return nil, nil, err
		}
		slog.Info("store opened", "backend", DynamoName, "table", cfg.Table, "region", cfg.AWSRegion, "endpoint", cfg.DynamoEndpoint)
		return Instrument(NewDynamo(client, cfg.Table, cfg.StoreTimeout)), func() {}, nil

	case config.BackendRedis:
		client, err := kv.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("store opened", "backend", RedisName, "addr", cfg.RedisAddr, "prefix", cfg.Table)
		return Instrument(NewRedis(client, cfg.Table, cfg.StoreTimeout)), func() { _ = client.Close() }, nil

	case config.BackendPostgres:
		pool, err := db.New(ctx, cfg.DBDSN)
		if err != nil {
			return nil, nil, err
		}
		if cfg.MigrateOnStart {
			res, err := migrate.Up(ctx, pool, migrate.Options{Dir: cfg.MigrationsDir, Table: cfg.Table})
			if err != nil {
				pool.Close()
				return nil, nil, fmt.Errorf("migrate: %w", err)
			}
			slog.Info("migrations done", "dir", res.Dir, "applied", res.AppliedFiles, "skipped", len(res.SkippedFiles))
		}
		slog.Info("store opened", "backend", PostgresName, "table", cfg.Table)
		return Instrument(NewPostgres(pool, cfg.Table, cfg.StoreTimeout)), pool.Close, nil

	case config.BackendMemory:
		slog.Warn("store opened", "backend", MemoryName, "note", "mappings are lost on restart")
		return Instrument(NewMemory()), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}
