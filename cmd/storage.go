package main

import (
	"context"
	"fmt"
	"log/slog"

	"hitpulse/internal/adapter/memory"
	"hitpulse/internal/adapter/mongo"
	"hitpulse/internal/adapter/postgres"
	"hitpulse/internal/config"
	"hitpulse/internal/core/port"
	"hitpulse/internal/db"
)

// openRepository builds the campaign store selected by STORAGE. The
// returned func releases its connections.
func (a *app) openRepository(ctx context.Context) (port.CampaignRepository, func(), error) {
	switch a.cfg.Storage {
	case config.StoragePostgres:
		pool, err := db.NewPostgresPool(ctx, a.cfg.Psql)
		if err != nil {
			return nil, nil, fmt.Errorf("database connection: %w", err)
		}
		return postgres.NewCampaignRepository(pool), pool.Close, nil

	case config.StorageMongo:
		client, err := db.NewMongoClient(ctx, a.cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				a.logger.Error("mongo disconnect failed", slog.Any("error", err))
			}
		}
		repo := mongo.NewCampaignRepository(client.Database(a.cfg.Mongo.Database).Collection(a.cfg.Mongo.Collection))
		if err = repo.EnsureIndexes(ctx); err != nil {
			closeFn()
			return nil, nil, err
		}
		return repo, closeFn, nil

	default:
		a.logger.Warn("using in-memory storage; campaigns are lost on exit")
		return memory.NewCampaignRepository(), func() {}, nil
	}
}
