package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"hitpulse/internal/config/configs"
)

// applicationName tags hitpulse sessions in pg_stat_activity.
const applicationName = "hitpulse"

// NewPostgresPool opens the pool behind the postgres campaign store. The
// scheduler reads and updates a campaign row on every tick, so the pool is
// shared by all running campaigns and the API; cfg.MaxConns caps it. The
// pool is pinged with a 5 second timeout and closed again if that fails.
// The caller must close the returned pool.
func NewPostgresPool(ctx context.Context, cfg configs.Postgres) (*pgxpool.Pool, error) {
	poolConf, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConf)
	if err != nil {
		return nil, err
	}

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// poolConfig parses cfg.Addr and applies the pool limits. An
// application_name given in the address wins over the default.
func poolConfig(cfg configs.Postgres) (*pgxpool.Config, error) {
	poolConf, err := pgxpool.ParseConfig(cfg.Addr.String())
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		poolConf.MaxConns = cfg.MaxConns
	}
	if _, ok := poolConf.ConnConfig.RuntimeParams["application_name"]; !ok {
		poolConf.ConnConfig.RuntimeParams["application_name"] = applicationName
	}
	return poolConf, nil
}
