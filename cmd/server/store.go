package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tbourn/mission-control/internal/config"
	"github.com/tbourn/mission-control/internal/docstore"
	"github.com/tbourn/mission-control/internal/repo"
	"github.com/tbourn/mission-control/internal/services"
)

var (
	_ services.Store = (*repo.Store)(nil)
	_ services.Store = (*docstore.Store)(nil)
)

// openStore connects the backend named by cfg.DBDriver and prepares its
// schema. With cfg.AutoMigrate unset, schema work is left to deployments
// that migrate out of band.
func openStore(ctx context.Context, cfg config.Config) (services.Store, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, err := repo.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		st := repo.NewStore(db)
		if cfg.AutoMigrate {
			if err := repo.AutoMigrate(db); err != nil {
				_ = st.Close(ctx)
				return nil, err
			}
		}
		return st, nil

	case config.DriverMongo:
		st, err := docstore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.ConnectTimeout)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := st.EnsureIndexes(ctx); err != nil {
				_ = st.Close(ctx)
				return nil, err
			}
		}
		return st, nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

// purger is the part of the idempotency service the sweeper needs.
type purger interface {
	Purge(ctx context.Context) (int64, error)
}

// sweepIdempotency deletes expired idempotency records every interval until
// ctx is done. A non-positive interval disables the sweep.
func sweepIdempotency(ctx context.Context, p purger, interval time.Duration, log zerolog.Logger) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := p.Purge(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("idempotency sweep")
				continue
			}
			if n > 0 {
				log.Debug().Int64("purged", n).Msg("idempotency sweep")
			}
		}
	}
}
