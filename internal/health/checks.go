package health

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/pressly/goose/v3"
	"github.com/storedesk/backoffice-api/internal/config"
)

const (
	ComponentName = "backoffice-api"
	Version       = "1.0.0"
)

// NewHealthHandler builds the /health endpoint. The database and redis probes open
// their own short-lived connections; the schema probe reuses the application pool.
func NewHealthHandler(cfg *config.Config, db *sql.DB) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    ComponentName,
			Version: Version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "database",
				Timeout:   3 * time.Second,
				SkipOnErr: false,
				Check: postgres.New(postgres.Config{
					DSN: cfg.Database.GetDSN(),
				}),
			},
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(healthRedis.Config{
					DSN: cfg.RedisConnect.GetDSN(),
				}),
			},
			health.Config{
				Name:      "schema",
				Timeout:   2 * time.Second,
				SkipOnErr: true,
				Check:     SchemaCheck(db),
			},
		),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

// SchemaCheck fails until at least one migration has been applied.
func SchemaCheck(db *sql.DB) health.CheckFunc {
	return func(ctx context.Context) error {
		if db == nil {
			return fmt.Errorf("database pool is not initialized")
		}

		version, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}

		if version < 1 {
			return fmt.Errorf("no migrations applied")
		}

		return nil
	}
}
