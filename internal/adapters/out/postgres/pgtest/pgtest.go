// Package pgtest starts a throwaway PostgreSQL container with the schema migrated, for
// repository integration suites.
package pgtest

import (
	"context"
	"time"

	"procurement/internal/adapters/out/postgres/migration"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
}

// Start runs postgres:15-alpine and applies every migration.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}
	d := &Database{Container: container}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, d.fail(err)
	}
	d.DB, err = gorm.Open(gormpostgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, d.fail(err)
	}

	sqlDB, err := d.DB.DB()
	if err != nil {
		return nil, d.fail(err)
	}
	m, err := migration.New(sqlDB, zap.NewNop())
	if err != nil {
		return nil, d.fail(err)
	}
	if err := m.Up(ctx); err != nil {
		return nil, d.fail(err)
	}
	return d, nil
}

// Truncate empties every domain table.
func (d *Database) Truncate() error {
	return d.DB.Exec("TRUNCATE TABLE quote_revisions, quotes, orders").Error
}

func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}

func (d *Database) fail(err error) error {
	_ = d.Container.Terminate(context.Background())
	return err
}
