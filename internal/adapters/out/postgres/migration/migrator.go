// Package migration applies the embedded goose migrations that create the order and quote
// tables.
package migration

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var migrations embed.FS

const migrationsDir = "sql"

// goose keeps its dialect and filesystem in package state.
var setup sync.Once

// Migrator wraps goose operations.
type Migrator struct {
	db     *sql.DB
	logger *zap.Logger
}

func New(db *sql.DB, logger *zap.Logger) (*Migrator, error) {
	var err error
	setup.Do(func() {
		goose.SetBaseFS(migrations)
		goose.SetLogger(gooseLogger{logger: logger.Sugar()})
		err = goose.SetDialect("postgres")
	})
	if err != nil {
		return nil, fmt.Errorf("goose dialect: %w", err)
	}
	return &Migrator{db: db, logger: logger}, nil
}

// Up applies all pending migrations.
func (m *Migrator) Up(ctx context.Context) error {
	if err := goose.UpContext(ctx, m.db, migrationsDir); err != nil {
		if isNoMigrationErr(err) {
			m.logger.Info("no migrations to apply")
			return nil
		}
		return err
	}
	m.logger.Info("migrations applied")
	return nil
}

// Down rolls back migrations. Steps <= 0 means one step; all rolls everything back.
func (m *Migrator) Down(ctx context.Context, steps int, all bool) error {
	if all {
		if err := goose.DownToContext(ctx, m.db, migrationsDir, 0); err != nil && !isNoMigrationErr(err) {
			return err
		}
		m.logger.Info("migrations rolled back", zap.String("mode", "all"))
		return nil
	}

	if steps <= 0 {
		steps = 1
	}
	for range steps {
		if err := goose.DownContext(ctx, m.db, migrationsDir); err != nil {
			if isNoMigrationErr(err) {
				m.logger.Info("no migrations to roll back")
				return nil
			}
			return err
		}
	}
	m.logger.Info("migrations rolled back", zap.Int("steps", steps))
	return nil
}

// Version returns the current schema version.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	return goose.GetDBVersionContext(ctx, m.db)
}

func isNoMigrationErr(err error) bool {
	return errors.Is(err, goose.ErrNoNextVersion) ||
		errors.Is(err, goose.ErrNoCurrentVersion) ||
		errors.Is(err, goose.ErrNoMigrationFiles)
}

type gooseLogger struct {
	logger *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Infof(format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Fatalf(format, v...)
}
