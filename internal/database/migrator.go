package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"portfolio-tracker/internal/config"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const (
	defaultMigrationsDir = "db/migrations"
	defaultSeedsDir      = "db/seeds"
)

// readiness probing; tests shorten these
var (
	pingAttempts = 30
	pingInterval = 2 * time.Second
)

var ErrMigrationsMissing = errors.New("migrations directory not found")

// Migrator applies the versioned SQL schema and the optional seed files.
type Migrator struct {
	db       *sql.DB
	schema   string
	seedsDir string
}

// NewMigrator returns a Migrator over db. Empty directories fall back to
// db/migrations and db/seeds.
func NewMigrator(db *sql.DB, schemaDir, seedsDir string) *Migrator {
	if schemaDir == "" {
		schemaDir = defaultMigrationsDir
	}
	if seedsDir == "" {
		seedsDir = defaultSeedsDir
	}
	return &Migrator{db: db, schema: schemaDir, seedsDir: seedsDir}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// AwaitReady pings the store until it answers, the attempts run out or ctx
// is cancelled.
func (m *Migrator) AwaitReady(ctx context.Context) error {
	var lastErr error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		if lastErr = m.db.PingContext(ctx); lastErr == nil {
			return nil
		}
		slog.Info("store not ready", "attempt", attempt, "of", pingAttempts, "error", lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pingInterval):
		}
	}
	return fmt.Errorf("store unreachable after %d attempts: %w", pingAttempts, lastErr)
}

func (m *Migrator) open() (*migrate.Migrate, error) {
	dir, err := filepath.Abs(m.schema)
	if err != nil {
		return nil, fmt.Errorf("resolve migrations dir: %w", err)
	}
	driver, err := postgres.WithInstance(m.db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("migrate driver: %w", err)
	}
	return migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
}

// Up applies every pending schema version. A dirty version left by an
// interrupted run is forced clean first. A missing directory is not an error.
func (m *Migrator) Up() error {
	if !exists(m.schema) {
		slog.Warn("no migrations directory, schema left as is", "dir", m.schema)
		return nil
	}

	mg, err := m.open()
	if err != nil {
		return err
	}

	version, dirty, err := mg.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case dirty:
		slog.Warn("schema version is dirty, forcing", "version", version)
		if err := mg.Force(int(version)); err != nil {
			return fmt.Errorf("force schema version %d: %w", version, err)
		}
	}

	if err := mg.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("schema up to date", "version", version)
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	if version, _, err = mg.Version(); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	slog.Info("schema migrated", "version", version)
	return nil
}

// Version reports the applied schema version.
func (m *Migrator) Version() (uint, bool, error) {
	if !exists(m.schema) {
		return 0, false, ErrMigrationsMissing
	}
	mg, err := m.open()
	if err != nil {
		return 0, false, err
	}
	return mg.Version()
}

// Seed runs the *.sql files of the seeds directory in name order. A file that
// fails to execute is logged and skipped; one that cannot be read aborts.
func (m *Migrator) Seed(ctx context.Context) error {
	if !exists(m.seedsDir) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(m.seedsDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("list seed files: %w", err)
	}
	sort.Strings(files)

	for _, path := range files {
		script, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read seed file %s: %w", path, err)
		}
		if _, err := m.db.ExecContext(ctx, string(script)); err != nil {
			slog.Warn("seed file skipped", "file", filepath.Base(path), "error", err)
			continue
		}
		slog.Info("seed file applied", "file", filepath.Base(path))
	}
	return nil
}

// Run waits for the store, applies pending migrations and, when seed is set,
// loads the seed files.
func (m *Migrator) Run(ctx context.Context, seed bool) error {
	if err := m.AwaitReady(ctx); err != nil {
		return fmt.Errorf("store readiness: %w", err)
	}
	if err := m.Up(); err != nil {
		return err
	}
	if !seed {
		return nil
	}
	if err := m.Seed(ctx); err != nil {
		slog.Warn("seeding incomplete", "error", err)
	}
	return nil
}

// MigrateIfEnabled runs the migrator when AUTO_MIGRATE is set.
func MigrateIfEnabled(ctx context.Context, db *sql.DB, cfg *config.DatabaseConfig) error {
	if !cfg.AutoMigrate {
		slog.Debug("auto-migration disabled")
		return nil
	}
	return NewMigrator(db, cfg.MigrationsPath, cfg.SeedsPath).Run(ctx, cfg.SeedDatabase)
}
