package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/AlexandreFerreir/BD-Project/db"
)

// Config holds migration configuration. An empty MigrationsPath selects the
// migrations embedded in the binary.
type Config struct {
	MigrationsPath string
	DatabaseURL    string
	Logger         *zerolog.Logger
}

// Runner handles database migrations
type Runner struct {
	config *Config
	logger zerolog.Logger
}

// NewRunner creates a new migration runner
func NewRunner(config *Config) *Runner {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if config.Logger != nil {
		logger = *config.Logger
	}

	return &Runner{
		config: config,
		logger: logger.With().Str("component", "migration").Logger(),
	}
}

// Up applies every pending migration
func (r *Runner) Up() error {
	return r.run("apply migrations", func(m *migrate.Migrate) error { return m.Up() })
}

// Down rolls back the latest migration
func (r *Runner) Down() error {
	return r.run("roll back migration", func(m *migrate.Migrate) error { return m.Steps(-1) })
}

// Force records version as applied and clean without running anything.
// It is the way out of a dirty state after a failed migration.
func (r *Runner) Force(version int) error {
	r.logger.Warn().Int("version", version).Msg("forcing migration version")
	return r.run("force version", func(m *migrate.Migrate) error { return m.Force(version) })
}

// Version returns the current schema version; 0 when nothing was applied
func (r *Runner) Version() (uint, bool, error) {
	m, err := r.open()
	if err != nil {
		return 0, false, fmt.Errorf("failed to initialize migrate: %w", err)
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get version: %w", err)
	}
	return version, dirty, nil
}

func (r *Runner) run(action string, fn func(*migrate.Migrate) error) error {
	m, err := r.open()
	if err != nil {
		return fmt.Errorf("failed to initialize migrate: %w", err)
	}
	defer m.Close()

	r.logger.Info().Str("action", action).Msg("migration started")
	if err := fn(m); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			r.logger.Info().Str("action", action).Msg("nothing to do")
			return nil
		}
		return fmt.Errorf("failed to %s: %w", action, err)
	}
	r.logger.Info().Str("action", action).Msg("migration finished")
	return nil
}

func (r *Runner) open() (*migrate.Migrate, error) {
	conn, err := sql.Open("postgres", r.config.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	driver, err := postgres.WithInstance(conn, &postgres.Config{})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	src, name, err := r.source()
	if err != nil {
		driver.Close()
		return nil, err
	}

	m, err := migrate.NewWithInstance(name, src, "postgres", driver)
	if err != nil {
		driver.Close()
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

func (r *Runner) source() (source.Driver, string, error) {
	if r.config.MigrationsPath == "" {
		src, err := iofs.New(db.Migrations, "migrations")
		if err != nil {
			return nil, "", fmt.Errorf("failed to read embedded migrations: %w", err)
		}
		return src, "iofs", nil
	}

	src, err := (&file.File{}).Open("file://" + r.config.MigrationsPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read migrations from %s: %w", r.config.MigrationsPath, err)
	}
	return src, "file", nil
}

// AutoMigrate brings the schema up to date on application start. A dirty
// schema is reported and left for an operator to force.
func AutoMigrate(dbURL, migrationsPath string, logger zerolog.Logger) error {
	runner := NewRunner(&Config{
		MigrationsPath: migrationsPath,
		DatabaseURL:    dbURL,
		Logger:         &logger,
	})

	version, dirty, err := runner.Version()
	if err != nil {
		return err
	}
	if dirty {
		logger.Warn().Uint("version", version).Msg("database is in dirty state; fix it manually or run 'migrate force'")
		return fmt.Errorf("database in dirty state at version %d", version)
	}

	if err := runner.Up(); err != nil {
		return err
	}

	newVersion, _, err := runner.Version()
	if err != nil {
		return err
	}
	logger.Info().Uint("from_version", version).Uint("to_version", newVersion).Msg("schema up to date")
	return nil
}
