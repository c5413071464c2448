// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration provides a thin wrapper around golang-migrate for
// running the catalog schema migrations.
//
// # Architecture
//
// Migrations are read from a directory on disk when a path is configured and
// from the set embedded in the binary otherwise. Either way the database is
// brought to the latest version before traffic is served.
package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Source tells [RunUp] where the migration files live.
type Source struct {
	// Path is a directory on disk. It takes precedence over FS.
	Path string

	// FS is an embedded migration set, used when Path is empty.
	FS fs.FS
}

/*
RunUp applies all pending UP migrations.

Parameters:
  - dsn: string (A postgres:// or postgresql:// URL)
  - source: Source (Directory or embedded set)
  - logger: *slog.Logger

Returns:
  - error: Nil when the schema is current, including when nothing was pending
*/
func RunUp(dsn string, source Source, logger *slog.Logger) error {
	migrator, err := open(dsn, source)
	if err != nil {
		return err
	}
	defer func() {
		sourceError, dbError := migrator.Close()
		if sourceError != nil {
			logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
		}
		if dbError != nil {
			logger.Error("migration_db_close_failed", slog.Any("error", dbError))
		}
	}()

	migrator.Log = &migrateLogger{logger: logger}

	currentVersion, isDirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to get current version: %w", err)
	}
	if isDirty {
		return fmt.Errorf("migration: database is dirty at version %d (manual intervention required)", currentVersion)
	}

	logger.Info("migration_started", slog.Uint64("current_version", uint64(currentVersion)))

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_already_up_to_date")
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	newVersion, _, _ := migrator.Version()
	logger.Info("migration_successful",
		slog.Uint64("from_version", uint64(currentVersion)),
		slog.Uint64("to_version", uint64(newVersion)),
	)
	return nil
}

// open builds a migrator for whichever source is configured.
func open(dsn string, source Source) (*migrate.Migrate, error) {
	databaseURL := convertToPgx5DSN(dsn)

	var (
		migrator *migrate.Migrate
		err      error
	)
	switch {
	case source.Path != "":
		migrator, err = migrate.New("file://"+source.Path, databaseURL)
	case source.FS != nil:
		driver, driverErr := iofs.New(source.FS, ".")
		if driverErr != nil {
			return nil, fmt.Errorf("migration: failed to read embedded migrations: %w", driverErr)
		}
		migrator, err = migrate.NewWithSourceInstance("iofs", driver, databaseURL)
	default:
		return nil, errors.New("migration: no migration source configured")
	}

	if err != nil {
		return nil, fmt.Errorf("migration: failed to initialize: %w", err)
	}
	return migrator, nil
}

// convertToPgx5DSN rewrites postgres URLs to the pgx5:// scheme golang-migrate expects.
func convertToPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger adapts golang-migrate's logger interface to slog.
type migrateLogger struct {
	logger  *slog.Logger
	verbose bool
}

func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *migrateLogger) Verbose() bool {
	return l.verbose
}
