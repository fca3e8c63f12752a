package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/pflag"
)

const (
	dsnFlag        = "dsn"
	migrationsFlag = "migrations-path"
)

func main() {
	dsn, migrationsPath := flagValues()
	validateFlags(dsn, migrationsPath)
	applyMigrations(dsn, migrationsPath)
}

type migrationLogger struct {
	logger *slog.Logger
}

func (ml migrationLogger) Printf(format string, v ...any) {
	ml.logger.Info(fmt.Sprintf(format, v...))
}

func (ml migrationLogger) Verbose() bool { return true }

func flagValues() (dsn, migrations string) {
	dsnValue := pflag.StringP(dsnFlag, "d", "", "postgres connection string, without scheme")
	migrationsValue := pflag.StringP(migrationsFlag, "m", "migrations", "path to migration files")
	pflag.Parse()
	return *dsnValue, *migrationsValue
}

func validateFlags(dsn, migrationsPath string) {
	var errs []error

	if dsn == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", dsnFlag))
	}
	if migrationsPath == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", migrationsFlag))
	}

	if len(errs) != 0 {
		slog.Error("too few args", "err", errors.Join(errs...))
		os.Exit(2)
	}
}

func applyMigrations(dsn, migrationsPath string) {
	m, err := migrate.New(
		fmt.Sprintf("file://%s", migrationsPath),
		fmt.Sprintf("pgx5://%s", dsn),
	)
	if err != nil {
		slog.Error("failed to migrate", "err", err)
		os.Exit(2)
	}

	m.Log = migrationLogger{slog.Default()}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.Log.Printf("no migrations to apply")
			return
		}
		slog.Error("failed to migrate", "err", err)
		os.Exit(2)
	}
	m.Log.Printf("migrations applied")
}
