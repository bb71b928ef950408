package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"github.com/rumonkh0/quizbackend/internal/infra/config"
)

// RunMigrations applies all pending migrations from cfg.MigrationsPath.
// A run with nothing to apply is not an error.
func RunMigrations(cfg config.PostgresSettings, log *zap.Logger) error {
	dsn := fmt.Sprintf(
		"pgx5://%s:%s@%s:%d/%s?sslmode=%s&search_path=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
		eduSchema,
	)

	migrator, err := migrate.New(fmt.Sprintf("file://%s", cfg.MigrationsPath), dsn)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := migrator.Close()
		if srcErr != nil {
			log.Warn("close migration source", zap.Error(srcErr))
		}
		if dbErr != nil {
			log.Warn("close migration database", zap.Error(dbErr))
		}
	}()

	err = migrator.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("no migrations to apply")
	} else {
		version, dirty, verr := migrator.Version()
		if verr != nil {
			log.Warn("read migration version", zap.Error(verr))
		} else {
			log.Info("migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
		}
	}

	return nil
}
