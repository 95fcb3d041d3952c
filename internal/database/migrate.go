package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// Models lists every table the application owns.
func Models() []any {
	return []any{&model.Recipe{}, &model.User{}, &model.UserRecord{}}
}

// RunMigrations brings the schema up to date. Postgres uses the embedded goose
// migrations; SQLite falls back to GORM auto-migration.
func RunMigrations(ctx context.Context, db *gorm.DB, log *slog.Logger) error {
	if db.Dialector.Name() == "sqlite" {
		log.Info("using GORM auto-migration for SQLite")
		return db.WithContext(ctx).AutoMigrate(Models()...)
	}

	sqlDB, err := gooseDB(db)
	if err != nil {
		return err
	}
	defer goose.SetBaseFS(nil)
	if err := goose.UpContext(ctx, sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	log.Info("database migrated", "version", version)
	return nil
}

// RollbackMigration reverts the most recent goose migration. Postgres only.
func RollbackMigration(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := gooseDB(db)
	if err != nil {
		return err
	}
	defer goose.SetBaseFS(nil)
	if err := goose.DownContext(ctx, sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}

// SchemaVersion returns the current goose version. Postgres only.
func SchemaVersion(ctx context.Context, db *gorm.DB) (int64, error) {
	sqlDB, err := gooseDB(db)
	if err != nil {
		return 0, err
	}
	defer goose.SetBaseFS(nil)
	return goose.GetDBVersionContext(ctx, sqlDB)
}

// gooseDB points goose at the embedded migrations. Callers reset the base FS
// when done.
func gooseDB(db *gorm.DB) (*sql.DB, error) {
	if db.Dialector.Name() != "postgres" {
		return nil, fmt.Errorf("goose migrations are not supported for %s", db.Dialector.Name())
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return sqlDB, nil
}
