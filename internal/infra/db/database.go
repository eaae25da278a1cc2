// Package db opens the ledger store.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/personal-ledger/backend/config"
)

const connectTimeout = 5 * time.Second

// Database owns the GORM handle and its connection pool.
type Database struct {
	gorm   *gorm.DB
	driver string
}

// NewConnection opens the store named by cfg.Driver and pings it.
// "postgres" is the production store; "sqlite" (pure Go, no cgo) serves local
// runs and tests, with cfg.URL as the file path or ":memory:".
func NewConnection(cfg *config.DatabaseConfig) (*Database, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	pool, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	configurePool(pool, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	stats := pool.Stats()
	slog.Info("Database connection established",
		"driver", dialector.Name(),
		"max_open_conns", stats.MaxOpenConnections,
	)
	return &Database{gorm: gdb, driver: dialector.Name()}, nil
}

func dialectorFor(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "postgres":
		return postgres.Open(cfg.URL), nil
	case "sqlite":
		return sqlite.Open(cfg.URL), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func configurePool(pool *sql.DB, cfg *config.DatabaseConfig) {
	if cfg.Driver == "sqlite" {
		// A single writer keeps SQLite from returning SQLITE_BUSY under concurrent ingestion.
		pool.SetMaxOpenConns(1)
		return
	}
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)
}

// DB returns the GORM handle.
func (d *Database) DB() *gorm.DB {
	return d.gorm
}

// Driver is the dialect name, "postgres" or "sqlite".
func (d *Database) Driver() string {
	return d.driver
}

// AutoMigrate creates or updates the tables for models.
func (d *Database) AutoMigrate(models ...any) error {
	if err := d.gorm.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}

func (d *Database) Close() error {
	pool, err := d.gorm.DB()
	if err != nil {
		return err
	}
	if err := pool.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	slog.Info("Database connection closed")
	return nil
}

// Probe pings the pool behind gdb, for the health endpoint.
func Probe(gdb *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		pool, err := gdb.DB()
		if err != nil {
			return err
		}
		return pool.PingContext(ctx)
	}
}
