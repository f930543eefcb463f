package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/atlas/backend/internal/infrastructure/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database owns the gorm handle and its pool
type Database struct {
	DB  *gorm.DB
	sql *sql.DB
}

// NewDatabase opens the pool and pings it, retrying transient failures so the
// service survives a database that is still starting up.
func NewDatabase(ctx context.Context, cfg *config.DatabaseConfig, gormLogger gormlogger.Interface) (*Database, error) {
	if gormLogger == nil {
		gormLogger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		NowFunc:                func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	pool, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database pool: %w", err)
	}
	configurePool(pool, cfg)

	if err := Retry(ctx, RetryPolicy{Attempts: cfg.RetryAttempts, Delay: cfg.RetryDelay}, pool.PingContext); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Database{DB: db, sql: pool}, nil
}

func configurePool(pool *sql.DB, cfg *config.DatabaseConfig) {
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	pool.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)
}

// Ping checks the pool for the health endpoint
func (d *Database) Ping(ctx context.Context) error {
	return d.sql.PingContext(ctx)
}

// Stats reports pool usage
func (d *Database) Stats() sql.DBStats {
	return d.sql.Stats()
}

func (d *Database) Close() error {
	return d.sql.Close()
}
