package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing
type DBTracingConfig struct {
	Enabled            bool
	SlowQueryThreshold time.Duration
	// DBSystem is reported as db.system on every span
	DBSystem string
}

type queryStartKey struct{}

// RegisterDBTracing installs otelgorm on db plus callbacks that tag each
// span with the table, rows affected and a slow-query marker. Query
// variables never reach the spans.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		logger.Debug("Database tracing disabled")
		return nil
	}
	if cfg.DBSystem == "" {
		cfg.DBSystem = "postgresql"
	}

	if err := db.Use(otelgorm.NewPlugin(
		otelgorm.WithDBName(cfg.DBSystem),
		otelgorm.WithoutQueryVariables(),
	)); err != nil {
		return err
	}

	start := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	finish := func(tx *gorm.DB) {
		annotateQuery(tx, cfg.SlowQueryThreshold)
	}

	// finish must run before otelgorm ends the span
	cb := db.Callback()
	errs := []error{
		cb.Create().Before("gorm:create").Register("atlas:start_create", start),
		cb.Query().Before("gorm:query").Register("atlas:start_query", start),
		cb.Update().Before("gorm:update").Register("atlas:start_update", start),
		cb.Delete().Before("gorm:delete").Register("atlas:start_delete", start),
		cb.Row().Before("gorm:row").Register("atlas:start_row", start),
		cb.Raw().Before("gorm:raw").Register("atlas:start_raw", start),
		cb.Create().After("gorm:create").Before("otel:after:create").Register("atlas:finish_create", finish),
		cb.Query().After("gorm:query").Before("otel:after:query").Register("atlas:finish_query", finish),
		cb.Update().After("gorm:update").Before("otel:after:update").Register("atlas:finish_update", finish),
		cb.Delete().After("gorm:delete").Before("otel:after:delete").Register("atlas:finish_delete", finish),
		cb.Row().After("gorm:row").Before("otel:after:row").Register("atlas:finish_row", finish),
		cb.Raw().After("gorm:raw").Before("otel:after:raw").Register("atlas:finish_raw", finish),
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.String("db_system", cfg.DBSystem),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThreshold),
	)
	return nil
}

func annotateQuery(tx *gorm.DB, slow time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if tx.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", tx.Statement.RowsAffected))
	}
	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, tx.Error.Error())
		span.RecordError(tx.Error)
	}

	started, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok || slow <= 0 {
		return
	}
	if elapsed := time.Since(started); elapsed > slow {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
	}
}
