package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"

	"github.com/voxlate/voxlate/internal/config"
	"github.com/voxlate/voxlate/internal/logger"
)

// Transient failures (connection drops, deadlock rollbacks) get a few quick
// retries before the error reaches the caller.
const (
	dbRetryBaseDelay  = 50 * time.Millisecond
	dbRetryMaxRetries = 3
)

// DB wraps a database/sql connection with an error classifier and a logger.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnectPostgres opens a PostgreSQL connection via the pgx stdlib driver,
// verifies it with a ping, and returns the wrapped handle.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	err = conn.PingContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	db := &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: NewPostgresErrorClassifier(),
	}

	return db, nil
}

// execRetrying runs ExecContext, retrying errors the classifier reports as
// transient.
func (db *DB) execRetrying(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var res sql.Result
	err := retry.Do(ctx, db.retryBackoff(), func(ctx context.Context) error {
		var execErr error
		res, execErr = db.ExecContext(ctx, query, args...)
		if execErr != nil && db.errorClassificator.Classify(execErr) == Retryable {
			db.logger.Warn().Err(execErr).Msg("retrying transient database error")
			return retry.RetryableError(execErr)
		}
		return execErr
	})
	return res, err
}

// queryRetrying runs QueryContext with the same retry policy as
// [DB.execRetrying]. Row iteration errors are not retried: by the time they
// surface, part of the result set may already be consumed.
func (db *DB) queryRetrying(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	var rows *sql.Rows
	err := retry.Do(ctx, db.retryBackoff(), func(ctx context.Context) error {
		var queryErr error
		rows, queryErr = db.QueryContext(ctx, query, args...)
		if queryErr != nil && db.errorClassificator.Classify(queryErr) == Retryable {
			db.logger.Warn().Err(queryErr).Msg("retrying transient database error")
			return retry.RetryableError(queryErr)
		}
		return queryErr
	})
	return rows, err
}

func (db *DB) retryBackoff() retry.Backoff {
	return retry.WithMaxRetries(dbRetryMaxRetries, retry.NewExponential(dbRetryBaseDelay))
}

func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
