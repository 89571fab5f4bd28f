package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/voxlate/voxlate/internal/config"
	"github.com/voxlate/voxlate/internal/logger"
)

// NewConnectSQLite opens a SQLite database at the configured path and returns
// a wrapped handle. SQLite serves single-node deployments that want
// persistence without running PostgreSQL.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("sqlite3", cfg.SQLitePath)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error opening sqlite database")
		return nil, fmt.Errorf("error opening sqlite database: %w", err)
	}

	// sqlite handles no write concurrency; one connection avoids SQLITE_BUSY
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting sqlite database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectSQLite").Str("path", cfg.SQLitePath).Msg("connected to sqlite database")

	return &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: nopClassifier{},
	}, nil
}

// nopClassifier treats every sqlite error as non-retryable.
type nopClassifier struct{}

func (nopClassifier) Classify(error) ErrorClassification {
	return NonRetryable
}

// sqliteIsUniqueViolation reports whether err is a SQLite unique-constraint
// violation.
func sqliteIsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
