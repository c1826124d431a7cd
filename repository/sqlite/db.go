package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	pkgerrors "github.com/pkg/errors"

	"github.com/nijaru/yt-filter/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS videos (
    youtube_id TEXT PRIMARY KEY,
    title TEXT,
    channel_name TEXT,
    duration_seconds INTEGER,
    thumbnail_url TEXT,
    transcript TEXT,
    cached_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS credit_balances (
    user_id TEXT PRIMARY KEY,
    balance INTEGER NOT NULL DEFAULT 0,
    updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS credit_transactions (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    amount INTEGER NOT NULL,
    kind TEXT NOT NULL,
    description TEXT,
    youtube_id TEXT,
    created_at DATETIME NOT NULL
);

-- Indexes
CREATE INDEX IF NOT EXISTS idx_credit_transactions_user ON credit_transactions(user_id, created_at);
`

type DBConfig struct {
	MaxRetries         int
	RetryDelay         time.Duration
	MaxConnections     int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

func DefaultDBConfig() DBConfig {
	return DBConfig{
		MaxRetries:         3,
		RetryDelay:         100 * time.Millisecond,
		MaxConnections:     10,
		MaxIdleConnections: 5,
		ConnMaxLifetime:    time.Hour,
	}
}

// DB owns the connection pool and the prepared statements shared by the
// repositories in this package.
type DB struct {
	*sql.DB
	statements *PreparedStatements
	config     DBConfig
}

func InitDB(ctx context.Context, dbPath string, config DBConfig) (*DB, error) {
	const op = "sqlite.InitDB"

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, errors.Internal(op, err, "failed to create database directory")
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, errors.Internal(op, err, "failed to open database")
	}

	conn.SetMaxOpenConns(config.MaxConnections)
	conn.SetMaxIdleConns(config.MaxIdleConnections)
	conn.SetConnMaxLifetime(config.ConnMaxLifetime)

	if err := configurePragmas(conn); err != nil {
		conn.Close()
		return nil, err
	}

	if err := execSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	stmts := &PreparedStatements{}
	if err := stmts.Prepare(ctx, conn); err != nil {
		stmts.Close()
		conn.Close()
		return nil, err
	}

	return &DB{DB: conn, statements: stmts, config: config}, nil
}

func (db *DB) Close() error {
	stmtErr := db.statements.Close()
	if err := db.DB.Close(); err != nil {
		return pkgerrors.Wrap(err, "close database")
	}
	return stmtErr
}

func configurePragmas(db *sql.DB) error {
	const op = "sqlite.configurePragmas"

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA cache_size = -2000", // 2MB
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return errors.Internal(op, err, fmt.Sprintf("failed to set pragma: %s", pragma))
		}
	}

	return nil
}

func execSchema(db *sql.DB) error {
	const op = "sqlite.execSchema"

	statements := strings.Split(schema, ";")

	tx, err := db.Begin()
	if err != nil {
		return errors.Internal(op, err, "failed to begin transaction")
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		if _, err := tx.Exec(stmt); err != nil {
			return errors.Internal(
				op,
				err,
				fmt.Sprintf("failed to execute schema statement: %s", stmt),
			)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Internal(op, err, "failed to commit schema transaction")
	}

	return nil
}

// withRetry retries fn while sqlite reports the database as busy or locked.
func withRetry(ctx context.Context, config DBConfig, fn func() error) error {
	var lastErr error
	for i := 0; i < config.MaxRetries; i++ {
		if err := fn(); err != nil {
			if !isLockError(err) {
				return err
			}
			lastErr = err

			select {
			case <-ctx.Done():
				return pkgerrors.Wrap(ctx.Err(), "context cancelled while retrying")
			case <-time.After(config.RetryDelay * time.Duration(i+1)):
			}
			continue
		}
		return nil
	}
	return pkgerrors.Wrapf(lastErr, "max retries (%d) exceeded", config.MaxRetries)
}

func isLockError(err error) bool {
	var sqliteErr sqlite3.Error
	if pkgerrors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	return strings.Contains(err.Error(), "database is locked") ||
		strings.Contains(err.Error(), "busy")
}
