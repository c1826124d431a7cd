package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nijaru/yt-filter/errors"
)

const (
	getVideoQuery = `
        SELECT youtube_id, title, channel_name, duration_seconds,
               thumbnail_url, transcript, cached_at, updated_at
        FROM videos WHERE youtube_id = ?
    `

	// Unsupplied columns arrive as NULL and keep the stored value. A stored
	// transcript pins the duration unless a new transcript replaces it.
	upsertVideoQuery = `
        INSERT INTO videos (
            youtube_id, title, channel_name, duration_seconds,
            thumbnail_url, transcript, cached_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(youtube_id) DO UPDATE SET
            title = COALESCE(excluded.title, videos.title),
            channel_name = COALESCE(excluded.channel_name, videos.channel_name),
            duration_seconds = CASE
                WHEN excluded.transcript IS NULL AND videos.transcript IS NOT NULL
                    THEN videos.duration_seconds
                ELSE COALESCE(excluded.duration_seconds, videos.duration_seconds)
            END,
            thumbnail_url = COALESCE(excluded.thumbnail_url, videos.thumbnail_url),
            transcript = COALESCE(excluded.transcript, videos.transcript),
            updated_at = excluded.updated_at
    `

	getBalanceQuery = `
        SELECT user_id, balance, updated_at
        FROM credit_balances WHERE user_id = ?
    `

	listTransactionsQuery = `
        SELECT id, user_id, amount, kind, description, youtube_id, created_at
        FROM credit_transactions
        WHERE user_id = ?
        ORDER BY created_at DESC, id DESC
        LIMIT ? OFFSET ?
    `
)

type PreparedStatements struct {
	getVideo         *sql.Stmt
	upsertVideo      *sql.Stmt
	getBalance       *sql.Stmt
	listTransactions *sql.Stmt
}

func (stmts *PreparedStatements) Prepare(ctx context.Context, db *sql.DB) error {
	const op = "PreparedStatements.Prepare"

	var err error

	if stmts.getVideo, err = db.PrepareContext(ctx, getVideoQuery); err != nil {
		return errors.Internal(op, err, "failed to prepare getVideo statement")
	}

	if stmts.upsertVideo, err = db.PrepareContext(ctx, upsertVideoQuery); err != nil {
		return errors.Internal(op, err, "failed to prepare upsertVideo statement")
	}

	if stmts.getBalance, err = db.PrepareContext(ctx, getBalanceQuery); err != nil {
		return errors.Internal(op, err, "failed to prepare getBalance statement")
	}

	if stmts.listTransactions, err = db.PrepareContext(ctx, listTransactionsQuery); err != nil {
		return errors.Internal(op, err, "failed to prepare listTransactions statement")
	}

	return nil
}

func (stmts *PreparedStatements) Close() error {
	var errs []error

	statements := [...]*sql.Stmt{
		stmts.getVideo,
		stmts.upsertVideo,
		stmts.getBalance,
		stmts.listTransactions,
	}

	for _, stmt := range statements {
		if stmt != nil {
			if err := stmt.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("failed to close prepared statements: %v", errs)
	}

	return nil
}
