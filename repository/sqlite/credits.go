package sqlite

import (
	"context"
	"database/sql"

	"github.com/nijaru/yt-filter/errors"
	"github.com/nijaru/yt-filter/models"
)

// CreditRepository reads balances and ledger entries written by billing.
type CreditRepository struct {
	db *DB
}

func NewCreditRepository(db *DB) *CreditRepository {
	return &CreditRepository{db: db}
}

// Balance returns a zero balance for users billing has never touched.
func (r *CreditRepository) Balance(ctx context.Context, userID string) (*models.CreditBalance, error) {
	const op = "CreditRepository.Balance"

	balance := &models.CreditBalance{}
	err := r.db.statements.getBalance.QueryRowContext(ctx, userID).Scan(
		&balance.UserID,
		&balance.Balance,
		&balance.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return &models.CreditBalance{UserID: userID}, nil
	}
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to query balance")
	}

	return balance, nil
}

// Transactions lists a user's ledger entries, newest first.
func (r *CreditRepository) Transactions(ctx context.Context, userID string, limit, offset int) ([]models.CreditTransaction, error) {
	const op = "CreditRepository.Transactions"

	rows, err := r.db.statements.listTransactions.QueryContext(ctx, userID, limit, offset)
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to query transactions")
	}
	defer rows.Close()

	transactions := make([]models.CreditTransaction, 0, limit)
	for rows.Next() {
		var (
			tx          models.CreditTransaction
			kind        string
			description sql.NullString
			youtubeID   sql.NullString
		)
		if err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.Amount,
			&kind,
			&description,
			&youtubeID,
			&tx.CreatedAt,
		); err != nil {
			return nil, errors.Internal(op, err, "Failed to scan transaction")
		}

		tx.Kind = models.TransactionKind(kind)
		tx.Description = description.String
		if youtubeID.Valid {
			tx.YouTubeID = &youtubeID.String
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Internal(op, err, "Failed to iterate transactions")
	}

	return transactions, nil
}
