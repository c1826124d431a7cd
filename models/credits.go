package models

import "time"

type CreditBalance struct {
	UserID    string    `json:"user_id"`
	Balance   int       `json:"balance"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

type TransactionKind string

const (
	TransactionPurchase TransactionKind = "purchase"
	TransactionUsage    TransactionKind = "usage"
	TransactionRefund   TransactionKind = "refund"
	TransactionBonus    TransactionKind = "bonus"
)

// CreditTransaction is one ledger entry. Usage entries carry a negative amount.
type CreditTransaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Amount      int             `json:"amount"`
	Kind        TransactionKind `json:"kind"`
	Description string          `json:"description,omitempty"`
	YouTubeID   *string         `json:"youtube_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type TransactionPage struct {
	Transactions []CreditTransaction `json:"transactions"`
	Limit        int                 `json:"limit"`
	Offset       int                 `json:"offset"`
}
