package credits

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nijaru/yt-filter/auth"
	"github.com/nijaru/yt-filter/errors"
	"github.com/nijaru/yt-filter/models"
	"github.com/nijaru/yt-filter/repository"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Service interface {
	Balance(ctx context.Context, identity *auth.Identity) (*models.CreditBalance, error)
	Transactions(ctx context.Context, identity *auth.Identity, limit, offset int) (*models.TransactionPage, error)
}

type service struct {
	ledger repository.CreditLedger
	logger *logrus.Logger
}

func NewService(ledger repository.CreditLedger, logger *logrus.Logger) Service {
	return &service{
		ledger: ledger,
		logger: logger,
	}
}

func (s *service) Balance(ctx context.Context, identity *auth.Identity) (*models.CreditBalance, error) {
	const op = "CreditService.Balance"

	if identity == nil || identity.UserID == "" {
		return nil, errors.Unauthorized(op, "Unauthorized")
	}

	balance, err := s.ledger.Balance(ctx, identity.UserID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", identity.UserID).Error("Failed to load balance")
		return nil, err
	}
	return balance, nil
}

// Transactions pages through the caller's ledger. A non-positive limit means
// the default page size; larger limits are capped.
func (s *service) Transactions(ctx context.Context, identity *auth.Identity, limit, offset int) (*models.TransactionPage, error) {
	const op = "CreditService.Transactions"

	if identity == nil || identity.UserID == "" {
		return nil, errors.Unauthorized(op, "Unauthorized")
	}
	if offset < 0 {
		return nil, errors.InvalidInput(op, nil, "offset must not be negative")
	}

	switch {
	case limit <= 0:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}

	transactions, err := s.ledger.Transactions(ctx, identity.UserID, limit, offset)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"user_id": identity.UserID,
			"limit":   limit,
			"offset":  offset,
		}).Error("Failed to list transactions")
		return nil, err
	}

	return &models.TransactionPage{
		Transactions: transactions,
		Limit:        limit,
		Offset:       offset,
	}, nil
}
