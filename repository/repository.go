package repository

import (
	"context"

	"github.com/nijaru/yt-filter/models"
)

// VideoCache stores what is known about a video, keyed by its YouTube id.
// Get returns a NotFound AppError when nothing is cached.
type VideoCache interface {
	Get(ctx context.Context, youtubeID string) (*models.CachedVideo, error)
	Upsert(ctx context.Context, youtubeID string, update models.VideoUpdate) error
}

// CreditLedger is the read side of the billing ledger.
type CreditLedger interface {
	Balance(ctx context.Context, userID string) (*models.CreditBalance, error)
	Transactions(ctx context.Context, userID string, limit, offset int) ([]models.CreditTransaction, error)
}
