package preview

import (
	"context"

	"github.com/nijaru/yt-filter/auth"
	"github.com/nijaru/yt-filter/models"
	"github.com/nijaru/yt-filter/orchestrator"
	"github.com/nijaru/yt-filter/storage"
)

type Service interface {
	// Preview prices a video and reports whether its filtered transcript is
	// ready, submitting it to the orchestrator when nothing is cached.
	Preview(ctx context.Context, identity *auth.Identity, req models.PreviewRequest) (*models.PricedPreview, error)
}

type Orchestrator interface {
	RequestFilter(ctx context.Context, youtubeID string) (orchestrator.Result, error)
}

// Archive is optional long-term transcript storage.
type Archive interface {
	SaveTranscript(ctx context.Context, video storage.ArchivedVideo) error
	GetTranscript(ctx context.Context, youtubeID string) (*storage.ArchivedVideo, error)
}
