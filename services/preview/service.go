package preview

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nijaru/yt-filter/auth"
	"github.com/nijaru/yt-filter/errors"
	"github.com/nijaru/yt-filter/models"
	"github.com/nijaru/yt-filter/orchestrator"
	"github.com/nijaru/yt-filter/pricing"
	"github.com/nijaru/yt-filter/repository"
	"github.com/nijaru/yt-filter/storage"
	"github.com/nijaru/yt-filter/validation"
)

const processingTitle = "Processing..."

type service struct {
	cache        repository.VideoCache
	orchestrator Orchestrator
	archive      Archive
	logger       *logrus.Logger
}

// NewService wires the workflow. archive may be nil.
func NewService(
	cache repository.VideoCache,
	orch Orchestrator,
	archive Archive,
	logger *logrus.Logger,
) Service {
	return &service{
		cache:        cache,
		orchestrator: orch,
		archive:      archive,
		logger:       logger,
	}
}

func (s *service) Preview(ctx context.Context, identity *auth.Identity, req models.PreviewRequest) (*models.PricedPreview, error) {
	const op = "PreviewService.Preview"

	if identity == nil || identity.UserID == "" {
		return nil, errors.Unauthorized(op, "Unauthorized")
	}

	youtubeID, err := validation.ResolveRequest(req)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"user_id":     identity.UserID,
			"youtube_url": req.YouTubeURL,
			"youtube_id":  req.YouTubeID,
		}).Info("Rejected preview request with invalid video identifier")
		return nil, err
	}

	logger := s.logger.WithFields(logrus.Fields{
		"operation":  op,
		"user_id":    identity.UserID,
		"youtube_id": youtubeID,
	})

	cached := s.lookupCache(ctx, logger, youtubeID)
	if cached.HasTranscript() {
		logger.Debug("Serving preview from cache")
		return fromCache(cached), nil
	}

	if archived := s.lookupArchive(ctx, logger, youtubeID); archived != nil {
		logger.Info("Restoring preview from transcript archive")
		completed := orchestrator.Completed{
			Transcript:      archived.Transcript,
			Title:           archived.Title,
			ChannelName:     archived.ChannelName,
			DurationSeconds: archived.Transcript.DurationSeconds(),
		}
		s.cacheCompleted(ctx, logger, youtubeID, completed)
		return fromCompleted(youtubeID, completed, cached), nil
	}

	result, err := s.orchestrator.RequestFilter(ctx, youtubeID)
	if err != nil {
		return nil, err
	}

	switch r := result.(type) {
	case orchestrator.Completed:
		s.cacheCompleted(ctx, logger, youtubeID, r)
		s.archiveCompleted(ctx, logger, youtubeID, r)
		return fromCompleted(youtubeID, r, cached), nil

	case orchestrator.Processing:
		logger.WithField("job_id", r.JobID).Info("Video is still processing")
		return fromProcessing(youtubeID, r, cached), nil

	case orchestrator.Failed:
		logger.WithFields(logrus.Fields{
			"status_code": r.StatusCode,
			"error_code":  r.ErrorCode,
		}).Warn("Orchestrator reported failure")
		return nil, errors.Upstream(op, r.StatusCode, r.Message, r.ErrorCode)

	default:
		return nil, errors.Internal(op, nil, "Unexpected orchestrator result")
	}
}

// lookupCache treats a cache read failure as a miss.
func (s *service) lookupCache(ctx context.Context, logger *logrus.Entry, youtubeID string) *models.CachedVideo {
	cached, err := s.cache.Get(ctx, youtubeID)
	if err != nil {
		if !errors.IsNotFound(err) {
			logger.WithError(err).WithField("phase", "cache_read").Error("Cache lookup failed")
		}
		return nil
	}
	return cached
}

func (s *service) lookupArchive(ctx context.Context, logger *logrus.Entry, youtubeID string) *storage.ArchivedVideo {
	if s.archive == nil {
		return nil
	}
	archived, err := s.archive.GetTranscript(ctx, youtubeID)
	if err != nil {
		logger.WithError(err).WithField("phase", "archive_read").Error("Archive lookup failed")
		return nil
	}
	return archived
}

// cacheCompleted is the workflow's only cache write. It is best effort: a
// failure is logged and the preview is still returned.
func (s *service) cacheCompleted(ctx context.Context, logger *logrus.Entry, youtubeID string, r orchestrator.Completed) {
	title := r.Title
	duration := r.DurationSeconds
	update := models.VideoUpdate{
		Title:           &title,
		ChannelName:     r.ChannelName,
		DurationSeconds: &duration,
		Transcript:      r.Transcript,
	}

	if err := s.cache.Upsert(ctx, youtubeID, update); err != nil {
		logger.WithError(err).WithField("phase", "cache_write").Error("Failed to cache filtered video")
	}
}

func (s *service) archiveCompleted(ctx context.Context, logger *logrus.Entry, youtubeID string, r orchestrator.Completed) {
	if s.archive == nil {
		return
	}
	err := s.archive.SaveTranscript(ctx, storage.ArchivedVideo{
		YouTubeID:   youtubeID,
		Title:       r.Title,
		ChannelName: r.ChannelName,
		Transcript:  r.Transcript,
	})
	if err != nil {
		logger.WithError(err).WithField("phase", "archive").Error("Failed to archive transcript")
	}
}

func fromCache(v *models.CachedVideo) *models.PricedPreview {
	return &models.PricedPreview{
		YouTubeID:       v.YouTubeID,
		Title:           v.Title,
		ChannelName:     v.ChannelName,
		DurationSeconds: v.DurationSeconds,
		ThumbnailURL:    v.ThumbnailURL,
		CreditCost:      pricing.CreditCost(v.DurationSeconds),
		Cached:          true,
		HasTranscript:   true,
		Transcript:      v.Transcript,
		Status:          models.PreviewStatusCompleted,
	}
}

// fromCompleted prefers thumbnail data already known from a metadata-only
// cache record.
func fromCompleted(youtubeID string, r orchestrator.Completed, known *models.CachedVideo) *models.PricedPreview {
	thumbnail := models.DefaultThumbnailURL(youtubeID)
	if known != nil && known.ThumbnailURL != "" {
		thumbnail = known.ThumbnailURL
	}

	return &models.PricedPreview{
		YouTubeID:       youtubeID,
		Title:           r.Title,
		ChannelName:     r.ChannelName,
		DurationSeconds: r.DurationSeconds,
		ThumbnailURL:    thumbnail,
		CreditCost:      pricing.CreditCost(r.DurationSeconds),
		Cached:          true,
		HasTranscript:   true,
		Transcript:      r.Transcript,
		Status:          models.PreviewStatusCompleted,
	}
}

// fromProcessing reports cost 0 because the duration is not known yet.
func fromProcessing(youtubeID string, r orchestrator.Processing, known *models.CachedVideo) *models.PricedPreview {
	progress := r.Progress
	p := &models.PricedPreview{
		YouTubeID:    youtubeID,
		Title:        processingTitle,
		ThumbnailURL: models.DefaultThumbnailURL(youtubeID),
		CreditCost:   0,
		Cached:       false,
		JobID:        r.JobID,
		Status:       models.PreviewStatusProcessing,
		Stage:        r.Stage,
		Progress:     &progress,
	}

	if known != nil {
		if known.Title != "" {
			p.Title = known.Title
		}
		p.ChannelName = known.ChannelName
		p.ThumbnailURL = known.ThumbnailURL
	}

	return p
}
