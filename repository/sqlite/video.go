package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/nijaru/yt-filter/errors"
	"github.com/nijaru/yt-filter/models"
)

type VideoRepository struct {
	db *DB
}

func NewVideoRepository(db *DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Get(ctx context.Context, youtubeID string) (*models.CachedVideo, error) {
	const op = "VideoRepository.Get"

	var (
		video        models.CachedVideo
		title        sql.NullString
		channelName  sql.NullString
		duration     sql.NullInt64
		thumbnailURL sql.NullString
		transcript   sql.NullString
	)

	err := r.db.statements.getVideo.QueryRowContext(ctx, youtubeID).Scan(
		&video.YouTubeID,
		&title,
		&channelName,
		&duration,
		&thumbnailURL,
		&transcript,
		&video.CachedAt,
		&video.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound(op, nil, "Video not cached")
	}
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to query video")
	}

	video.Title = title.String
	video.DurationSeconds = int(duration.Int64)
	if channelName.Valid {
		video.ChannelName = &channelName.String
	}

	video.ThumbnailURL = thumbnailURL.String
	if video.ThumbnailURL == "" {
		video.ThumbnailURL = models.DefaultThumbnailURL(youtubeID)
	}

	if transcript.Valid && transcript.String != "" {
		var t models.Transcript
		if err := json.Unmarshal([]byte(transcript.String), &t); err != nil {
			return nil, errors.Internal(op, err, "Failed to decode cached transcript")
		}
		video.Transcript = &t
	}

	return &video, nil
}

// Upsert creates the row or merges the supplied fields into it in a single
// statement, so readers never see a partially applied update.
func (r *VideoRepository) Upsert(ctx context.Context, youtubeID string, update models.VideoUpdate) error {
	const op = "VideoRepository.Upsert"

	if update.IsEmpty() {
		return nil
	}

	if update.Transcript != nil {
		duration := update.Transcript.DurationSeconds()
		update.DurationSeconds = &duration
	}

	var transcript sql.NullString
	if update.Transcript != nil {
		data, err := json.Marshal(update.Transcript)
		if err != nil {
			return errors.Internal(op, err, "Failed to encode transcript")
		}
		transcript = sql.NullString{String: string(data), Valid: true}
	}

	now := time.Now().UTC()

	err := withRetry(ctx, r.db.config, func() error {
		_, err := r.db.statements.upsertVideo.ExecContext(ctx,
			youtubeID,
			nullString(update.Title),
			nullString(update.ChannelName),
			nullInt(update.DurationSeconds),
			nullString(update.ThumbnailURL),
			transcript,
			now,
			now,
		)
		return err
	})
	if err != nil {
		return errors.Internal(op, pkgerrors.Wrapf(err, "upsert video %s", youtubeID), "Failed to cache video")
	}

	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}
