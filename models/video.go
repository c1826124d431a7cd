package models

import (
	"fmt"
	"math"
	"time"
)

// FallbackDurationSeconds is billed when a completed transcript does not
// report its duration.
const FallbackDurationSeconds = 300

// MaxDurationSeconds caps reported durations so absurd upstream values
// cannot overflow when converted to whole seconds.
const MaxDurationSeconds = 7 * 24 * 60 * 60

const thumbnailURLTemplate = "https://i.ytimg.com/vi/%s/hqdefault.jpg"

// DefaultThumbnailURL is the platform's public thumbnail for a video.
func DefaultThumbnailURL(youtubeID string) string {
	return fmt.Sprintf(thumbnailURLTemplate, youtubeID)
}

type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type ProfanityTimestamp struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Word  string  `json:"word,omitempty"`
}

// Transcript is the orchestrator's filtering output.
type Transcript struct {
	Title               string               `json:"title,omitempty"`
	Language            string               `json:"language,omitempty"`
	Duration            float64              `json:"duration,omitempty"`
	Segments            []Segment            `json:"segments"`
	ProfanityTimestamps []ProfanityTimestamp `json:"profanity_timestamps"`
}

// DurationSeconds rounds the reported duration up, capped at
// MaxDurationSeconds, or returns FallbackDurationSeconds when none was
// reported.
func (t *Transcript) DurationSeconds() int {
	if t == nil || t.Duration <= 0 || math.IsNaN(t.Duration) {
		return FallbackDurationSeconds
	}
	if t.Duration >= MaxDurationSeconds {
		return MaxDurationSeconds
	}
	return int(math.Ceil(t.Duration))
}

// CachedVideo is what the metadata cache knows about a video. A record
// without a transcript is metadata only and is not ready for playback.
type CachedVideo struct {
	YouTubeID       string      `json:"youtube_id"`
	Title           string      `json:"title"`
	ChannelName     *string     `json:"channel_name"`
	DurationSeconds int         `json:"duration_seconds"`
	ThumbnailURL    string      `json:"thumbnail_url"`
	Transcript      *Transcript `json:"transcript,omitempty"`
	CachedAt        time.Time   `json:"cached_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func (v *CachedVideo) HasTranscript() bool {
	return v != nil && v.Transcript != nil
}

// VideoUpdate carries the fields of a cache upsert. Nil fields keep
// whatever the cache already holds.
type VideoUpdate struct {
	Title           *string
	ChannelName     *string
	DurationSeconds *int
	ThumbnailURL    *string
	Transcript      *Transcript
}

func (u VideoUpdate) IsEmpty() bool {
	return u.Title == nil && u.ChannelName == nil && u.DurationSeconds == nil &&
		u.ThumbnailURL == nil && u.Transcript == nil
}
