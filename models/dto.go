package models

// PreviewRequest is the inbound preview payload. YouTubeURL wins when both
// are present and resolvable.
type PreviewRequest struct {
	YouTubeURL string `json:"youtube_url,omitempty"`
	YouTubeID  string `json:"youtube_id,omitempty"`
}

const (
	PreviewStatusCompleted  = "completed"
	PreviewStatusProcessing = "processing"
)

// PricedPreview is the priced, cache-aware answer to a preview request.
type PricedPreview struct {
	YouTubeID       string      `json:"youtube_id"`
	Title           string      `json:"title"`
	ChannelName     *string     `json:"channel_name"`
	DurationSeconds int         `json:"duration_seconds"`
	ThumbnailURL    string      `json:"thumbnail_url"`
	CreditCost      int         `json:"credit_cost"`
	Cached          bool        `json:"cached"`
	HasTranscript   bool        `json:"has_transcript"`
	Transcript      *Transcript `json:"transcript,omitempty"`
	JobID           string      `json:"job_id,omitempty"`
	Status          string      `json:"status,omitempty"`

	// Stage and Progress are set only while the job is still processing.
	Stage    string `json:"stage,omitempty"`
	Progress *int   `json:"progress,omitempty"`
}

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorCode string `json:"error_code,omitempty"`
}
