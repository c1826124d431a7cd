package orchestrator

import (
	"encoding/json"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/nijaru/yt-filter/models"
)

const (
	UnknownTitle         = "Unknown Video"
	defaultFailedMessage = "Video processing failed"
)

// Result is one of Completed, Processing or Failed.
type Result interface {
	isResult()
}

// Completed carries a finished transcript and the metadata derived from it.
type Completed struct {
	Transcript      *models.Transcript
	Title           string
	ChannelName     *string
	DurationSeconds int
}

// Processing means the orchestrator accepted the job but has no transcript yet.
type Processing struct {
	JobID    string
	Stage    string
	Progress int
}

// Failed is a terminal failure reported by the orchestrator. StatusCode is
// zero when the failure arrived in a successful HTTP response.
type Failed struct {
	StatusCode int
	Message    string
	ErrorCode  string
}

func (Completed) isResult()  {}
func (Processing) isResult() {}
func (Failed) isResult()     {}

// ErrMalformedResponse marks a body that matches none of the known shapes.
var ErrMalformedResponse = pkgerrors.New("malformed orchestrator response")

type videoInfo struct {
	Title       string  `json:"title"`
	ChannelName *string `json:"channel_name"`
}

type filterResponse struct {
	Status     string             `json:"status"`
	JobID      string             `json:"job_id"`
	Progress   int                `json:"progress"`
	Transcript *models.Transcript `json:"transcript"`
	Video      *videoInfo         `json:"video"`
	Error      string             `json:"error"`
	ErrorCode  string             `json:"error_code"`
}

// parseFilterResponse decodes a 2xx body from POST /api/filter.
func parseFilterResponse(body []byte) (Result, error) {
	var resp filterResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, pkgerrors.Wrap(ErrMalformedResponse, err.Error())
	}

	switch status := strings.ToLower(resp.Status); status {
	case "completed":
		if resp.Transcript == nil {
			return nil, pkgerrors.Wrap(ErrMalformedResponse, "completed without transcript")
		}
		return newCompleted(resp), nil

	case "processing", "pending", "downloading", "transcribing":
		if resp.JobID == "" {
			return nil, pkgerrors.Wrapf(ErrMalformedResponse, "%s without job_id", status)
		}
		return Processing{JobID: resp.JobID, Stage: status, Progress: clampProgress(resp.Progress)}, nil

	case "failed":
		message := resp.Error
		if message == "" {
			message = defaultFailedMessage
		}
		return Failed{Message: message, ErrorCode: resp.ErrorCode}, nil

	default:
		return nil, pkgerrors.Wrapf(ErrMalformedResponse, "unknown status %q", resp.Status)
	}
}

// parseErrorResponse builds a Failed result for a non-2xx response, keeping
// whatever message and code the body carried.
func parseErrorResponse(statusCode int, body []byte) Failed {
	failed := Failed{StatusCode: statusCode, Message: defaultFailedMessage}

	var resp filterResponse
	if err := json.Unmarshal(body, &resp); err == nil {
		if resp.Error != "" {
			failed.Message = resp.Error
		}
		failed.ErrorCode = resp.ErrorCode
	}

	return failed
}

func newCompleted(resp filterResponse) Completed {
	completed := Completed{
		Transcript:      resp.Transcript,
		Title:           UnknownTitle,
		DurationSeconds: resp.Transcript.DurationSeconds(),
	}

	switch {
	case resp.Video != nil && resp.Video.Title != "":
		completed.Title = resp.Video.Title
	case resp.Transcript.Title != "":
		completed.Title = resp.Transcript.Title
	}

	if resp.Video != nil && resp.Video.ChannelName != nil && *resp.Video.ChannelName != "" {
		completed.ChannelName = resp.Video.ChannelName
	}

	return completed
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
