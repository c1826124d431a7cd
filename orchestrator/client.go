package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/nijaru/yt-filter/errors"
)

const maxResponseBytes = 32 << 20

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client calls the external filtering service. It is safe for concurrent use
// and is meant to be built once by the composition root.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(cfg Config, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

type filterRequest struct {
	YouTubeID string `json:"youtube_id"`
}

// RequestFilter submits a video for filtering. Orchestrator-reported failures
// come back as a Failed result; an error means the call itself did not
// complete or the answer could not be understood.
func (c *Client) RequestFilter(ctx context.Context, youtubeID string) (Result, error) {
	const op = "orchestrator.RequestFilter"

	log := c.logger.WithFields(logrus.Fields{
		"youtube_id": youtubeID,
		"phase":      "orchestrator",
	})

	body, err := json.Marshal(filterRequest{YouTubeID: youtubeID})
	if err != nil {
		return nil, errors.Unreachable(op, pkgerrors.Wrap(err, "marshal filter request"))
	}

	url := fmt.Sprintf("%s/api/filter", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Unreachable(op, pkgerrors.Wrap(err, "create request"))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Error("Orchestrator request failed")
		return nil, errors.Unreachable(op, pkgerrors.Wrap(err, "http request failed"))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.WithError(err).Error("Failed to read orchestrator response")
		return nil, errors.Unreachable(op, pkgerrors.Wrap(err, "read response"))
	}

	log = log.WithFields(logrus.Fields{
		"status_code": resp.StatusCode,
		"duration":    time.Since(start),
	})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		failed := parseErrorResponse(resp.StatusCode, respBody)
		log.WithField("error_code", failed.ErrorCode).Warn("Orchestrator returned error status")
		return failed, nil
	}

	result, err := parseFilterResponse(respBody)
	if err != nil {
		log.WithError(err).Error("Unrecognised orchestrator response")
		return nil, errors.Unreachable(op, err)
	}

	switch r := result.(type) {
	case Completed:
		log.WithField("duration_seconds", r.DurationSeconds).Info("Filter completed")
	case Processing:
		log.WithFields(logrus.Fields{"job_id": r.JobID, "stage": r.Stage}).Info("Filter still processing")
	case Failed:
		log.WithField("error_code", r.ErrorCode).Warn("Filter failed")
	}

	return result, nil
}
