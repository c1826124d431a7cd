package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/nijaru/yt-filter/errors"
	"github.com/nijaru/yt-filter/middleware"
	"github.com/nijaru/yt-filter/models"
)

const maxBodyBytes = 64 * 1024

func respondJSON(w http.ResponseWriter, r *http.Request, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		middleware.GetLogger(r.Context()).WithError(err).Error("Failed to encode response")
	}
}

// respondError renders err as {error, error_code}. Anything that is not an
// AppError is reported as a generic 500 so internals never reach the client.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	body := models.ErrorResponse{Error: "Internal server error"}

	if appErr, ok := errors.From(err); ok {
		code = appErr.Code
		body.Error = appErr.Message
		body.ErrorCode = appErr.ErrorCode
	}

	entry := middleware.GetLogger(r.Context()).WithFields(logrus.Fields{
		"status": code,
		"error":  err,
	})
	if code >= 500 {
		entry.Error("Request error")
	} else {
		entry.Debug("Request rejected")
	}

	respondJSON(w, r, code, body)
}

func readJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.InvalidInput("readJSON", err, "Invalid JSON format")
	}
	return nil
}
