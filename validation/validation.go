package validation

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/nijaru/yt-filter/errors"
	"github.com/nijaru/yt-filter/models"
)

const idPattern = `([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`

// hostPrefix matches an optional scheme and any subdomains, so look-alike
// hosts such as evil-youtube.com are rejected.
const hostPrefix = `^(?:https?://)?(?:[A-Za-z0-9-]+\.)*`

// Checked in order; the first match wins.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(hostPrefix + `youtube\.com/watch\?(?:[^#]*&)?v=` + idPattern),
	regexp.MustCompile(hostPrefix + `youtu\.be/` + idPattern),
	regexp.MustCompile(hostPrefix + `youtube\.com/embed/` + idPattern),
	regexp.MustCompile(hostPrefix + `youtube\.com/shorts/` + idPattern),
}

var bareID = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ResolveVideoID extracts the 11 character video id from a watch, short-link,
// embed or shorts URL, or accepts a bare id.
func ResolveVideoID(input string) (string, error) {
	const op = "validation.ResolveVideoID"

	input = strings.TrimSpace(input)
	if input == "" {
		return "", errors.InvalidInput(op, nil, "YouTube URL or ID is required")
	}

	for _, pattern := range urlPatterns {
		if m := pattern.FindStringSubmatch(input); m != nil {
			return m[1], nil
		}
	}

	if bareID.MatchString(input) {
		return input, nil
	}

	return "", errors.InvalidInput(op, nil, "Invalid YouTube URL or ID")
}

// ResolveRequest resolves the URL field first and falls back to the id field.
func ResolveRequest(req models.PreviewRequest) (string, error) {
	const op = "validation.ResolveRequest"

	if req.YouTubeURL == "" && req.YouTubeID == "" {
		return "", errors.InvalidInput(op, nil, "YouTube URL or ID is required")
	}

	if req.YouTubeURL != "" {
		if id, err := ResolveVideoID(req.YouTubeURL); err == nil {
			return id, nil
		}
	}
	if req.YouTubeID != "" {
		if id, err := ResolveVideoID(req.YouTubeID); err == nil {
			return id, nil
		}
	}

	return "", errors.InvalidInput(op, nil, "Invalid YouTube URL or ID")
}

// RequestValidationOpts holds options for request validation
type RequestValidationOpts struct {
	MaxContentLength int64
	AllowedMethods   []string
	RequireJSON      bool
}

// ValidateRequest validates HTTP requests
func ValidateRequest(r *http.Request, opts RequestValidationOpts) error {
	const op = "validation.ValidateRequest"

	if len(opts.AllowedMethods) > 0 {
		methodAllowed := false
		for _, method := range opts.AllowedMethods {
			if r.Method == method {
				methodAllowed = true
				break
			}
		}
		if !methodAllowed {
			return errors.E(op, nil, fmt.Sprintf("Method %s not allowed", r.Method), http.StatusMethodNotAllowed)
		}
	}

	if opts.RequireJSON {
		if contentType := r.Header.Get("Content-Type"); !strings.Contains(contentType, "application/json") {
			return errors.InvalidInput(op, nil, "Content-Type must be application/json")
		}
	}

	if opts.MaxContentLength > 0 && r.ContentLength > opts.MaxContentLength {
		return errors.InvalidInput(op, nil, "Request body too large")
	}

	return nil
}
