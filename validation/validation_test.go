package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nijaru/yt-filter/errors"
	"github.com/nijaru/yt-filter/models"
)

const videoID = "dQw4w9WgXcQ"

func TestResolveVideoID(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"watch URL with extra params", "https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ&t=42s"},
		{"mobile watch URL", "https://m.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"watch URL without scheme", "youtube.com/watch?v=dQw4w9WgXcQ"},
		{"plain http watch URL", "http://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ"},
		{"short link with timestamp", "https://youtu.be/dQw4w9WgXcQ?t=10"},
		{"embed URL", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"embed URL with params", "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1"},
		{"shorts URL", "https://www.youtube.com/shorts/dQw4w9WgXcQ"},
		{"bare id", "dQw4w9WgXcQ"},
		{"bare id with whitespace", "  dQw4w9WgXcQ\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveVideoID(tt.input)
			if err != nil {
				t.Fatalf("ResolveVideoID(%q) error = %v", tt.input, err)
			}
			if got != videoID {
				t.Errorf("ResolveVideoID(%q) = %q, want %q", tt.input, got, videoID)
			}
		})
	}
}

func TestResolveVideoID_BareIDCharacterSet(t *testing.T) {
	for _, id := range []string{"a-b_c-d_e-f", "AAAAAAAAAAA", "0123456789_"} {
		got, err := ResolveVideoID(id)
		if err != nil || got != id {
			t.Errorf("ResolveVideoID(%q) = %q, %v; want itself", id, got, err)
		}
	}
}

func TestResolveVideoID_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"dQw4w9WgXc",
		"dQw4w9WgXcQQ",
		"dQw4w9WgX!Q",
		"https://example.com/watch?v=dQw4w9WgXcQX",
		"https://www.youtube.com/watch?v=short",
		"https://www.youtube.com/playlist?list=PL1234567890",
		"https://vimeo.com/123456789",
		"not a url at all",
		"https://evil-youtube.com/watch?v=dQw4w9WgXcQ",
		"https://notyoutu.be/dQw4w9WgXcQ",
		"https://example.com/redirect?to=youtube.com/watch?v=dQw4w9WgXcQ",
		"ftp://youtube.com/watch?v=dQw4w9WgXcQ",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ResolveVideoID(input)
			if err == nil {
				t.Fatalf("ResolveVideoID(%q) expected error", input)
			}
			if errors.StatusCode(err) != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", errors.StatusCode(err))
			}
		})
	}
}

func TestResolveVideoID_Deterministic(t *testing.T) {
	input := "https://youtu.be/dQw4w9WgXcQ"
	first, _ := ResolveVideoID(input)
	for i := 0; i < 10; i++ {
		if got, _ := ResolveVideoID(input); got != first {
			t.Fatalf("resolution changed between calls: %q vs %q", first, got)
		}
	}
}

func TestResolveRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.PreviewRequest
		want    string
		wantErr bool
	}{
		{"url only", models.PreviewRequest{YouTubeURL: "https://youtu.be/dQw4w9WgXcQ"}, videoID, false},
		{"id only", models.PreviewRequest{YouTubeID: "jNQXAC9IVRw"}, "jNQXAC9IVRw", false},
		{"url preferred", models.PreviewRequest{YouTubeURL: "https://youtu.be/dQw4w9WgXcQ", YouTubeID: "jNQXAC9IVRw"}, videoID, false},
		{"bad url falls back to id", models.PreviewRequest{YouTubeURL: "https://example.com", YouTubeID: "jNQXAC9IVRw"}, "jNQXAC9IVRw", false},
		{"empty", models.PreviewRequest{}, "", true},
		{"both invalid", models.PreviewRequest{YouTubeURL: "nope", YouTubeID: "nope"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveRequest(tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveRequest() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateRequest(t *testing.T) {
	opts := RequestValidationOpts{
		MaxContentLength: 16,
		AllowedMethods:   []string{http.MethodPost},
		RequireJSON:      true,
	}

	tests := []struct {
		name        string
		method      string
		contentType string
		body        string
		wantCode    int
	}{
		{"valid", http.MethodPost, "application/json", `{}`, 0},
		{"wrong method", http.MethodGet, "application/json", ``, http.StatusMethodNotAllowed},
		{"form body", http.MethodPost, "application/x-www-form-urlencoded", `a=b`, http.StatusBadRequest},
		{"too large", http.MethodPost, "application/json", `{"youtube_id":"dQw4w9WgXcQ"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/preview", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)

			err := ValidateRequest(req, opts)
			if tt.wantCode == 0 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if got := errors.StatusCode(err); got != tt.wantCode {
				t.Errorf("expected status %d, got %d (%v)", tt.wantCode, got, err)
			}
		})
	}
}
