package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nijaru/yt-filter/errors"
)

func TestStaticTokenAuthenticator(t *testing.T) {
	authenticator := NewStaticTokenAuthenticator(map[string]string{"tok-1": "user-1"})

	tests := []struct {
		name     string
		header   string
		wantUser string
		wantErr  bool
	}{
		{"valid token", "Bearer tok-1", "user-1", false},
		{"lowercase scheme", "bearer tok-1", "user-1", false},
		{"unknown token", "Bearer nope", "", true},
		{"missing header", "", "", true},
		{"basic auth", "Basic dXNlcjpwYXNz", "", true},
		{"empty bearer", "Bearer ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			identity, err := authenticator.Authenticate(req)
			if tt.wantErr {
				if !errors.IsUnauthorized(err) {
					t.Fatalf("expected unauthorized, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if identity.UserID != tt.wantUser {
				t.Errorf("user = %q, want %q", identity.UserID, tt.wantUser)
			}
		})
	}
}

func TestIdentityContext(t *testing.T) {
	if FromContext(context.Background()) != nil {
		t.Error("expected no identity on empty context")
	}

	ctx := WithIdentity(context.Background(), &Identity{UserID: "user-1"})
	if got := FromContext(ctx); got == nil || got.UserID != "user-1" {
		t.Errorf("unexpected identity %+v", got)
	}
}
