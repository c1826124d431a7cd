// Package auth resolves the caller behind a request. Session and token
// issuance live with the identity provider; this package only maps a
// presented bearer token to an opaque user id.
package auth

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/nijaru/yt-filter/errors"
)

type Identity struct {
	UserID string
}

type Authenticator interface {
	Authenticate(r *http.Request) (*Identity, error)
}

type contextKey string

const identityKey contextKey = "identity"

func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// FromContext returns nil when the request was not authenticated.
func FromContext(ctx context.Context) *Identity {
	if identity, ok := ctx.Value(identityKey).(*Identity); ok {
		return identity
	}
	return nil
}

// StaticTokenAuthenticator checks bearer tokens against a fixed table.
type StaticTokenAuthenticator struct {
	tokens map[string]string
}

func NewStaticTokenAuthenticator(tokens map[string]string) *StaticTokenAuthenticator {
	copied := make(map[string]string, len(tokens))
	for token, user := range tokens {
		copied[token] = user
	}
	return &StaticTokenAuthenticator{tokens: copied}
}

func (a *StaticTokenAuthenticator) Authenticate(r *http.Request) (*Identity, error) {
	const op = "auth.Authenticate"

	token, ok := bearerToken(r)
	if !ok {
		return nil, errors.Unauthorized(op, "Unauthorized")
	}

	for known, user := range a.tokens {
		if subtle.ConstantTimeCompare([]byte(known), []byte(token)) == 1 {
			return &Identity{UserID: user}, nil
		}
	}

	return nil, errors.Unauthorized(op, "Unauthorized")
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
