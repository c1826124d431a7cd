package middleware

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nijaru/yt-filter/auth"
	"github.com/nijaru/yt-filter/errors"
	"github.com/nijaru/yt-filter/logger"
)

// Authenticate rejects requests the authenticator cannot resolve and stores
// the identity on the request context for handlers.
func Authenticate(authenticator auth.Authenticator, log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := authenticator.Authenticate(r)
			if err != nil || identity == nil || identity.UserID == "" {
				fields := logrus.Fields{
					"request_id": GetRequestID(r.Context()),
					"path":       r.URL.Path,
				}
				if token := presentedToken(r); token != "" {
					fields["token"] = logger.SanitizeToken(token)
				}
				log.WithFields(fields).Info("Rejected unauthenticated request")

				message := "Unauthorized"
				if appErr, ok := errors.From(err); ok {
					message = appErr.Message
				}
				writeError(w, http.StatusUnauthorized, message, "")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
		})
	}
}

// presentedToken returns whatever credential followed the auth scheme, for
// masked logging only.
func presentedToken(r *http.Request) string {
	_, token, _ := strings.Cut(r.Header.Get("Authorization"), " ")
	return strings.TrimSpace(token)
}
