package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nijaru/yt-filter/auth"
	"github.com/nijaru/yt-filter/config"
	"github.com/nijaru/yt-filter/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := Chain(okHandler(), mark("a"), nil, mark("b"))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if strings.Join(order, ",") != "a,b" {
		t.Errorf("order = %v, want [a b]", order)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || rr.Header().Get("X-Request-ID") != seen {
		t.Errorf("generated id %q not propagated to header %q", seen, rr.Header().Get("X-Request-ID"))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "abc" {
		t.Errorf("incoming id not reused, got %q", seen)
	}
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	handler := Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetLogger(r.Context()) == nil {
			t.Error("expected request logger in context")
		}
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

	if rr.Code != http.StatusTeapot {
		t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusTeapot)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["level"] != "warning" || entry["path"] != "/test" || entry["status"] != float64(http.StatusTeapot) {
		t.Errorf("unexpected log entry %v", entry)
	}
	if entry["size"] != float64(len("short and stout")) {
		t.Errorf("size = %v", entry["size"])
	}
}

func TestRecovery(t *testing.T) {
	handler := Recovery(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rr.Code)
	}
	var body models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil || body.Error == "" {
		t.Errorf("expected JSON error body, got %q", rr.Body.String())
	}
}

func TestCORS(t *testing.T) {
	cfg := config.CORSConfig{
		Enabled:        true,
		AllowedOrigins: []string{"https://app.example.com", "https://admin.example.com"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Authorization"},
		MaxAge:         600,
	}
	handler := CORS(cfg)(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/preview", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://admin.example.com" {
		t.Errorf("allow origin = %q", got)
	}
	if got := rr.Header().Get("Access-Control-Max-Age"); got != "600" {
		t.Errorf("max age = %q", got)
	}

	cfg.Enabled = false
	rr = httptest.NewRecorder()
	CORS(cfg)(okHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("disabled CORS should not set headers")
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(60, 2)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	handler := rl.Middleware(okHandler())
	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	for i := 0; i < 2; i++ {
		if code := do("10.0.0.1:1234"); code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, code)
		}
	}
	if code := do("10.0.0.1:5678"); code != http.StatusTooManyRequests {
		t.Errorf("burst exceeded status = %d, want 429", code)
	}
	if code := do("10.0.0.2:1234"); code != http.StatusOK {
		t.Errorf("other client status = %d, want 200", code)
	}

	now = now.Add(time.Second)
	if code := do("10.0.0.1:1234"); code != http.StatusOK {
		t.Errorf("after refill status = %d, want 200", code)
	}

	now = now.Add(idleLimiterTTL + time.Minute)
	rl.Cleanup()
	if len(rl.limiters) != 0 {
		t.Errorf("expected idle limiters to be dropped, have %d", len(rl.limiters))
	}
}

type stubAuthenticator struct {
	identity *auth.Identity
	err      error
}

func (s stubAuthenticator) Authenticate(r *http.Request) (*auth.Identity, error) {
	return s.identity, s.err
}

func TestAuthenticate(t *testing.T) {
	var seen *auth.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = auth.FromContext(r.Context())
	})

	authenticator := auth.NewStaticTokenAuthenticator(map[string]string{"tok": "user-1"})
	handler := Authenticate(authenticator, testLogger())(next)

	req := httptest.NewRequest(http.MethodGet, "/api/credits/balance", nil)
	req.Header.Set("Authorization", "Bearer tok")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if seen == nil || seen.UserID != "user-1" {
		t.Fatalf("expected identity in context, got %+v", seen)
	}

	seen = nil
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/credits/balance", nil))
	if rr.Code != http.StatusUnauthorized || seen != nil {
		t.Errorf("status = %d, handler reached = %v", rr.Code, seen != nil)
	}

	rr = httptest.NewRecorder()
	Authenticate(stubAuthenticator{identity: &auth.Identity{}}, testLogger())(next).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("empty user id status = %d, want 401", rr.Code)
	}
}

func TestAuthenticate_LogsMaskedToken(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	authenticator := auth.NewStaticTokenAuthenticator(map[string]string{"tok": "user-1"})
	handler := Authenticate(authenticator, log)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/credits/balance", nil)
	req.Header.Set("Authorization", "Bearer wrong-secret-token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
	if strings.Contains(buf.String(), "wrong-secret-token") {
		t.Errorf("raw token leaked into logs: %s", buf.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["token"] != "wron...oken" {
		t.Errorf("token field = %v, want masked token", entry["token"])
	}
}
