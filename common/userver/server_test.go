package userver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnifyEM/storefront/common/null"
)

func newTestServer(t *testing.T, options ...Option) *HServer {
	t.Helper()
	options = append([]Option{WithLogger(null.Logger())}, options...)
	s, err := New(options...)
	require.NoError(t, err)
	return s
}

func TestHealth(t *testing.T) {
	down := filepath.Join(t.TempDir(), "down")
	s := newTestServer(t, WithDownFile(down))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))

	require.NoError(t, os.WriteFile(down, nil, 0600))
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	s.AddRoute(Route{
		Name:     "thing",
		Methods:  []string{http.MethodGet},
		Pattern:  "/thing/",
		JHandler: func(_ *http.Request) JResponse { return JResponse{HTTPCode: http.StatusOK, JSONData: []int{}} },
	})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nothing/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Not found."}`, rec.Body.String())

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/thing/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAuthFunc(t *testing.T) {
	s := newTestServer(t)

	auth := func(_ string, header string) (bool, []byte, any) {
		if header != "Bearer good" {
			return false, []byte(`{"detail":"bad token"}`), nil
		}
		return true, nil, "alice"
	}

	s.AddRoute(Route{
		Name:     "whoami",
		Methods:  []string{http.MethodGet},
		Pattern:  "/whoami/{id}/",
		AuthFunc: auth,
		JHandler: func(req *http.Request) JResponse {
			return JResponse{HTTPCode: http.StatusOK, JSONData: map[string]any{
				"user": AuthDetails(req),
				"id":   GetParam(req, "id"),
			}}
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami/7/", nil)
	req.Header.Set("Authorization", "Bearer bad")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"detail":"bad token"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/whoami/7/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "alice", body["user"])
	assert.Equal(t, "7", body["id"])
}

func TestEmptyBody(t *testing.T) {
	s := newTestServer(t)
	s.AddRoute(Route{
		Name:     "gone",
		Methods:  []string{http.MethodDelete},
		Pattern:  "/gone/",
		JHandler: func(_ *http.Request) JResponse { return JResponse{HTTPCode: http.StatusNoContent} },
	})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/gone/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestPenalty(t *testing.T) {
	s := &HServer{}
	assert.Zero(t, s.penalty())

	s.PenaltyBoxMin, s.PenaltyBoxMax = 5, 5
	assert.Equal(t, 5_000_000, int(s.penalty()))

	s.PenaltyBoxMin, s.PenaltyBoxMax = 10, 20
	for i := 0; i < 20; i++ {
		d := s.penalty().Milliseconds()
		assert.GreaterOrEqual(t, d, int64(10))
		assert.Less(t, d, int64(20))
	}
}

func TestRemoteIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	assert.Equal(t, "10.1.2.3", RemoteIP(req))

	req.RemoteAddr = "[::1]:5555"
	assert.Equal(t, "::1", RemoteIP(req))

	req.Header.Set("X-Forwarded-For", " 192.0.2.1, 10.0.0.1")
	assert.Equal(t, "192.0.2.1", RemoteIP(req))

	req.Header.Set("X-Forwarded-For", "192.0.2.7:4444")
	assert.Equal(t, "192.0.2.7", RemoteIP(req))

	req.Header.Set("X-Forwarded-For", "unknown")
	assert.Equal(t, "::1", RemoteIP(req), "an unparseable header is ignored")
}

func TestPenaltyBoxCancelled(t *testing.T) {
	s := newTestServer(t, WithPenaltyBox(5000, 5000))
	assert.Equal(t, 5*time.Second, s.penalty())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	s.PenaltyBox(ctx)
	assert.Less(t, time.Since(start), time.Second)
}

func TestOptionValidation(t *testing.T) {
	for name, op := range map[string]Option{
		"nil logger":       WithLogger(nil),
		"empty listen":     WithListen(""),
		"zero timeout":     WithHTTPTimeout(0),
		"negative limit":   WithMaxConcurrent(-1),
		"negative penalty": WithPenaltyBox(-1, 10),
		"cert without key": WithTLS("cert.pem", ""),
	} {
		_, err := New(op)
		assert.Error(t, err, name)
	}

	s, err := New(WithTLS("", ""), WithHandlerTimeout(5))
	require.NoError(t, err)
	assert.False(t, s.TLS)
	assert.Equal(t, 5, s.HandlerTimeout)
}
