package communications

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnifyEM/storefront/cli/credentials"
	"github.com/UnifyEM/storefront/cli/util"
	"github.com/UnifyEM/storefront/common/interfaces"
	"github.com/UnifyEM/storefront/common/null"
	"github.com/UnifyEM/storefront/common/schema"
	"github.com/UnifyEM/storefront/common/userver"
)

// fakeAPI accepts only currentAccess on /api/ and issues nextAccess for refresh token R1
type fakeAPI struct {
	mu            sync.Mutex
	currentAccess string
	nextAccess    string
	refreshStatus int
	apiHits       int
	refreshHits   int
	authHeaders   []string
	requestIDs    []string
	bodies        []string
	always401     bool
	refreshDelay  time.Duration
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if r.URL.Path == schema.EndpointTokenRefresh {
		f.refreshHits++
		time.Sleep(f.refreshDelay)
		var req schema.TokenRefreshRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if f.refreshStatus != 0 && f.refreshStatus != http.StatusOK {
			w.WriteHeader(f.refreshStatus)
			_, _ = w.Write([]byte(`{"detail":"Token is invalid or expired"}`))
			return
		}
		if req.Refresh != "R1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.currentAccess = f.nextAccess
		_ = json.NewEncoder(w).Encode(schema.TokenRefreshResponse{Access: f.nextAccess})
		return
	}

	if r.URL.Path == schema.EndpointTokenCreate {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"No active account found with the given credentials"}`))
		return
	}

	f.apiHits++
	f.authHeaders = append(f.authHeaders, r.Header.Get("Authorization"))
	f.requestIDs = append(f.requestIDs, r.Header.Get(userver.RequestIDHeader))
	body, _ := io.ReadAll(r.Body)
	f.bodies = append(f.bodies, string(body))

	if f.always401 || r.Header.Get("Authorization") != "Bearer "+f.currentAccess {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Given token not valid for any token type"}`))
		return
	}
	_, _ = w.Write([]byte(`[{"id":1,"product":7,"quantity":1}]`))
}

func setup(t *testing.T, api *fakeAPI, pair interfaces.TokenPair) (*Communications, *credentials.Store, *atomic.Int32) {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	store := credentials.NewMemory()
	if pair.Complete() {
		require.NoError(t, store.Set(pair))
	}

	revoked := &atomic.Int32{}
	c := New(srv.URL+"/", store, WithRevokedFunc(func() { revoked.Add(1) }))
	return c, store, revoked
}

func TestAttachesToken(t *testing.T) {
	api := &fakeAPI{currentAccess: "A1"}
	c, store, _ := setup(t, api, interfaces.TokenPair{Access: "A1", Refresh: "R1"})

	code, _, err := c.Get(context.Background(), schema.EndpointCartItems)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, code)

	require.NoError(t, store.Clear())
	code, _, err = c.GetQuery(context.Background(), schema.EndpointCartItems, util.NewNVPairs(nil).Add("search", "x"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, code)

	assert.Equal(t, []string{"Bearer A1", ""}, api.authHeaders)
	assert.Equal(t, 0, api.refreshHits)
}

func TestRefreshAndRetry(t *testing.T) {
	api := &fakeAPI{currentAccess: "A-server", nextAccess: "A2"}
	c, store, revoked := setup(t, api, interfaces.TokenPair{Access: "A1", Refresh: "R1"})

	code, data, err := c.Get(context.Background(), schema.EndpointCartItems)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[{"id":1,"product":7,"quantity":1}]`, string(data))

	pair, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, interfaces.TokenPair{Access: "A2", Refresh: "R1"}, pair)

	assert.Equal(t, 1, api.refreshHits)
	assert.Equal(t, []string{"Bearer A1", "Bearer A2"}, api.authHeaders)
	require.Len(t, api.requestIDs, 2)
	assert.NotEmpty(t, api.requestIDs[0])
	assert.Equal(t, api.requestIDs[0], api.requestIDs[1])
	assert.Zero(t, revoked.Load())

	// The new token is used from now on without another refresh
	code, _, err = c.Get(context.Background(), schema.EndpointCartItems)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, api.refreshHits)
}

func TestRefreshRejected(t *testing.T) {
	api := &fakeAPI{currentAccess: "A-server", refreshStatus: http.StatusUnauthorized}
	c, store, revoked := setup(t, api, interfaces.TokenPair{Access: "A1", Refresh: "R1"})

	code, data, err := c.Get(context.Background(), schema.EndpointCartItems)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.JSONEq(t, `{"detail":"Given token not valid for any token type"}`, string(data), "the original failure is returned")

	_, ok := store.Get()
	assert.False(t, ok)
	assert.Equal(t, int32(1), revoked.Load())
	assert.Equal(t, 1, api.apiHits)

	// Later calls are unauthenticated and do not attempt a refresh
	_, _, err = c.Get(context.Background(), schema.EndpointCartItems)
	require.NoError(t, err)
	assert.Equal(t, "", api.authHeaders[1])
	assert.Equal(t, 1, api.refreshHits)
}

func TestRefreshServerError(t *testing.T) {
	api := &fakeAPI{currentAccess: "A-server", refreshStatus: http.StatusInternalServerError}
	c, store, revoked := setup(t, api, interfaces.TokenPair{Access: "A1", Refresh: "R1"})

	code, _, err := c.Get(context.Background(), schema.EndpointCartItems)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, code)

	_, ok := store.Get()
	assert.False(t, ok)
	assert.Equal(t, int32(1), revoked.Load())
}

func TestSecond401NotRetried(t *testing.T) {
	api := &fakeAPI{nextAccess: "A2", always401: true}
	c, store, revoked := setup(t, api, interfaces.TokenPair{Access: "A1", Refresh: "R1"})

	code, _, err := c.Get(context.Background(), schema.EndpointCartItems)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, 2, api.apiHits)
	assert.Equal(t, 1, api.refreshHits)

	pair, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, "A2", pair.Access)
	assert.Zero(t, revoked.Load())
}

func TestPostBodyReplayed(t *testing.T) {
	api := &fakeAPI{currentAccess: "A-server", nextAccess: "A2"}
	c, _, _ := setup(t, api, interfaces.TokenPair{Access: "A1", Refresh: "R1"})

	code, _, err := c.Post(context.Background(), schema.EndpointCartItems, schema.CartItemCreateRequest{Product: 7, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, code)

	require.Len(t, api.bodies, 2)
	assert.JSONEq(t, `{"product":7,"quantity":1}`, api.bodies[0])
	assert.Equal(t, api.bodies[0], api.bodies[1])

	_, _, err = c.Post(context.Background(), schema.EndpointOrders, nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", api.bodies[2])
}

func TestNoRefreshToken(t *testing.T) {
	api := &fakeAPI{currentAccess: "A1"}
	c, _, revoked := setup(t, api, interfaces.TokenPair{})

	code, _, err := c.Get(context.Background(), schema.EndpointCurrentUser)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, 0, api.refreshHits)
	assert.Zero(t, revoked.Load())
}

func TestTokenEndpointNotRefreshed(t *testing.T) {
	api := &fakeAPI{nextAccess: "A2"}
	c, store, _ := setup(t, api, interfaces.TokenPair{Access: "A1", Refresh: "R1"})

	code, _, err := c.Post(context.Background(), schema.EndpointTokenCreate, schema.TokenCreateRequest{Username: "u", Password: "bad"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, 0, api.refreshHits)

	_, ok := store.Get()
	assert.True(t, ok, "a rejected login does not touch the stored tokens")
}

func TestNonReplayableBody(t *testing.T) {
	api := &fakeAPI{currentAccess: "A-server", nextAccess: "A2"}
	srv := httptest.NewServer(api)
	defer srv.Close()

	store := credentials.NewMemory()
	require.NoError(t, store.Set(interfaces.TokenPair{Access: "A1", Refresh: "R1"}))
	rt := newRefreshTransport(srv.URL, store, http.DefaultTransport, null.Logger())

	req, err := http.NewRequest(http.MethodPost, srv.URL+schema.EndpointCartItems, io.NopCloser(strings.NewReader(`{"product":1}`)))
	require.NoError(t, err)
	require.Nil(t, req.GetBody)

	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 1, api.apiHits)

	pair, _ := store.Get()
	assert.Equal(t, "A2", pair.Access, "the refreshed token is kept")
}

func TestTransportError(t *testing.T) {
	store := credentials.NewMemory()
	c := New("http://127.0.0.1:1", store)
	_, _, err := c.Get(context.Background(), schema.EndpointProducts)
	assert.Error(t, err)
}

func TestCancelDuringRefreshKeepsTokens(t *testing.T) {
	api := &fakeAPI{currentAccess: "A-server", nextAccess: "A2", refreshDelay: 300 * time.Millisecond}
	c, store, revoked := setup(t, api, interfaces.TokenPair{Access: "A1", Refresh: "R1"})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	code, _, err := c.Get(ctx, schema.EndpointCartItems)
	if err == nil {
		assert.Equal(t, http.StatusOK, code)
	}

	// The refresh ran to completion and its token was saved
	pair, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, interfaces.TokenPair{Access: "A2", Refresh: "R1"}, pair)
	assert.Zero(t, revoked.Load())
	assert.Equal(t, 1, api.refreshHits)
}

// roundTripFunc adapts a function to http.RoundTripper
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestRefreshTransportFailureKeepsTokens(t *testing.T) {
	api := &fakeAPI{currentAccess: "A-server", nextAccess: "A2"}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	store := credentials.NewMemory()
	require.NoError(t, store.Set(interfaces.TokenPair{Access: "A1", Refresh: "R1"}))

	base := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path == schema.EndpointTokenRefresh {
			return nil, errors.New("connection reset")
		}
		return http.DefaultTransport.RoundTrip(req)
	})

	revoked := &atomic.Int32{}
	c := New(srv.URL, store, WithBaseTransport(base), WithRevokedFunc(func() { revoked.Add(1) }))

	_, _, err := c.Get(context.Background(), schema.EndpointCartItems)
	assert.Error(t, err)

	pair, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, interfaces.TokenPair{Access: "A1", Refresh: "R1"}, pair)
	assert.Zero(t, revoked.Load())
}

func TestEmptyRefreshAnswerClearsTokens(t *testing.T) {
	api := &fakeAPI{currentAccess: "A-server", nextAccess: ""}
	c, store, revoked := setup(t, api, interfaces.TokenPair{Access: "A1", Refresh: "R1"})

	code, _, err := c.Get(context.Background(), schema.EndpointCartItems)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, code)

	_, ok := store.Get()
	assert.False(t, ok)
	assert.Equal(t, int32(1), revoked.Load())
}

// clearFailStore is a store whose Clear always fails
type clearFailStore struct {
	interfaces.TokenStore
}

func (s clearFailStore) Clear() error {
	return errors.New("disk full")
}

// eidLogger records the event ids passed to Errorf
type eidLogger struct {
	interfaces.Logger
	mu   sync.Mutex
	eids []uint32
}

func (l *eidLogger) Errorf(eid uint32, _ string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.eids = append(l.eids, eid)
}

func TestClearFailureLoggedWithoutRefreshToken(t *testing.T) {
	api := &fakeAPI{currentAccess: "A-server"}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	mem := credentials.NewMemory()
	logger := &eidLogger{Logger: null.Logger()}
	c := New(srv.URL, clearFailStore{mem}, WithLogger(logger))

	code, _, err := c.Get(context.Background(), schema.EndpointCartItems)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, []uint32{3115}, logger.eids)
	assert.Equal(t, 0, api.refreshHits)
}
