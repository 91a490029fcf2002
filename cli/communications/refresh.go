/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package communications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/UnifyEM/storefront/common/fields"
	"github.com/UnifyEM/storefront/common/interfaces"
	"github.com/UnifyEM/storefront/common/schema"
	"github.com/UnifyEM/storefront/common/userver"
)

var (
	errEmptyAccessToken = errors.New("refresh response did not contain an access token")

	// errRefreshRejected marks an answer from the refresh endpoint that makes
	// the refresh token useless. Transport failures are not rejections.
	errRefreshRejected = errors.New("refresh rejected")
)

// refreshTransport sends each request through auth. If the answer is 401
// it renews the access token with the refresh token and repeats the request
// once. The refresh and the repeat go straight to base, so a request is
// never refreshed twice.
//
// Concurrent 401s are not coalesced: each one performs its own refresh and
// retries with the token that refresh returned. Once started, the refresh and
// the retry ignore cancellation of the caller's context.
type refreshTransport struct {
	refreshURL string
	store      interfaces.TokenStore
	auth       http.RoundTripper
	base       http.RoundTripper
	revoked    atomic.Pointer[func()]
	logger     interfaces.Logger
}

func newRefreshTransport(serverURL string, store interfaces.TokenStore, base http.RoundTripper, logger interfaces.Logger) *refreshTransport {
	return &refreshTransport{
		refreshURL: serverURL + schema.EndpointTokenRefresh,
		store:      store,
		auth:       &authTransport{store: store, next: base},
		base:       base,
		logger:     logger,
	}
}

func (t *refreshTransport) setRevoked(f func()) {
	if f == nil {
		t.revoked.Store(nil)
		return
	}
	t.revoked.Store(&f)
}

func (t *refreshTransport) RoundTrip(req *http.Request) (*http.Response, error) {

	// The request id is kept on the retry so that both attempts can be matched in the server log
	if req.Header.Get(userver.RequestIDHeader) == "" {
		req = req.Clone(req.Context())
		req.Header.Set(userver.RequestIDHeader, uuid.NewString())
	}

	resp, err := t.auth.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized || isTokenEndpoint(req) {
		return resp, err
	}

	logFields := fields.NewFields(
		fields.NewField("method", req.Method),
		fields.NewField("uri", req.URL.Path),
		fields.NewField("request_id", req.Header.Get(userver.RequestIDHeader)))

	// The original response may have to be returned, so its body is kept in memory
	if err = bufferBody(resp); err != nil {
		return nil, err
	}

	pair, ok := t.store.Get()
	if !ok || pair.Refresh == "" {
		t.logger.Debug(3114, "401 received without a refresh token", logFields)
		if clearErr := t.store.Clear(); clearErr != nil {
			t.logger.Errorf(3115, "unable to clear credentials: %s", clearErr.Error())
		}
		return resp, nil
	}

	t.logger.Info(3110, "access token rejected, attempting refresh", logFields)

	ctx := context.WithoutCancel(req.Context())
	access, err := t.refreshAccess(ctx, pair.Refresh)
	if err != nil && !errors.Is(err, errRefreshRejected) {
		logFields.AppendKV("error", err.Error())
		t.logger.Warning(3117, "token refresh did not complete, credentials kept", logFields)
		_ = resp.Body.Close()
		return nil, fmt.Errorf("refreshing access token: %w", err)
	}
	if err != nil {
		logFields.AppendKV("error", err.Error())
		t.logger.Warning(3112, "token refresh failed, credentials cleared", logFields)
		if clearErr := t.store.Clear(); clearErr != nil {
			t.logger.Errorf(3115, "unable to clear credentials: %s", clearErr.Error())
		}
		if f := t.revoked.Load(); f != nil {
			(*f)()
		}
		return resp, nil
	}

	// The retry uses the new token even if it cannot be saved
	if err = t.store.SetAccess(access); err != nil {
		t.logger.Errorf(3116, "unable to save refreshed access token: %s", err.Error())
	}
	t.logger.Info(3111, "access token refreshed", logFields)

	retry, err := replay(req)
	if err != nil {
		t.logger.Warning(3113, "request body cannot be replayed, not retrying", logFields)
		return resp, nil
	}

	_ = resp.Body.Close()
	return t.base.RoundTrip(withBearer(retry.WithContext(ctx), access))
}

// refreshAccess exchanges the refresh token for a new access token. Errors
// caused by the server's answer wrap errRefreshRejected.
func (t *refreshTransport) refreshAccess(ctx context.Context, refresh string) (string, error) {
	payload, err := json.Marshal(schema.TokenRefreshRequest{Refresh: refresh})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.refreshURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return "", err
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: refresh endpoint returned HTTP %d", errRefreshRejected, resp.StatusCode)
	}

	var r schema.TokenRefreshResponse
	if err = json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", fmt.Errorf("%w: decoding refresh response: %w", errRefreshRejected, err)
	}
	if r.Access == "" {
		return "", fmt.Errorf("%w: %w", errRefreshRejected, errEmptyAccessToken)
	}
	return r.Access, nil
}

// replay returns a clone of req with a fresh copy of its body
func replay(req *http.Request) (*http.Request, error) {
	clone := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return clone, nil
	}
	if req.GetBody == nil {
		return nil, errors.New("body is not replayable")
	}

	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	clone.Body = body
	return clone, nil
}

// bufferBody reads the response body into memory
func bufferBody(resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(data))
	return nil
}

// isTokenEndpoint reports whether req obtains tokens. A 401 from these
// endpoints means rejected credentials, not an expired access token.
func isTokenEndpoint(req *http.Request) bool {
	return strings.HasSuffix(req.URL.Path, schema.EndpointTokenCreate) ||
		strings.HasSuffix(req.URL.Path, schema.EndpointTokenRefresh)
}
