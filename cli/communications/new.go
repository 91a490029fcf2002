/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package communications sends requests to the storefront API. Requests pass
// through two transports: refreshTransport, which renews the access token
// once when the server answers 401, and authTransport, which attaches the
// current access token to every request.
package communications

import (
	"net/http"
	"strings"
	"time"

	"github.com/UnifyEM/storefront/cli/global"
	"github.com/UnifyEM/storefront/common/interfaces"
	"github.com/UnifyEM/storefront/common/null"
)

// Ensure that Communications implements the global.Comms interface
var _ global.Comms = &Communications{}

type Communications struct {
	serverURL string
	client    *http.Client
	refresh   *refreshTransport
	logger    interfaces.Logger
}

type Option func(*options)

type options struct {
	logger  interfaces.Logger
	timeout time.Duration
	base    http.RoundTripper
	revoked func()
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTimeout limits how long each attempt waits for response headers. It is
// applied to the base transport when that is an *http.Transport; there is no
// deadline on a call as a whole.
func WithTimeout(t time.Duration) Option {
	return func(o *options) {
		o.timeout = t
	}
}

// WithBaseTransport replaces http.DefaultTransport
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		if rt != nil {
			o.base = rt
		}
	}
}

// WithRevokedFunc sets the function that is called after a failed refresh has cleared the tokens
func WithRevokedFunc(f func()) Option {
	return func(o *options) {
		o.revoked = f
	}
}

// New returns a Communications object for serverURL that takes its tokens from store
func New(serverURL string, store interfaces.TokenStore, opts ...Option) *Communications {
	o := &options{
		logger:  null.Logger(),
		timeout: time.Duration(global.DefaultTimeout) * time.Second,
		base:    http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(o)
	}

	if t, ok := o.base.(*http.Transport); ok && o.timeout > 0 {
		t = t.Clone()
		t.ResponseHeaderTimeout = o.timeout
		o.base = t
	}

	serverURL = strings.TrimRight(serverURL, "/")
	rt := newRefreshTransport(serverURL, store, o.base, o.logger)
	rt.setRevoked(o.revoked)

	return &Communications{
		serverURL: serverURL,
		client:    &http.Client{Transport: rt},
		refresh:   rt,
		logger:    o.logger,
	}
}

// OnRevoked replaces the function that is called after a failed refresh.
// It exists because the session is usually created after its Communications.
func (c *Communications) OnRevoked(f func()) {
	c.refresh.setRevoked(f)
}

// ServerURL returns the server URL without a trailing slash
func (c *Communications) ServerURL() string {
	return c.serverURL
}
