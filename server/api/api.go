//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

// Package api implements the sandbox's REST endpoints on top of userver.
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/UnifyEM/storefront/common/interfaces"
	"github.com/UnifyEM/storefront/common/schema"
	"github.com/UnifyEM/storefront/common/userver"
	"github.com/UnifyEM/storefront/server/data"
	"github.com/UnifyEM/storefront/server/global"
)

type API struct {
	logger interfaces.Logger
	conf   *global.ServerConfig
	data   *data.Data
	server *userver.HServer
}

// New creates the HTTP server and registers the routes. The server is not
// started; see Start.
func New(conf *global.ServerConfig, logger interfaces.Logger, d *data.Data) (*API, error) {
	a := &API{logger: logger, conf: conf, data: d}

	// Obtain the listen address and check for command line override
	listen := conf.SC.Get(global.ConfigListen).String()
	if global.ListenOverride != "" {
		listen = global.ListenOverride
	}

	options := []userver.Option{
		userver.WithLogger(logger),
		userver.WithSEid(2500),
		userver.WithListen(listen),
		userver.WithStrictSlash(true),
		userver.WithDefaultHeaders(true),
		userver.WithHealthHandler(conf.SC.Get(global.ConfigHealthCheck).Bool()),
		userver.WithHTTPTimeout(conf.SC.Get(global.ConfigHTTPTimeout).Int()),
		userver.WithHTTPIdleTimeout(conf.SC.Get(global.ConfigHTTPIdleTimeout).Int()),
		userver.WithHandlerTimeout(conf.SC.Get(global.ConfigHandlerTimeout).Int()),
		userver.WithMaxConcurrent(conf.SC.Get(global.ConfigMaxConcurrent).Int()),
		userver.WithPenaltyBox(
			conf.SC.Get(global.ConfigPenaltyBoxMin).Int(),
			conf.SC.Get(global.ConfigPenaltyBoxMax).Int()),
		userver.WithDebug(global.Debug),
	}

	cert, key := conf.SC.Get(global.ConfigTLSCert).String(), conf.SC.Get(global.ConfigTLSKey).String()
	if cert != "" && key != "" {
		options = append(options, userver.WithTLS(cert, key), userver.WithTLSStrongCiphers(true))
	}

	s, err := userver.New(options...)
	if err != nil {
		return nil, fmt.Errorf("creating server: %w", err)
	}
	a.server = s
	a.routes()
	return a, nil
}

func (a *API) routes() {
	authFunc := a.NewAuthFunc()

	a.server.AddRoutes(userver.Routes{
		{Name: "tokenCreate", Methods: []string{http.MethodPost}, Pattern: schema.EndpointTokenCreate, JHandler: a.postTokenCreate},
		{Name: "tokenRefresh", Methods: []string{http.MethodPost}, Pattern: schema.EndpointTokenRefresh, JHandler: a.postTokenRefresh},
		{Name: "currentUser", Methods: []string{http.MethodGet}, Pattern: schema.EndpointCurrentUser, JHandler: a.getCurrentUser, AuthFunc: authFunc},
		{Name: "products", Methods: []string{http.MethodGet}, Pattern: schema.EndpointProducts, JHandler: a.getProducts, AuthFunc: authFunc},
		{Name: "discounts", Methods: []string{http.MethodGet}, Pattern: schema.EndpointDiscounts, JHandler: a.getDiscounts, AuthFunc: authFunc},

		{Name: "cartSummary", Methods: []string{http.MethodGet}, Pattern: schema.EndpointCartSummary, JHandler: a.getCartSummary, AuthFunc: authFunc},
		{Name: "cartItems", Methods: []string{http.MethodGet}, Pattern: schema.EndpointCartItems, JHandler: a.getCartItems, AuthFunc: authFunc},
		{Name: "cartItems", Methods: []string{http.MethodPost}, Pattern: schema.EndpointCartItems, JHandler: a.postCartItem, AuthFunc: authFunc},
		{Name: "cartItem", Methods: []string{http.MethodDelete}, Pattern: schema.EndpointCartItems + "{id:[0-9]+}/", JHandler: a.deleteCartItem, AuthFunc: authFunc},

		{Name: "applyCoupon", Methods: []string{http.MethodPost}, Pattern: schema.EndpointApplyCoupon, JHandler: a.postApplyCoupon, AuthFunc: authFunc},
		{Name: "orders", Methods: []string{http.MethodGet}, Pattern: schema.EndpointOrders, JHandler: a.getOrders, AuthFunc: authFunc},
		{Name: "orders", Methods: []string{http.MethodPost}, Pattern: schema.EndpointOrders, JHandler: a.postOrder, AuthFunc: authFunc},
		{Name: "order", Methods: []string{http.MethodGet}, Pattern: schema.EndpointOrders + "{id:[0-9]+}/", JHandler: a.getOrder, AuthFunc: authFunc},
	})
}

// Handler returns the router; used by tests and by Start
func (a *API) Handler() http.Handler {
	return a.server.Handler()
}

// Start blocks until the server is stopped
func (a *API) Start() error {
	a.logger.Infof(2001, "Starting API")
	if err := a.server.Start(); err != nil {
		return fmt.Errorf("userver Start(): %w", err)
	}
	a.logger.Infof(2002, "API stopped")
	return nil
}

// Stop shuts the server down gracefully
func (a *API) Stop() error {
	err := a.server.Stop()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
