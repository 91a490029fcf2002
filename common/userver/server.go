/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package userver implements an HTTP server using the standard Go libraries
// and gorilla/mux. Each route's handler can be either a traditional
// http.Handler or a JHandler that returns an object to be marshalled to JSON.
package userver

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/net/netutil"

	"github.com/UnifyEM/storefront/common/fields"
	"github.com/UnifyEM/storefront/common/ulogger"
)

// New returns a HServer struct with default values and options applied
func New(options ...Option) (*HServer, error) {
	s := &HServer{
		Listen:           "127.0.0.1:8000",
		HTTPTimeout:      60,
		HTTPIdleTimeout:  60,
		HandlerTimeout:   60,
		MaxConcurrent:    100,
		HealthHandler:    true,
		DefaultHeaders:   true,
		TLSStrongCiphers: true,
	}

	// Process options (see options.go)
	for _, op := range options {
		err := op(s)
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

// AddRoute adds a single route. Routes must be added before Handler or Start is called.
func (s *HServer) AddRoute(route Route) {
	s.Routes = append(s.Routes, route)
}

func (s *HServer) AddRoutes(routes Routes) {
	s.Routes = append(s.Routes, routes...)
}

// AddHeader adds a header that is sent with every response
func (s *HServer) AddHeader(key, value string) {
	s.Headers = append(s.Headers, Header{key, value})
}

// Handler returns the router with every route wrapped for logging and
// authentication. It is built once; later calls return the same router.
func (s *HServer) Handler() http.Handler {
	s.buildOnce.Do(s.build)
	return s.router
}

func (s *HServer) build() {

	// If there is no logger, create one that writes to stdout
	if s.Logger == nil {
		logger, err := ulogger.New(
			ulogger.WithLogStdout(true),
			ulogger.WithRetention(0),
			ulogger.WithDebug(s.Debug))
		if err != nil {
			// ulogger only fails on a nil console, which is not possible here
			panic(err)
		}
		s.Logger = logger
	}

	if s.DefaultHeaders {
		s.AddHeader("Cache-Control", "no-cache, no-store, must-revalidate")
		s.AddHeader("Pragma", "no-cache")
		s.AddHeader("Expires", "0")
	}

	if s.HealthHandler {
		s.AddRoute(Route{
			Name:     "health",
			Methods:  []string{http.MethodGet},
			Pattern:  "/health",
			JHandler: s.HandlerHealth,
		})
	}

	router := mux.NewRouter().StrictSlash(s.StrictSlash)

	for _, route := range s.Routes {
		var handler http.Handler
		switch {
		case route.JHandler != nil:
			handler = s.Wrapper(route.Name, s.JWrapper(route.Name, route.JHandler), route.AuthFunc)
		case route.Handler != nil:
			handler = s.Wrapper(route.Name, route.Handler, route.AuthFunc)
		default:
			s.Logger.Warning(s.SEid+3, "route has no handler", fields.NewFields(
				fields.NewField("route", route.Name),
				fields.NewField("pattern", route.Pattern)))
			continue
		}
		router.Handle(route.Pattern, handler).Methods(route.Methods...)
	}

	router.NotFoundHandler = s.Wrapper("Handler404", s.JWrapper("Handler404", s.Handler404), s.AuthFunc)
	router.MethodNotAllowedHandler = s.Wrapper("Handler405", s.JWrapper("Handler405", s.Handler405), s.AuthFunc)

	s.router = router
}

// Start starts the server and blocks until it is stopped
func (s *HServer) Start() error {
	handler := s.Handler()

	s.Logger.Info(s.SEid+1,
		"Starting server", fields.NewFields(fields.NewField("listen", s.Listen), fields.NewField("tls", s.TLS)))

	serv := &http.Server{
		Addr:              s.Listen,
		Handler:           handler,
		ReadHeaderTimeout: time.Duration(s.HTTPTimeout) * time.Second,
		ReadTimeout:       time.Duration(s.HTTPTimeout) * time.Second,
		WriteTimeout:      time.Duration(s.HTTPTimeout) * time.Second,
		IdleTimeout:       time.Duration(s.HTTPIdleTimeout) * time.Second,
	}

	if s.TLS {
		tlsConfig, err := s.tlsConfig()
		if err != nil {
			return err
		}
		serv.TLSConfig = tlsConfig
	}

	err := s.listen(serv)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gives in-flight requests 10 seconds to finish
func (s *HServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.server == nil {
		return errors.New("server is not running")
	}

	s.Logger.Info(s.SEid+2, "Stopping server", nil)
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	return nil
}

func (s *HServer) tlsConfig() (*tls.Config, error) {
	if s.TLSCertFile == "" || s.TLSKeyFile == "" {
		return nil, errors.New("TLS cert or key file not specified")
	}

	cert, err := tls.LoadX509KeyPair(s.TLSCertFile, s.TLSKeyFile)
	if err != nil {
		return nil, fmt.Errorf("loading TLS key pair: %w", err)
	}

	tlsConfig := &tls.Config{Certificates: []tls.Certificate{cert}, MinVersion: tls.VersionTLS12}
	if s.TLSStrongCiphers {
		tlsConfig.CipherSuites = []uint16{
			tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256,
			tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256,
		}
	}
	return tlsConfig, nil
}

// listen is a replacement for ListenAndServe that implements a concurrent session limit
// using netutil.LimitListener. If MaxConcurrent is 0, no limit is imposed.
func (s *HServer) listen(server *http.Server) error {
	s.server = server

	addr := s.server.Addr
	if addr == "" {
		addr = ":http"
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	if s.MaxConcurrent > 0 {
		listener = netutil.LimitListener(listener, s.MaxConcurrent)
	}

	if s.TLS {
		return s.server.ServeTLS(listener, "", "")
	}
	return s.server.Serve(listener)
}
