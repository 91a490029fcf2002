/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package app wires the configuration, credential store, API client, session,
// and cart together for a single sfcli command.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"

	"github.com/UnifyEM/storefront/cli/apierr"
	"github.com/UnifyEM/storefront/cli/cart"
	"github.com/UnifyEM/storefront/cli/communications"
	"github.com/UnifyEM/storefront/cli/credentials"
	"github.com/UnifyEM/storefront/cli/display"
	"github.com/UnifyEM/storefront/cli/global"
	"github.com/UnifyEM/storefront/cli/session"
	"github.com/UnifyEM/storefront/cli/storefront"
	"github.com/UnifyEM/storefront/common/interfaces"
	"github.com/UnifyEM/storefront/common/null"
	"github.com/UnifyEM/storefront/common/ulogger"
)

// Options are the persistent flags of the root command
type Options struct {
	ConfigDir string
	JSON      bool
	Out       io.Writer
	In        io.Reader

	// Transport replaces http.DefaultTransport; used by tests
	Transport http.RoundTripper
}

type App struct {
	Config  *global.CLIConfig
	Logger  interfaces.Logger
	Store   *credentials.Store
	Comms   *communications.Communications
	API     *storefront.Client
	Session *session.Session
	Cart    *cart.Cart
	Out     io.Writer
	In      io.Reader
	JSON    bool
	closers []func()
}

// Open loads the configuration and opens the credential store
func Open(opts *Options) (*App, error) {
	cfg, err := global.Config(opts.ConfigDir)
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Out: opts.Out, In: opts.In, JSON: opts.JSON}
	if a.Out == nil {
		a.Out = os.Stdout
	}
	if a.In == nil {
		a.In = os.Stdin
	}
	display.SetLocale(os.Getenv("LANG"))

	// Logging is off unless a log file is configured
	a.Logger = null.Logger()
	if cfg.LogFile != "" {
		logger, err := ulogger.New(
			ulogger.WithPrefix(global.Name),
			ulogger.WithLogFile(cfg.LogFile),
			ulogger.WithConsole(os.Stderr),
			ulogger.WithLogStdout(cfg.Debug),
			ulogger.WithDebug(cfg.Debug),
			ulogger.WithRetention(7))
		if err != nil {
			return nil, fmt.Errorf("opening log: %w", err)
		}
		a.Logger = logger
		a.closers = append(a.closers, logger.Close)
	}

	a.Store, err = credentials.Open(cfg.CredentialsDB, a.Logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, a.Store.Close)

	a.Comms = communications.New(cfg.ServerURL, a.Store,
		communications.WithLogger(a.Logger),
		communications.WithTimeout(cfg.HTTPTimeout),
		communications.WithBaseTransport(opts.Transport))
	a.API = storefront.New(a.Comms, a.Store)
	a.Session = session.New(a.Store, a.API, a.Logger)
	a.Comms.OnRevoked(a.Session.Revoked)
	a.Cart = cart.New(a.API, a.Logger)
	return a, nil
}

// Close releases everything Open acquired, in reverse order
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// Context returns a context that is cancelled by Ctrl-C
func (a *App) Context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// RequireLogin loads the session and fails if the user is not logged in
func (a *App) RequireLogin(ctx context.Context) error {
	if err := a.Session.Load(ctx); err != nil {
		return err
	}
	if state, _ := a.Session.State(); state != session.Authenticated {
		return &apierr.Error{Kind: apierr.ErrAuthorizationExpired}
	}
	return nil
}

// Print writes v as JSON when --json was given and calls human otherwise
func (a *App) Print(v any, human func(w io.Writer)) error {
	if a.JSON {
		return display.Pretty(a.Out, v)
	}
	human(a.Out)
	return nil
}

// Run opens an App, calls f, and closes the App
func Run(opts *Options, f func(ctx context.Context, a *App) error) error {
	a, err := Open(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := a.Context()
	defer cancel()
	return f(ctx, a)
}
