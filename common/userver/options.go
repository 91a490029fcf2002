//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package userver

import (
	"errors"
	"fmt"

	"github.com/UnifyEM/storefront/common/interfaces"
)

// Option configures an HServer. Options are applied in order by New.
type Option func(*HServer) error

func WithLogger(logger interfaces.Logger) Option {
	return func(s *HServer) error {
		if logger == nil {
			return errors.New("logger is nil")
		}
		s.Logger = logger
		return nil
	}
}

// WithListen sets the listen address, for example "127.0.0.1:8000"
func WithListen(listen string) Option {
	return func(s *HServer) error {
		if listen == "" {
			return errors.New("listen address is empty")
		}
		s.Listen = listen
		return nil
	}
}

// WithHTTPTimeout sets the read and write timeouts in seconds
func WithHTTPTimeout(seconds int) Option {
	return positive("HTTP timeout", seconds, func(s *HServer) { s.HTTPTimeout = seconds })
}

func WithHTTPIdleTimeout(seconds int) Option {
	return positive("HTTP idle timeout", seconds, func(s *HServer) { s.HTTPIdleTimeout = seconds })
}

// WithHandlerTimeout limits how long a single handler may run
func WithHandlerTimeout(seconds int) Option {
	return positive("handler timeout", seconds, func(s *HServer) { s.HandlerTimeout = seconds })
}

// WithMaxConcurrent limits the number of open connections. Zero means no limit.
func WithMaxConcurrent(m int) Option {
	return func(s *HServer) error {
		if m < 0 {
			return fmt.Errorf("max concurrent must not be negative: %d", m)
		}
		s.MaxConcurrent = m
		return nil
	}
}

// WithPenaltyBox sets the delay range in milliseconds applied to failed
// authentication and unknown routes. A max of zero disables it.
func WithPenaltyBox(min, max int) Option {
	return func(s *HServer) error {
		if min < 0 || max < 0 {
			return fmt.Errorf("penalty box must not be negative: %d-%d", min, max)
		}
		s.PenaltyBoxMin = min
		s.PenaltyBoxMax = max
		return nil
	}
}

// WithDownFile makes the health check report "down" while the file exists
func WithDownFile(down string) Option {
	return func(s *HServer) error {
		s.DownFile = down
		return nil
	}
}

// WithSEid sets the first event id used by the server's log messages
func WithSEid(seid uint32) Option {
	return func(s *HServer) error {
		s.SEid = seid
		return nil
	}
}

func WithHealthHandler(h bool) Option {
	return func(s *HServer) error {
		s.HealthHandler = h
		return nil
	}
}

func WithStrictSlash(strict bool) Option {
	return func(s *HServer) error {
		s.StrictSlash = strict
		return nil
	}
}

// WithDefaultHeaders adds no-cache headers to every response
func WithDefaultHeaders(d bool) Option {
	return func(s *HServer) error {
		s.DefaultHeaders = d
		return nil
	}
}

// WithTLS enables TLS. Both files are required.
func WithTLS(certFile, keyFile string) Option {
	return func(s *HServer) error {
		if (certFile == "") != (keyFile == "") {
			return errors.New("TLS requires both a certificate and a key")
		}
		s.TLS = certFile != ""
		s.TLSCertFile = certFile
		s.TLSKeyFile = keyFile
		return nil
	}
}

func WithTLSStrongCiphers(c bool) Option {
	return func(s *HServer) error {
		s.TLSStrongCiphers = c
		return nil
	}
}

func WithDebug(d bool) Option {
	return func(s *HServer) error {
		s.Debug = d
		return nil
	}
}

func positive(name string, v int, set func(*HServer)) Option {
	return func(s *HServer) error {
		if v <= 0 {
			return fmt.Errorf("%s must be positive: %d", name, v)
		}
		set(s)
		return nil
	}
}
