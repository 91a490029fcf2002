/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package userver

import (
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/UnifyEM/storefront/common/interfaces"
)

type HServer struct {
	Headers          Headers
	Routes           Routes
	Listen           string
	HTTPTimeout      int
	HTTPIdleTimeout  int
	HandlerTimeout   int
	MaxConcurrent    int
	PenaltyBoxMin    int
	PenaltyBoxMax    int
	DownFile         string
	HealthHandler    bool
	StrictSlash      bool
	DefaultHeaders   bool
	TLS              bool
	TLSCertFile      string
	TLSKeyFile       string
	TLSStrongCiphers bool
	Debug            bool
	AuthFunc         AuthFunc // Used for not found and method not allowed handlers
	Logger           interfaces.Logger
	SEid             uint32 // Starting event ID for logging
	server           *http.Server
	router           *mux.Router
	buildOnce        sync.Once
}

// AuthFunc is used as a callback to authenticate requests.
// It receives the source IP and the Authorization header and returns a bool
// to indicate success or failure. In the event of a failure, []byte may
// contain a JSON message to send. The "any" value is passed through to the
// handler in the request context and can be retrieved with AuthDetails.
type AuthFunc func(string, string) (bool, []byte, any)

// Route defines a route for the HTTP router. It can include a
// standard handler that returns a http.Handler or a JHandler
// that returns a JResponse structure.
type Route struct {
	Name     string
	Methods  []string
	Pattern  string
	Handler  http.Handler
	JHandler JHandler
	AuthFunc AuthFunc
}

type Routes []Route

type Header struct {
	Key   string
	Value string
}

type Headers []Header

// Response is used by the built-in health handler
type Response struct {
	Status  string `json:"status"`            // Text Status
	Code    int    `json:"code"`              // HTTP status code
	Details string `json:"details,omitempty"` // optional response details
}

// ErrorResponse is the body of the built-in error handlers
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// JHandler is the type of the function to be wrapped
type JHandler func(req *http.Request) JResponse

// JResponse is the structure returned by the wrapped function
type JResponse struct {
	HTTPCode int
	JSONData any
}
