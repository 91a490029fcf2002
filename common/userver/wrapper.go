/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package userver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/UnifyEM/storefront/common/fields"
)

// RequestIDHeader is logged with each request so that client and server logs can be correlated
const RequestIDHeader = "X-Request-ID"

// statusRecorder wraps a http.ResponseWriter to capture the status code
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Wrapper wraps a http.Handler to add standard headers, logging, and optionally authentication
func (s *HServer) Wrapper(handlerName string, h http.Handler, authFunc AuthFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {

		startTime := time.Now()
		src := RemoteIP(req)

		// Headers must be set before anything is written
		for _, header := range s.Headers {
			w.Header().Set(header.Key, header.Value)
		}

		// Query strings are not logged because they may contain confidential information
		logFields := fields.NewFields(
			fields.NewField("src_ip", src),
			fields.NewField("method", req.Method),
			fields.NewField("uri", req.URL.Path),
			fields.NewField("handler", handlerName))
		if id := req.Header.Get(RequestIDHeader); id != "" {
			logFields.Append(fields.NewField("request_id", id))
		}

		if authFunc != nil {
			authenticated, failMsg, details := authFunc(src, req.Header.Get("Authorization"))
			if !authenticated {
				s.Logger.Warning(s.SEid+12, "authentication failure", logFields)

				// Impose a time penalty for failed authentication
				s.PenaltyBox(req.Context())

				if failMsg != nil {
					w.Header().Set("Content-Type", "application/json; charset=UTF-8")
				}
				w.WriteHeader(http.StatusUnauthorized)
				if failMsg != nil {
					_, _ = w.Write(failMsg)
				}
				return
			}
			req = withAuthDetails(req, details)
		}

		ctx, cancel := context.WithTimeout(req.Context(), time.Duration(s.HandlerTimeout)*time.Second)
		defer cancel()
		req = req.WithContext(ctx)

		rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		h.ServeHTTP(rw, req)

		logFields.Append(
			fields.NewField("code", rw.statusCode),
			fields.NewField("duration", fmt.Sprintf("%.4f", time.Since(startTime).Seconds())))

		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			logFields.Append(fields.NewField("timeout", "true"))
		}

		s.Logger.Info(s.SEid+10, "HTTP", logFields)
	})
}
