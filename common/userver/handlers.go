/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package userver

import (
	"net/http"
	"os"
)

// HandlerHealth implements a health check for load balancers, etc.
func (s *HServer) HandlerHealth(_ *http.Request) JResponse {
	var r Response

	// The presence of the down file indicates that the server is going away
	if _, err := os.Stat(s.DownFile); s.DownFile != "" && err == nil {
		r.Status = "down"
		r.Code = http.StatusServiceUnavailable
		r.Details = "server is shutting down"
	} else {
		r.Status = "ok"
		r.Code = http.StatusOK
		r.Details = "health check ok"
	}
	return JResponse{
		HTTPCode: r.Code,
		JSONData: r}
}

func (s *HServer) Handler404(req *http.Request) JResponse {
	s.PenaltyBox(req.Context())
	return JResponse{
		HTTPCode: http.StatusNotFound,
		JSONData: ErrorResponse{Detail: "Not found."}}
}

func (s *HServer) Handler405(req *http.Request) JResponse {
	s.PenaltyBox(req.Context())
	return JResponse{
		HTTPCode: http.StatusMethodNotAllowed,
		JSONData: ErrorResponse{Detail: "Method \"" + req.Method + "\" not allowed."}}
}
