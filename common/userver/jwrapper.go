/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package userver

import (
	"encoding/json"
	"net/http"

	"github.com/UnifyEM/storefront/common/fields"
)

// JWrapper wraps a JHandler to a standard http.Handler.
// It marshals the JSON data and logs any errors.
// A nil JSONData sends the status code with an empty body.
func (s *HServer) JWrapper(name string, h JHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {

		respData := h(req)
		if respData.HTTPCode == 0 {
			respData.HTTPCode = http.StatusOK
		}

		if respData.JSONData == nil {
			w.WriteHeader(respData.HTTPCode)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=UTF-8")
		w.WriteHeader(respData.HTTPCode)
		if err := json.NewEncoder(w).Encode(respData.JSONData); err != nil {
			s.Logger.Error(s.SEid+11,
				"Error writing response",
				fields.NewFields(
					fields.NewField("error", err.Error()),
					fields.NewField("src_ip", RemoteIP(req)),
					fields.NewField("method", req.Method),
					fields.NewField("uri", req.URL.Path),
					fields.NewField("handler", name)))
		}
	})
}
