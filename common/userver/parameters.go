/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package userver

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
)

type contextKey string

const authDetailsKey contextKey = "authDetails"

// GetParam retrieves a variable from the request URL
func GetParam(r *http.Request, param string) string {
	vars := mux.Vars(r)
	if value, ok := vars[param]; ok {
		return value
	}
	return ""
}

// AuthDetails returns whatever the route's AuthFunc attached to the request, or nil
func AuthDetails(r *http.Request) any {
	return r.Context().Value(authDetailsKey)
}

func withAuthDetails(r *http.Request, details any) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), authDetailsKey, details))
}
