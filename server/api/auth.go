//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/UnifyEM/storefront/common/fields"
	"github.com/UnifyEM/storefront/common/schema"
	"github.com/UnifyEM/storefront/common/userver"
	"github.com/UnifyEM/storefront/server/data"
)

// AuthInfo is attached to authenticated requests
type AuthInfo struct {
	Username      string
	Authenticated bool
}

// Authentication failure bodies
var (
	authMissing = schema.APIError{Detail: "Authentication credentials were not provided."}
	authInvalid = schema.APIError{Detail: "Given token not valid for any token type"}
)

// NewAuthFunc returns an AuthFunc that accepts a valid access token of an active user
func (a *API) NewAuthFunc() userver.AuthFunc {
	return func(ip, authHeader string) (bool, []byte, any) {

		authFail := AuthInfo{Authenticated: false}
		logFields := fields.NewFields(fields.NewField("src_ip", ip))

		if authHeader == "" {
			a.logger.Info(2831, "authentication failure: missing Authorization header", logFields)
			return false, a.authFailMessage(authMissing), authFail
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			a.logger.Warning(2832, "authentication failure: invalid Authorization header format", logFields)
			return false, a.authFailMessage(authInvalid), authFail
		}

		claims, err := a.data.ValidateToken(tokenString, data.PurposeAccess)
		if err != nil {
			logFields.Append(fields.NewField("error", err.Error()))
			if errors.Is(err, jwt.ErrTokenExpired) {
				a.logger.Info(2833, "authentication failure: token expired", logFields)
			} else {
				a.logger.Warning(2833, "authentication failure: invalid token", logFields)
			}
			return false, a.authFailMessage(authInvalid), authFail
		}

		logFields.Append(fields.NewField("user", claims.Subject))
		if !a.data.UserActive(claims.Subject) {
			a.logger.Warning(2834, "authentication failure: user disabled", logFields)
			return false, a.authFailMessage(authInvalid), authFail
		}

		a.logger.Debug(2835, "authentication success", logFields)
		return true, nil, AuthInfo{Username: claims.Subject, Authenticated: true}
	}
}

func (a *API) authFailMessage(msg schema.APIError) []byte {
	response, err := json.Marshal(msg)
	if err != nil {
		a.logger.Errorf(2839, "error marshalling failure response: %s", err.Error())
		return nil
	}
	return response
}

// GetAuthDetails returns the AuthInfo attached by the AuthFunc
func GetAuthDetails(req *http.Request) AuthInfo {
	details, ok := userver.AuthDetails(req).(AuthInfo)
	if !ok {
		return AuthInfo{Authenticated: false}
	}
	return details
}
