/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package api

import (
	"net/http"
	"strings"

	"github.com/UnifyEM/storefront/common/fields"
	"github.com/UnifyEM/storefront/common/schema"
	"github.com/UnifyEM/storefront/common/userver"
)

// @Summary Create a token pair
// @Description Authenticate a user and return access and refresh tokens
// @Tags Authentication
// @Accept json
// @Produce json
// @Param credentials body schema.TokenCreateRequest true "User credentials"
// @Success 200 {object} schema.TokenPairResponse
// @Failure 400 {object} fieldErrors
// @Failure 401 {object} schema.APIError
// @Router /auth/jwt/create/ [post]
func (a *API) postTokenCreate(req *http.Request) userver.JResponse {
	var request schema.TokenCreateRequest
	if err := decodeBody(req, &request); err != nil {
		return malformed
	}

	logInfo := fields.NewFields(
		fields.NewField("src_ip", userver.RemoteIP(req)),
		fields.NewField("user", request.Username))

	// Check for missing required fields
	missing := fieldErrors{}
	if strings.TrimSpace(request.Username) == "" {
		missing["username"] = []string{fieldRequired}
	}
	if request.Password == "" {
		missing["password"] = []string{fieldRequired}
	}
	if len(missing) > 0 {
		a.logger.Info(2861, "login missing required fields", logInfo)
		return badRequest(missing)
	}

	accessToken, refreshToken, err := a.data.LoginGetToken(request.Username, request.Password)
	if err != nil {
		logInfo.Append(fields.NewField("error", err.Error()))
		a.logger.Warning(2862, "login failed", logInfo)
		return detail(http.StatusUnauthorized, "No active account found with the given credentials")
	}

	a.logger.Info(2863, "successful login", logInfo)
	return success(schema.TokenPairResponse{Access: accessToken, Refresh: refreshToken})
}

// @Summary Refresh the access token
// @Description Exchange a refresh token for a new access token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param refreshRequest body schema.TokenRefreshRequest true "Refresh request"
// @Success 200 {object} schema.TokenRefreshResponse
// @Failure 400 {object} fieldErrors
// @Failure 401 {object} schema.APIError
// @Router /auth/jwt/refresh/ [post]
func (a *API) postTokenRefresh(req *http.Request) userver.JResponse {
	var request schema.TokenRefreshRequest
	if err := decodeBody(req, &request); err != nil {
		return malformed
	}

	logInfo := fields.NewFields(fields.NewField("src_ip", userver.RemoteIP(req)))

	if request.Refresh == "" {
		return badRequest(fieldErrors{"refresh": {fieldRequired}})
	}

	accessToken, err := a.data.RefreshToken(request.Refresh)
	if err != nil {
		logInfo.Append(fields.NewField("error", err.Error()))
		a.logger.Warning(2865, "access token refresh failed", logInfo)
		return userver.JResponse{
			HTTPCode: http.StatusUnauthorized,
			JSONData: authInvalid}
	}

	a.logger.Info(2866, "successful access token refresh", logInfo)
	return success(schema.TokenRefreshResponse{Access: accessToken})
}
