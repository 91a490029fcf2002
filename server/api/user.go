/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package api

import (
	"net/http"

	"github.com/UnifyEM/storefront/common/fields"
	"github.com/UnifyEM/storefront/common/userver"
)

// @Summary Current user
// @Description Returns the profile of the authenticated user
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} schema.UserProfile
// @Failure 401 {object} schema.APIError
// @Router /api/auth/user/ [get]
func (a *API) getCurrentUser(req *http.Request) userver.JResponse {
	logInfo := logFields(req)

	user, err := a.data.GetUser(GetAuthDetails(req).Username)
	if err != nil {
		logInfo.Append(fields.NewField("error", err.Error()))
		a.logger.Error(2871, "error retrieving user", logInfo)
		return serverError
	}
	return success(user.Profile())
}
