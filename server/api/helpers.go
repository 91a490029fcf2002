/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/UnifyEM/storefront/common/fields"
	"github.com/UnifyEM/storefront/common/schema"
	"github.com/UnifyEM/storefront/common/userver"
)

// maxBody limits the size of request bodies
const maxBody = 1 << 20

// fieldErrors is the body of a validation failure on individual fields
type fieldErrors map[string][]string

const fieldRequired = "This field is required."

// decodeBody deserializes the JSON request body into v
func decodeBody(req *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(req.Body, maxBody))
	if err != nil {
		return fmt.Errorf("reading body: %w", err)
	}
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, v)
}

// logFields returns the fields logged by every handler
func logFields(req *http.Request) *fields.Fields {
	return fields.NewFields(
		fields.NewField("src_ip", userver.RemoteIP(req)),
		fields.NewField("user", GetAuthDetails(req).Username))
}

func pathID(req *http.Request) (int, bool) {
	id, err := strconv.Atoi(userver.GetParam(req, "id"))
	return id, err == nil && id > 0
}

func success(v any) userver.JResponse {
	return userver.JResponse{HTTPCode: http.StatusOK, JSONData: v}
}

func badRequest(v any) userver.JResponse {
	return userver.JResponse{HTTPCode: http.StatusBadRequest, JSONData: v}
}

func detail(code int, msg string) userver.JResponse {
	return userver.JResponse{HTTPCode: code, JSONData: schema.APIError{Detail: msg}}
}

var (
	malformed   = detail(http.StatusBadRequest, "JSON parse error")
	notFound    = detail(http.StatusNotFound, "Not found.")
	serverError = detail(http.StatusInternalServerError, "A server error occurred.")
)
