/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package communications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/UnifyEM/storefront/cli/util"
	"github.com/UnifyEM/storefront/common/fields"
)

// Get sends a GET request to the specified endpoint and returns the response body.
func (c *Communications) Get(ctx context.Context, endpoint string) (int, []byte, error) {
	return c.sendRequest(ctx, http.MethodGet, endpoint, nil)
}

// GetQuery adds pairs to the endpoint as query parameters and sends a GET request
func (c *Communications) GetQuery(ctx context.Context, endpoint string, pairs *util.NVPairs) (int, []byte, error) {
	return c.sendRequest(ctx, http.MethodGet, endpoint+pairs.Query(), nil)
}

// Post sends a JSON payload to the specified endpoint and returns the response body.
func (c *Communications) Post(ctx context.Context, endpoint string, payload any) (int, []byte, error) {
	return c.sendJSON(ctx, http.MethodPost, endpoint, payload)
}

// Put sends a JSON payload to the specified endpoint and returns the response body.
func (c *Communications) Put(ctx context.Context, endpoint string, payload any) (int, []byte, error) {
	return c.sendJSON(ctx, http.MethodPut, endpoint, payload)
}

// Delete sends a DELETE request to the specified endpoint and returns the response body.
func (c *Communications) Delete(ctx context.Context, endpoint string) (int, []byte, error) {
	return c.sendRequest(ctx, http.MethodDelete, endpoint, nil)
}

func (c *Communications) sendJSON(ctx context.Context, method, endpoint string, payload any) (int, []byte, error) {
	var jsonData []byte
	var err error

	if payload != nil {
		jsonData, err = json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to serialize request: %w", err)
		}
	} else {
		jsonData = []byte("{}")
	}
	return c.sendRequest(ctx, method, endpoint, jsonData)
}

// sendRequest is a lower level function that sends HTTP requests.
// The body is a bytes.Reader so the request can be replayed after a token refresh.
func (c *Communications) sendRequest(ctx context.Context, method, endpoint string, payload []byte) (int, []byte, error) {
	url := c.serverURL + endpoint

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to send HTTP request: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug(3100, "API request", fields.NewFields(
		fields.NewField("method", method),
		fields.NewField("endpoint", endpoint),
		fields.NewField("code", resp.StatusCode),
		fields.NewField("bytes", len(data))))

	return resp.StatusCode, data, nil
}
