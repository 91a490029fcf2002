/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

import (
	"context"

	"github.com/UnifyEM/storefront/cli/util"
)

// Comms sends requests to the storefront API. Every call returns the HTTP
// status code and the response body. Authorization is handled underneath.
type Comms interface {
	Post(ctx context.Context, endpoint string, payload any) (int, []byte, error)
	Put(ctx context.Context, endpoint string, payload any) (int, []byte, error)
	Get(ctx context.Context, endpoint string) (int, []byte, error)
	GetQuery(ctx context.Context, endpoint string, pairs *util.NVPairs) (int, []byte, error)
	Delete(ctx context.Context, endpoint string) (int, []byte, error)
}
