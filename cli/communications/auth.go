/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package communications

import (
	"net/http"

	"github.com/UnifyEM/storefront/common/interfaces"
)

// authTransport attaches the current access token, if any, to each request.
// The request is cloned because a RoundTripper must not modify its input.
type authTransport struct {
	store interfaces.TokenStore
	next  http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	pair, ok := t.store.Get()
	if !ok {
		return t.next.RoundTrip(req)
	}
	return t.next.RoundTrip(withBearer(req, pair.Access))
}

// withBearer returns a shallow clone of req with the Authorization header set.
// The body is shared with req.
func withBearer(req *http.Request, access string) *http.Request {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+access)
	return clone
}
