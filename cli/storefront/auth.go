//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/UnifyEM/storefront/cli/apierr"
	"github.com/UnifyEM/storefront/common/interfaces"
	"github.com/UnifyEM/storefront/common/schema"
)

// CreateToken exchanges a username and password for a token pair. Rejected
// credentials are reported as apierr.ErrAuthorizationExpired.
func (c *Client) CreateToken(ctx context.Context, username, password string) (interfaces.TokenPair, error) {
	code, data, err := c.comms.Post(ctx, schema.EndpointTokenCreate, schema.TokenCreateRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return interfaces.TokenPair{}, apierr.Network(err)
	}

	// A 401 here is about the credentials, not about a stored token
	if err = apierr.FromResponse(code, data, false); err != nil {
		return interfaces.TokenPair{}, err
	}

	var resp schema.TokenPairResponse
	if err = json.Unmarshal(data, &resp); err != nil {
		return interfaces.TokenPair{}, apierr.Decode(code, err)
	}

	pair := interfaces.TokenPair{Access: resp.Access, Refresh: resp.Refresh}
	if !pair.Complete() {
		return interfaces.TokenPair{}, apierr.Decode(http.StatusOK, errors.New("server returned an empty token"))
	}
	return pair, nil
}

// CurrentUser returns the profile of the logged in user
func (c *Client) CurrentUser(ctx context.Context) (schema.UserProfile, error) {
	var user schema.UserProfile
	err := c.get(ctx, schema.EndpointCurrentUser, &user)
	return user, err
}
