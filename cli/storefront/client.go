/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package storefront is a typed client for the storefront REST API.
// Failures are returned as *apierr.Error values.
package storefront

import (
	"context"
	"encoding/json"

	"github.com/UnifyEM/storefront/cli/apierr"
	"github.com/UnifyEM/storefront/cli/global"
	"github.com/UnifyEM/storefront/common/interfaces"
)

type Client struct {
	comms global.Comms
	store interfaces.TokenStore
}

// New returns a client that sends requests through comms. The store is only
// consulted to classify authorization failures; comms attaches the tokens.
func New(comms global.Comms, store interfaces.TokenStore) *Client {
	return &Client{comms: comms, store: store}
}

// call sends a request and decodes a successful response into out, if out is not nil
func (c *Client) call(send func() (int, []byte, error), out any) error {
	_, hadToken := c.store.Get()

	code, data, err := send()
	if err != nil {
		return apierr.Network(err)
	}

	if err = apierr.FromResponse(code, data, hadToken); err != nil {
		return err
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err = json.Unmarshal(data, out); err != nil {
		return apierr.Decode(code, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	return c.call(func() (int, []byte, error) {
		return c.comms.Get(ctx, endpoint)
	}, out)
}

func (c *Client) post(ctx context.Context, endpoint string, payload any, out any) error {
	return c.call(func() (int, []byte, error) {
		return c.comms.Post(ctx, endpoint, payload)
	}, out)
}
