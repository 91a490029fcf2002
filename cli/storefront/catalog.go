//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package storefront

import (
	"context"

	"github.com/UnifyEM/storefront/cli/util"
	"github.com/UnifyEM/storefront/common/schema"
)

// Products returns the catalog, optionally filtered by a search term
func (c *Client) Products(ctx context.Context, search string) ([]schema.Product, error) {
	var list schema.List[schema.Product]
	err := c.call(func() (int, []byte, error) {
		return c.comms.GetQuery(ctx, schema.EndpointProducts, util.NewNVPairs(nil).Add("search", search))
	}, &list)
	return list, err
}

// Discounts returns the coupon codes that are currently valid
func (c *Client) Discounts(ctx context.Context) ([]schema.Discount, error) {
	var list schema.List[schema.Discount]
	err := c.get(ctx, schema.EndpointDiscounts, &list)
	return list, err
}
