/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package storefront

import (
	"context"
	"strings"

	"github.com/UnifyEM/storefront/common/schema"
)

// CartItems returns the contents of the cart
func (c *Client) CartItems(ctx context.Context) ([]schema.CartItem, error) {
	var list schema.List[schema.CartItem]
	err := c.get(ctx, schema.EndpointCartItems, &list)
	return list, err
}

// AddCartItem adds quantity units of a product. A quantity below 1 adds one unit.
func (c *Client) AddCartItem(ctx context.Context, productID, quantity int) (schema.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	var item schema.CartItem
	err := c.post(ctx, schema.EndpointCartItems, schema.CartItemCreateRequest{Product: productID, Quantity: quantity}, &item)
	return item, err
}

// RemoveCartItem removes a cart item (not a product) by id
func (c *Client) RemoveCartItem(ctx context.Context, itemID int) error {
	return c.call(func() (int, []byte, error) {
		return c.comms.Delete(ctx, schema.CartItemEndpoint(itemID))
	}, nil)
}

// CartSummary returns the subtotal and the number of units in the cart
func (c *Client) CartSummary(ctx context.Context) (schema.CartSummary, error) {
	var summary schema.CartSummary
	err := c.get(ctx, schema.EndpointCartSummary, &summary)
	return summary, err
}

// ApplyCoupon prices the cart with a coupon code. The cart is not changed.
func (c *Client) ApplyCoupon(ctx context.Context, code string) (schema.CouponResult, error) {
	var result schema.CouponResult
	err := c.post(ctx, schema.EndpointApplyCoupon, schema.CouponRequest{Code: strings.TrimSpace(code)}, &result)
	return result, err
}

// PlaceOrder turns the cart into an order. An empty coupon places the order at full price.
func (c *Client) PlaceOrder(ctx context.Context, coupon string) (schema.Order, error) {
	var order schema.Order
	err := c.post(ctx, schema.EndpointOrders, schema.OrderCreateRequest{Coupon: strings.TrimSpace(coupon)}, &order)
	return order, err
}

// Orders returns the user's orders, newest first
func (c *Client) Orders(ctx context.Context) ([]schema.Order, error) {
	var list schema.List[schema.Order]
	err := c.get(ctx, schema.EndpointOrders, &list)
	return list, err
}
