/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package schema contains the request and response bodies of the storefront
// REST API. It is shared by sfcli and sfsandbox.
package schema

import "strconv"

// API endpoints. The trailing slashes are significant.
const (
	EndpointTokenCreate  = "/auth/jwt/create/"
	EndpointTokenRefresh = "/auth/jwt/refresh/"
	EndpointCurrentUser  = "/api/auth/user/"
	EndpointProducts     = "/api/products/"
	EndpointDiscounts    = "/api/discounts/"
	EndpointCartItems    = "/api/cart-items/"
	EndpointCartSummary  = "/api/cart-items/summary/"
	EndpointApplyCoupon  = "/api/apply-coupon/"
	EndpointOrders       = "/api/orders/"
)

// CartItemEndpoint returns the endpoint of a single cart item
func CartItemEndpoint(id int) string {
	return EndpointCartItems + strconv.Itoa(id) + "/"
}

// APIError is the error body returned by the API. Validation failures on
// individual fields are returned as {"field": ["message"]} instead and are
// not represented here.
type APIError struct {
	Error  string `json:"error,omitempty" example:"Invalid coupon code"`
	Detail string `json:"detail,omitempty" example:"Given token not valid for any token type"`
}
