//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package schema

import (
	"strconv"
	"time"
)

// Order status values
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderCancelled = "cancelled"
)

// OrderCreateRequest is sent to EndpointOrders. The order is built from the
// current cart; the optional coupon code applies a discount.
type OrderCreateRequest struct {
	Coupon string `json:"coupon,omitempty"`
}

// Order is returned by EndpointOrders
type Order struct {
	ID        int         `json:"id"`
	OrderID   string      `json:"order_id" example:"3c5e4a52-8d0b-4a8e-9d59-0f0cf1c9b7a1"`
	Status    string      `json:"status" example:"pending"`
	Discount  *Discount   `json:"discount,omitempty"`
	Items     []OrderItem `json:"items"`
	Summary   OrderTotals `json:"summary"`
	CreatedAt time.Time   `json:"created_at"`
}

// OrderItem is a cart item frozen at the time of the order
type OrderItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Total    Money   `json:"total"`
}

type OrderTotals struct {
	Subtotal       Money `json:"subtotal"`
	DiscountAmount Money `json:"discount_amount"`
	Total          Money `json:"total"`
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
