//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/UnifyEM/storefront/common/boltdb"
	"github.com/UnifyEM/storefront/common/fields"
	"github.com/UnifyEM/storefront/common/schema"
)

var ErrOrderNotFound = errors.New("order not found")

// storedOrder is kept in BucketOrders under the order's numeric id
type storedOrder struct {
	User string `json:"user"`
	schema.Order
}

// PlaceOrder turns the user's cart into a pending order and empties the
// cart. An empty coupon places the order at full price.
func (d *Data) PlaceOrder(username, coupon string) (schema.Order, error) {
	var discount *schema.Discount
	if coupon = strings.TrimSpace(coupon); coupon != "" {
		found, err := d.FindDiscount(coupon)
		if err != nil {
			return schema.Order{}, err
		}
		discount = &found
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	items, err := d.cartItems(username)
	if err != nil {
		return schema.Order{}, err
	}
	if len(items) == 0 {
		return schema.Order{}, ErrEmptyCart
	}

	id, err := d.database.NextID(BucketOrders)
	if err != nil {
		return schema.Order{}, err
	}

	order := schema.Order{
		ID:        id,
		OrderID:   uuid.New().String(),
		Status:    schema.OrderPending,
		Discount:  discount,
		Items:     make([]schema.OrderItem, 0, len(items)),
		CreatedAt: d.now().UTC(),
	}

	for _, item := range items {
		order.Items = append(order.Items, schema.OrderItem{
			Product:  *item.Product.Product,
			Quantity: item.Quantity,
			Total:    item.Total,
		})
	}

	order.Summary.Subtotal = summarize(items).Subtotal
	if discount != nil {
		order.Summary.DiscountAmount = order.Summary.Subtotal.Percent(discount.Percentage)
	}
	order.Summary.Total = order.Summary.Subtotal - order.Summary.DiscountAmount

	if err = d.database.SetData(BucketOrders, boltdb.IDKey(id), storedOrder{User: userKey(username), Order: order}); err != nil {
		return schema.Order{}, fmt.Errorf("failed to store order: %w", err)
	}

	if err = d.putCart(username, cart{}); err != nil {
		return schema.Order{}, fmt.Errorf("order %d placed but the cart could not be emptied: %w", id, err)
	}

	d.logger.Info(1401, "order placed", fields.NewFields(
		fields.NewField("user", username),
		fields.NewField("order_id", order.OrderID),
		fields.NewField("total", order.Summary.Total.String())))
	return order, nil
}

// Orders returns the user's orders, newest first
func (d *Data) Orders(username string) ([]schema.Order, error) {
	orders := make([]schema.Order, 0)
	err := d.database.ForEach(BucketOrders, func(_, value []byte) error {
		var o storedOrder
		if err := json.Unmarshal(value, &o); err != nil {
			return err
		}
		if o.User == userKey(username) {
			orders = append([]schema.Order{o.Order}, orders...)
		}
		return nil
	})
	return orders, err
}

// GetOrder returns one of the user's orders. Orders of other users are
// reported as not found.
func (d *Data) GetOrder(username string, id int) (schema.Order, error) {
	var o storedOrder
	err := d.database.GetData(BucketOrders, boltdb.IDKey(id), &o)
	if errors.Is(err, boltdb.ErrKeyNotFound) || (err == nil && o.User != userKey(username)) {
		return schema.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return schema.Order{}, err
	}
	return o.Order, nil
}
