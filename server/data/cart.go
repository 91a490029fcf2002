/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package data

import (
	"errors"
	"fmt"
	"slices"

	"github.com/UnifyEM/storefront/common/boltdb"
	"github.com/UnifyEM/storefront/common/schema"
)

// cart is stored in BucketCarts under the lower-cased username
type cart struct {
	Lines []cartLine `json:"lines"`
}

type cartLine struct {
	ID        int `json:"id"`
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// getCart must be called with d.mu held
func (d *Data) getCart(username string) (cart, error) {
	var c cart
	err := d.database.GetData(BucketCarts, userKey(username), &c)
	if errors.Is(err, boltdb.ErrKeyNotFound) {
		return cart{}, nil
	}
	return c, err
}

func (d *Data) putCart(username string, c cart) error {
	if len(c.Lines) == 0 {
		return d.database.DeleteData(BucketCarts, userKey(username))
	}
	return d.database.SetData(BucketCarts, userKey(username), c)
}

// expand turns a stored line into a cart item with the nested product and total
func (d *Data) expand(line cartLine) (schema.CartItem, error) {
	p, err := d.GetProduct(line.ProductID)
	if err != nil {
		return schema.CartItem{}, fmt.Errorf("cart item %d: %w", line.ID, err)
	}
	return schema.CartItem{
		ID:       line.ID,
		Product:  schema.ProductRef{ID: p.ID, Product: &p},
		Quantity: line.Quantity,
		Total:    p.Price * schema.Money(line.Quantity),
	}, nil
}

// CartItems returns the user's cart in the order items were added
func (d *Data) CartItems(username string) ([]schema.CartItem, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cartItems(username)
}

func (d *Data) cartItems(username string) ([]schema.CartItem, error) {
	c, err := d.getCart(username)
	if err != nil {
		return nil, err
	}

	items := make([]schema.CartItem, 0, len(c.Lines))
	for _, line := range c.Lines {
		item, err := d.expand(line)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// AddCartItem adds quantity units of a product. Adding a product that is
// already in the cart increases the quantity of the existing item.
func (d *Data) AddCartItem(username string, productID, quantity int) (schema.CartItem, error) {
	if quantity < 1 {
		return schema.CartItem{}, ErrInvalidQuantity
	}
	if _, err := d.GetProduct(productID); err != nil {
		return schema.CartItem{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	c, err := d.getCart(username)
	if err != nil {
		return schema.CartItem{}, err
	}

	i := slices.IndexFunc(c.Lines, func(l cartLine) bool { return l.ProductID == productID })
	if i >= 0 {
		c.Lines[i].Quantity += quantity
	} else {
		id, err := d.database.NextID(BucketCarts)
		if err != nil {
			return schema.CartItem{}, err
		}
		c.Lines = append(c.Lines, cartLine{ID: id, ProductID: productID, Quantity: quantity})
		i = len(c.Lines) - 1
	}

	if err = d.putCart(username, c); err != nil {
		return schema.CartItem{}, fmt.Errorf("failed to store cart: %w", err)
	}
	return d.expand(c.Lines[i])
}

// RemoveCartItem removes a cart item by id. Items in another user's cart
// are reported as not found.
func (d *Data) RemoveCartItem(username string, itemID int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, err := d.getCart(username)
	if err != nil {
		return err
	}

	i := slices.IndexFunc(c.Lines, func(l cartLine) bool { return l.ID == itemID })
	if i < 0 {
		return ErrCartItemNotFound
	}
	c.Lines = slices.Delete(c.Lines, i, i+1)
	return d.putCart(username, c)
}

// CartSummary returns the subtotal and the number of units in the cart
func (d *Data) CartSummary(username string) (schema.CartSummary, error) {
	items, err := d.CartItems(username)
	if err != nil {
		return schema.CartSummary{}, err
	}
	return summarize(items), nil
}

func summarize(items []schema.CartItem) schema.CartSummary {
	var s schema.CartSummary
	for _, item := range items {
		s.Subtotal += item.Total
		s.TotalItems += item.Quantity
	}
	return s
}

// ApplyCoupon prices the cart with a coupon code without changing it
func (d *Data) ApplyCoupon(username, code string) (schema.CouponResult, error) {
	discount, err := d.FindDiscount(code)
	if err != nil {
		return schema.CouponResult{}, err
	}

	s, err := d.CartSummary(username)
	if err != nil {
		return schema.CouponResult{}, err
	}

	amount := s.Subtotal.Percent(discount.Percentage)
	return schema.CouponResult{
		DiscountedTotal: s.Subtotal - amount,
		DiscountAmount:  amount,
		Subtotal:        s.Subtotal,
	}, nil
}
