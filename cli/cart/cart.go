/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package cart keeps a cached count of the items in the cart. The count is
// the number of cart items (lines), not the number of units.
package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/UnifyEM/storefront/common/fields"
	"github.com/UnifyEM/storefront/common/interfaces"
	"github.com/UnifyEM/storefront/common/null"
	"github.com/UnifyEM/storefront/common/schema"
)

// API is the part of the storefront client that the cart needs
type API interface {
	CartItems(ctx context.Context) ([]schema.CartItem, error)
	AddCartItem(ctx context.Context, productID, quantity int) (schema.CartItem, error)
	RemoveCartItem(ctx context.Context, itemID int) error
}

type Cart struct {
	mu     sync.Mutex
	count  int
	api    API
	logger interfaces.Logger
}

func New(api API, logger interfaces.Logger) *Cart {
	if logger == nil {
		logger = null.Logger()
	}
	return &Cart{api: api, logger: logger}
}

// Count returns the cached count without contacting the server
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Refresh fetches the cart and updates the count. On failure the previous
// count is kept and the error is returned.
func (c *Cart) Refresh(ctx context.Context) (int, error) {
	items, err := c.api.CartItems(ctx)
	if err != nil {
		c.logger.Warning(3200, "cart refresh failed", fields.NewFields(fields.NewField("error", err.Error())))
		return c.Count(), fmt.Errorf("refreshing cart: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.count = len(items)
	return c.count, nil
}

// Add adds a product and refreshes the count
func (c *Cart) Add(ctx context.Context, productID, quantity int) (schema.CartItem, error) {
	item, err := c.api.AddCartItem(ctx, productID, quantity)
	if err != nil {
		return schema.CartItem{}, err
	}
	c.logger.Debugf(3201, "added product %d to cart as item %d", productID, item.ID)

	_, err = c.Refresh(ctx)
	return item, err
}

// Remove removes a cart item and refreshes the count
func (c *Cart) Remove(ctx context.Context, itemID int) error {
	if err := c.api.RemoveCartItem(ctx, itemID); err != nil {
		return err
	}
	c.logger.Debugf(3202, "removed cart item %d", itemID)

	_, err := c.Refresh(ctx)
	return err
}
