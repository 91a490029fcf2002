/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package schema

import (
	"bytes"
	"encoding/json"
)

// ProductRef is the product of a cart item. Depending on the serializer,
// the API sends either the product id or the nested product.
type ProductRef struct {
	ID      int
	Product *Product // nil when only the id was sent
}

func (p *ProductRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var product Product
		if err := json.Unmarshal(data, &product); err != nil {
			return err
		}
		p.ID = product.ID
		p.Product = &product
		return nil
	}

	p.Product = nil
	return json.Unmarshal(data, &p.ID)
}

func (p ProductRef) MarshalJSON() ([]byte, error) {
	if p.Product != nil {
		return json.Marshal(p.Product)
	}
	return json.Marshal(p.ID)
}

// Label returns the SKU (and name) when known, otherwise the product id
func (p ProductRef) Label() string {
	if p.Product == nil {
		return "#" + itoa(p.ID)
	}
	if p.Product.Name == "" {
		return p.Product.SKU
	}
	return p.Product.SKU + " " + p.Product.Name
}

// CartItem is an entry in EndpointCartItems
type CartItem struct {
	ID       int        `json:"id"`
	Product  ProductRef `json:"product"`
	Quantity int        `json:"quantity" example:"1"`
	Total    Money      `json:"total,omitempty" example:"12.50"`
}

// CartItemCreateRequest is sent to EndpointCartItems
type CartItemCreateRequest struct {
	Product  int `json:"product"`
	Quantity int `json:"quantity"`
}

// CartSummary is returned by EndpointCartSummary
type CartSummary struct {
	Subtotal   Money `json:"subtotal" example:"37.50"`
	TotalItems int   `json:"total_items" example:"3"`
}

// CouponRequest is sent to EndpointApplyCoupon
type CouponRequest struct {
	Code string `json:"code"`
}

// CouponResult is returned by EndpointApplyCoupon
type CouponResult struct {
	DiscountedTotal Money `json:"discounted_total" example:"33.75"`
	DiscountAmount  Money `json:"discount_amount" example:"3.75"`
	Subtotal        Money `json:"subtotal" example:"37.50"`
}
