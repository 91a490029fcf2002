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

	"github.com/UnifyEM/storefront/common/boltdb"
	"github.com/UnifyEM/storefront/common/schema"
)

// AddProduct stores a new product and returns it with its id
func (d *Data) AddProduct(sku, name string, price schema.Money) (schema.Product, error) {
	if sku == "" || price < 0 {
		return schema.Product{}, errors.New("a SKU and a price of at least 0 are required")
	}

	id, err := d.database.NextID(BucketProducts)
	if err != nil {
		return schema.Product{}, err
	}

	p := schema.Product{ID: id, SKU: sku, Name: name, Price: price}
	if err = d.database.SetData(BucketProducts, boltdb.IDKey(id), p); err != nil {
		return schema.Product{}, fmt.Errorf("failed to store product: %w", err)
	}
	return p, nil
}

// GetProduct retrieves a product by id
func (d *Data) GetProduct(id int) (schema.Product, error) {
	var p schema.Product
	err := d.database.GetData(BucketProducts, boltdb.IDKey(id), &p)
	if errors.Is(err, boltdb.ErrKeyNotFound) {
		return schema.Product{}, ErrProductNotFound
	}
	return p, err
}

// Products returns the catalog ordered by id. A non-empty search matches
// the SKU or name, ignoring case.
func (d *Data) Products(search string) ([]schema.Product, error) {
	search = strings.ToLower(strings.TrimSpace(search))
	products := make([]schema.Product, 0)

	err := d.database.ForEach(BucketProducts, func(_, value []byte) error {
		var p schema.Product
		if err := json.Unmarshal(value, &p); err != nil {
			return err
		}
		if search == "" ||
			strings.Contains(strings.ToLower(p.SKU), search) ||
			strings.Contains(strings.ToLower(p.Name), search) {
			products = append(products, p)
		}
		return nil
	})
	return products, err
}

// AddDiscount stores a coupon code. Percentage must be between 1 and 100.
func (d *Data) AddDiscount(code string, percentage int) (schema.Discount, error) {
	code = strings.TrimSpace(code)
	if code == "" || percentage < 1 || percentage > 100 {
		return schema.Discount{}, errors.New("a code and a percentage between 1 and 100 are required")
	}

	if _, err := d.FindDiscount(code); err == nil {
		return schema.Discount{}, fmt.Errorf("discount %s already exists", code)
	}

	id, err := d.database.NextID(BucketDiscounts)
	if err != nil {
		return schema.Discount{}, err
	}

	discount := schema.Discount{ID: id, Code: code, Percentage: percentage}
	if err = d.database.SetData(BucketDiscounts, boltdb.IDKey(id), discount); err != nil {
		return schema.Discount{}, fmt.Errorf("failed to store discount: %w", err)
	}
	return discount, nil
}

// Discounts returns every coupon code ordered by id
func (d *Data) Discounts() ([]schema.Discount, error) {
	discounts := make([]schema.Discount, 0)
	err := d.database.ForEach(BucketDiscounts, func(_, value []byte) error {
		var discount schema.Discount
		if err := json.Unmarshal(value, &discount); err != nil {
			return err
		}
		discounts = append(discounts, discount)
		return nil
	})
	return discounts, err
}

// FindDiscount looks up a coupon code. Codes are case-sensitive.
func (d *Data) FindDiscount(code string) (schema.Discount, error) {
	discounts, err := d.Discounts()
	if err != nil {
		return schema.Discount{}, err
	}
	for _, discount := range discounts {
		if discount.Code == code {
			return discount, nil
		}
	}
	return schema.Discount{}, ErrInvalidCoupon
}

// Seed adds a small catalog and a few coupon codes if there are none.
// It returns the number of products and discounts added.
func (d *Data) Seed() (int, int, error) {
	var nProducts, nDiscounts int

	products, err := d.Products("")
	if err != nil {
		return 0, 0, err
	}
	if len(products) == 0 {
		for _, p := range seedProducts {
			if _, err = d.AddProduct(p.SKU, p.Name, p.Price); err != nil {
				return nProducts, nDiscounts, err
			}
			nProducts++
		}
	}

	discounts, err := d.Discounts()
	if err != nil {
		return nProducts, 0, err
	}
	if len(discounts) == 0 {
		for _, discount := range seedDiscounts {
			if _, err = d.AddDiscount(discount.Code, discount.Percentage); err != nil {
				return nProducts, nDiscounts, err
			}
			nDiscounts++
		}
	}
	return nProducts, nDiscounts, nil
}

var seedProducts = []schema.Product{
	{SKU: "SKU-0001", Name: "Espresso beans 1kg", Price: 2450},
	{SKU: "SKU-0002", Name: "Filter papers", Price: 399},
	{SKU: "SKU-0003", Name: "Pour-over kettle", Price: 4999},
	{SKU: "SKU-0004", Name: "Burr grinder", Price: 12900},
	{SKU: "SKU-0005", Name: "Ceramic mug", Price: 1250},
}

var seedDiscounts = []schema.Discount{
	{Code: "SAVE10", Percentage: 10},
	{Code: "WELCOME15", Percentage: 15},
	{Code: "HALFOFF", Percentage: 50},
}
