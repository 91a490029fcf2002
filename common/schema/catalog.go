//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Product is an entry in EndpointProducts
type Product struct {
	ID    int    `json:"id"`
	SKU   string `json:"sku" example:"SKU-0001"`
	Name  string `json:"name,omitempty" example:"Espresso beans"`
	Price Money  `json:"price" example:"12.50"`
}

// Discount is an entry in EndpointDiscounts
type Discount struct {
	ID         int    `json:"id"`
	Code       string `json:"code" example:"SAVE10"`
	Percentage int    `json:"percentage" example:"10"`
}

// List decodes a collection that is either a bare JSON array or a
// paginated object of the form {"count": n, "results": [...]}.
// It always encodes as a bare array.
type List[T any] []T

type page[T any] struct {
	Results []T `json:"results"`
}

func (l *List[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty list")
	}

	switch data[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
	case '{':
		var p page[T]
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*l = p.Results
	case 'n':
		*l = nil
	default:
		return fmt.Errorf("expected array or object, got %q", data[0])
	}
	return nil
}

func (l List[T]) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]T(l))
}
