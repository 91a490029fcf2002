/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package fields provides name/value pairs that are attached to log events.
package fields

import (
	"fmt"
	"strings"

	"github.com/UnifyEM/storefront/common/interfaces"
)

// Fields is an ordered list of name/value pairs
type Fields struct {
	Fields []Field
}

type Field struct {
	K string
	V any
}

// Name returns the key of the field to implement the NVPair interface
func (f Field) Name() string {
	return f.K
}

// Value returns the value of the field to implement the NVPair interface
func (f Field) Value() any {
	return f.V
}

func NewFields(fields ...Field) *Fields {
	return &Fields{Fields: fields}
}

func NewField(key string, value any) Field {
	return Field{K: key, V: value}
}

// Secret returns a field that only reveals the last four characters of value.
// Tokens and passwords must always be logged through Secret.
func Secret(key string, value string) Field {
	if value == "" {
		return Field{K: key, V: "<empty>"}
	}
	if len(value) <= 8 {
		return Field{K: key, V: "****"}
	}
	return Field{K: key, V: "****" + value[len(value)-4:]}
}

func (f *Fields) Append(fields ...Field) {
	f.Fields = append(f.Fields, fields...)
}

func (f *Fields) AppendKV(key string, value any) {
	f.Fields = append(f.Fields, Field{K: key, V: value})
}

// ToText converts the Fields to "k=v k=v"
func (f *Fields) ToText() string {
	if f == nil || len(f.Fields) == 0 {
		return ""
	}

	parts := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		parts = append(parts, fmt.Sprintf("%s=%v", field.K, field.V))
	}
	return strings.Join(parts, " ")
}

// ToPairs implements the ToPairs method
func (f *Fields) ToPairs() []interfaces.NVPair {
	if f == nil {
		return nil
	}
	pairs := make([]interfaces.NVPair, len(f.Fields))
	for i, field := range f.Fields {
		pairs[i] = field
	}
	return pairs
}
