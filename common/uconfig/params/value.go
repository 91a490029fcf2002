//
// Copyright (c) 2025-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package params

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/UnifyEM/storefront/common/interfaces"
)

// Ensure Value implements the ParameterValue interface
var _ interfaces.ParameterValue = (*Value)(nil)

type Value string

// NewValue is a convenience function that returns a "" as a ParameterValue
func NewValue() interfaces.ParameterValue {
	return Value("")
}

func (v Value) String() string {
	return string(v)
}

func (v Value) Bytes() []byte {
	return []byte(v.String())
}

// Int returns 0 if the value is not an integer
func (v Value) Int() int {
	i, err := strconv.Atoi(v.String())
	if err != nil {
		return 0
	}
	return i
}

func (v Value) Bool() bool {
	b, err := strconv.ParseBool(v.String())
	if err != nil {
		return false
	}
	return b
}

// Base64 decodes a value stored from a []byte
func (v Value) Base64() []byte {
	data, err := base64.StdEncoding.DecodeString(v.String())
	if err != nil {
		return []byte{}
	}
	return data
}

// Seconds interprets the value as a number of seconds
func (v Value) Seconds() time.Duration {
	return time.Duration(v.Int()) * time.Second
}

// SplitList converts a comma-separated Value to a []string, dropping empty items
func (v Value) SplitList() []string {
	var list []string
	for _, part := range strings.Split(v.String(), ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			list = append(list, part)
		}
	}
	return list
}
