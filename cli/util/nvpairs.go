//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// See LICENSE file for details
//

package util

import (
	"net/url"
	"sort"
	"strings"
)

type NVPairs struct {
	Pairs map[string]string
}

// NewNVPairs parses a list of strings for key=value pairs and returns them in a map.
// Keys are lower-cased; arguments without '=' are ignored.
func NewNVPairs(args []string) *NVPairs {
	r := NVPairs{
		Pairs: make(map[string]string),
	}

	for _, arg := range args {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) == 2 && parts[0] != "" {
			r.Pairs[strings.ToLower(parts[0])] = parts[1]
		}
	}

	return &r
}

// Add sets a pair, ignoring empty values
func (p *NVPairs) Add(name, value string) *NVPairs {
	if value != "" {
		p.Pairs[name] = value
	}
	return p
}

// Keys returns the names in sorted order
func (p *NVPairs) Keys() []string {
	keys := make([]string, 0, len(p.Pairs))
	for k := range p.Pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Query returns the pairs as an encoded query string with a leading '?', or "" if there are none
func (p *NVPairs) Query() string {
	if p == nil || len(p.Pairs) == 0 {
		return ""
	}
	v := url.Values{}
	for n, val := range p.Pairs {
		v.Set(n, val)
	}
	return "?" + v.Encode()
}
