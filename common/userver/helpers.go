//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package userver

import (
	"net"
	"net/http"
	"strings"
)

// RemoteIP returns the client address for logging and the penalty box. The
// first X-Forwarded-For entry wins when it parses as an address, with or
// without a port; otherwise the connection's address is used.
func RemoteIP(req *http.Request) string {
	if first, _, _ := strings.Cut(req.Header.Get("X-Forwarded-For"), ","); first != "" {
		if ip := hostIP(strings.TrimSpace(first)); ip != "" {
			return ip
		}
	}

	if ip := hostIP(req.RemoteAddr); ip != "" {
		return ip
	}
	return req.RemoteAddr
}

// hostIP strips an optional port and brackets from addr and returns it only if it is an IP
func hostIP(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	addr = strings.Trim(addr, "[]")
	if net.ParseIP(addr) == nil {
		return ""
	}
	return addr
}
