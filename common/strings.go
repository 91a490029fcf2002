/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package common

import (
	"strings"
)

// SingleLine normalizes text received from a server so that it can be logged
// or displayed on one line:
//   - line breaks become " | "
//   - runs of whitespace collapse to a single space
//   - the result is truncated to max runes (0 means no limit) with "..." appended
func SingleLine(s string, max int) string {
	if s == "" {
		return s
	}

	replacer := strings.NewReplacer(
		"\r\n", " | ",
		"\n", " | ",
		"\r", " | ",
	)
	s = strings.Join(strings.Fields(replacer.Replace(s)), " ")

	if max > 0 {
		runes := []rune(s)
		if len(runes) > max {
			s = string(runes[:max]) + "..."
		}
	}
	return s
}
