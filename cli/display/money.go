//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// See LICENSE file for details
//

package display

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/UnifyEM/storefront/common/schema"
)

var (
	printerMu sync.RWMutex
	printer   = message.NewPrinter(language.English)
)

// SetLocale selects number formatting from a POSIX locale such as "de_DE.UTF-8".
// Unknown or empty locales fall back to English.
func SetLocale(locale string) {
	locale, _, _ = strings.Cut(locale, ".")
	locale = strings.ReplaceAll(locale, "_", "-")

	tag := language.English
	if locale != "" && locale != "C" && locale != "POSIX" {
		if t, err := language.Parse(locale); err == nil {
			tag = t
		}
	}

	printerMu.Lock()
	defer printerMu.Unlock()
	printer = message.NewPrinter(tag)
}

// Amount formats an amount with two decimals and the locale's separators
func Amount(m schema.Money) string {
	printerMu.RLock()
	defer printerMu.RUnlock()
	return printer.Sprintf("%.2f", float64(m)/100)
}
