//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// See LICENSE file for details
//

package global

import (
	"io"

	"github.com/UnifyEM/storefront/common"
)

func Banner(w io.Writer) {
	common.Banner(w, Description, Version, Build)
}
