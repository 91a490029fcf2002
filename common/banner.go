//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// See LICENSE file for details
//

package common

import (
	"fmt"
	"io"

	"github.com/common-nighthawk/go-figure"
)

// Logo writes name in large ASCII letters
func Logo(w io.Writer, name string) {
	_, _ = fmt.Fprintln(w, figure.NewFigure(name, "cybermedium", true).String())
}

// Banner writes the program name, version, and legal notice to w
func Banner(w io.Writer, program, version string, build int) {
	_, _ = fmt.Fprintf(w, "%s version %s (build %d)\n", program, version, build)
	_, _ = fmt.Fprintf(w, "Copyright 2024-2026 Tenebris Technologies Inc.\n")
	_, _ = fmt.Fprintf(w, "\nLicense:\n")
	_, _ = fmt.Fprintf(w, "  This software is licenced under the Apache License, Version 2.0.\n")
	_, _ = fmt.Fprintf(w, "  A copy of the license can be found in the LICENSE file.\n")
	_, _ = fmt.Fprintf(w, "\nOpen Source:\n")
	_, _ = fmt.Fprintf(w, "  This software relies upon third-party open source packages.\n")
	_, _ = fmt.Fprintf(w, "  Please refer to go.mod for the complete list.\n")
	_, _ = fmt.Fprintf(w, "\n")
}
