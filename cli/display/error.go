/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package display

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/UnifyEM/storefront/cli/apierr"
	"github.com/UnifyEM/storefront/cli/global"
)

// ErrorWrapper is a simple wrapper for CLI error handling.
// If there is an error, it prints it to stderr.
func ErrorWrapper(err error) {
	Error(os.Stderr, err)
}

// Error writes err to w with a hint when the user has to log in
func Error(w io.Writer, err error) {
	if err == nil {
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %s\n", err.Error())

	switch {
	case errors.Is(err, apierr.ErrAuthorizationRevoked), errors.Is(err, apierr.ErrAuthorizationExpired):
		_, _ = fmt.Fprintf(w, "Please run '%s login'\n", global.Name)
	case errors.Is(err, apierr.ErrNetwork):
		_, _ = fmt.Fprintf(w, "Unable to load data. Check the server URL with '%s config get'\n", global.Name)
	}
}
