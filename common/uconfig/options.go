/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package uconfig

import (
	"errors"
	"io/fs"
	"os"
)

// WithLoadOrCreate loads filename if it exists and creates it otherwise.
// A file that exists but cannot be parsed is an error; it is never overwritten.
func WithLoadOrCreate(filename string) func(*UConfig) error {
	return func(c *UConfig) error {
		_, err := os.Stat(filename)
		if errors.Is(err, fs.ErrNotExist) {
			return c.Save(filename)
		}
		return c.Load(filename)
	}
}
