/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package uconfig

import (
	"encoding/json"
	"fmt"
	"io"
)

// Dump writes the configuration, including defaults and constraints, to w
func (c *UConfig) Dump(w io.Writer) error {
	c.mu.Lock()
	data, err := json.MarshalIndent(c.Sets, "", "  ")
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("serialization error: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
