/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package uconfig

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/UnifyEM/storefront/common/uconfig/params"
)

// loadFile replaces the sets with those found in c.file. Constraints and
// defaults already registered on a set are preserved; stored values win.
func (c *UConfig) loadFile() error {
	data, err := os.ReadFile(c.file)
	if err != nil {
		return fmt.Errorf("error opening file %s: %w", c.file, err)
	}

	var stored struct {
		Sets map[string]*params.Params `json:"sets"`
	}
	if err = json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("deserialization error: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for name, set := range stored.Sets {
		if set == nil {
			continue
		}
		existing, ok := c.Sets[name]
		if !ok {
			c.Sets[name] = set
			continue
		}
		existing.Merge(set)
	}
	return nil
}
