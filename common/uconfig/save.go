/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package uconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// saveFile writes the configuration to c.file with owner-only permissions
func (c *UConfig) saveFile() error {
	c.mu.Lock()
	data, err := json.MarshalIndent(c, "", "  ")
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("could not encode to JSON: %w", err)
	}

	if !CreateDir(filepath.Dir(c.file)) {
		return fmt.Errorf("could not create directory for %s", c.file)
	}

	// Open the file for writing (create if not exists, truncate if exists)
	err = os.WriteFile(c.file, append(data, '\n'), 0600)
	if err != nil {
		return fmt.Errorf("could not write file: %w", err)
	}

	// WriteFile does not change the mode of an existing file
	_ = os.Chmod(c.file, 0600)
	return nil
}
