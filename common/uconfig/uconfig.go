/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package uconfig stores named parameter sets in a JSON file. Both sfcli
// (per-user settings) and sfsandbox (server settings and secrets) use it.
package uconfig

import (
	"fmt"
	"sync"

	"github.com/UnifyEM/storefront/common/interfaces"
	"github.com/UnifyEM/storefront/common/uconfig/params"
)

// Ensure UConfig implements the Config interface
var _ interfaces.Config = (*UConfig)(nil)

// UConfig holds all configuration data
type UConfig struct {
	mu   sync.Mutex
	file string                    // Path to configuration file
	Sets map[string]*params.Params `json:"sets"`
}

// Null returns an empty UConfig instance that is never written to disk
func Null() interfaces.Config {
	return &UConfig{Sets: make(map[string]*params.Params)}
}

// New returns an UConfig instance with options applied
func New(options ...func(*UConfig) error) (interfaces.Config, error) {
	c := &UConfig{Sets: make(map[string]*params.Params)}

	// Process options (see options.go)
	for _, op := range options {
		err := op(c)
		if err != nil {
			return nil, err
		}
	}

	return c, nil
}

// File returns the path of the loaded or saved configuration file
func (c *UConfig) File() string {
	return c.file
}

// Save the configuration to the specified file, or the current file if empty
func (c *UConfig) Save(filename string) error {
	if filename != "" {
		c.file = filename
	}

	if c.file == "" {
		return fmt.Errorf("a filename is required")
	}
	return c.saveFile()
}

// Load the configuration from the specified file
func (c *UConfig) Load(filename string) error {
	if filename != "" {
		c.file = filename
	}

	if c.file == "" {
		return fmt.Errorf("a filename is required")
	}
	return c.loadFile()
}

// Checkpoint saves the configuration to the last loaded file
func (c *UConfig) Checkpoint() error {
	if c.file == "" {
		return fmt.Errorf("checkpoint requires a loaded configuration")
	}
	return c.Save("")
}

// GetSet returns a specific configuration set or nil
func (c *UConfig) GetSet(set string) interfaces.Parameters {
	c.mu.Lock()
	defer c.mu.Unlock()

	if value, ok := c.Sets[set]; ok {
		return value
	}
	return nil
}

// NewSet returns the named set, creating it if necessary
func (c *UConfig) NewSet(key string) interfaces.Parameters {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.Sets[key]; !ok {
		c.Sets[key] = params.New()
	}
	return c.Sets[key]
}
