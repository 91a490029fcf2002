/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

import (
	"crypto/rand"
	"fmt"
	"io"
	"path/filepath"

	"github.com/UnifyEM/storefront/common/interfaces"
	"github.com/UnifyEM/storefront/common/uconfig"
)

type ServerConfig struct {
	C  interfaces.Config     // Config object
	SC interfaces.Parameters // Server configuration
	SP interfaces.Parameters // Server private configuration
}

// Config loads or creates dir/sfsandbox.json, sets defaults, and makes sure
// that the data directory and JWT key exist. An empty dir means ~/.sfsandbox.
func Config(dir string) (*ServerConfig, error) {
	var err error

	if dir == "" {
		dir, err = uconfig.UserDir(DataDir)
		if err != nil {
			return nil, fmt.Errorf("unable to open or create ~/%s: %w", DataDir, err)
		}
	} else if !uconfig.CreateDir(dir) {
		return nil, fmt.Errorf("unable to open or create %s", dir)
	}

	c := &ServerConfig{}
	c.C, err = uconfig.New(uconfig.WithLoadOrCreate(filepath.Join(dir, ConfigFile)))
	if err != nil {
		return nil, err
	}

	// SC is the general server configuration set
	// SP is the private server configuration set
	c.SC, c.SP = setDefaults(c.C)

	// Make sure there is a JWT signing key
	if len(c.SP.Get(ConfigJWTKey).Base64()) == 0 {
		key, err := randomBytes(TokenLength)
		if err != nil {
			return nil, fmt.Errorf("unable to generate JWT key: %w", err)
		}
		c.SP.Set(ConfigJWTKey, key)
	}

	// Check for a data path
	dPath := c.SC.Get(ConfigDataPath).String()
	if dPath == "" {
		dPath = dir
		c.SC.Set(ConfigDataPath, dPath)
	}

	// The directory could be in the config file but have been deleted
	if !uconfig.CreateDir(dPath) {
		return nil, fmt.Errorf("unable to open or create %s", dPath)
	}

	// Check for logfile and if not set one
	if c.SC.Get(ConfigLogFile).String() == "" {
		lPath := uconfig.CreateSubDir(dPath, "logs")
		if lPath == "" {
			return nil, fmt.Errorf("unable to create log directory in %s", dPath)
		}
		c.SC.Set(ConfigLogFile, filepath.Join(lPath, LogName+".log"))
	}

	if err = c.C.Checkpoint(); err != nil {
		return nil, fmt.Errorf("unable to checkpoint config: %w", err)
	}
	return c, nil
}

// DBPath returns the location of the database
func (c *ServerConfig) DBPath() string {
	return filepath.Join(c.SC.Get(ConfigDataPath).String(), DBFile)
}

// JWTKey returns the HS256 signing key
func (c *ServerConfig) JWTKey() []byte {
	return c.SP.Get(ConfigJWTKey).Base64()
}

func (c *ServerConfig) Checkpoint() error {
	return c.C.Checkpoint()
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}
