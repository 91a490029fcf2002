/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/UnifyEM/storefront/common/interfaces"
	"github.com/UnifyEM/storefront/common/uconfig"
)

// CLIConfig holds the configuration object and the resolved settings
type CLIConfig struct {
	C             interfaces.Config     // Config object
	CC            interfaces.Parameters // CLI configuration set
	Dir           string
	ServerURL     string
	CredentialsDB string
	HTTPTimeout   time.Duration
	LogFile       string
	Debug         bool
}

// Config loads (or creates) dir/config.json, applies defaults, and then the
// environment. The .env file in dir is loaded first; variables already set
// in the environment take precedence over it. An empty dir means ~/.storefront.
func Config(dir string) (*CLIConfig, error) {
	var err error

	if dir == "" {
		dir, err = uconfig.UserDir(ConfigDir)
		if err != nil {
			return nil, fmt.Errorf("unable to open or create ~/%s: %w", ConfigDir, err)
		}
	} else if !uconfig.CreateDir(dir) {
		return nil, fmt.Errorf("unable to open or create %s", dir)
	}

	c := &CLIConfig{Dir: dir}
	c.C, err = uconfig.New(uconfig.WithLoadOrCreate(filepath.Join(dir, ConfigFile)))
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	c.CC = setDefaults(c.C, dir)

	// A missing .env file is normal
	if err = godotenv.Load(filepath.Join(dir, EnvFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", EnvFile, err)
	}

	c.resolve()
	return c, nil
}

// Reload re-reads the settings after the configuration set was changed
func (c *CLIConfig) Reload() {
	c.resolve()
}

func (c *CLIConfig) resolve() {
	c.ServerURL = c.CC.Get(ConfigServerURL).String()
	if env := os.Getenv(EnvServer); env != "" {
		c.ServerURL = env
	}
	c.ServerURL = strings.TrimRight(c.ServerURL, "/")

	c.CredentialsDB = c.CC.Get(ConfigCredentialsDB).String()
	c.HTTPTimeout = c.CC.Get(ConfigHTTPTimeout).Seconds()
	c.LogFile = c.CC.Get(ConfigLogFile).String()
	c.Debug = c.CC.Get(ConfigDebug).Bool()
}

// EnvCredentials returns the username and password from the environment, if set
func EnvCredentials() (string, string) {
	return os.Getenv(EnvUser), os.Getenv(EnvPass)
}

func setDefaults(c interfaces.Config, dir string) interfaces.Parameters {
	cc := c.NewSet(ConfigSet)
	cc.SetDefault(ConfigServerURL, DefaultServer)
	cc.SetDefault(ConfigCredentialsDB, filepath.Join(dir, CredentialsDB))
	cc.SetConstraint(ConfigHTTPTimeout, 1, 600, DefaultTimeout)
	cc.SetDefault(ConfigLogFile, "")
	cc.SetDefault(ConfigDebug, false)
	return cc
}
