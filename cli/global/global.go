/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

import "github.com/UnifyEM/storefront/common"

const (
	Version         = common.Version
	Build           = common.Build
	Name            = "sfcli"
	Description     = "Storefront CLI"
	LongDescription = "Storefront command line interface: browse products, manage your cart, and place orders"
	Copyright       = "Copyright (c) 2024-2026 Tenebris Technologies Inc."
)

// Configuration directory (under the user's home), file names, and environment variables
const (
	ConfigDir      = ".storefront"
	ConfigFile     = "config.json"
	EnvFile        = ".env"
	CredentialsDB  = "credentials.db"
	LogName        = "sfcli.log"
	EnvServer      = "SF_SERVER"
	EnvUser        = "SF_USER"
	EnvPass        = "SF_PASS"
	DefaultServer  = "http://127.0.0.1:8000"
	DefaultTimeout = 30
)

// Configuration set and keys
const (
	ConfigSet           = "cli_config"
	ConfigServerURL     = "server_url"
	ConfigCredentialsDB = "credentials_db"
	ConfigHTTPTimeout   = "http_timeout"
	ConfigLogFile       = "log_file"
	ConfigDebug         = "debug"
)

// ConfigKeys lists the keys that "config set" accepts
var ConfigKeys = []string{ConfigServerURL, ConfigCredentialsDB, ConfigHTTPTimeout, ConfigLogFile, ConfigDebug}
