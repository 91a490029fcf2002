/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

import (
	"github.com/UnifyEM/storefront/common/interfaces"
)

const (
	ConfigServerSet        = "server_config"
	ConfigLogFile          = "log_file"
	ConfigLogStdout        = "log_stdout"
	ConfigLogRetention     = "log_retention"
	ConfigListen           = "listen"
	ConfigDataPath         = "data_path"
	ConfigHTTPTimeout      = "http_timeout"
	ConfigHTTPIdleTimeout  = "http_idle_timeout"
	ConfigMaxConcurrent    = "max_concurrent"
	ConfigPenaltyBoxMin    = "penalty_box_min"
	ConfigPenaltyBoxMax    = "penalty_box_max"
	ConfigHandlerTimeout   = "handler_timeout"
	ConfigAccessTokenLife  = "access_token_life"
	ConfigRefreshTokenLife = "refresh_token_life"
	ConfigUserCacheTTL     = "user_cache_ttl"
	ConfigTLSCert          = "tls_cert"
	ConfigTLSKey           = "tls_key"
	ConfigHealthCheck      = "health_check"

	ConfigPrivate = "server_private"
	ConfigJWTKey  = "jwt_key"
)

// setDefaults makes sure the sets exist, sets default values, and constraints
func setDefaults(c interfaces.Config) (interfaces.Parameters, interfaces.Parameters) {

	// Server configuration set
	sc := c.NewSet(ConfigServerSet)
	sc.SetConstraint(ConfigLogFile, 0, 0, "")                 // set by Config() if empty
	sc.SetConstraint(ConfigLogStdout, 0, 0, true)             // by default log to stdout
	sc.SetConstraint(ConfigLogRetention, 1, 0, 30)            // days
	sc.SetConstraint(ConfigListen, 0, 0, "127.0.0.1:8000")    // listen address
	sc.SetConstraint(ConfigDataPath, 0, 0, "")                // data path (database and logs)
	sc.SetConstraint(ConfigHTTPTimeout, 1, 0, 30)             // seconds
	sc.SetConstraint(ConfigHTTPIdleTimeout, 1, 0, 30)         // seconds
	sc.SetConstraint(ConfigMaxConcurrent, 0, 0, 100)          // concurrent connections, others will wait
	sc.SetConstraint(ConfigPenaltyBoxMin, 0, 0, 100)          // milliseconds
	sc.SetConstraint(ConfigPenaltyBoxMax, 0, 0, 500)          // milliseconds
	sc.SetConstraint(ConfigHandlerTimeout, 1, 0, 30)          // seconds
	sc.SetConstraint(ConfigAccessTokenLife, 1, 0, 5)          // minutes
	sc.SetConstraint(ConfigRefreshTokenLife, 1, 0, 1440)      // minutes
	sc.SetConstraint(ConfigUserCacheTTL, 0, 0, 60)            // seconds, 0 disables
	sc.SetConstraint(ConfigTLSCert, 0, 0, "")                 // TLS is off unless both are set
	sc.SetConstraint(ConfigTLSKey, 0, 0, "")
	sc.SetConstraint(ConfigHealthCheck, 0, 0, true)           // GET /health without authentication

	// Protected configuration items
	sp := c.NewSet(ConfigPrivate)
	sp.SetConstraint(ConfigJWTKey, 0, 0, "")

	return sc, sp
}
