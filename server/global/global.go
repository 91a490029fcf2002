//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// See LICENSE file for details
//

package global

import "github.com/UnifyEM/storefront/common"

const (
	Version     = common.Version
	Build       = common.Build
	Name        = "sfsandbox"
	LogName     = "sfsandbox"
	Description = "Storefront API sandbox"
	DataDir     = ".sfsandbox"  // under the user's home directory
	ConfigFile  = "sfsandbox.json"
	DBFile      = "sandbox.db"
	TaskTicker  = 60 // seconds between task runs
	TokenLength = 64 // Length of the JWT signing key
)

var (
	Debug          = false
	ListenOverride = ""
)
