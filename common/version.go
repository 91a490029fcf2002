//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// See LICENSE file for details
//

package common

// Version and Build are shared by sfcli and sfsandbox
const (
	Version = "0.4.2"
	Build   = 31
)
