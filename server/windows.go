//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

// Code for windows
//go:build windows

package main

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows/svc"

	"github.com/UnifyEM/storefront/server/global"
)

// launch handles what would usually be in main() in an OS-specific way.
// Under the service control manager there is no console, so start directly.
func launch(args []string) int {
	isSvc, err := svc.IsWindowsService()
	if err != nil {
		fmt.Printf("Failed to determine if we are running in an interactive session: %v\n", err)
		return 1
	}

	if isSvc {
		if conf, err = global.Config(os.Getenv(envDataDir)); err != nil {
			return 1
		}
		return startService()
	}
	return console(args)
}
