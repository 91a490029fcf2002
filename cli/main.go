//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// See LICENSE file for details
//

package main

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/UnifyEM/storefront/cli/app"
	"github.com/UnifyEM/storefront/cli/functions/cart"
	configCmd "github.com/UnifyEM/storefront/cli/functions/config"
	"github.com/UnifyEM/storefront/cli/functions/coupon"
	"github.com/UnifyEM/storefront/cli/functions/discounts"
	"github.com/UnifyEM/storefront/cli/functions/login"
	"github.com/UnifyEM/storefront/cli/functions/logout"
	"github.com/UnifyEM/storefront/cli/functions/order"
	"github.com/UnifyEM/storefront/cli/functions/products"
	"github.com/UnifyEM/storefront/cli/functions/status"
	"github.com/UnifyEM/storefront/cli/functions/version"
	"github.com/UnifyEM/storefront/cli/global"
)

func main() {
	if err := newRoot(&app.Options{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRoot(opts *app.Options) *cobra.Command {
	// Get the name of this binary, eliminating any path information
	progName := os.Args[0]
	progName = progName[strings.LastIndex(progName, "/")+1:]

	rootCmd := &cobra.Command{
		Use:   progName,
		Short: global.Description,
		Long:  global.LongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("a subcommand is required")
		},
	}

	// Disable completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&opts.ConfigDir, "config-dir", "",
		"configuration directory (default ~/"+global.ConfigDir+")")
	rootCmd.PersistentFlags().BoolVar(&opts.JSON, "json", false, "print results as JSON")

	// Add the functions
	rootCmd.AddCommand(cart.Register(opts))
	rootCmd.AddCommand(configCmd.Register(opts))
	rootCmd.AddCommand(coupon.Register(opts))
	rootCmd.AddCommand(discounts.Register(opts))
	rootCmd.AddCommand(login.Register(opts))
	rootCmd.AddCommand(logout.Register(opts))
	rootCmd.AddCommand(order.Register(opts))
	rootCmd.AddCommand(products.Register(opts))
	rootCmd.AddCommand(status.Register(opts))
	rootCmd.AddCommand(version.Register(opts))

	return rootCmd
}
