/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package version

import (
	"github.com/spf13/cobra"

	"github.com/UnifyEM/storefront/cli/app"
	"github.com/UnifyEM/storefront/cli/display"
	"github.com/UnifyEM/storefront/cli/global"
)

type versionInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Build   int    `json:"build"`
}

// Register does not open the configuration so that version works without a home directory
func Register(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "version, copyright, and legal",
		Long:  "display version, copyright, and legal information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.JSON {
				return display.Pretty(cmd.OutOrStdout(), versionInfo{global.Name, global.Version, global.Build})
			}
			global.Banner(cmd.OutOrStdout())
			return nil
		},
	}
}
