/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package logout

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/UnifyEM/storefront/cli/app"
	"github.com/UnifyEM/storefront/cli/display"
)

func Register(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "log out",
		Long:  "forget the stored tokens; the server is not contacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			display.ErrorWrapper(app.Run(opts, func(_ context.Context, a *app.App) error {
				a.Session.Logout()
				_, _ = fmt.Fprintln(a.Out, "Logged out")
				return nil
			}))
			return nil
		},
	}
}
