/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package status

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/UnifyEM/storefront/cli/app"
	"github.com/UnifyEM/storefront/cli/display"
	"github.com/UnifyEM/storefront/cli/session"
)

func Register(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "show the session and cart",
		Long:  "show the server, who is logged in, the number of items in the cart, and when the tokens expire",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			display.ErrorWrapper(app.Run(opts, execute))
			return nil
		},
	}
}

func execute(ctx context.Context, a *app.App) error {
	info := display.StatusInfo{Server: a.Config.ServerURL}

	// A profile failure is shown but does not stop the dashboard
	if err := a.Session.Load(ctx); err != nil {
		display.ErrorWrapper(err)
	}

	state, user := a.Session.State()
	info.State = state.String()
	info.User = user

	if state == session.Authenticated {
		if n, err := a.Cart.Refresh(ctx); err == nil {
			info.CartCount = n
			info.CartKnown = true
		}
	}

	if pair, ok := a.Store.Get(); ok {
		info.AccessExpiry, _ = display.TokenExpiry(pair.Access)
		info.RefreshExpiry, _ = display.TokenExpiry(pair.Refresh)
	}

	return a.Print(info, func(w io.Writer) { display.Status(w, info) })
}
