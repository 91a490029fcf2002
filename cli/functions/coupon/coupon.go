/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package coupon

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/UnifyEM/storefront/cli/app"
	"github.com/UnifyEM/storefront/cli/display"
)

func Register(opts *app.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coupon <apply>",
		Short: "coupon commands",
		Long:  "price the cart with a coupon code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("a subcommand is required")
			}
			return fmt.Errorf("unknown subcommand: %s", args[0])
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "apply <code>",
		Short: "apply a coupon code",
		Long:  "show the cart total with a coupon code applied; the cart is not changed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]
			display.ErrorWrapper(app.Run(opts, func(ctx context.Context, a *app.App) error {
				if err := a.RequireLogin(ctx); err != nil {
					return err
				}
				result, err := a.API.ApplyCoupon(ctx, code)
				if err != nil {
					return err
				}
				return a.Print(result, func(w io.Writer) { display.Coupon(w, code, result) })
			}))
			return nil
		},
	})
	return cmd
}
