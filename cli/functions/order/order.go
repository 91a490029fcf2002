/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package order

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
		Use:   "order <place|list>",
		Short: "order commands",
		Long:  "place an order for the contents of the cart, or list past orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("a subcommand is required")
			}
			return fmt.Errorf("unknown subcommand: %s", args[0])
		},
	}

	var coupon string
	place := &cobra.Command{
		Use:   "place [--coupon code]",
		Short: "place an order",
		Long:  "place an order for the contents of the cart; the cart is emptied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			display.ErrorWrapper(app.Run(opts, func(ctx context.Context, a *app.App) error {
				if err := a.RequireLogin(ctx); err != nil {
					return err
				}
				o, err := a.API.PlaceOrder(ctx, coupon)
				if err != nil {
					return err
				}
				_, _ = a.Cart.Refresh(ctx)
				return a.Print(o, func(w io.Writer) { display.Order(w, o) })
			}))
			return nil
		},
	}
	place.Flags().StringVarP(&coupon, "coupon", "c", "", "coupon code")
	cmd.AddCommand(place)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "list orders",
		Long:  "list your orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			display.ErrorWrapper(app.Run(opts, func(ctx context.Context, a *app.App) error {
				if err := a.RequireLogin(ctx); err != nil {
					return err
				}
				orders, err := a.API.Orders(ctx)
				if err != nil {
					return err
				}
				return a.Print(orders, func(w io.Writer) { display.Orders(w, orders) })
			}))
			return nil
		},
	})
	return cmd
}
