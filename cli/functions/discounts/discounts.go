/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package discounts

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/UnifyEM/storefront/cli/app"
	"github.com/UnifyEM/storefront/cli/display"
)

func Register(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "discounts",
		Short: "list coupon codes",
		Long:  "list the coupon codes that can be applied to the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			display.ErrorWrapper(app.Run(opts, func(ctx context.Context, a *app.App) error {
				discounts, err := a.API.Discounts(ctx)
				if err != nil {
					return err
				}
				return a.Print(discounts, func(w io.Writer) { display.Discounts(w, discounts) })
			}))
			return nil
		},
	}
}
