/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package products

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/UnifyEM/storefront/cli/app"
	"github.com/UnifyEM/storefront/cli/display"
)

func Register(opts *app.Options) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "products [--search term]",
		Short: "list products",
		Long:  "list the products in the catalog, optionally filtered by SKU or name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			display.ErrorWrapper(app.Run(opts, func(ctx context.Context, a *app.App) error {
				products, err := a.API.Products(ctx, search)
				if err != nil {
					return err
				}
				return a.Print(products, func(w io.Writer) { display.Products(w, products) })
			}))
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "search term")
	return cmd
}
