/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package cart

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/UnifyEM/storefront/cli/app"
	"github.com/UnifyEM/storefront/cli/display"
)

func Register(opts *app.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart <list|add|remove|summary|count>",
		Short: "cart commands",
		Long:  "list, add to, or remove from the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Assume list
				display.ErrorWrapper(app.Run(opts, list))
				return nil
			}
			return fmt.Errorf("unknown subcommand: %s", args[0])
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "list the items in the cart",
		Long:  "list the items in the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			display.ErrorWrapper(app.Run(opts, list))
			return nil
		},
	})

	var quantity int
	add := &cobra.Command{
		Use:   "add <product id> [-q quantity]",
		Short: "add a product to the cart",
		Long:  "add a product to the cart; see 'products' for ids",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := parseID(args[0])
			if err != nil {
				return err
			}
			display.ErrorWrapper(app.Run(opts, func(ctx context.Context, a *app.App) error {
				return addItem(ctx, a, productID, quantity)
			}))
			return nil
		},
	}
	add.Flags().IntVarP(&quantity, "quantity", "q", 1, "quantity")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <item id>",
		Short: "remove an item from the cart",
		Long:  "remove an item from the cart; the item id is shown by 'cart list'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := parseID(args[0])
			if err != nil {
				return err
			}
			display.ErrorWrapper(app.Run(opts, func(ctx context.Context, a *app.App) error {
				return removeItem(ctx, a, itemID)
			}))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "summary",
		Short: "show the cart subtotal",
		Long:  "show the number of units in the cart and the subtotal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			display.ErrorWrapper(app.Run(opts, summary))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "count",
		Short: "show the number of items in the cart",
		Long:  "show the number of items in the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			display.ErrorWrapper(app.Run(opts, count))
			return nil
		},
	})

	return cmd
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id: %s", s)
	}
	return id, nil
}

func list(ctx context.Context, a *app.App) error {
	if err := a.RequireLogin(ctx); err != nil {
		return err
	}
	items, err := a.API.CartItems(ctx)
	if err != nil {
		return err
	}
	return a.Print(items, func(w io.Writer) { display.CartItems(w, items) })
}

func addItem(ctx context.Context, a *app.App, productID, quantity int) error {
	if err := a.RequireLogin(ctx); err != nil {
		return err
	}
	item, err := a.Cart.Add(ctx, productID, quantity)
	if err != nil && item.ID == 0 {
		return err
	}
	_, _ = fmt.Fprintf(a.Out, "Added to cart as item %d (%d item(s) in cart)\n", item.ID, a.Cart.Count())
	return err
}

func removeItem(ctx context.Context, a *app.App, itemID int) error {
	if err := a.RequireLogin(ctx); err != nil {
		return err
	}
	if err := a.Cart.Remove(ctx, itemID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.Out, "Removed item %d (%d item(s) in cart)\n", itemID, a.Cart.Count())
	return nil
}

func summary(ctx context.Context, a *app.App) error {
	if err := a.RequireLogin(ctx); err != nil {
		return err
	}
	s, err := a.API.CartSummary(ctx)
	if err != nil {
		return err
	}
	return a.Print(s, func(w io.Writer) { display.CartSummary(w, s) })
}

func count(ctx context.Context, a *app.App) error {
	if err := a.RequireLogin(ctx); err != nil {
		return err
	}
	n, err := a.Cart.Refresh(ctx)
	if err != nil {
		return err
	}
	return a.Print(map[string]int{"count": n}, func(w io.Writer) { _, _ = fmt.Fprintln(w, n) })
}
