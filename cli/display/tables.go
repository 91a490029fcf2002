/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package display

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/UnifyEM/storefront/common/schema"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func Products(w io.Writer, products []schema.Product) {
	if len(products) == 0 {
		_, _ = fmt.Fprintln(w, "No products found")
		return
	}

	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "ID\tSKU\tNAME\tPRICE")
	for _, p := range products {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.SKU, p.Name, Amount(p.Price))
	}
	_ = tw.Flush()
}

func Discounts(w io.Writer, discounts []schema.Discount) {
	if len(discounts) == 0 {
		_, _ = fmt.Fprintln(w, "No discounts available")
		return
	}

	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "CODE\tDISCOUNT")
	for _, d := range discounts {
		_, _ = fmt.Fprintf(tw, "%s\t%d%%\n", d.Code, d.Percentage)
	}
	_ = tw.Flush()
}

func CartItems(w io.Writer, items []schema.CartItem) {
	if len(items) == 0 {
		_, _ = fmt.Fprintln(w, "Your cart is empty")
		return
	}

	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "ITEM\tPRODUCT\tQTY\tTOTAL")
	for _, item := range items {
		total := "-"
		if item.Total != 0 {
			total = Amount(item.Total)
		} else if item.Product.Product != nil {
			total = Amount(item.Product.Product.Price * schema.Money(item.Quantity))
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", item.ID, item.Product.Label(), item.Quantity, total)
	}
	_ = tw.Flush()
}

func CartSummary(w io.Writer, s schema.CartSummary) {
	tw := newTable(w)
	_, _ = fmt.Fprintf(tw, "Items:\t%d\n", s.TotalItems)
	_, _ = fmt.Fprintf(tw, "Subtotal:\t%s\n", Amount(s.Subtotal))
	_ = tw.Flush()
}

func Coupon(w io.Writer, code string, r schema.CouponResult) {
	tw := newTable(w)
	_, _ = fmt.Fprintf(tw, "Coupon:\t%s\n", code)
	_, _ = fmt.Fprintf(tw, "Subtotal:\t%s\n", Amount(r.Subtotal))
	_, _ = fmt.Fprintf(tw, "Discount:\t-%s\n", Amount(r.DiscountAmount))
	_, _ = fmt.Fprintf(tw, "Total:\t%s\n", Amount(r.DiscountedTotal))
	_ = tw.Flush()
}

func Order(w io.Writer, o schema.Order) {
	_, _ = fmt.Fprintf(w, "Order %s (%s)\n\n", o.OrderID, o.Status)

	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "PRODUCT\tQTY\tTOTAL")
	for _, item := range o.Items {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n", item.Product.SKU, item.Quantity, Amount(item.Total))
	}
	_ = tw.Flush()

	_, _ = fmt.Fprintln(w)
	tw = newTable(w)
	_, _ = fmt.Fprintf(tw, "Subtotal:\t%s\n", Amount(o.Summary.Subtotal))
	if o.Discount != nil {
		_, _ = fmt.Fprintf(tw, "Discount (%s):\t-%s\n", o.Discount.Code, Amount(o.Summary.DiscountAmount))
	}
	_, _ = fmt.Fprintf(tw, "Total:\t%s\n", Amount(o.Summary.Total))
	_ = tw.Flush()
}

func Orders(w io.Writer, orders []schema.Order) {
	if len(orders) == 0 {
		_, _ = fmt.Fprintln(w, "No orders")
		return
	}

	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "ID\tORDER\tSTATUS\tDATE\tTOTAL")
	for _, o := range orders {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			o.ID, o.OrderID, o.Status, o.CreatedAt.Local().Format("2006-01-02 15:04"), Amount(o.Summary.Total))
	}
	_ = tw.Flush()
}
