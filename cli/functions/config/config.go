/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package configCmd

import (
	"context"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/UnifyEM/storefront/cli/app"
	"github.com/UnifyEM/storefront/cli/display"
	"github.com/UnifyEM/storefront/cli/global"
	"github.com/UnifyEM/storefront/cli/util"
)

func Register(opts *app.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config <get|set arg1=value1 [arg2=value2] ...>",
		Short: "configuration commands",
		Long:  "get or set the local configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Assume get
				display.ErrorWrapper(app.Run(opts, get))
				return nil
			}
			return fmt.Errorf("unknown subcommand: %s", args[0])
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "show the configuration",
		Long:  "show the configuration, including defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			display.ErrorWrapper(app.Run(opts, get))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set arg1=value1 [arg2=value2] ...",
		Short: "change the configuration",
		Long:  fmt.Sprintf("change the configuration; valid keys are %v", global.ConfigKeys),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs := util.NewNVPairs(args)
			display.ErrorWrapper(app.Run(opts, func(_ context.Context, a *app.App) error {
				return set(a, pairs)
			}))
			return nil
		},
	})

	return cmd
}

func get(_ context.Context, a *app.App) error {
	values := make(map[string]string)
	for _, key := range global.ConfigKeys {
		values[key] = a.Config.CC.Get(key).String()
	}

	return a.Print(values, func(w io.Writer) {
		_, _ = fmt.Fprintf(w, "%s\n\n", a.Config.C.File())
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, key := range global.ConfigKeys {
			_, _ = fmt.Fprintf(tw, "%s\t%s\n", key, values[key])
		}
		_ = tw.Flush()
	})
}

func set(a *app.App, pairs *util.NVPairs) error {
	if len(pairs.Pairs) == 0 {
		return fmt.Errorf("expected key=value")
	}

	for _, key := range pairs.Keys() {
		if !slices.Contains(global.ConfigKeys, key) {
			return fmt.Errorf("unknown configuration key: %s", key)
		}
	}

	a.Config.CC.SetStringMap(pairs.Pairs)
	if err := a.Config.C.Checkpoint(); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}
	a.Config.Reload()

	_, _ = fmt.Fprintln(a.Out, "Configuration saved")
	return get(context.Background(), a)
}
