package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	mandel "github.com/marben/mandelzoom"
)

func presetsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in points of interest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writePresets(cmd.OutOrStdout(), mandel.Presets(), o.cfg)
		},
	}
}

// writePresets prints the world view followed by every preset of catalog,
// with coordinates compacted the way the viewer shows them.
func writePresets(w io.Writer, catalog mandel.Catalog, cfg mandel.Config) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tLABEL\tCENTER X\tCENTER Y\tWIDTH\tHEIGHT")
	row := func(key, label string, v mandel.ViewRect) {
		c := mandel.CompactView(v, cfg.Precision, cfg.MaxDecimalPlaces)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", key, label, c[0], c[1], c[2], c[3])
	}
	row("W", "World View", mandel.WorldView(cfg))
	for _, p := range catalog {
		row(p.Key, p.Label, p.View)
	}
	return tw.Flush()
}
