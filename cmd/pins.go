package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hardware-mapper/engine"
	"hardware-mapper/geometry"
)

func newPinsCmd(opts *options) *cobra.Command {
	var width, ratio float64

	cmd := &cobra.Command{
		Use:   "pins <board>",
		Short: "Show a board's resolved pin layout and which pins are selectable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if width < 0 || width > geometry.MaxWidth {
				return fmt.Errorf("--width must be in (0, %g]", geometry.MaxWidth)
			}
			if ratio < 0 || ratio > geometry.MaxRatio {
				return fmt.Errorf("--ratio must be in (0, %g]", geometry.MaxRatio)
			}

			a, err := opts.app(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			board, err := a.Catalog.Board(args[0])
			if err != nil {
				return err
			}
			mappings, err := opts.external(a).List(cmd.Context())
			if err != nil {
				return err
			}

			canvas := a.Resolver.Canvas(board.ID)
			if width > 0 {
				canvas.Width = width
			}
			if ratio > 0 {
				canvas.Ratio = ratio
			}
			layout := geometry.Resolve(board, canvas)
			engine.MarkDisabled(&layout, engine.DisabledSet(board, mappings))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %.0fx%.0f  radius %.1f\n", board.Name, layout.Width, layout.Height, layout.PinRadius())

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "POS\tLABEL\tKIND\tACTUAL\tX\tY\tSELECTABLE")
			for _, p := range layout.Pins {
				selectable := "yes"
				if p.Disabled {
					selectable = "no"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.1f\t%.1f\t%s\n", p.Number, p.Label, p.Kind, p.Actual, p.X, p.Y, selectable)
			}
			return w.Flush()
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "canvas width (default 1000)")
	cmd.Flags().Float64Var(&ratio, "ratio", 0, "canvas height/width ratio (default: board photo)")
	return cmd
}
