package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newSheetCmd(opts *options) *cobra.Command {
	var boardID, format, out string

	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Render the wiring sheet of a board as HTML or PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "html" && format != "pdf" {
				return fmt.Errorf("unknown format %q (want html or pdf)", format)
			}
			if format == "pdf" && out == "" {
				return errors.New("--out is required for pdf output")
			}

			ctx := cmd.Context()
			a, err := opts.app(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			mappings, err := opts.external(a).List(ctx)
			if err != nil {
				return err
			}

			var data []byte
			if format == "pdf" {
				data, err = a.Sheets.GeneratePDF(ctx, boardID, mappings)
			} else {
				var html string
				html, err = a.Sheets.RenderHTML(ctx, boardID, mappings)
				data = []byte(html)
			}
			if err != nil {
				return err
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&boardID, "board", "", "board id")
	cmd.Flags().StringVar(&format, "format", "html", "html or pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout, html only)")
	_ = cmd.MarkFlagRequired("board")
	return cmd
}
