package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hardware-mapper/service"
)

func newGenerateCmd(opts *options) *cobra.Command {
	var boardID, out string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate firmware for the mappings on a board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.cfg.CodegenBase == "" {
				return errors.New("no code generator configured: set CODEGEN_BASE or MAPPING_REGISTRY_BASE")
			}

			ctx := cmd.Context()
			a, err := opts.app(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			wb, _, err := opts.session(ctx, a, boardID, "")
			if err != nil {
				return err
			}

			code, err := wb.Generate(ctx, service.NewCodegenClient(opts.cfg.CodegenBase, opts.cfg.HTTPClient()))
			if err != nil {
				return errors.New(wb.Message())
			}

			if out == "" {
				fmt.Fprint(cmd.OutOrStdout(), code.Code)
				return nil
			}
			if err := os.WriteFile(out, []byte(code.Code), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), wb.Message())
			return nil
		},
	}

	cmd.Flags().StringVar(&boardID, "board", "", "board id")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout)")
	_ = cmd.MarkFlagRequired("board")
	return cmd
}
