package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hardware-mapper/models"
)

func newMappingsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mappings",
		Aliases: []string{"mapping", "m"},
		Short:   "List, add, remove and save pin mappings",
	}

	cmd.AddCommand(newMappingsListCmd(opts))
	cmd.AddCommand(newMappingsAddCmd(opts))
	cmd.AddCommand(newMappingsRemoveCmd(opts))
	cmd.AddCommand(newMappingsSaveCmd(opts))
	cmd.AddCommand(newMappingsResetCmd(opts))
	return cmd
}

func newMappingsListCmd(opts *options) *cobra.Command {
	var boardID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved mappings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.app(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			mappings, err := opts.external(a).List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tBOARD\tPART\tROLE\tPINS\tLABEL")
			for _, m := range mappings {
				if boardID != "" && m.BoardID != boardID {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", m.ID, m.BoardID, m.PartID, m.Role, joinPins(m.Pins), m.Label)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&boardID, "board", "", "only mappings on this board")
	return cmd
}

func newMappingsAddCmd(opts *options) *cobra.Command {
	var boardID, partID, role, label string

	cmd := &cobra.Command{
		Use:   "add <board-position>...",
		Short: "Map board positions to a part and save the collection",
		Example: `  hardware-mapper mappings add --board pi5 --part dht22 --role Temperature --label "Living Room" 7
  hardware-mapper mappings add --board pi5 --part hcsr04 --role Trigger --selection-mode multi 16 18`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			positions := make([]int, len(args))
			for i, arg := range args {
				n, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid board position %q", arg)
				}
				positions[i] = n
			}

			ctx := cmd.Context()
			a, err := opts.app(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			wb, _, err := opts.session(ctx, a, boardID, partID)
			if err != nil {
				return err
			}
			if role != "" {
				if err := wb.SelectRole(role); err != nil {
					return err
				}
			}
			wb.SetLabel(label)

			mode := opts.cfg.SelectionMode
			if limit := mode.Limit(wb.Part()); len(positions) > limit {
				return fmt.Errorf("%s takes at most %d pin(s) in %s selection mode, got %d",
					wb.Part().Name, limit, mode, len(positions))
			}
			for _, n := range positions {
				if !wb.Toggle(n) {
					return fmt.Errorf("pin %d cannot be selected on %s", n, wb.Board().Name)
				}
			}
			if !slices.Equal(wb.Selected(), positions) {
				return fmt.Errorf("selection %v does not match requested pins %v", wb.Selected(), positions)
			}

			m, err := wb.Add()
			if err != nil {
				return err
			}

			tools, closeTools, err := opts.tools(ctx)
			if err != nil {
				return err
			}
			defer closeTools()

			if _, err := wb.Save(ctx, tools); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Added %s: %s/%s on %s pins %s\n", m.ID, m.PartID, m.Role, m.BoardID, joinPins(m.Pins))
			fmt.Fprintln(out, wb.Message())
			return nil
		},
	}

	cmd.Flags().StringVar(&boardID, "board", "", "board id")
	cmd.Flags().StringVar(&partID, "part", "", "part id")
	cmd.Flags().StringVar(&role, "role", "", "part role (default: the part's first role)")
	cmd.Flags().StringVar(&label, "label", "", "optional label")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("part")
	return cmd
}

func newMappingsRemoveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm", "delete"},
		Short:   "Delete a mapping",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := opts.app(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			wb, _, err := opts.session(ctx, a, "", "")
			if err != nil {
				return err
			}
			if err := wb.Remove(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), wb.Message())
			return nil
		},
	}
}

func newMappingsSaveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Send all mappings to the register_mapping tool and the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := opts.app(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			wb, _, err := opts.session(ctx, a, "", "")
			if err != nil {
				return err
			}

			tools, closeTools, err := opts.tools(ctx)
			if err != nil {
				return err
			}
			defer closeTools()

			_, err = wb.Save(ctx, tools)
			fmt.Fprintln(cmd.OutOrStdout(), wb.Message())
			return err
		},
	}
}

func newMappingsResetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete every saved mapping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.app(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := opts.external(a).ReplaceAll(cmd.Context(), []models.Mapping{}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All mappings cleared.")
			return nil
		},
	}
}

func joinPins(pins []models.PinID) string {
	parts := make([]string, len(pins))
	for i, p := range pins {
		parts[i] = p.String()
	}
	return strings.Join(parts, ",")
}
