package cmd

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"hardware-mapper/service"
)

func newActuateCmd(opts *options) *cobra.Command {
	var (
		role     string
		toolPats []string
		on, off  bool
		keys     []string
	)

	cmd := &cobra.Command{
		Use:   "actuate",
		Short: "Invoke an MCP tool against a mapped part",
		Long: `Find the first saved mapping whose role matches --role, pick the first
advertised tool matching one of the --tool patterns, and call it with the
mapping's pins. --on and --off add a state argument for output devices.`,
		Example: `  hardware-mapper actuate --role temp --tool read_dht --tool read_sensor --key temperature
  hardware-mapper actuate --role led --tool set_pin --tool digital_write --on`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if on && off {
				return errors.New("--on and --off are mutually exclusive")
			}
			rolePattern, err := regexp.Compile("(?i)" + role)
			if err != nil {
				return fmt.Errorf("invalid --role pattern: %w", err)
			}
			var tools []*regexp.Regexp
			for _, p := range toolPats {
				re, err := regexp.Compile("(?i)" + p)
				if err != nil {
					return fmt.Errorf("invalid --tool pattern %q: %w", p, err)
				}
				tools = append(tools, re)
			}

			ctx := cmd.Context()
			catalog, closeTools, err := opts.tools(ctx)
			if err != nil {
				return err
			}
			defer closeTools()
			if catalog == nil {
				return errors.New("no tool catalog configured: set MCP_SERVER_URL or MCP_BRIDGE_BASE")
			}

			a, err := opts.app(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			mappings, err := opts.external(a).List(ctx)
			if err != nil {
				return err
			}

			req := service.ActuateRequest{Role: rolePattern, Tools: tools}
			if on || off {
				state := on
				req.On = &state
			}

			res, err := service.Actuate(ctx, catalog, mappings, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s -> %s(%s)\n", res.Mapping.PartID, res.Mapping.Role, res.Tool.Name, formatArgs(res.Args))
			fmt.Fprintln(out, res.Reading(keys...))
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "role pattern (case-insensitive regular expression)")
	cmd.Flags().StringArrayVar(&toolPats, "tool", nil, "tool name pattern, tried in order (repeatable)")
	cmd.Flags().BoolVar(&on, "on", false, "switch the part on")
	cmd.Flags().BoolVar(&off, "off", false, "switch the part off")
	cmd.Flags().StringSliceVar(&keys, "key", nil, "result keys to read before value/result")
	_ = cmd.MarkFlagRequired("role")
	_ = cmd.MarkFlagRequired("tool")
	return cmd
}

func formatArgs(args map[string]any) string {
	names := make([]string, 0, len(args))
	for k := range args {
		names = append(names, k)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, k := range names {
		parts[i] = fmt.Sprintf("%s=%v", k, args[k])
	}
	return strings.Join(parts, ", ")
}
