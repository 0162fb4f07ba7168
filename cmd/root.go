// Package cmd implements the hardware-mapper command line.
package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"hardware-mapper/app"
	"hardware-mapper/config"
	"hardware-mapper/engine"
	"hardware-mapper/service"
)

type options struct {
	cfg *config.Config

	catalogFile   string
	mappingsFile  string
	registryBase  string
	selectionMode string
}

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "hardware-mapper",
		Short: "Map board pins to hardware parts",
		Long: `hardware-mapper assigns the pins of a development board to hardware parts,
keeps the mappings in a registry and hands them to MCP tools and code generators.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.catalogFile, "catalog", "", "YAML file with extra boards and parts (BOARD_CATALOG_FILE)")
	flags.StringVar(&opts.mappingsFile, "mappings-file", "", "JSON mapping store used without a database (MAPPINGS_FILE)")
	flags.StringVar(&opts.registryBase, "registry", "", "mapping registry base URL (MAPPING_REGISTRY_BASE)")
	flags.StringVar(&opts.selectionMode, "selection-mode", "", "pin selection mode: single or multi (SELECTION_MODE)")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newBoardsCmd(opts))
	cmd.AddCommand(newPinsCmd(opts))
	cmd.AddCommand(newMappingsCmd(opts))
	cmd.AddCommand(newActuateCmd(opts))
	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newSheetCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))

	return cmd
}

// Execute runs the root command
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}
	return nil
}

// load reads the environment configuration; flags override it
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("catalog") {
		cfg.CatalogFile = o.catalogFile
	}
	if flags.Changed("mappings-file") {
		cfg.MappingsFile = o.mappingsFile
	}
	if flags.Changed("registry") {
		if cfg.CodegenBase == cfg.RegistryBase {
			cfg.CodegenBase = o.registryBase
		}
		cfg.RegistryBase = o.registryBase
	}
	if flags.Changed("selection-mode") {
		mode, err := engine.ParseSelectionMode(o.selectionMode)
		if err != nil {
			return err
		}
		cfg.SelectionMode = mode
	}

	o.cfg = cfg
	return nil
}

// app wires the application for one command run
func (o *options) app(ctx context.Context) (*app.App, error) {
	return app.Initialize(ctx, o.cfg)
}

// external returns the registry mappings are synchronized with: the remote
// registry when configured, otherwise the local store
func (o *options) external(a *app.App) service.ExternalRegistry {
	if o.cfg.RegistryBase != "" {
		return service.NewRegistryClient(o.cfg.RegistryBase, o.cfg.HTTPClient())
	}
	return service.NewRepositoryRegistry(a.Repository)
}

// tools connects to the configured tool catalog. It returns nil when none is configured.
func (o *options) tools(ctx context.Context) (service.ToolCatalog, func(), error) {
	switch {
	case o.cfg.MCPServerURL != "":
		catalog, err := service.ConnectMCPToolCatalog(ctx, o.cfg.MCPServerURL, o.cfg.HTTPClient())
		if err != nil {
			return nil, func() {}, err
		}
		return catalog, func() {
			if err := catalog.Close(); err != nil {
				log.Printf("⚠️  Failed to close MCP session: %v", err)
			}
		}, nil
	case o.cfg.MCPBridgeBase != "":
		return service.NewBridgeToolCatalog(o.cfg.MCPBridgeBase, o.cfg.HTTPClient()), func() {}, nil
	default:
		return nil, func() {}, nil
	}
}

// session seeds a mapping registry and opens a workbench on it
func (o *options) session(ctx context.Context, a *app.App, boardID, partID string) (*service.Workbench, *service.MappingRegistry, error) {
	registry := service.NewMappingRegistry(o.external(a))
	if err := registry.Seed(ctx); err != nil {
		return nil, nil, err
	}
	wb, err := service.NewWorkbench(a.Catalog, registry, a.Resolver, o.cfg.SelectionMode, boardID, partID)
	if err != nil {
		return nil, nil, err
	}
	return wb, registry, nil
}
