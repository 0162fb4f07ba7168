package cmd

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

func newServeCmd(opts *options) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the mapping registry and catalog HTTP API",
		Long: `Run the HTTP API:

  GET    /health                 registry health
  GET    /mappings               list stored mappings
  POST   /mappings               merge mappings by id
  PUT    /mappings               replace all mappings
  DELETE /mappings[/{id}]        delete one or all mappings
  GET    /boards, /parts         catalog
  GET    /boards/{id}/pins       resolved pin layout with disabled pins
  GET    /boards/{id}/sheet      wiring sheet (?format=pdf for PDF)
  GET    /boards/{id}/image      board photo thumbnail
  POST   /mcp                    MCP streamable endpoint`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				opts.cfg.Port = port
			}

			a, err := opts.app(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
			addr := "0.0.0.0:" + opts.cfg.Port
			log.Printf("Server starting on %s", addr)
			log.Printf("Pin layout endpoint: GET http://localhost:%s/boards/pi5/pins", opts.cfg.Port)

			if err := http.ListenAndServe(addr, a.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (PORT)")
	return cmd
}
