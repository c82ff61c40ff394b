package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sqlgate/infrastructure/mcp"
	"github.com/felixgeelhaar/sqlgate/infrastructure/storage/memory"
	"github.com/felixgeelhaar/sqlgate/pack/salesdata"
)

const serverInstructions = `Call get_schema_info first to discover the database structure and
sample rows, then call execute_sql with the SQL you construct. Statement
failures are returned as a one-element result carrying an "error" key;
read the message and retry with revised SQL.`

// newServeCmd creates the serve command.
func (a *App) newServeCmd() *cobra.Command {
	opts := &storeOptions{}
	var transport string
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the data access tools to agents over MCP",
		Long: `Serve the execute_sql and get_schema_info tools over the Model
Context Protocol so external agents can discover the database structure
and query it.

Examples:
  # Serve over stdio (the default), for agent runtimes that spawn tools
  sqlgate serve --db sales.db

  # Serve over HTTP with SSE
  sqlgate serve --transport http --addr :8820`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if transport != "" {
				cfg.Server.Transport = transport
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			store, gw, _, err := openGateway(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			p, err := salesdata.New(gw)
			if err != nil {
				return err
			}

			registry := memory.NewToolRegistry()
			if err := p.Register(registry); err != nil {
				return err
			}

			srv := mcp.NewServer(mcp.ServerConfig{
				Name:         cfg.Server.Name,
				Version:      Version,
				Registry:     registry,
				Instructions: serverInstructions,
			})

			switch cfg.Server.Transport {
			case "stdio":
				return srv.ServeStdio(cmd.Context())
			case "http":
				return srv.ServeHTTP(cmd.Context(), cfg.Server.Addr)
			default:
				return fmt.Errorf("unknown transport %q (want stdio or http)", cfg.Server.Transport)
			}
		},
	}

	addStoreFlags(cmd, opts)
	cmd.Flags().StringVar(&transport, "transport", "", "Server transport: stdio or http (overrides config)")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address for the http transport (overrides config)")

	return cmd
}
