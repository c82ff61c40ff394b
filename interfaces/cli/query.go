package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// newQueryCmd creates the query command.
func (a *App) newQueryCmd() *cobra.Command {
	opts := &storeOptions{}

	cmd := &cobra.Command{
		Use:   "query [sql]",
		Short: "Execute one SQL statement and print the structured result",
		Long: `Execute a single SQL statement through the gateway.

SELECT statements print one JSON object per result row. Other statements
print the affected row count. Statement failures print a one-element
error record and exit zero, matching the contract agents see.

Examples:
  sqlgate query "SELECT * FROM customers"
  sqlgate query --db sales.db "INSERT INTO products (name, price) VALUES ('Widget', 9.99)"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			store, gw, _, err := openGateway(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			results := gw.Execute(cmd.Context(), args[0])

			data, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, string(data))
			return nil
		},
	}

	addStoreFlags(cmd, opts)
	return cmd
}
