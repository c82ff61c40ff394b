package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// newSchemaCmd creates the schema command.
func (a *App) newSchemaCmd() *cobra.Command {
	opts := &storeOptions{}

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the database schema with sample rows",
		Long: `Print every user table's column descriptors plus up to three sample
rows per table as JSON. Tables whose sample rows cannot be read are
omitted from the sample data but keep their schema entry.`,
		Args: cobra.NoArgs,
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

			info, err := gw.DescribeSchemaWithSamples(cmd.Context())
			if err != nil {
				return fmt.Errorf("describe schema: %w", err)
			}

			data, err := json.MarshalIndent(info, "", "  ")
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
