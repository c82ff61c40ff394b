package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newInitCmd creates the init command.
func (a *App) newInitCmd() *cobra.Command {
	opts := &storeOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the sales database and seed sample data",
		Long: `Create the sales schema if it does not exist and seed sample data.

Initialization is idempotent: existing rows are never overwritten, and
seeding only happens when the customers table is empty.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			store, _, status, err := openGateway(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Fprintln(a.stdout, status)
			return nil
		},
	}

	addStoreFlags(cmd, opts)
	return cmd
}
