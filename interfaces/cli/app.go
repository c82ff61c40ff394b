// Package cli provides the command-line interface for sqlgate.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sqlgate/application"
	"github.com/felixgeelhaar/sqlgate/infrastructure/config"
	"github.com/felixgeelhaar/sqlgate/infrastructure/logging"
	"github.com/felixgeelhaar/sqlgate/infrastructure/resilience"
	"github.com/felixgeelhaar/sqlgate/infrastructure/storage/sqlite"
	"github.com/felixgeelhaar/sqlgate/infrastructure/telemetry"
)

// Version information set at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// App represents the CLI application.
type App struct {
	root   *cobra.Command
	stdout io.Writer
	stderr io.Writer
}

// New creates a new CLI application.
func New() *App {
	app := &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	app.root = &cobra.Command{
		Use:   "sqlgate",
		Short: "Agent-facing SQL gateway over an embedded sales database",
		Long: `sqlgate exposes arbitrary SQL execution and schema discovery over an
embedded sales database as structured, agent-consumable tools. Statement
failures come back as data rather than faults, so an autonomous agent can
inspect the error text and revise its next query.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newInitCmd(),
		app.newQueryCmd(),
		app.newSchemaCmd(),
		app.newServeCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

// newVersionCmd creates the version command.
func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "sqlgate version %s\n", Version)
			fmt.Fprintf(a.stdout, "  Git commit: %s\n", GitCommit)
			fmt.Fprintf(a.stdout, "  Build date: %s\n", BuildDate)
		},
	}
}

// storeOptions holds the flags shared by store-backed commands.
type storeOptions struct {
	configPath string
	dbPath     string
}

// addStoreFlags wires the shared store flags onto a command.
func addStoreFlags(cmd *cobra.Command, opts *storeOptions) {
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringVar(&opts.dbPath, "db", "", "Database file path (overrides config)")
}

// loadConfig loads the configuration file and applies flag overrides.
func loadConfig(opts *storeOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	if opts.dbPath != "" {
		cfg.Store.Path = opts.dbPath
	}
	return cfg, nil
}

// openGateway performs the one-time startup sequence shared by every
// store-backed command: initialize logging, open the store, ensure
// schema and seed data exist, and construct the gateway. Bootstrap
// failure here is the only fatal error category; statement failures
// past this point are returned as data.
func openGateway(ctx context.Context, cfg config.Config) (*sqlite.Store, *application.Gateway, string, error) {
	logging.Init(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	store, err := sqlite.Open(sqlite.DefaultConfig(),
		sqlite.WithPath(cfg.Store.Path),
		sqlite.WithBusyTimeout(cfg.Store.BusyTimeoutMS),
		sqlite.WithJournalMode(cfg.Store.JournalMode),
	)
	if err != nil {
		return nil, nil, "", fmt.Errorf("open store: %w", err)
	}

	status, err := store.EnsureInitialized(ctx)
	if err != nil {
		_ = store.Close()
		return nil, nil, "", fmt.Errorf("initialize store: %w", err)
	}

	logging.Info().
		Add(logging.Path(cfg.Store.Path)).
		Msg(status)

	gw := application.NewGateway(store,
		application.WithMetrics(telemetry.NewMetrics()),
		application.WithResilience(resilience.Config{
			RetryMaxAttempts:       cfg.Resilience.MaxAttempts,
			RetryInitialDelay:      time.Duration(cfg.Resilience.InitialDelayMS) * time.Millisecond,
			RetryBackoffMultiplier: 2.0,
		}),
	)

	return store, gw, status, nil
}
