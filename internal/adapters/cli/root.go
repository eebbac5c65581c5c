package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// rootOptions are the global flags shared by every subcommand
type rootOptions struct {
	configPath    string
	dataPath      string
	planPath      string
	userConfigDir string
	metrics       bool
	verbose       bool
}

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "factory-planner",
		Short: "Factory planner - production parameters and shopping lists",
		Long: `Factory planner calculates the effective parameters of production steps
and the buildings and modules a plan needs.

Game data and plans are YAML files. Settings, preferences and saved shopping
lists are stored in the configured database.

Examples:
  factory-planner calc --data game.yaml --plan plan.yaml
  factory-planner shopping --display missing --assume-adequate
  factory-planner shopping --decompose --save "iron build-out"
  factory-planner missing --plan plan.yaml
  factory-planner settings set --mining-productivity 0.2
  factory-planner config show`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"Path to config.yaml (default: search ., ./configs, /etc/factory-planner)")
	rootCmd.PersistentFlags().StringVar(&opts.dataPath, "data", "",
		"Game data file (default: gamedata.path or the user default)")
	rootCmd.PersistentFlags().StringVar(&opts.planPath, "plan", "",
		"Plan file (default: gamedata.plan_path or the user default)")
	rootCmd.PersistentFlags().StringVar(&opts.userConfigDir, "user-config-dir", "",
		"Directory of the user preferences file (default: ~/.factory-planner)")
	rootCmd.PersistentFlags().BoolVar(&opts.metrics, "metrics", false,
		"Print collected metrics after the command")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"Enable debug logging")
	_ = rootCmd.PersistentFlags().MarkHidden("user-config-dir")

	rootCmd.AddCommand(newCalcCommand(opts))
	rootCmd.AddCommand(newShoppingCommand(opts))
	rootCmd.AddCommand(newMissingCommand(opts))
	rootCmd.AddCommand(newListsCommand(opts))
	rootCmd.AddCommand(newSettingsCommand(opts))
	rootCmd.AddCommand(newConfigCommand(opts))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
