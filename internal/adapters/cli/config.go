package cli

import (
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factory-planner/internal/infrastructure/config"
)

// newConfigCommand creates the config command with subcommands
func newConfigCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage factory planner configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (FP_* prefix)
2. Config file (config.yaml)
3. Default values

User preferences (default game data and plan files) are stored in
~/.factory-planner/config.json

Examples:
  factory-planner config show
  factory-planner config set-data ./data/game.yaml
  factory-planner config set-plan ./plans/iron.yaml`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand(opts))
	cmd.AddCommand(newConfigSetDataCommand(opts))
	cmd.AddCommand(newConfigSetPlanCommand(opts))

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long: `Display the current configuration settings.

Shows both system configuration and user preferences.

Example:
  factory-planner config show`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			// Load system config
			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.DefaultConfig()
			}

			// Load user config
			userConfigHandler, err := opts.userConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			// Display configuration
			fmt.Fprintln(out, "Factory Planner Configuration")
			fmt.Fprintln(out, "=============================")

			fmt.Fprintln(out, "User Preferences:")
			fmt.Fprintf(out, "  Config file:      %s\n", userConfigHandler.GetConfigPath())
			fmt.Fprintf(out, "  Default Data:     %s\n", orNotSet(userCfg.DefaultDataPath))
			fmt.Fprintf(out, "  Default Plan:     %s\n", orNotSet(userCfg.DefaultPlanPath))

			fmt.Fprintln(out, "\nGame Data:")
			fmt.Fprintf(out, "  Path:             %s\n", orNotSet(cfg.GameData.Path))
			fmt.Fprintf(out, "  Plan:             %s\n", orNotSet(cfg.GameData.PlanPath))

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
			}
			fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

			fmt.Fprintln(out, "\nPlanner:")
			fmt.Fprintf(out, "  Max Steps:        %d\n", cfg.Planner.DecompositionMaxSteps)
			fmt.Fprintf(out, "  Speed Floor:      %s\n", formatNumber(cfg.Planner.SpeedFloor))
			fmt.Fprintf(out, "  Energy Floor:     %s\n", formatNumber(cfg.Planner.EnergyFloor))
			fmt.Fprintf(out, "  Quality Floor:    %s\n", formatNumber(cfg.Planner.QualityFloor))
			fmt.Fprintf(out, "  Workers:          %d\n", cfg.Planner.CalculationWorkers)
			fmt.Fprintf(out, "  Registry Cache:   %d\n", cfg.Planner.RegistryCacheSize)

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)

			return nil
		},
	}
}

// newConfigSetDataCommand creates the config set-data subcommand
func newConfigSetDataCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-data <path>",
		Short: "Set the default game data file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setUserDefault(cmd, opts, args[0], "game data", "data", (*config.UserConfigHandler).SetDefaultDataPath)
		},
	}
}

// newConfigSetPlanCommand creates the config set-plan subcommand
func newConfigSetPlanCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-plan <path>",
		Short: "Set the default plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setUserDefault(cmd, opts, args[0], "plan", "plan", (*config.UserConfigHandler).SetDefaultPlanPath)
		},
	}
}

func setUserDefault(cmd *cobra.Command, opts *rootOptions, path, what, flag string,
	set func(*config.UserConfigHandler, string) error) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s path: %w", what, err)
	}

	userConfigHandler, err := opts.userConfigHandler()
	if err != nil {
		return fmt.Errorf("failed to create user config handler: %w", err)
	}
	if err := set(userConfigHandler, absPath); err != nil {
		return fmt.Errorf("failed to set default %s: %w", what, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Default %s set to %s\n", what, absPath)
	fmt.Fprintf(out, "Override with --%s.\n", flag)
	return nil
}

func orNotSet(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); !ok {
		return raw
	}
	u.User = url.UserPassword(u.User.Username(), "xxxxx")
	return u.String()
}
