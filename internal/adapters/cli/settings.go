package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factory-planner/internal/application/planning/commands"
	"github.com/andrescamacho/factory-planner/internal/application/planning/queries"
	"github.com/andrescamacho/factory-planner/internal/domain/production"
)

// newSettingsCommand creates the settings command with subcommands
func newSettingsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage production settings",
		Long: `Show or change the production settings used by every calculation:
mining and research productivity, productivity technology levels and the
assumed reactor grid.

Examples:
  factory-planner settings show
  factory-planner settings set --mining-productivity 0.2 --technology steel-productivity=3`,
	}

	cmd.AddCommand(newSettingsShowCommand(opts))
	cmd.AddCommand(newSettingsSetCommand(opts))

	return cmd
}

func newSettingsShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored production settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd.Context(), opts, cmd.OutOrStdout(), func(app *application) error {
				response, err := app.mediator.Send(app.ctx, &queries.GetSettingsQuery{})
				if err != nil {
					return fmt.Errorf("failed to load settings: %w", err)
				}
				writeSettings(cmd.OutOrStdout(), response.(*queries.GetSettingsResponse).Settings)
				return nil
			})
		},
	}
}

func newSettingsSetCommand(opts *rootOptions) *cobra.Command {
	var (
		mining       float64
		research     float64
		reactorX     float64
		reactorY     float64
		technologies map[string]int
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change production settings",
		Long: `Change the production settings. Only the flags given are updated.

Examples:
  factory-planner settings set --mining-productivity 0.3
  factory-planner settings set --technology steel-productivity=2 --technology gear-productivity=1
  factory-planner settings set --reactor-size-x 2 --reactor-size-y 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd.Context(), opts, cmd.OutOrStdout(), func(app *application) error {
				response, err := app.mediator.Send(app.ctx, &queries.GetSettingsQuery{})
				if err != nil {
					return fmt.Errorf("failed to load settings: %w", err)
				}
				settings := response.(*queries.GetSettingsResponse).Settings.Snapshot()

				flags := cmd.Flags()
				if flags.Changed("mining-productivity") {
					settings.MiningProductivity = mining
				}
				if flags.Changed("research-productivity") {
					settings.ResearchProductivity = research
				}
				if flags.Changed("reactor-size-x") {
					settings.ReactorSizeX = reactorX
				}
				if flags.Changed("reactor-size-y") {
					settings.ReactorSizeY = reactorY
				}
				for tech, level := range technologies {
					settings.ProductivityTechnologyLevels[tech] = level
				}

				response, err = app.mediator.Send(app.ctx, &commands.UpdateSettingsCommand{Settings: settings})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "✓ Settings updated")
				fmt.Fprintln(out)
				writeSettings(out, response.(*commands.UpdateSettingsResponse).Settings)
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&mining, "mining-productivity", 0, "Mining productivity bonus (0.1 = +10%)")
	cmd.Flags().Float64Var(&research, "research-productivity", 0, "Research productivity bonus")
	cmd.Flags().Float64Var(&reactorX, "reactor-size-x", 0, "Reactor grid width")
	cmd.Flags().Float64Var(&reactorY, "reactor-size-y", 0, "Reactor grid height")
	cmd.Flags().StringToIntVar(&technologies, "technology", nil, "Productivity technology level as name=level (repeatable)")

	return cmd
}

func writeSettings(w io.Writer, settings production.ProductionSettings) {
	fmt.Fprintln(w, "Production Settings")
	fmt.Fprintln(w, "===================")
	fmt.Fprintf(w, "  Mining productivity:    %s\n", formatNumber(settings.MiningProductivity))
	fmt.Fprintf(w, "  Research productivity:  %s\n", formatNumber(settings.ResearchProductivity))
	fmt.Fprintf(w, "  Reactor grid:           %s x %s (bonus x%s)\n",
		formatNumber(settings.ReactorSizeX), formatNumber(settings.ReactorSizeY),
		formatNumber(settings.ReactorBonusMultiplier()))

	if len(settings.ProductivityTechnologyLevels) == 0 {
		fmt.Fprintln(w, "  Technologies:           (none)")
		return
	}
	techs := make([]string, 0, len(settings.ProductivityTechnologyLevels))
	for tech := range settings.ProductivityTechnologyLevels {
		techs = append(techs, tech)
	}
	sort.Strings(techs)
	fmt.Fprintln(w, "  Technologies:")
	for _, tech := range techs {
		fmt.Fprintf(w, "    %-24s level %d\n", tech, settings.ProductivityTechnologyLevels[tech])
	}
}
