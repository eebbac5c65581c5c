package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factory-planner/internal/application/planning/queries"
)

// newCalcCommand creates the calc command
func newCalcCommand(opts *rootOptions) *cobra.Command {
	var showModules bool

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate recipe parameters for every node of a plan",
		Long: `Calculate the effective recipe time, productivity, fuel usage and
configuration warnings of every node in the plan, using the stored
production settings.

Examples:
  factory-planner calc --data game.yaml --plan plan.yaml
  factory-planner calc --modules`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd.Context(), opts, cmd.OutOrStdout(), func(app *application) error {
				plan, err := app.loadPlan()
				if err != nil {
					return err
				}

				response, err := app.mediator.Send(app.ctx, &queries.CalculateParametersQuery{Nodes: plan.Nodes})
				if err != nil {
					return fmt.Errorf("failed to calculate parameters: %w", err)
				}
				result, ok := response.(*queries.CalculateParametersResponse)
				if !ok {
					return fmt.Errorf("unexpected response type")
				}

				out := cmd.OutOrStdout()
				if err := writeParameters(out, plan.Nodes, result.Parameters); err != nil {
					return err
				}

				if showModules {
					for _, node := range plan.Nodes {
						if tree := formatModules(node); tree != "" {
							fmt.Fprintln(out)
							fmt.Fprint(out, tree)
						}
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&showModules, "modules", false, "Show the modules each node ended up using")

	return cmd
}
