package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factory-planner/internal/application/planning/queries"
)

// newMissingCommand creates the missing command
func newMissingCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "missing",
		Short: "List goods the plan consumes faster than it produces",
		Long: `Calculate the plan, balance production against consumption and the
plan's external demands, and list every goods with a deficit.

Example:
  factory-planner missing --plan plan.yaml`,
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
				calculated := response.(*queries.CalculateParametersResponse)

				response, err = app.mediator.Send(app.ctx, &queries.ListMissingItemsQuery{
					Nodes:      plan.Nodes,
					Parameters: calculated.Parameters,
					Demands:    plan.Demands,
				})
				if err != nil {
					return fmt.Errorf("failed to list missing items: %w", err)
				}

				return writeMissingItems(cmd.OutOrStdout(), response.(*queries.ListMissingItemsResponse).Items)
			})
		},
	}

	return cmd
}
