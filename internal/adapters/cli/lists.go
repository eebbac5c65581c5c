package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factory-planner/internal/application/planning/queries"
)

// newListsCommand creates the lists command for saved shopping lists
func newListsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Browse saved shopping lists",
		Long: `Browse shopping lists saved with 'factory-planner shopping --save'.

Examples:
  factory-planner lists
  factory-planner lists show 3f2b0c1e-...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd.Context(), opts, cmd.OutOrStdout(), func(app *application) error {
				response, err := app.mediator.Send(app.ctx, &queries.ListShoppingListsQuery{})
				if err != nil {
					return fmt.Errorf("failed to list shopping lists: %w", err)
				}
				return writeSnapshots(cmd.OutOrStdout(), response.(*queries.ListShoppingListsResponse).Snapshots)
			})
		},
	}

	cmd.AddCommand(newListsShowCommand(opts))

	return cmd
}

func newListsShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved shopping list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd.Context(), opts, cmd.OutOrStdout(), func(app *application) error {
				if _, err := app.loadRegistry(); err != nil {
					return err
				}
				response, err := app.mediator.Send(app.ctx, &queries.GetShoppingListQuery{ID: args[0]})
				if err != nil {
					return err
				}
				result := response.(*queries.GetShoppingListResponse)

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (display: %s, decomposed: %t)\n\n",
					result.Snapshot.Name, result.Snapshot.Options.Display, result.Snapshot.Decomposed)
				return writeShoppingList(out, result.List)
			})
		},
	}
}
