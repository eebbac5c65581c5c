package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factory-planner/internal/application/common"
	"github.com/andrescamacho/factory-planner/internal/application/planning/commands"
	"github.com/andrescamacho/factory-planner/internal/application/planning/queries"
	"github.com/andrescamacho/factory-planner/internal/domain/shopping"
)

type shoppingFlags struct {
	display        string
	assumeAdequate bool
	decompose      bool
	maxSteps       int
	save           string
	export         bool
	itemsOnly      bool
	remember       bool
}

// newShoppingCommand creates the shopping command
func newShoppingCommand(opts *rootOptions) *cobra.Command {
	flags := &shoppingFlags{}

	cmd := &cobra.Command{
		Use:   "shopping",
		Short: "Aggregate the buildings and modules a plan needs",
		Long: `Build the shopping list of a plan: the buildings and machine modules
its nodes require, with their total cost. Beacons and the modules they
hold are not counted.

Display options default to the stored preferences. Flags override them for
this run; --remember stores the overrides.

Examples:
  factory-planner shopping
  factory-planner shopping --display missing --assume-adequate
  factory-planner shopping --decompose --max-steps 200
  factory-planner shopping --export --items-only
  factory-planner shopping --save "iron build-out"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd.Context(), opts, cmd.OutOrStdout(), func(app *application) error {
				return runShopping(cmd, app, flags)
			})
		},
	}

	cmd.Flags().StringVar(&flags.display, "display", "total", "Building count to show: total, built or missing")
	cmd.Flags().BoolVar(&flags.assumeAdequate, "assume-adequate", false,
		"Treat nodes without a built count as fully built")
	cmd.Flags().BoolVar(&flags.decompose, "decompose", false, "Break the list down into base ingredients")
	cmd.Flags().IntVar(&flags.maxSteps, "max-steps", 0, "Decomposition step budget (default: planner.decomposition_max_steps)")
	cmd.Flags().StringVar(&flags.save, "save", "", "Save the resulting list under this name")
	cmd.Flags().BoolVar(&flags.export, "export", false, "Print whole counts of placeable goods")
	cmd.Flags().BoolVar(&flags.itemsOnly, "items-only", false, "Restrict --export to solid items")
	cmd.Flags().BoolVar(&flags.remember, "remember", false, "Store --display and --assume-adequate as preferences")

	return cmd
}

func runShopping(cmd *cobra.Command, app *application, flags *shoppingFlags) error {
	out := cmd.OutOrStdout()

	options, err := resolveShoppingOptions(cmd, app, flags)
	if err != nil {
		return err
	}

	plan, err := app.loadPlan()
	if err != nil {
		return err
	}

	// Calculation fills in the modules each node uses
	if _, err := app.mediator.Send(app.ctx, &queries.CalculateParametersQuery{Nodes: plan.Nodes}); err != nil {
		return fmt.Errorf("failed to calculate parameters: %w", err)
	}

	response, err := app.mediator.Send(app.ctx, &queries.BuildShoppingListQuery{Nodes: plan.Nodes, Options: &options})
	if err != nil {
		return fmt.Errorf("failed to build shopping list: %w", err)
	}
	list := response.(*queries.BuildShoppingListResponse).List

	if flags.decompose {
		response, err := app.mediator.Send(app.ctx, &commands.DecomposeShoppingListCommand{
			List:     list,
			MaxSteps: flags.maxSteps,
		})
		if err != nil {
			return fmt.Errorf("failed to decompose shopping list: %w", err)
		}
		result := response.(*commands.DecomposeShoppingListResponse).Result
		list = result.List
		if result.Truncated {
			fmt.Fprintf(out, "Decomposition stopped after %d steps; the list is partially expanded.\n\n", result.Steps)
		}
	}

	if flags.export {
		exported := shopping.ExportGoods(list)
		if flags.itemsOnly {
			exported = shopping.ExportItems(list)
		}
		if err := writeExport(out, exported); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "Display: %s", options.Display)
		if options.AssumeAdequate {
			fmt.Fprint(out, " (assuming adequate)")
		}
		fmt.Fprint(out, "\n\n")
		if err := writeShoppingList(out, list); err != nil {
			return err
		}
	}

	if flags.save != "" {
		response, err := app.mediator.Send(app.ctx, &commands.SaveShoppingListCommand{
			Name:       flags.save,
			List:       list,
			Options:    options,
			Decomposed: flags.decompose,
		})
		if err != nil {
			return fmt.Errorf("failed to save shopping list: %w", err)
		}
		snapshot := response.(*commands.SaveShoppingListResponse).Snapshot
		fmt.Fprintf(out, "\n✓ Saved shopping list %q (id %s)\n", snapshot.Name, snapshot.ID)
	}

	return nil
}

// resolveShoppingOptions starts from the stored preferences and applies the
// flags the user actually passed
func resolveShoppingOptions(cmd *cobra.Command, app *application, flags *shoppingFlags) (shopping.Options, error) {
	response, err := app.mediator.Send(app.ctx, &queries.GetPreferencesQuery{})
	if err != nil {
		return shopping.Options{}, fmt.Errorf("failed to load preferences: %w", err)
	}
	options := response.(*queries.GetPreferencesResponse).Preferences.Shopping

	if cmd.Flags().Changed("display") {
		display, err := shopping.ParseDisplayState(flags.display)
		if err != nil {
			return shopping.Options{}, err
		}
		options.Display = display
	}
	if cmd.Flags().Changed("assume-adequate") {
		options.AssumeAdequate = flags.assumeAdequate
	}

	if flags.remember {
		_, err := app.mediator.Send(app.ctx, &commands.UpdatePreferencesCommand{
			Preferences: common.Preferences{Shopping: options},
		})
		if err != nil {
			return shopping.Options{}, fmt.Errorf("failed to store preferences: %w", err)
		}
	}

	return options, nil
}
