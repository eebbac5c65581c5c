package steps

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/factory-planner/internal/adapters/gamedata"
	domain "github.com/andrescamacho/factory-planner/internal/domain/gamedata"
	"github.com/andrescamacho/factory-planner/internal/domain/production"
	"github.com/andrescamacho/factory-planner/test/helpers"
)

const tolerance = 1e-4

// loadSampleRegistry parses the shared sample game data
func loadSampleRegistry() (*domain.Registry, error) {
	registry, err := gamedata.Load(strings.NewReader(helpers.SampleGameData))
	if err != nil {
		return nil, fmt.Errorf("failed to load sample game data: %w", err)
	}
	return registry, nil
}

// loadSamplePlan parses the shared sample plan and calculates every node
func loadSamplePlan(registry *domain.Registry, settings production.ProductionSettings) (*gamedata.Plan, []production.RecipeParameters, error) {
	plan, err := gamedata.LoadPlan(strings.NewReader(helpers.SamplePlan), registry)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load sample plan: %w", err)
	}
	calculator := production.NewCalculator(production.DefaultEffectLimits)
	params := make([]production.RecipeParameters, len(plan.Nodes))
	for i, node := range plan.Nodes {
		params[i] = calculator.Calculate(node, settings)
		node.ApplyParameters(params[i])
	}
	return plan, params, nil
}

func approxEqual(expected, actual float64) bool {
	return math.Abs(expected-actual) <= tolerance
}

// getCellValue gets a cell value from a table row by column name, using the
// first row of the table as the header
func getCellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}
	for i, headerCell := range table.Rows[0].Cells {
		if headerCell.Value == columnName && i < len(row.Cells) {
			return row.Cells[i].Value
		}
	}
	return ""
}

func parseCount(value string) (float64, error) {
	count, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q: %w", value, err)
	}
	return count, nil
}

// tableAmounts reads a goods/count table into a map
func tableAmounts(table *godog.Table, countColumn string) (map[string]float64, error) {
	amounts := make(map[string]float64)
	for _, row := range table.Rows[1:] {
		name := getCellValue(table, row, "goods")
		count, err := strconv.ParseFloat(getCellValue(table, row, countColumn), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s for %s: %w", countColumn, name, err)
		}
		amounts[name] = count
	}
	return amounts, nil
}

// compareAmounts checks actual against expected and reports extra or missing goods
func compareAmounts(expected, actual map[string]float64) error {
	for name, want := range expected {
		got, ok := actual[name]
		if !ok {
			return fmt.Errorf("expected %s x %v, but it is not listed (got %v)", name, want, actual)
		}
		if !approxEqual(want, got) {
			return fmt.Errorf("expected %s x %v, got %v", name, want, got)
		}
	}
	for name, got := range actual {
		if _, ok := expected[name]; !ok {
			return fmt.Errorf("unexpected entry %s x %v", name, got)
		}
	}
	return nil
}
