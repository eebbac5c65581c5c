package helpers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andrescamacho/factory-planner/internal/adapters/gamedata"
	domain "github.com/andrescamacho/factory-planner/internal/domain/gamedata"
)

// SampleGameData is a small iron production chain with one assembler,
// one burner furnace, speed/productivity modules and a beacon
const SampleGameData = `
qualities:
  - {name: uncommon, level: 1}
  - {name: rare, level: 2}

items:
  - {name: iron-ore, cost: 1}
  - {name: iron-plate, cost: 2}
  - {name: iron-gear, cost: 5}
  - {name: coal, fuel_value: 4, cost: 1}
  - {name: assembler-item, place_result: assembler, cost: 50}
  - {name: furnace-item, place_result: furnace, cost: 20}
  - {name: beacon-item, place_result: beacon, cost: 100}

fluids:
  - {name: water, temperatures: [15], heat_capacity: 0.0002}

modules:
  - name: speed-module
    category: speed
    cost: 30
    effect: {speed: 0.5, consumption: 0.7}
  - name: productivity-module
    category: productivity
    cost: 40
    effect: {productivity: 0.1, speed: -0.05, consumption: 0.8}

machines:
  - name: assembler
    crafting_speed: 0.75
    power: 0.15
    allowed_effects: [speed, productivity, consumption, pollution, quality]
    module_categories: [speed, productivity]
    module_slots: 4
    energy: {type: electric, drain: 0.005}
  - name: furnace
    crafting_speed: 2
    power: 0.09
    energy: {type: burner, effectivity: 1}

beacons:
  - name: beacon
    module_slots: 2
    distribution_effectivity: 1.5
    profile: [1, 0.7071]

technologies:
  - {name: gear-productivity, time: 60}

recipes:
  - name: iron-ore-mining
    time: 1
    flags: [uses-mining-productivity]
    products: [{goods: iron-ore, amount: 1}]
  - name: iron-plate
    time: 3.2
    ingredients: [{goods: iron-ore, amount: 1}]
    products: [{goods: iron-plate, amount: 1}]
  - name: iron-gear
    time: 0.5
    ingredients: [{goods: iron-plate, amount: 2}]
    products: [{goods: iron-gear, amount: 1}]
    technology_productivity: {gear-productivity: 0.1}
  - name: assembler-item
    time: 0.5
    ingredients:
      - {goods: iron-gear, amount: 5}
      - {goods: iron-plate, amount: 9}
    products: [{goods: assembler-item, amount: 1}]
`

// SamplePlan runs gears in sped-up assemblers and plates in coal furnaces
const SamplePlan = `
nodes:
  - recipe: iron-gear
    machine: assembler
    buildings: 2.5
    built: 2
    modules:
      machine: [{module: speed-module, count: 2}]
      beacon: beacon
      beacon_modules: [{module: speed-module, count: 2}]
  - recipe: iron-plate
    machine: furnace
    fuel: coal
    buildings: 3.2
demands:
  iron-gear: 5
`

// SampleRegistry loads SampleGameData
func SampleRegistry(t testing.TB) *domain.Registry {
	t.Helper()
	registry, err := gamedata.Load(strings.NewReader(SampleGameData))
	if err != nil {
		t.Fatalf("failed to load sample game data: %v", err)
	}
	return registry
}

// WriteSampleFiles writes the sample game data and plan into a temporary
// directory and returns their paths
func WriteSampleFiles(t testing.TB) (dataPath, planPath string) {
	t.Helper()
	dir := t.TempDir()
	dataPath = filepath.Join(dir, "game.yaml")
	planPath = filepath.Join(dir, "plan.yaml")
	if err := os.WriteFile(dataPath, []byte(SampleGameData), 0644); err != nil {
		t.Fatalf("failed to write sample game data: %v", err)
	}
	if err := os.WriteFile(planPath, []byte(SamplePlan), 0644); err != nil {
		t.Fatalf("failed to write sample plan: %v", err)
	}
	return dataPath, planPath
}
