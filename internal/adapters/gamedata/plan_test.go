package gamedata_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner/internal/adapters/gamedata"
	domain "github.com/andrescamacho/factory-planner/internal/domain/gamedata"
	"github.com/andrescamacho/factory-planner/internal/domain/production"
	"github.com/andrescamacho/factory-planner/test/helpers"
)

func TestLoadPlan_ResolvesNodes(t *testing.T) {
	// Arrange
	registry := helpers.SampleRegistry(t)

	// Act
	plan, err := gamedata.LoadPlan(strings.NewReader(helpers.SamplePlan), registry)

	// Assert
	require.NoError(t, err)
	require.Len(t, plan.Nodes, 2)
	assert.Equal(t, map[string]float64{"iron-gear": 5}, plan.Demands)

	gears := plan.Nodes[0]
	assert.Equal(t, "iron-gear", gears.Recipe.Name())
	assert.Equal(t, "assembler", gears.Machine.Name())
	assert.Same(t, domain.Normal, gears.MachineQuality)
	assert.Equal(t, 2.5, gears.BuildingCount)
	require.NotNil(t, gears.BuiltBuildings)
	assert.Equal(t, 2, *gears.BuiltBuildings)

	template, ok := gears.Modules.(*production.ModuleTemplate)
	require.True(t, ok)
	require.Len(t, template.Modules, 1)
	assert.Equal(t, 2, template.Modules[0].FixedCount)
	assert.Equal(t, "beacon", template.Beacon.Name())
	require.Len(t, template.BeaconModules, 1)

	plates := plan.Nodes[1]
	assert.Equal(t, "coal", plates.Fuel.Name())
	assert.Nil(t, plates.Modules)
	assert.Nil(t, plates.BuiltBuildings)
}

func TestLoadPlan_UnknownMachine(t *testing.T) {
	// Arrange
	registry := helpers.SampleRegistry(t)
	doc := `
nodes:
  - {recipe: iron-plate, machine: furnace}
  - {recipe: iron-gear, machine: teleporter}
`

	// Act
	_, err := gamedata.LoadPlan(strings.NewReader(doc), registry)

	// Assert
	var invalid *gamedata.ErrInvalidPlan
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, 1, invalid.Node)

	var unknown *domain.ErrUnknownObject
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "teleporter", unknown.Name)
}

func TestLoadPlan_ModulesWithoutMachine(t *testing.T) {
	registry := helpers.SampleRegistry(t)
	doc := `
nodes:
  - recipe: iron-gear
    modules:
      machine: [{module: speed-module}]
`

	_, err := gamedata.LoadPlan(strings.NewReader(doc), registry)

	var invalid *gamedata.ErrInvalidPlan
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, 0, invalid.Node)
	assert.Contains(t, invalid.Reason, "without a machine")
}

func TestLoadPlan_BeaconModulesNeedCount(t *testing.T) {
	registry := helpers.SampleRegistry(t)
	doc := `
nodes:
  - recipe: iron-gear
    machine: assembler
    modules:
      beacon: beacon
      beacon_modules: [{module: speed-module}]
`

	_, err := gamedata.LoadPlan(strings.NewReader(doc), registry)

	var invalid *gamedata.ErrInvalidPlan
	require.True(t, errors.As(err, &invalid))
	assert.Contains(t, invalid.Reason, "needs a count")
}

func TestLoadPlan_NegativeBuildings(t *testing.T) {
	registry := helpers.SampleRegistry(t)

	_, err := gamedata.LoadPlan(strings.NewReader("nodes:\n  - {recipe: iron-gear, buildings: -1}\n"), registry)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Buildings")
}
