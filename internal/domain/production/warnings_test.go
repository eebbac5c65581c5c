package production_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner/internal/domain/production"
)

func TestWarningFlags_DeclaredInsideCategoryRange(t *testing.T) {
	flags := production.KnownWarningFlags()
	require.NotEmpty(t, flags)

	for _, flag := range flags {
		declared, ok := flag.DeclaredCategory()
		require.True(t, ok, flag.String())

		assert.Equal(t, declared, flag.Category(), "%s is outside its category range", flag)
		assert.Equal(t, flag, flag&declared.Mask(), "%s is outside its category mask", flag)
		assert.NotEmpty(t, flag.Description())
	}
}

func TestWarningFlags_CategoryMasksAreDisjoint(t *testing.T) {
	var seen production.WarningFlags
	for _, category := range production.Categories() {
		assert.Zero(t, seen&category.Mask(), category.String())
		seen |= category.Mask()
	}
	assert.Equal(t, ^production.WarningFlags(0), seen)
}

func TestWarningFlags_BitPositionsAreStable(t *testing.T) {
	assert.Equal(t, production.WarningFlags(0x1), production.AssumesNauvisSolarRatio)
	assert.Equal(t, production.WarningFlags(0x2), production.ReactorsNeighborsFromPrefs)
	assert.Equal(t, production.WarningFlags(0x4), production.FuelUsageInputLimited)
	assert.Equal(t, production.WarningFlags(0x100), production.EntityNotSpecified)
	assert.Equal(t, production.WarningFlags(0x200), production.FuelNotSpecified)
	assert.Equal(t, production.WarningFlags(0x400), production.FuelTemperatureExceedsMaximum)
	assert.Equal(t, production.WarningFlags(0x800), production.FuelDoesNotProvideEnergy)
	assert.Equal(t, production.WarningFlags(0x1000), production.FuelWithTemperatureNotLinked)
	assert.Equal(t, production.WarningFlags(0x10000), production.DeadlockCandidate)
	assert.Equal(t, production.WarningFlags(0x20000), production.OverproductionRequired)
	assert.Equal(t, production.WarningFlags(0x40000), production.ExceedsBuiltCount)
	assert.Equal(t, production.WarningFlags(0x1000000), production.TemperatureForIngredientNotMatch)
}

func TestWarningFlags_SplitAndString(t *testing.T) {
	// Arrange
	flags := production.FuelNotSpecified | production.AssumesNauvisSolarRatio

	// Act
	split := flags.Split()

	// Assert
	assert.Equal(t, []production.WarningFlags{production.AssumesNauvisSolarRatio, production.FuelNotSpecified}, split)
	assert.Equal(t, "AssumesNauvisSolarRatio|FuelNotSpecified", flags.String())
	assert.Equal(t, "none", production.WarningFlags(0).String())
	assert.True(t, flags.HasCategory(production.CategoryStaticError))
	assert.False(t, flags.HasCategory(production.CategorySolutionError))
}
