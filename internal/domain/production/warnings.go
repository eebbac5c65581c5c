package production

import (
	"math/bits"
	"strings"
)

// WarningFlags is a diagnostic bit set produced by a parameter calculation.
//
// The bit positions are a contract with presentation code and the external
// solver. The 32 bits are split into four byte-wide ranges, one per
// WarningCategory. New flags go into the range of their category and existing
// flags are never renumbered.
type WarningFlags uint32

const (
	// Informational: an assumption was made silently
	AssumesNauvisSolarRatio    WarningFlags = 1 << 0
	ReactorsNeighborsFromPrefs WarningFlags = 1 << 1
	FuelUsageInputLimited      WarningFlags = 1 << 2

	// Static configuration errors
	EntityNotSpecified            WarningFlags = 1 << 8
	FuelNotSpecified              WarningFlags = 1 << 9
	FuelTemperatureExceedsMaximum WarningFlags = 1 << 10
	FuelDoesNotProvideEnergy      WarningFlags = 1 << 11
	FuelWithTemperatureNotLinked  WarningFlags = 1 << 12

	// Solution errors, set by the external solver only
	DeadlockCandidate      WarningFlags = 1 << 16
	OverproductionRequired WarningFlags = 1 << 17
	ExceedsBuiltCount      WarningFlags = 1 << 18

	// Unimplemented feature notices
	TemperatureForIngredientNotMatch WarningFlags = 1 << 24
)

// WarningCategory is the severity range a flag belongs to
type WarningCategory int

const (
	CategoryInformational WarningCategory = iota
	CategoryStaticError
	CategorySolutionError
	CategoryNotImplemented
)

func (c WarningCategory) String() string {
	switch c {
	case CategoryInformational:
		return "informational"
	case CategoryStaticError:
		return "static-error"
	case CategorySolutionError:
		return "solution-error"
	case CategoryNotImplemented:
		return "not-implemented"
	default:
		return "unknown"
	}
}

// Mask returns the bit range reserved for the category
func (c WarningCategory) Mask() WarningFlags {
	return WarningFlags(0xFF) << (8 * uint(c))
}

// Categories lists every category in range order
func Categories() []WarningCategory {
	return []WarningCategory{CategoryInformational, CategoryStaticError, CategorySolutionError, CategoryNotImplemented}
}

type warningInfo struct {
	name        string
	category    WarningCategory
	description string
}

var warningTable = map[WarningFlags]warningInfo{
	AssumesNauvisSolarRatio: {"AssumesNauvisSolarRatio", CategoryInformational,
		"Energy production values assume the reference day/night solar ratio"},
	ReactorsNeighborsFromPrefs: {"ReactorsNeighborsFromPrefs", CategoryInformational,
		"Assumes the reactor layout configured in settings for the neighbour bonus"},
	FuelUsageInputLimited: {"FuelUsageInputLimited", CategoryInformational,
		"Fuel usage is capped by the machine's maximum fuel consumption rate"},
	EntityNotSpecified: {"EntityNotSpecified", CategoryStaticError,
		"Crafter not specified. Solution is inaccurate."},
	FuelNotSpecified: {"FuelNotSpecified", CategoryStaticError,
		"Fuel not specified. Solution is inaccurate."},
	FuelTemperatureExceedsMaximum: {"FuelTemperatureExceedsMaximum", CategoryStaticError,
		"Fluid temperature is higher than the machine maximum; excess heat is wasted"},
	FuelDoesNotProvideEnergy: {"FuelDoesNotProvideEnergy", CategoryStaticError,
		"This fuel cannot provide any energy to this machine"},
	FuelWithTemperatureNotLinked: {"FuelWithTemperatureNotLinked", CategoryStaticError,
		"Fuel with a temperature is not linked; the machine cannot work"},
	DeadlockCandidate: {"DeadlockCandidate", CategorySolutionError,
		"Contains recursive links that cannot be matched"},
	OverproductionRequired: {"OverproductionRequired", CategorySolutionError,
		"This model cannot be solved exactly, it requires some overproduction"},
	ExceedsBuiltCount: {"ExceedsBuiltCount", CategorySolutionError,
		"This recipe requires more buildings than are currently built"},
	TemperatureForIngredientNotMatch: {"TemperatureForIngredientNotMatch", CategoryNotImplemented,
		"Ingredient temperature matching is not implemented"},
}

// KnownWarningFlags returns every defined flag in bit order
func KnownWarningFlags() []WarningFlags {
	var result []WarningFlags
	for bit := 0; bit < 32; bit++ {
		flag := WarningFlags(1) << uint(bit)
		if _, ok := warningTable[flag]; ok {
			result = append(result, flag)
		}
	}
	return result
}

// Has reports whether every bit of flag is set
func (w WarningFlags) Has(flag WarningFlags) bool {
	return w&flag == flag
}

// HasCategory reports whether any flag of the category is set
func (w WarningFlags) HasCategory(c WarningCategory) bool {
	return w&c.Mask() != 0
}

// Category returns the category of a single flag, derived from its bit range
func (w WarningFlags) Category() WarningCategory {
	if w == 0 {
		return CategoryInformational
	}
	return WarningCategory(bits.TrailingZeros32(uint32(w)) / 8)
}

// DeclaredCategory returns the category the flag was declared with
func (w WarningFlags) DeclaredCategory() (WarningCategory, bool) {
	info, ok := warningTable[w]
	return info.category, ok
}

// Description returns the user-facing text for a single flag
func (w WarningFlags) Description() string {
	if info, ok := warningTable[w]; ok {
		return info.description
	}
	return ""
}

// Split returns the individual flags that are set, lowest bit first
func (w WarningFlags) Split() []WarningFlags {
	var result []WarningFlags
	for rest := uint32(w); rest != 0; rest &= rest - 1 {
		result = append(result, WarningFlags(1)<<uint(bits.TrailingZeros32(rest)))
	}
	return result
}

func (w WarningFlags) String() string {
	if w == 0 {
		return "none"
	}
	names := make([]string, 0, bits.OnesCount32(uint32(w)))
	for _, flag := range w.Split() {
		if info, ok := warningTable[flag]; ok {
			names = append(names, info.name)
		} else {
			names = append(names, "unknown")
		}
	}
	return strings.Join(names, "|")
}
