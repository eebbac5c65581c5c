package production

import "github.com/andrescamacho/factory-planner/internal/domain/gamedata"

// UsedModule is one line of the descriptive module record
type UsedModule struct {
	Module  *gamedata.Module
	Quality *gamedata.Quality
	Count   int
	// Beacon is true when the modules sit in beacons rather than the machine
	Beacon bool
}

// UsedModules describes which modules a calculation ended up using. It is
// output for display and shopping lists, never input to further calculation.
type UsedModules struct {
	Modules       []UsedModule
	Beacon        *gamedata.Beacon
	BeaconQuality *gamedata.Quality
	BeaconCount   int
}

// IsEmpty reports whether no module is in use
func (u UsedModules) IsEmpty() bool {
	return len(u.Modules) == 0 && u.Beacon == nil
}

// InternalCount returns the number of modules inserted in the machine itself
func (u UsedModules) InternalCount() int {
	total := 0
	for _, m := range u.Modules {
		if !m.Beacon {
			total += m.Count
		}
	}
	return total
}

func (u UsedModules) clone() UsedModules {
	if u.Modules != nil {
		u.Modules = append([]UsedModule(nil), u.Modules...)
	}
	return u
}
