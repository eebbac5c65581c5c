package shopping

import "fmt"

// DisplayState selects which building count the shopping list shows
type DisplayState int

const (
	// DisplayTotal shows every building the plan requires
	DisplayTotal DisplayState = iota
	// DisplayBuilt shows the buildings reported as already built
	DisplayBuilt
	// DisplayMissing shows the buildings still to be built
	DisplayMissing
)

func (s DisplayState) String() string {
	switch s {
	case DisplayTotal:
		return "total"
	case DisplayBuilt:
		return "built"
	case DisplayMissing:
		return "missing"
	default:
		return fmt.Sprintf("DisplayState(%d)", int(s))
	}
}

// ParseDisplayState parses "total", "built" or "missing"
func ParseDisplayState(s string) (DisplayState, error) {
	switch s {
	case "total", "":
		return DisplayTotal, nil
	case "built":
		return DisplayBuilt, nil
	case "missing":
		return DisplayMissing, nil
	default:
		return DisplayTotal, fmt.Errorf("unknown display state %q: expected total, built or missing", s)
	}
}

// Options control how node building counts are turned into shopping counts
type Options struct {
	Display DisplayState
	// AssumeAdequate treats an unset built count as the rounded-up requirement
	// instead of zero
	AssumeAdequate bool
}

// Pack encodes the options as one integer: display state in the upper bits,
// the assume-adequate flag in bit 0.
func (o Options) Pack() int {
	packed := int(o.Display) << 1
	if o.AssumeAdequate {
		packed |= 1
	}
	return packed
}

// UnpackOptions is the inverse of Options.Pack. Unknown display states fall
// back to DisplayTotal.
func UnpackOptions(packed int) Options {
	display := DisplayState(packed >> 1)
	if display < DisplayTotal || display > DisplayMissing {
		display = DisplayTotal
	}
	return Options{Display: display, AssumeAdequate: packed&1 != 0}
}
