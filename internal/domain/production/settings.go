package production

// ProductionSettings is the process-wide configuration read by calculations.
// Calculations receive a snapshot and never mutate it.
type ProductionSettings struct {
	MiningProductivity   float64
	ResearchProductivity float64
	// ProductivityTechnologyLevels maps a technology name to its researched level
	ProductivityTechnologyLevels map[string]int
	// ReactorSizeX and ReactorSizeY describe the assumed reactor grid used for
	// the neighbour bonus
	ReactorSizeX float64
	ReactorSizeY float64
}

// DefaultProductionSettings returns settings with no research and a 2x2 reactor grid
func DefaultProductionSettings() ProductionSettings {
	return ProductionSettings{
		ProductivityTechnologyLevels: map[string]int{},
		ReactorSizeX:                 2,
		ReactorSizeY:                 2,
	}
}

// ReactorBonusMultiplier is the average number of neighbours a reactor has in
// the configured grid: 4 - 2/x - 2/y.
func (s ProductionSettings) ReactorBonusMultiplier() float64 {
	x, y := s.ReactorSizeX, s.ReactorSizeY
	if x < 1 {
		x = 1
	}
	if y < 1 {
		y = 1
	}
	return 4 - 2/x - 2/y
}

// TechnologyLevel returns the researched level of a technology
func (s ProductionSettings) TechnologyLevel(technology string) (int, bool) {
	level, ok := s.ProductivityTechnologyLevels[technology]
	return level, ok
}

// Snapshot returns a deep copy safe to share across concurrent calculations
func (s ProductionSettings) Snapshot() ProductionSettings {
	levels := make(map[string]int, len(s.ProductivityTechnologyLevels))
	for tech, level := range s.ProductivityTechnologyLevels {
		levels[tech] = level
	}
	s.ProductivityTechnologyLevels = levels
	return s
}
