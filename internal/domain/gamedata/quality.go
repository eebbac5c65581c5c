package gamedata

// QualityBonusPerLevel is the fraction by which each quality level increases
// the beneficial side of a module effect.
const QualityBonusPerLevel = 0.3

// Quality represents a discrete tier modifier applied to objects and modules.
// Fluids never carry a quality tier; they are always recorded at Normal.
type Quality struct {
	name  string
	Level int
}

// NewQuality creates a quality tier
func NewQuality(name string, level int) *Quality {
	return &Quality{name: name, Level: level}
}

// Normal is the reference quality tier (level 0).
var Normal = NewQuality("normal", 0)

func (q *Quality) Name() string { return q.name }

// BonusMultiplier returns the factor applied to beneficial module bonuses.
// A nil quality behaves like Normal.
func (q *Quality) BonusMultiplier() float64 {
	if q == nil {
		return 1
	}
	return 1 + QualityBonusPerLevel*float64(q.Level)
}

// OrNormal returns q, or Normal when q is nil
func (q *Quality) OrNormal() *Quality {
	if q == nil {
		return Normal
	}
	return q
}

func (q *Quality) String() string {
	if q == nil {
		return Normal.name
	}
	return q.name
}
