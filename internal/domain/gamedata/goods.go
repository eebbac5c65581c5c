package gamedata

// Item kinds that matter to planning decisions
const (
	ItemKindItem   = "item"
	ItemKindModule = "module"
	ItemKindTool   = "tool"
)

// Item is a solid goods. Items may place a building.
type Item struct {
	goodsBase
	// Kind is the item prototype type ("item", "module", "tool", ...)
	Kind string
	// PlaceResult is the building placed by this item, if any
	PlaceResult Entity
}

// NewItem creates an item of the plain "item" kind
func NewItem(name string) *Item {
	return &Item{goodsBase: goodsBase{base: base{name: name}}, Kind: ItemKindItem}
}

// IsBuildingItem reports whether the item is not a plain intermediate:
// either it places an entity or it is of a special prototype kind.
func (i *Item) IsBuildingItem() bool {
	return i.Kind != ItemKindItem || i.PlaceResult != nil
}

// Fluid is a goods with a temperature. Temperature variants of the same fluid
// are distinct registry entries.
type Fluid struct {
	goodsBase
	Temperature int
	// HeatCapacity is the energy (MJ) per unit per degree
	HeatCapacity float64
}

// NewFluid creates a fluid variant
func NewFluid(name string, temperature int, heatCapacity float64) *Fluid {
	return &Fluid{
		goodsBase:    goodsBase{base: base{name: name}},
		Temperature:  temperature,
		HeatCapacity: heatCapacity,
	}
}

func (f *Fluid) AsFluid() *Fluid { return f }

// Special is an abstract goods such as electricity or heat.
type Special struct {
	goodsBase
}

// NewSpecial creates a special goods with the given fuel value
func NewSpecial(name string, fuelValue float64) *Special {
	return &Special{goodsBase: goodsBase{base: base{name: name}, fuelValue: fuelValue}}
}

// ModuleEffect holds the raw effect components of a module prototype.
type ModuleEffect struct {
	Productivity float64
	Speed        float64
	Consumption  float64
	Quality      float64
}

// Module is an item that can be inserted into machines or beacons.
type Module struct {
	Item
	Category string
	Effect   ModuleEffect
}

// NewModule creates a module item
func NewModule(name, category string, effect ModuleEffect) *Module {
	m := &Module{Category: category, Effect: effect}
	m.name = name
	m.Kind = ItemKindModule
	return m
}

// EffectFor returns the module's effect at the given quality. Quality only
// strengthens the beneficial direction of each component.
func (m *Module) EffectFor(quality *Quality) ModuleEffect {
	mult := quality.BonusMultiplier()
	e := m.Effect
	if e.Productivity > 0 {
		e.Productivity *= mult
	}
	if e.Speed > 0 {
		e.Speed *= mult
	}
	if e.Consumption < 0 {
		e.Consumption *= mult
	}
	if e.Quality > 0 {
		e.Quality *= mult
	}
	return e
}
