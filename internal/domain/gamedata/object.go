package gamedata

// Object is anything the registry knows about: goods, entities, recipes and
// technologies.
type Object interface {
	Name() string
	// Cost is the static cost estimate of one unit of the object.
	Cost() float64
}

// Goods is an object that can flow between production steps (items, fluids,
// special goods such as electricity or heat).
type Goods interface {
	Object
	// FuelValue is the energy (MJ) released by consuming one unit as fuel.
	FuelValue() float64
	// Production lists the recipes that output this goods.
	Production() []*Recipe
	// Usages lists the recipes that consume this goods.
	Usages() []*Recipe
	// AsFluid returns the fluid view of the goods, or nil.
	AsFluid() *Fluid
}

// Entity is a placeable building.
type Entity interface {
	Object
	PlacementItems() []*Item
}

// ObjectWithQuality pairs an object with a quality tier. It is comparable and
// used as a map key for aggregated lists.
type ObjectWithQuality struct {
	Object  Object
	Quality *Quality
}

// With pairs an object with a quality tier
func With(obj Object, quality *Quality) ObjectWithQuality {
	return ObjectWithQuality{Object: obj, Quality: quality.OrNormal()}
}

func (o ObjectWithQuality) String() string {
	if o.Object == nil {
		return "<nil>"
	}
	if o.Quality == nil || o.Quality.Level == 0 {
		return o.Object.Name()
	}
	return o.Object.Name() + " (" + o.Quality.Name() + ")"
}

type base struct {
	name string
	cost float64
}

func (b *base) Name() string   { return b.name }
func (b *base) Cost() float64  { return b.cost }
func (b *base) String() string { return b.name }

// SetCost sets the static cost estimate of the object
func (b *base) SetCost(cost float64) { b.cost = cost }

type goodsBase struct {
	base
	fuelValue  float64
	production []*Recipe
	usages     []*Recipe
}

func (g *goodsBase) FuelValue() float64    { return g.fuelValue }
func (g *goodsBase) Production() []*Recipe { return g.production }
func (g *goodsBase) Usages() []*Recipe     { return g.usages }
func (g *goodsBase) AsFluid() *Fluid       { return nil }

// SetFuelValue sets the energy released per unit
func (g *goodsBase) SetFuelValue(value float64) { g.fuelValue = value }

func (g *goodsBase) resetLinks() {
	g.production = nil
	g.usages = nil
}
