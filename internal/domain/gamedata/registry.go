package gamedata

import "sort"

// Registry is the static game-data registry. It is populated once, linked,
// and treated as read-only by every calculation afterwards.
type Registry struct {
	goods        map[string]Goods
	crafters     map[string]*Crafter
	beacons      map[string]*Beacon
	modules      map[string]*Module
	recipes      map[string]*Recipe
	technologies map[string]*Technology
	qualities    map[string]*Quality
}

// NewRegistry creates an empty registry that already knows the Normal quality
func NewRegistry() *Registry {
	return &Registry{
		goods:        make(map[string]Goods),
		crafters:     make(map[string]*Crafter),
		beacons:      make(map[string]*Beacon),
		modules:      make(map[string]*Module),
		recipes:      make(map[string]*Recipe),
		technologies: make(map[string]*Technology),
		qualities:    map[string]*Quality{Normal.Name(): Normal},
	}
}

// AddGoods registers an item, fluid or special goods. Modules are also goods.
func (r *Registry) AddGoods(g Goods) error {
	if _, exists := r.goods[g.Name()]; exists {
		return &ErrDuplicateObject{Kind: "goods", Name: g.Name()}
	}
	r.goods[g.Name()] = g
	if m, ok := g.(*Module); ok {
		r.modules[m.Name()] = m
	}
	return nil
}

// AddCrafter registers a machine
func (r *Registry) AddCrafter(c *Crafter) error {
	if _, exists := r.crafters[c.Name()]; exists {
		return &ErrDuplicateObject{Kind: "machine", Name: c.Name()}
	}
	r.crafters[c.Name()] = c
	return nil
}

// AddBeacon registers a beacon
func (r *Registry) AddBeacon(b *Beacon) error {
	if _, exists := r.beacons[b.Name()]; exists {
		return &ErrDuplicateObject{Kind: "beacon", Name: b.Name()}
	}
	r.beacons[b.Name()] = b
	return nil
}

// AddRecipe registers a recipe
func (r *Registry) AddRecipe(rec *Recipe) error {
	if _, exists := r.recipes[rec.Name()]; exists {
		return &ErrDuplicateObject{Kind: "recipe", Name: rec.Name()}
	}
	r.recipes[rec.Name()] = rec
	return nil
}

// AddTechnology registers a technology
func (r *Registry) AddTechnology(t *Technology) error {
	if _, exists := r.technologies[t.Name()]; exists {
		return &ErrDuplicateObject{Kind: "technology", Name: t.Name()}
	}
	r.technologies[t.Name()] = t
	return nil
}

// AddQuality registers a quality tier
func (r *Registry) AddQuality(q *Quality) error {
	if _, exists := r.qualities[q.Name()]; exists {
		return &ErrDuplicateObject{Kind: "quality", Name: q.Name()}
	}
	r.qualities[q.Name()] = q
	return nil
}

// Link rebuilds the derived production and usage indices. It must be called
// after the last Add and before any calculation.
func (r *Registry) Link() {
	for _, g := range r.goods {
		if gb := goodsBaseOf(g); gb != nil {
			gb.resetLinks()
		}
	}

	for _, name := range sortedKeys(r.recipes) {
		recipe := r.recipes[name]
		for _, ingredient := range recipe.Ingredients {
			addUsage(ingredient.Goods, recipe)
		}
		for _, product := range recipe.Products {
			addProduction(product.Goods, recipe)
		}
	}
}

func addUsage(g Goods, recipe *Recipe) {
	if gb := goodsBaseOf(g); gb != nil && !containsRecipe(gb.usages, recipe) {
		gb.usages = append(gb.usages, recipe)
	}
}

func addProduction(g Goods, recipe *Recipe) {
	if gb := goodsBaseOf(g); gb != nil && !containsRecipe(gb.production, recipe) {
		gb.production = append(gb.production, recipe)
	}
}

func goodsBaseOf(g Goods) *goodsBase {
	switch v := g.(type) {
	case *Item:
		return &v.goodsBase
	case *Module:
		return &v.goodsBase
	case *Fluid:
		return &v.goodsBase
	case *Special:
		return &v.goodsBase
	}
	return nil
}

func containsRecipe(list []*Recipe, recipe *Recipe) bool {
	for _, r := range list {
		if r == recipe {
			return true
		}
	}
	return false
}

// Goods returns a registered goods by name
func (r *Registry) Goods(name string) (Goods, error) {
	if g, ok := r.goods[name]; ok {
		return g, nil
	}
	return nil, &ErrUnknownObject{Kind: "goods", Name: name}
}

// Item returns a registered item by name
func (r *Registry) Item(name string) (*Item, error) {
	if item, ok := r.goods[name].(*Item); ok {
		return item, nil
	}
	return nil, &ErrUnknownObject{Kind: "item", Name: name}
}

// Fluid returns a registered fluid variant by name
func (r *Registry) Fluid(name string) (*Fluid, error) {
	if g, ok := r.goods[name]; ok {
		if f := g.AsFluid(); f != nil {
			return f, nil
		}
	}
	return nil, &ErrUnknownObject{Kind: "fluid", Name: name}
}

// Crafter returns a registered machine by name
func (r *Registry) Crafter(name string) (*Crafter, error) {
	if c, ok := r.crafters[name]; ok {
		return c, nil
	}
	return nil, &ErrUnknownObject{Kind: "machine", Name: name}
}

// Beacon returns a registered beacon by name
func (r *Registry) Beacon(name string) (*Beacon, error) {
	if b, ok := r.beacons[name]; ok {
		return b, nil
	}
	return nil, &ErrUnknownObject{Kind: "beacon", Name: name}
}

// Module returns a registered module by name
func (r *Registry) Module(name string) (*Module, error) {
	if m, ok := r.modules[name]; ok {
		return m, nil
	}
	return nil, &ErrUnknownObject{Kind: "module", Name: name}
}

// Recipe returns a registered recipe by name
func (r *Registry) Recipe(name string) (*Recipe, error) {
	if rec, ok := r.recipes[name]; ok {
		return rec, nil
	}
	return nil, &ErrUnknownObject{Kind: "recipe", Name: name}
}

// Technology returns a registered technology by name
func (r *Registry) Technology(name string) (*Technology, error) {
	if t, ok := r.technologies[name]; ok {
		return t, nil
	}
	return nil, &ErrUnknownObject{Kind: "technology", Name: name}
}

// RecipeOrTechnology resolves a production node target. Recipes win over
// technologies that share a name.
func (r *Registry) RecipeOrTechnology(name string) (RecipeOrTechnology, error) {
	if rec, ok := r.recipes[name]; ok {
		return rec, nil
	}
	if t, ok := r.technologies[name]; ok {
		return t, nil
	}
	return nil, &ErrUnknownObject{Kind: "recipe or technology", Name: name}
}

// Object kinds used to address objects whose names may collide across kinds
const (
	KindGoods      = "goods"
	KindMachine    = "machine"
	KindBeacon     = "beacon"
	KindRecipe     = "recipe"
	KindTechnology = "technology"
)

// KindOf returns the lookup kind of obj, or "" for unknown object types
func KindOf(obj Object) string {
	switch obj.(type) {
	case Goods:
		return KindGoods
	case *Crafter:
		return KindMachine
	case *Beacon:
		return KindBeacon
	case *Recipe:
		return KindRecipe
	case *Technology:
		return KindTechnology
	default:
		return ""
	}
}

// Lookup resolves an object by kind and name
func (r *Registry) Lookup(kind, name string) (Object, error) {
	var obj Object
	var ok bool
	switch kind {
	case KindGoods:
		obj, ok = r.goods[name]
	case KindMachine:
		obj, ok = r.crafters[name]
	case KindBeacon:
		obj, ok = r.beacons[name]
	case KindRecipe:
		obj, ok = r.recipes[name]
	case KindTechnology:
		obj, ok = r.technologies[name]
	}
	if !ok {
		return nil, &ErrUnknownObject{Kind: kind, Name: name}
	}
	return obj, nil
}

// Quality returns a registered quality tier. An empty name means Normal.
func (r *Registry) Quality(name string) (*Quality, error) {
	if name == "" {
		return Normal, nil
	}
	if q, ok := r.qualities[name]; ok {
		return q, nil
	}
	return nil, &ErrUnknownObject{Kind: "quality", Name: name}
}

// Recipes returns every recipe sorted by name
func (r *Registry) Recipes() []*Recipe {
	result := make([]*Recipe, 0, len(r.recipes))
	for _, name := range sortedKeys(r.recipes) {
		result = append(result, r.recipes[name])
	}
	return result
}

// Crafters returns every machine sorted by name
func (r *Registry) Crafters() []*Crafter {
	result := make([]*Crafter, 0, len(r.crafters))
	for _, name := range sortedKeys(r.crafters) {
		result = append(result, r.crafters[name])
	}
	return result
}

// FindSingleAccessibleProducer returns the only accessible recipe producing
// g, or nil when there is none or more than one.
func FindSingleAccessibleProducer(g Goods) *Recipe {
	var current *Recipe
	for _, recipe := range g.Production() {
		if !recipe.Accessible {
			continue
		}
		if current != nil {
			return nil
		}
		current = recipe
	}
	return current
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
