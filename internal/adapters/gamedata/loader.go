package gamedata

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	domain "github.com/andrescamacho/factory-planner/internal/domain/gamedata"
	"github.com/andrescamacho/factory-planner/internal/infrastructure/config"
)

// LoadFile reads and links a game-data registry from a YAML file
func LoadFile(path string) (*domain.Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open game data: %w", err)
	}
	defer f.Close()

	registry, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return registry, nil
}

// Load decodes a game-data document and builds a linked registry from it
func Load(r io.Reader) (*domain.Registry, error) {
	var doc Document
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse game data: %w", err)
	}

	if err := config.NewValidator().Validate(&doc); err != nil {
		return nil, err
	}

	b := &builder{registry: domain.NewRegistry()}
	if err := b.build(&doc); err != nil {
		return nil, err
	}
	b.registry.Link()
	return b.registry, nil
}

type builder struct {
	registry *domain.Registry
}

// build adds objects in dependency order: entities before the items that
// place them, goods and technologies before the recipes that reference them.
func (b *builder) build(doc *Document) error {
	steps := []func(*Document) error{
		b.addQualities,
		b.addMachines,
		b.addBeacons,
		b.addItems,
		b.addModules,
		b.addFluids,
		b.addSpecials,
		b.addTechnologies,
		b.addRecipes,
	}
	for _, step := range steps {
		if err := step(doc); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) addQualities(doc *Document) error {
	for _, q := range doc.Qualities {
		if err := b.registry.AddQuality(domain.NewQuality(q.Name, q.Level)); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) addMachines(doc *Document) error {
	for _, m := range doc.Machines {
		crafter := domain.NewCrafter(m.Name)
		kind, ok := domain.ParseMachineKind(m.Kind)
		if !ok {
			return fmt.Errorf("machine %s: unknown kind %q", m.Name, m.Kind)
		}
		crafter.Kind = kind
		crafter.CraftingSpeed = m.CraftingSpeed
		crafter.Power = m.Power
		crafter.BaseProductivity = m.BaseProductivity
		crafter.AllowedModuleCategories = m.ModuleCategories
		crafter.ModuleSlots = m.ModuleSlots
		crafter.ReactorNeighborBonus = m.ReactorNeighborBonus
		crafter.SetCost(m.Cost)

		for _, name := range m.AllowedEffects {
			effect, ok := domain.ParseAllowedEffect(name)
			if !ok {
				return fmt.Errorf("machine %s: unknown module effect %q", m.Name, name)
			}
			crafter.AllowedEffects |= effect
		}

		if m.Energy != nil {
			energy, err := buildEnergy(m.Energy)
			if err != nil {
				return fmt.Errorf("machine %s: %w", m.Name, err)
			}
			crafter.Energy = energy
		}

		if err := b.registry.AddCrafter(crafter); err != nil {
			return err
		}
	}
	return nil
}

func buildEnergy(doc *EnergyDoc) (*domain.Energy, error) {
	energyType, ok := domain.ParseEnergyType(doc.Type)
	if !ok {
		return nil, fmt.Errorf("unknown energy type %q", doc.Type)
	}
	if energyType == domain.EnergyFluidHeat && doc.WorkingTemperature == nil {
		return nil, fmt.Errorf("energy type %q requires working_temperature", doc.Type)
	}
	energy := domain.NewEnergy(energyType)
	if doc.WorkingTemperature != nil {
		energy.WorkingTemperature = domain.TemperatureRange{Min: doc.WorkingTemperature.Min, Max: doc.WorkingTemperature.Max}
	}
	if doc.AcceptedTemperature != nil {
		energy.AcceptedTemperature = domain.TemperatureRange{Min: doc.AcceptedTemperature.Min, Max: doc.AcceptedTemperature.Max}
	}
	if doc.Effectivity != nil {
		energy.Effectivity = *doc.Effectivity
	}
	energy.Drain = doc.Drain
	if doc.FuelConsumptionLimit > 0 {
		energy.FuelConsumptionLimit = doc.FuelConsumptionLimit
	}
	return energy, nil
}

func (b *builder) addBeacons(doc *Document) error {
	for _, bd := range doc.Beacons {
		beacon := domain.NewBeacon(bd.Name, bd.ModuleSlots, bd.DistributionEffectivity)
		beacon.EffectivityPerQuality = bd.EffectivityPerQuality
		beacon.Profile = bd.Profile
		beacon.SetCost(bd.Cost)
		if err := b.registry.AddBeacon(beacon); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) addItems(doc *Document) error {
	for _, it := range doc.Items {
		item := domain.NewItem(it.Name)
		if it.Type != "" {
			item.Kind = it.Type
		}
		item.SetCost(it.Cost)
		item.SetFuelValue(it.FuelValue)

		if it.PlaceResult != "" {
			if err := b.place(item, it.PlaceResult); err != nil {
				return fmt.Errorf("item %s: %w", it.Name, err)
			}
		}

		if err := b.registry.AddGoods(item); err != nil {
			return err
		}
	}
	return nil
}

// place links item to the machine or beacon it builds
func (b *builder) place(item *domain.Item, entity string) error {
	if crafter, err := b.registry.Crafter(entity); err == nil {
		item.PlaceResult = crafter
		crafter.ItemsToPlace = append(crafter.ItemsToPlace, item)
		return nil
	}
	beacon, err := b.registry.Beacon(entity)
	if err != nil {
		return &domain.ErrUnknownObject{Kind: "entity", Name: entity}
	}
	item.PlaceResult = beacon
	beacon.ItemsToPlace = append(beacon.ItemsToPlace, item)
	return nil
}

func (b *builder) addModules(doc *Document) error {
	for _, md := range doc.Modules {
		module := domain.NewModule(md.Name, md.Category, domain.ModuleEffect{
			Productivity: md.Effect.Productivity,
			Speed:        md.Effect.Speed,
			Consumption:  md.Effect.Consumption,
			Quality:      md.Effect.Quality,
		})
		module.SetCost(md.Cost)
		if err := b.registry.AddGoods(module); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) addFluids(doc *Document) error {
	for _, fd := range doc.Fluids {
		for _, temperature := range fd.Temperatures {
			fluid := domain.NewFluid(FluidName(fd.Name, temperature), temperature, fd.HeatCapacity)
			fluid.SetCost(fd.Cost)
			if err := b.registry.AddGoods(fluid); err != nil {
				return err
			}
		}
	}
	return nil
}

// FluidName is the registry name of a fluid at one temperature
func FluidName(name string, temperature int) string {
	return fmt.Sprintf("%s@%d", name, temperature)
}

func (b *builder) addSpecials(doc *Document) error {
	for _, sd := range doc.Specials {
		if err := b.registry.AddGoods(domain.NewSpecial(sd.Name, sd.FuelValue)); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) addTechnologies(doc *Document) error {
	for _, td := range doc.Technologies {
		technology := domain.NewTechnology(td.Name, td.Time)
		flags, err := parseFlags(td.Flags)
		if err != nil {
			return fmt.Errorf("technology %s: %w", td.Name, err)
		}
		technology.Flags = flags
		technology.Ingredients, err = b.ingredients(td.Ingredients)
		if err != nil {
			return fmt.Errorf("technology %s: %w", td.Name, err)
		}
		if err := b.registry.AddTechnology(technology); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) addRecipes(doc *Document) error {
	for _, rd := range doc.Recipes {
		recipe, err := b.recipe(rd)
		if err != nil {
			return fmt.Errorf("recipe %s: %w", rd.Name, err)
		}
		if err := b.registry.AddRecipe(recipe); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) recipe(rd RecipeDoc) (*domain.Recipe, error) {
	recipe := domain.NewRecipe(rd.Name, rd.Time)
	if rd.Accessible != nil {
		recipe.Accessible = *rd.Accessible
	}

	flags, err := parseFlags(rd.Flags)
	if err != nil {
		return nil, err
	}
	recipe.Flags = flags

	if recipe.Ingredients, err = b.ingredients(rd.Ingredients); err != nil {
		return nil, err
	}

	for _, pd := range rd.Products {
		goods, err := b.registry.Goods(pd.Goods)
		if err != nil {
			return nil, err
		}
		recipe.Products = append(recipe.Products, domain.Product{Goods: goods, Amount: pd.Amount, Probability: pd.Probability})
	}

	if len(rd.TechnologyProductivity) > 0 {
		recipe.TechnologyProductivity = make(map[string]float64, len(rd.TechnologyProductivity))
		for technology, increment := range rd.TechnologyProductivity {
			if _, err := b.registry.Technology(technology); err != nil {
				return nil, err
			}
			recipe.TechnologyProductivity[technology] = increment
		}
	}
	return recipe, nil
}

func (b *builder) ingredients(docs []IngredientDoc) ([]domain.Ingredient, error) {
	ingredients := make([]domain.Ingredient, 0, len(docs))
	for _, id := range docs {
		goods, err := b.registry.Goods(id.Goods)
		if err != nil {
			return nil, err
		}
		ingredient := domain.Ingredient{Goods: goods, Amount: id.Amount}
		for _, name := range id.Variants {
			variant, err := b.registry.Goods(name)
			if err != nil {
				return nil, err
			}
			ingredient.Variants = append(ingredient.Variants, variant)
		}
		ingredients = append(ingredients, ingredient)
	}
	return ingredients, nil
}

func parseFlags(names []string) (domain.RecipeFlags, error) {
	var flags domain.RecipeFlags
	for _, name := range names {
		flag, ok := domain.ParseRecipeFlag(name)
		if !ok {
			return 0, fmt.Errorf("unknown recipe flag %q", name)
		}
		flags |= flag
	}
	return flags, nil
}
