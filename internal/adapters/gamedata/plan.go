package gamedata

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	domain "github.com/andrescamacho/factory-planner/internal/domain/gamedata"
	"github.com/andrescamacho/factory-planner/internal/domain/production"
	"github.com/andrescamacho/factory-planner/internal/infrastructure/config"
)

// PlanDocument is the on-disk shape of a plan file: a flat node list plus the
// external demands the plan is meant to satisfy
type PlanDocument struct {
	Nodes   []NodeDoc          `yaml:"nodes" validate:"dive"`
	Demands map[string]float64 `yaml:"demands"`
}

type NodeDoc struct {
	Recipe         string      `yaml:"recipe" validate:"required"`
	RecipeQuality  string      `yaml:"recipe_quality"`
	Machine        string      `yaml:"machine"`
	MachineQuality string      `yaml:"machine_quality"`
	Fuel           string      `yaml:"fuel"`
	Buildings      float64     `yaml:"buildings" validate:"min=0"`
	Built          *int        `yaml:"built" validate:"omitempty,min=0"`
	Modules        *ModulesDoc `yaml:"modules"`
}

type ModulesDoc struct {
	Machine       []ModuleSlotDoc `yaml:"machine" validate:"dive"`
	Beacon        string          `yaml:"beacon"`
	BeaconQuality string          `yaml:"beacon_quality"`
	BeaconModules []ModuleSlotDoc `yaml:"beacon_modules" validate:"dive"`
}

type ModuleSlotDoc struct {
	Module  string `yaml:"module" validate:"required"`
	Quality string `yaml:"quality"`
	// Count 0 fills the remaining machine slots
	Count int `yaml:"count" validate:"min=0"`
}

// Plan is a resolved plan file
type Plan struct {
	Nodes   []*production.Node
	Demands map[string]float64
}

// ErrInvalidPlan reports a plan node that does not resolve against the registry
type ErrInvalidPlan struct {
	Node   int
	Reason string
	Err    error
}

func (e *ErrInvalidPlan) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("plan node %d: %s: %v", e.Node, e.Reason, e.Err)
	}
	return fmt.Sprintf("plan node %d: %s", e.Node, e.Reason)
}

func (e *ErrInvalidPlan) Unwrap() error { return e.Err }

// LoadPlanFile reads a plan file and resolves it against registry
func LoadPlanFile(path string, registry *domain.Registry) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plan: %w", err)
	}
	defer f.Close()

	plan, err := LoadPlan(f, registry)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return plan, nil
}

// LoadPlan decodes a plan document and resolves every node against registry
func LoadPlan(r io.Reader, registry *domain.Registry) (*Plan, error) {
	var doc PlanDocument
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}

	if err := config.NewValidator().Validate(&doc); err != nil {
		return nil, err
	}

	plan := &Plan{Nodes: make([]*production.Node, 0, len(doc.Nodes)), Demands: doc.Demands}
	if plan.Demands == nil {
		plan.Demands = map[string]float64{}
	}
	for i, nd := range doc.Nodes {
		node, err := resolveNode(registry, nd)
		if err != nil {
			var invalid *ErrInvalidPlan
			if errors.As(err, &invalid) {
				invalid.Node = i
				return nil, invalid
			}
			return nil, &ErrInvalidPlan{Node: i, Reason: "unresolved reference", Err: err}
		}
		plan.Nodes = append(plan.Nodes, node)
	}
	return plan, nil
}

func resolveNode(registry *domain.Registry, nd NodeDoc) (*production.Node, error) {
	recipe, err := registry.RecipeOrTechnology(nd.Recipe)
	if err != nil {
		return nil, err
	}
	recipeQuality, err := registry.Quality(nd.RecipeQuality)
	if err != nil {
		return nil, err
	}
	machineQuality, err := registry.Quality(nd.MachineQuality)
	if err != nil {
		return nil, err
	}

	node := &production.Node{
		Recipe:         recipe,
		RecipeQuality:  recipeQuality,
		MachineQuality: machineQuality,
		BuildingCount:  nd.Buildings,
		BuiltBuildings: nd.Built,
	}

	if nd.Machine != "" {
		if node.Machine, err = registry.Crafter(nd.Machine); err != nil {
			return nil, err
		}
	}
	if nd.Fuel != "" {
		if node.Fuel, err = registry.Goods(nd.Fuel); err != nil {
			return nil, err
		}
	}

	if nd.Modules != nil {
		if node.Machine == nil {
			return nil, &ErrInvalidPlan{Reason: "modules configured without a machine"}
		}
		template, err := resolveTemplate(registry, nd.Modules)
		if err != nil {
			return nil, err
		}
		node.Modules = template
	}
	return node, nil
}

func resolveTemplate(registry *domain.Registry, md *ModulesDoc) (*production.ModuleTemplate, error) {
	template := &production.ModuleTemplate{}
	var err error
	if template.Modules, err = resolveSlots(registry, md.Machine); err != nil {
		return nil, err
	}

	if md.Beacon == "" {
		if len(md.BeaconModules) > 0 {
			return nil, &ErrInvalidPlan{Reason: "beacon modules configured without a beacon"}
		}
		return template, nil
	}

	if template.Beacon, err = registry.Beacon(md.Beacon); err != nil {
		return nil, err
	}
	if template.BeaconQuality, err = registry.Quality(md.BeaconQuality); err != nil {
		return nil, err
	}
	if template.BeaconModules, err = resolveSlots(registry, md.BeaconModules); err != nil {
		return nil, err
	}
	for _, slot := range template.BeaconModules {
		if slot.FixedCount == 0 {
			return nil, &ErrInvalidPlan{Reason: fmt.Sprintf("beacon module %s needs a count", slot.Module.Name())}
		}
	}
	return template, nil
}

func resolveSlots(registry *domain.Registry, docs []ModuleSlotDoc) ([]production.ModuleSlot, error) {
	slots := make([]production.ModuleSlot, 0, len(docs))
	for _, sd := range docs {
		module, err := registry.Module(sd.Module)
		if err != nil {
			return nil, err
		}
		quality, err := registry.Quality(sd.Quality)
		if err != nil {
			return nil, err
		}
		slots = append(slots, production.ModuleSlot{Module: module, Quality: quality, FixedCount: sd.Count})
	}
	return slots, nil
}
