package gamedata

import (
	"errors"
	"math/rand"
)

// PartRegistry holds loaded part definitions and provides lookup utilities.
type PartRegistry struct {
	parts  map[int]*Part
	all    []Part
	issues []string
}

// NewPartRegistry creates a registry from part definitions. Entries that fail
// validation are dropped and reported by Issues.
func NewPartRegistry(parts []Part) *PartRegistry {
	valid, issues := ValidateParts(parts)
	registry := &PartRegistry{
		parts:  make(map[int]*Part, len(valid)),
		all:    valid,
		issues: issues,
	}
	for i := range valid {
		registry.parts[valid[i].ID] = &registry.all[i]
	}
	return registry
}

// LoadPartRegistry loads and creates a registry from the embedded parts.json.
func LoadPartRegistry() (*PartRegistry, error) {
	parts, err := LoadParts()
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, errors.New("no parts loaded from parts.json")
	}
	return NewPartRegistry(parts), nil
}

// MustLoadPartRegistry loads a registry, panicking on error.
func MustLoadPartRegistry() *PartRegistry {
	registry, err := LoadPartRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the part with the given ID, or nil if not found.
// ID 0 is the empty slot marker and always returns nil.
func (r *PartRegistry) GetByID(id int) *Part {
	if id == 0 {
		return nil
	}
	return r.parts[id]
}

// ByType returns every part of the given category.
func (r *PartRegistry) ByType(c Category) []*Part {
	var result []*Part
	for i := range r.all {
		if r.all[i].Type == c {
			result = append(result, &r.all[i])
		}
	}
	return result
}

// All returns all part definitions.
func (r *PartRegistry) All() []Part {
	return r.all
}

// Count returns the number of parts in the registry.
func (r *PartRegistry) Count() int {
	return len(r.all)
}

// Issues returns the validation problems found while building the registry.
func (r *PartRegistry) Issues() []string {
	return r.issues
}

// =============================================================================
// LoadoutRegistry
// =============================================================================

// LoadoutRegistry holds mech presets.
type LoadoutRegistry struct {
	loadouts map[string]*LoadoutDef
	all      []LoadoutDef
}

// NewLoadoutRegistry creates a registry from loaded presets.
func NewLoadoutRegistry(loadouts []LoadoutDef) *LoadoutRegistry {
	registry := &LoadoutRegistry{
		loadouts: make(map[string]*LoadoutDef),
		all:      loadouts,
	}
	for i := range loadouts {
		registry.loadouts[loadouts[i].ID] = &loadouts[i]
	}
	return registry
}

// LoadLoadoutRegistry loads and creates a registry from the embedded loadouts.json.
func LoadLoadoutRegistry() (*LoadoutRegistry, error) {
	loadouts, err := LoadLoadouts()
	if err != nil {
		return nil, err
	}
	if len(loadouts) == 0 {
		return nil, errors.New("no loadouts loaded from loadouts.json")
	}
	return NewLoadoutRegistry(loadouts), nil
}

// MustLoadLoadoutRegistry loads a registry, panicking on error.
func MustLoadLoadoutRegistry() *LoadoutRegistry {
	registry, err := LoadLoadoutRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the preset with the given ID, or nil if not found.
func (r *LoadoutRegistry) GetByID(id string) *LoadoutDef {
	return r.loadouts[id]
}

// Random picks a preset uniformly.
func (r *LoadoutRegistry) Random(rng *rand.Rand) *LoadoutDef {
	if len(r.all) == 0 {
		return nil
	}
	return &r.all[rng.Intn(len(r.all))]
}

// All returns all presets.
func (r *LoadoutRegistry) All() []LoadoutDef {
	return r.all
}

// Count returns the number of presets in the registry.
func (r *LoadoutRegistry) Count() int {
	return len(r.all)
}
