package entity

import (
	"errors"
	"fmt"

	"github.com/samdwyer/mecharena/internal/gamedata"
)

const (
	// WeightLimit is the weight above which health is penalized.
	WeightLimit = 1000
	// OverloadLimit is the heaviest a mech may be while still allowed into battle.
	OverloadLimit = 1015
	// OverloadPenalty is the health lost per point of weight over WeightLimit.
	OverloadPenalty = 15
)

// Summary holds the combined stats of a set of parts.
type Summary struct {
	Weight       int
	Health       int
	EnergyCap    int
	EnergyRegen  int
	HeatCap      int
	HeatCooling  int
	PhysicalRes  int
	ExplosiveRes int
	ElectricRes  int
}

// Summarize adds up the stats of all non-nil parts and applies the
// overweight health penalty.
func Summarize(parts []*gamedata.Part) Summary {
	var s Summary
	for _, p := range parts {
		if p == nil {
			continue
		}
		s.Weight += p.Stats.Weight
		s.Health += p.Stats.Health
		s.EnergyCap += p.Stats.EnergyCap
		s.EnergyRegen += p.Stats.EnergyRegen
		s.HeatCap += p.Stats.HeatCap
		s.HeatCooling += p.Stats.HeatCooling
		s.PhysicalRes += p.Stats.PhysicalRes
		s.ExplosiveRes += p.Stats.ExplosiveRes
		s.ElectricRes += p.Stats.ElectricRes
	}

	if s.Weight > WeightLimit {
		s.Health -= (s.Weight - WeightLimit) * OverloadPenalty
	}

	return s
}

var (
	ErrMissingTorso    = errors.New("missing torso")
	ErrMissingLegs     = errors.New("missing legs")
	ErrRequiresJump    = errors.New("requires jumping legs")
	ErrDuplicateResist = errors.New("multiple modules with the same resistance type")
	ErrTooHeavy        = errors.New("too heavy")
)

// CheckSetup applies the workshop rules a mech must pass before entering a
// battle. It is stricter than NewCombatant.
func CheckSetup(parts [SlotCount]*gamedata.Part) error {
	if parts[SlotTorso] == nil {
		return ErrMissingTorso
	}

	legs := parts[SlotLegs]
	if legs == nil {
		return ErrMissingLegs
	}

	if legs.Stats.Jump == 0 {
		for s := SlotSideWeapon1; s <= SlotTopWeapon2; s++ {
			w := parts[s]
			if w != nil && (w.Stats.Advance != 0 || w.Stats.Retreat != 0) {
				return fmt.Errorf("%s: %w, %s can't jump", w.Name, ErrRequiresJump, legs.Name)
			}
		}
	}

	seen := map[gamedata.Element]bool{}
	for s := SlotModule1; s <= SlotModule8; s++ {
		m := parts[s]
		if m == nil {
			continue
		}
		for _, res := range []struct {
			element gamedata.Element
			value   int
		}{
			{gamedata.ElementPhysical, m.Stats.PhysicalRes},
			{gamedata.ElementExplosive, m.Stats.ExplosiveRes},
			{gamedata.ElementElectric, m.Stats.ElectricRes},
		} {
			if res.value == 0 {
				continue
			}
			if seen[res.element] {
				return fmt.Errorf("%w (%s)", ErrDuplicateResist, res.element)
			}
			seen[res.element] = true
		}
	}

	if w := Summarize(parts[:]).Weight; w > OverloadLimit {
		return fmt.Errorf("%w: %d > %d", ErrTooHeavy, w, OverloadLimit)
	}

	return nil
}
