package combat

import (
	"math"
	"slices"

	"github.com/samdwyer/mecharena/internal/entity"
	"github.com/samdwyer/mecharena/internal/world"
)

// Reason explains why a part can't be used right now.
type Reason string

const (
	ReasonNotEnoughEnergy      Reason = "Not enough energy"
	ReasonNotEnoughHealth      Reason = "Not enough health"
	ReasonOutOfUses            Reason = "Out of uses"
	ReasonAlreadyUsed          Reason = "Already used in this turn"
	ReasonOutOfRange           Reason = "Out of range"
	ReasonRequireJumping       Reason = "Require jumping"
	ReasonOutOfRetreatingRange Reason = "Out of retreating range"
)

// The queries below read the battle without locking. Call them from a
// Brain, an observer, or the goroutine that owns the battle.

// Opponent returns the combatant facing the one with the given id, or nil.
func (b *Battle) Opponent(id string) *entity.Combatant {
	switch id {
	case b.P1.ID:
		return b.P2
	case b.P2.ID:
		return b.P1
	default:
		return nil
	}
}

// Player returns the combatant with the given id, or nil.
func (b *Battle) Player(id string) *entity.Combatant {
	switch id {
	case b.P1.ID:
		return b.P1
	case b.P2.ID:
		return b.P2
	default:
		return nil
	}
}

func (b *Battle) opponent(c *entity.Combatant) *entity.Combatant {
	if c == b.P1 {
		return b.P2
	}
	return b.P1
}

// PositionalDirection returns +1 when the opponent of id stands at a higher
// position and -1 otherwise.
func (b *Battle) PositionalDirection(id string) int {
	self, other := b.Player(id), b.Opponent(id)
	if self == nil || other == nil {
		return -1
	}
	return direction(self, other)
}

func direction(self, other *entity.Combatant) int {
	if self.Position < other.Position {
		return 1
	}
	return -1
}

// PositionsInRange lists the positions part p reaches from its owner's
// position, facing the opponent. A part without a range reaches the whole
// arena. With includeOutside, positions beyond the arena edges are kept.
func (b *Battle) PositionsInRange(owner *entity.Combatant, p *entity.CombatPart, includeOutside bool) []int {
	rng := p.Stats.Range
	if rng == nil {
		return world.Positions()
	}

	dir := direction(owner, b.opponent(owner))
	var positions []int
	for i := rng.Min(); i <= rng.Max(); i++ {
		pos := owner.Position + i*dir
		if includeOutside || world.InBounds(pos) {
			positions = append(positions, pos)
		}
	}
	return positions
}

// WhyCantFire lists every reason the attacker can't use p right now. An
// empty result means the part is usable.
func (b *Battle) WhyCantFire(p *entity.CombatPart) []Reason {
	attacker, defender := b.Attacker, b.Defender
	stats := p.Stats
	var reasons []Reason

	if stats.EnergyCost > 0 && stats.EnergyCost > attacker.Stats.Energy {
		reasons = append(reasons, ReasonNotEnoughEnergy)
	}
	if stats.Backfire > 0 && stats.Backfire >= attacker.Stats.Health {
		reasons = append(reasons, ReasonNotEnoughHealth)
	}
	if p.OutOfUses() {
		reasons = append(reasons, ReasonOutOfUses)
	}
	if attacker.IsWeapon(p) && attacker.HasUsed(p) {
		reasons = append(reasons, ReasonAlreadyUsed)
	}
	if stats.Range != nil && !slices.Contains(b.PositionsInRange(attacker, p, false), defender.Position) {
		reasons = append(reasons, ReasonOutOfRange)
	}
	if p.Tags.RequireJump && !p.Tags.Melee && !attacker.CanJump() {
		reasons = append(reasons, ReasonRequireJumping)
	}
	if stats.Retreat != 0 {
		future := attacker.Position - stats.Retreat*direction(attacker, defender)
		if !world.InBounds(future) {
			reasons = append(reasons, ReasonOutOfRetreatingRange)
		}
	}

	return reasons
}

// CanFire reports whether the attacker can use p, disregarding the
// ignored reasons.
func (b *Battle) CanFire(p *entity.CombatPart, ignored ...Reason) bool {
	if p == nil {
		return false
	}
	for _, r := range b.WhyCantFire(p) {
		if !slices.Contains(ignored, r) {
			return false
		}
	}
	return true
}

// FirableWeapons returns the attacker's weapons that CanFire accepts.
func (b *Battle) FirableWeapons(ignored ...Reason) []*entity.CombatPart {
	var firable []*entity.CombatPart
	for _, w := range b.Attacker.Weapons() {
		if b.CanFire(w, ignored...) {
			firable = append(firable, w)
		}
	}
	return firable
}

// DamageForPart computes the damage p deals to the defender at the given
// roll in [0,1]. Matching resistance is subtracted but never brings base
// damage below 1. Energy damage beyond the defender's energy spills over
// into health.
func (b *Battle) DamageForPart(p *entity.CombatPart, scale float64) int {
	defender := b.Defender
	damage := 0

	if span := p.Stats.Damage(p.Element); span != nil {
		damage = span.Min() + int(math.Round(scale*float64(span.Max()-span.Min())))
		if res := defender.Stats.Resistance(p.Element); res != 0 {
			damage = max(1, damage-res)
		}
	}

	if eneDmg := p.Stats.EnergyDmg; eneDmg > 0 {
		damage += max(0, eneDmg-defender.Stats.Energy)
	}

	return damage
}

// WalkablePositions marks the positions the attacker's legs can reach.
// Legs that can't jump stop short of the opponent. Occupied positions are
// never walkable.
func (b *Battle) WalkablePositions() [world.Size]bool {
	var positions [world.Size]bool
	attacker, defender := b.Attacker, b.Defender
	legs := attacker.Legs()
	if legs == nil {
		return positions
	}

	reach := max(legs.Stats.Walk, legs.Stats.Jump)
	for i := range positions {
		positions[i] = reach > 0 && i >= attacker.Position-reach && i <= attacker.Position+reach
	}

	if legs.Stats.Jump == 0 {
		dir := direction(attacker, defender)
		distance := abs(attacker.Position - defender.Position)
		for i := range positions {
			positions[i] = positions[i] && i*dir < attacker.Position*dir+distance
		}
	}

	positions[attacker.Position] = false
	positions[defender.Position] = false
	return positions
}

// TeleportablePositions marks every unoccupied position.
func (b *Battle) TeleportablePositions() [world.Size]bool {
	var positions [world.Size]bool
	for i := range positions {
		positions[i] = i != b.Attacker.Position && i != b.Defender.Position
	}
	return positions
}

// Indices returns the true positions of a mask in ascending order.
func Indices(mask [world.Size]bool) []int {
	var out []int
	for i, ok := range mask {
		if ok {
			out = append(out, i)
		}
	}
	return out
}

// UsableUtilities returns the attacker's utilities that CanFire accepts.
func (b *Battle) UsableUtilities() []*entity.CombatPart {
	var usable []*entity.CombatPart
	for _, u := range b.Attacker.Utilities() {
		if b.CanFire(u) {
			usable = append(usable, u)
		}
	}
	return usable
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
