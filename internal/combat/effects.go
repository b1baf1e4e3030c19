package combat

import (
	"github.com/samdwyer/mecharena/internal/entity"
	"github.com/samdwyer/mecharena/internal/world"
)

// =============================================================================
// EFFECT ENGINE
// =============================================================================
//
// Every action is built from the same few primitives:
//
//    payCosts               backfire, heat and energy costs on the attacker
//    hit                    damage and debuffs on the defender
//    dealDamageAndBackfire  both of the above
//    updatePositions        recoil/retreat/advance on the attacker, push/pull on the defender
//    countUsage             bumps the use counter and marks the part used this turn
//    regen                  end of turn energy and health recovery
//    forceCooldown          start of turn venting for an overheated mech
//
// Positions are relative to the attacker's facing: dir is +1 when the
// defender stands at a higher position. Both mechs always end inside the
// arena and never share a position.

// dealDamageAndBackfire pays the costs of p and applies its damage and
// debuffs to the attacker's opponent.
func (b *Battle) dealDamageAndBackfire(attacker *entity.Combatant, p *entity.CombatPart, damage int) {
	payCosts(attacker, p)
	hit(b.opponent(attacker), p, damage)
}

// payCosts charges the backfire, heat and energy costs of p.
func payCosts(attacker *entity.Combatant, p *entity.CombatPart) {
	stats := p.Stats
	attacker.Stats.Health -= stats.Backfire
	attacker.Stats.Heat += stats.HeatCost
	attacker.Stats.Energy = max(0, attacker.Stats.Energy-stats.EnergyCost)
}

// hit applies the damage and debuffs of p to the defender.
func hit(defender *entity.Combatant, p *entity.CombatPart, damage int) {
	stats := p.Stats
	d := &defender.Stats
	d.Health -= damage
	d.Heat += stats.HeatDmg
	d.ReduceResistance(p.Element, stats.ResistanceDamage(p.Element))

	if stats.HeatCapDmg > 0 {
		d.HeatCap = max(1, d.HeatCap-stats.HeatCapDmg)
	}
	if stats.HeatCoolingDmg > 0 {
		d.HeatCooling = max(1, d.HeatCooling-stats.HeatCoolingDmg)
	}
	if stats.EnergyDmg > 0 {
		d.Energy = max(0, d.Energy-stats.EnergyDmg)
	}
	if stats.EnergyCapDmg > 0 {
		d.EnergyCap = max(1, d.EnergyCap-stats.EnergyCapDmg)
		d.Energy = min(d.EnergyCap, d.Energy)
	}
	if stats.EnergyRegenDmg > 0 {
		d.EnergyRegen = max(1, d.EnergyRegen-stats.EnergyRegenDmg)
	}
}

// updatePositions applies the movement stats of p.
func (b *Battle) updatePositions(attacker *entity.Combatant, p *entity.CombatPart) {
	defender := b.opponent(attacker)
	stats := p.Stats
	dir := direction(attacker, defender)

	if stats.Recoil != 0 {
		attacker.Position = world.Clamp(attacker.Position - stats.Recoil*dir)
	}
	if stats.Retreat != 0 {
		attacker.Position -= stats.Retreat * dir
	}
	if stats.Advance != 0 {
		if attacker.Position*dir+stats.Advance < defender.Position*dir {
			attacker.Position += stats.Advance * dir
		} else {
			attacker.Position = defender.Position - dir
		}
	}
	if stats.Push != 0 {
		defender.Position = world.Clamp(defender.Position + stats.Push*dir)
	}
	if stats.Pull != 0 {
		if defender.Position*dir-stats.Pull > attacker.Position*dir {
			defender.Position -= stats.Pull * dir
		} else {
			defender.Position = attacker.Position + dir
		}
	}

	attacker.Position = world.Clamp(attacker.Position)
	defender.Position = world.Clamp(defender.Position)
}

// countUsage records a use of p.
func countUsage(attacker *entity.Combatant, p *entity.CombatPart) {
	p.TimesUsed++
	attacker.UsedThisTurn = append(attacker.UsedThisTurn, p)
}

// regen restores energy and applies module health regeneration, both capped.
func regen(c *entity.Combatant) {
	c.Stats.Energy = min(c.Stats.EnergyCap, c.Stats.Energy+c.Stats.EnergyRegen)

	healthRegen := 0
	for _, m := range c.Modules() {
		healthRegen += m.Stats.HealthRegen
	}
	if healthRegen > 0 {
		c.Stats.Health = min(c.Stats.HealthCap, c.Stats.Health+healthRegen)
	}
}

// forceCooldown vents an overheated mech. It cools twice when one cooling
// would leave the mech above its cap, and reports whether it did.
func forceCooldown(c *entity.Combatant) (cooled int, double bool) {
	double = c.Stats.Heat-c.Stats.HeatCooling > c.Stats.HeatCap
	amount := c.Stats.HeatCooling
	if double {
		amount *= 2
	}
	previous := c.Stats.Heat
	c.Stats.Heat = max(0, previous-amount)
	return previous - c.Stats.Heat, double
}

// cool vents one cooling worth of heat and returns the amount removed.
func cool(c *entity.Combatant) int {
	previous := c.Stats.Heat
	c.Stats.Heat = max(0, previous-c.Stats.HeatCooling)
	return previous - c.Stats.Heat
}
