package combat

import (
	"fmt"

	"github.com/samdwyer/mecharena/internal/entity"
	"github.com/samdwyer/mecharena/internal/world"
)

// The handlers below apply one validated action. They assume the attacker
// is the turn holder and that the part passed WhyCantFire.

func (b *Battle) doCooldown(attacker *entity.Combatant) {
	var cooled int
	b.record(EventCooldown, attacker, nil, func() int {
		cooled = cool(attacker)
		return 0
	})
	b.pushLog(fmt.Sprintf("%s cooled down %d heat", attacker.Name, cooled), SeverityAction)
}

func (b *Battle) doWalk(attacker *entity.Combatant, position int) {
	from := attacker.Position
	b.record(EventWalk, attacker, attacker.Legs(), func() int {
		attacker.Position = position
		return 0
	})
	b.pushLog(fmt.Sprintf("%s walked from %d to %d", attacker.Name, from, position), SeverityAction)
}

func (b *Battle) doStomp(attacker *entity.Combatant, damage int) {
	legs := attacker.Legs()
	b.strike(EventStomp, attacker, legs, damage, "stomped")
}

func (b *Battle) doUseWeapon(attacker *entity.Combatant, weapon *entity.CombatPart, damage int) {
	b.strike(EventWeapon, attacker, weapon, damage, "used "+weapon.Name+" on")
}

// strike is the shared hit: damage and costs, then movement, then usage.
// Swords close in on the defender before hitting.
func (b *Battle) strike(kind EventKind, attacker *entity.Combatant, p *entity.CombatPart, damage int, verb string) {
	defender := b.opponent(attacker)
	b.record(kind, attacker, p, func() int {
		if p.Tags.Sword && attacker.IsWeapon(p) {
			attacker.Position = defender.Position - direction(attacker, defender)
		}
		b.dealDamageAndBackfire(attacker, p, damage)
		b.updatePositions(attacker, p)
		countUsage(attacker, p)
		return damage
	})
	b.pushLog(fmt.Sprintf("%s %s %s, dealing %d damage", attacker.Name, verb, defender.Name, damage), SeverityAction)
}

// doToggleDrone flips the drone. Switching it on reloads a limited drone.
func (b *Battle) doToggleDrone(attacker *entity.Combatant) {
	b.record(EventToggleDrone, attacker, attacker.Drone(), func() int {
		attacker.DroneActive = !attacker.DroneActive
		if drone := attacker.Drone(); attacker.DroneActive && drone.Stats.Uses != nil {
			drone.TimesUsed = 0
		}
		return 0
	})
	state := "deactivated"
	if attacker.DroneActive {
		state = "activated"
	}
	b.pushLog(fmt.Sprintf("%s %s their drone", attacker.Name, state), SeverityAction)
}

func (b *Battle) doCharge(attacker *entity.Combatant, damage int) {
	engine := attacker.ChargeEngine()
	defender := b.opponent(attacker)
	b.record(EventCharge, attacker, engine, func() int {
		dir := direction(attacker, defender)
		attacker.Position = defender.Position - dir
		b.dealDamageAndBackfire(attacker, engine, damage)
		defender.Position = world.Clamp(defender.Position + dir)
		countUsage(attacker, engine)
		return damage
	})
	b.pushLog(fmt.Sprintf("%s charged into %s, dealing %d damage", attacker.Name, defender.Name, damage), SeverityAction)
}

func (b *Battle) doTeleport(attacker *entity.Combatant, position int, damage int) {
	teleporter := attacker.Teleporter()
	defender := b.opponent(attacker)
	landed := abs(position-defender.Position) == 1
	if !landed {
		damage = 0
	}
	b.record(EventTeleport, attacker, teleporter, func() int {
		payCosts(attacker, teleporter)
		if landed {
			hit(defender, teleporter, damage)
		}
		attacker.Position = position
		b.updatePositions(attacker, teleporter)
		countUsage(attacker, teleporter)
		return damage
	})
	msg := fmt.Sprintf("%s teleported to %d", attacker.Name, position)
	if damage > 0 {
		msg += fmt.Sprintf(", dealing %d damage to %s", damage, defender.Name)
	}
	b.pushLog(msg, SeverityAction)
}

func (b *Battle) doHook(attacker *entity.Combatant, damage int) {
	hook := attacker.GrapplingHook()
	defender := b.opponent(attacker)
	b.record(EventHook, attacker, hook, func() int {
		b.dealDamageAndBackfire(attacker, hook, damage)
		defender.Position = attacker.Position + direction(attacker, defender)
		countUsage(attacker, hook)
		return damage
	})
	b.pushLog(fmt.Sprintf("%s hooked %s, dealing %d damage", attacker.Name, defender.Name, damage), SeverityAction)
}

// fireDrone is the automatic drone shot at the end of a turn. The drone
// shuts down once its uses run out.
func (b *Battle) fireDrone(attacker *entity.Combatant, damage int) {
	drone := attacker.Drone()
	defender := b.opponent(attacker)
	b.record(EventDroneFire, attacker, drone, func() int {
		b.dealDamageAndBackfire(attacker, drone, damage)
		b.updatePositions(attacker, drone)
		countUsage(attacker, drone)
		if drone.OutOfUses() {
			attacker.DroneActive = false
		}
		return damage
	})
	b.pushLog(fmt.Sprintf("%s's drone hit %s for %d damage", attacker.Name, defender.Name, damage), SeverityAction)
}
