package ai

import (
	"slices"

	"github.com/samdwyer/mecharena/internal/combat"
	"github.com/samdwyer/mecharena/internal/entity"
	"github.com/samdwyer/mecharena/internal/world"
)

// shutdownMargin is how close to the heat cap the AI lets itself get.
const shutdownMargin = 50

func useScope(m *mind) (combat.Action, bool) {
	scopes := filter(m.battle.FirableWeapons(combat.ReasonOutOfRange), isScope)
	if len(scopes) == 0 {
		return combat.Action{}, false
	}

	if ready := filter(scopes, func(p *entity.CombatPart) bool { return m.battle.CanFire(p) }); len(ready) > 0 {
		return combat.UseWeapon(m.me.ID, sample(m.rng, ready).Slot), true
	}

	// Moving and firing takes both points
	if m.battle.ActionPoints < 2 {
		return combat.Action{}, false
	}

	targets := m.positionsToPutOpponentInRange(scopes)
	if len(targets) == 0 {
		return combat.Action{}, false
	}

	for _, pos := range combat.Indices(m.battle.WalkablePositions()) {
		if slices.Contains(targets, pos) {
			return combat.Walk(m.me.ID, pos), true
		}
	}

	return m.teleportInto(targets)
}

func activateDrone(m *mind) (combat.Action, bool) {
	if m.me.Drone() != nil && !m.me.DroneActive {
		return combat.ToggleDrone(m.me.ID), true
	}
	return combat.Action{}, false
}

func preventShutdown(m *mind) (combat.Action, bool) {
	if m.me.Stats.HeatCap-m.me.Stats.Heat < shutdownMargin {
		return combat.Cooldown(m.me.ID), true
	}
	return combat.Action{}, false
}

func useWeapon(m *mind) (combat.Action, bool) {
	if firable := m.battle.FirableWeapons(); len(firable) > 0 {
		return combat.UseWeapon(m.me.ID, sample(m.rng, firable).Slot), true
	}

	if m.battle.ActionPoints < 2 {
		return combat.Action{}, false
	}

	return m.reposition(m.battle.FirableWeapons(combat.ReasonOutOfRange))
}

// smartMotion prepares the next turn, so it doesn't need spare points.
func smartMotion(m *mind) (combat.Action, bool) {
	weapons := filter(m.battle.FirableWeapons(combat.ReasonOutOfRange), func(p *entity.CombatPart) bool {
		return !isScope(p)
	})
	return m.reposition(weapons)
}

func dumbMotion(m *mind) (combat.Action, bool) {
	utils := filter(m.battle.UsableUtilities(), func(p *entity.CombatPart) bool {
		return p.Slot != entity.SlotDrone
	})
	m.rng.Shuffle(len(utils), func(i, j int) { utils[i], utils[j] = utils[j], utils[i] })

	for _, u := range utils {
		switch u.Slot {
		case entity.SlotChargeEngine:
			return combat.Charge(m.me.ID), true
		case entity.SlotGrapplingHook:
			return combat.Hook(m.me.ID), true
		case entity.SlotTeleporter:
			if open := combat.Indices(m.battle.TeleportablePositions()); len(open) > 0 {
				return combat.Teleport(m.me.ID, sample(m.rng, open)), true
			}
		}
	}

	if walkable := combat.Indices(m.battle.WalkablePositions()); len(walkable) > 0 {
		return combat.Walk(m.me.ID, sample(m.rng, walkable)), true
	}

	return combat.Action{}, false
}

// reposition tries, in order, to walk, charge, hook or teleport to a spot
// where one of the weapons reaches the opponent.
func (m *mind) reposition(weapons []*entity.CombatPart) (combat.Action, bool) {
	targets := m.positionsToPutOpponentInRange(weapons)
	if len(targets) == 0 {
		return combat.Action{}, false
	}

	var walkTo []int
	for _, pos := range combat.Indices(m.battle.WalkablePositions()) {
		if slices.Contains(targets, pos) {
			walkTo = append(walkTo, pos)
		}
	}
	if len(walkTo) > 0 {
		return combat.Walk(m.me.ID, sample(m.rng, walkTo)), true
	}

	// After a charge the opponent is knocked one tile back unless it is
	// already against the wall.
	if engine := m.me.ChargeEngine(); engine != nil && m.battle.CanFire(engine) {
		inCorner := m.foe.Position == 0 || m.foe.Position == world.MaxPosition
		if (inCorner && m.hasWeaponReaching(1)) || (!inCorner && m.hasWeaponReaching(2)) {
			return combat.Charge(m.me.ID), true
		}
	}

	if hook := m.me.GrapplingHook(); hook != nil && m.battle.CanFire(hook) && m.hasWeaponReaching(1) {
		return combat.Hook(m.me.ID), true
	}

	return m.teleportInto(targets)
}

func (m *mind) teleportInto(targets []int) (combat.Action, bool) {
	teleporter := m.me.Teleporter()
	if teleporter == nil || !m.battle.CanFire(teleporter) {
		return combat.Action{}, false
	}

	open := m.battle.TeleportablePositions()
	var candidates []int
	for _, pos := range targets {
		if open[pos] {
			candidates = append(candidates, pos)
		}
	}
	if len(candidates) == 0 {
		return combat.Action{}, false
	}
	return combat.Teleport(m.me.ID, sample(m.rng, candidates)), true
}

// positionsToPutOpponentInRange lists the positions from which some weapon
// would reach the opponent where it stands. A position reached by several
// weapons appears several times, which biases sampling towards it.
func (m *mind) positionsToPutOpponentInRange(weapons []*entity.CombatPart) []int {
	var positions []int
	for _, w := range weapons {
		for _, pos := range m.battle.PositionsInRange(m.me, w, true) {
			move := m.me.Position - (pos - m.foe.Position)
			if world.InBounds(move) {
				positions = append(positions, move)
			}
		}
	}
	return positions
}

// hasWeaponReaching reports whether any weapon reaches distance tiles ahead.
func (m *mind) hasWeaponReaching(distance int) bool {
	ahead := m.me.Position + distance*m.battle.PositionalDirection(m.me.ID)
	for _, w := range m.me.Weapons() {
		if slices.Contains(m.battle.PositionsInRange(m.me, w, true), ahead) {
			return true
		}
	}
	return false
}
