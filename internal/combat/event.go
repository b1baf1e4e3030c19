package combat

import "github.com/samdwyer/mecharena/internal/entity"

// EventKind identifies what produced an Event.
type EventKind string

const (
	EventCooldown       EventKind = "cooldown"
	EventForcedCooldown EventKind = "forcedCooldown"
	EventWalk           EventKind = "walk"
	EventStomp          EventKind = "stomp"
	EventWeapon         EventKind = "useWeapon"
	EventToggleDrone    EventKind = "toggleDrone"
	EventDroneFire      EventKind = "droneFire"
	EventCharge         EventKind = "charge"
	EventTeleport       EventKind = "teleport"
	EventHook           EventKind = "hook"
	EventTurnPass       EventKind = "turnPass"
	EventCompletion     EventKind = "completion"
)

// Change is the effect an event had on one combatant.
type Change struct {
	ID           string `json:"id"`
	FromPosition int    `json:"fromPosition"`
	ToPosition   int    `json:"toPosition"`
	Health       int    `json:"health"`
	Energy       int    `json:"energy"`
	Heat         int    `json:"heat"`
}

// Moved reports whether the combatant changed position.
func (c Change) Moved() bool {
	return c.FromPosition != c.ToPosition
}

// Event is a structured record of one resolved effect. Renderers use it to
// animate what the log describes in prose.
type Event struct {
	Kind     EventKind `json:"kind"`
	Turn     int       `json:"turn"`
	ActorID  string    `json:"actorID"`
	Part     string    `json:"part,omitempty"`
	Damage   int       `json:"damage,omitempty"`
	Attacker Change    `json:"attacker"`
	Defender Change    `json:"defender"`
}

type poolMark struct {
	position, health, energy, heat int
}

func mark(c *entity.Combatant) poolMark {
	return poolMark{c.Position, c.Stats.Health, c.Stats.Energy, c.Stats.Heat}
}

func (m poolMark) diff(c *entity.Combatant) Change {
	return Change{
		ID:           c.ID,
		FromPosition: m.position,
		ToPosition:   c.Position,
		Health:       c.Stats.Health - m.health,
		Energy:       c.Stats.Energy - m.energy,
		Heat:         c.Stats.Heat - m.heat,
	}
}

// record runs apply and emits an event describing what it changed. apply
// returns the damage dealt to the defender.
func (b *Battle) record(kind EventKind, actor *entity.Combatant, part *entity.CombatPart, apply func() int) Event {
	target := b.opponent(actor)
	before, targetBefore := mark(actor), mark(target)

	damage := apply()

	ev := Event{
		Kind:     kind,
		Turn:     b.Turn,
		ActorID:  actor.ID,
		Damage:   damage,
		Attacker: before.diff(actor),
		Defender: targetBefore.diff(target),
	}
	if part != nil {
		ev.Part = part.Name
	}
	if b.onEvent != nil {
		b.onEvent(ev)
	}
	return ev
}
