package combat

import "github.com/samdwyer/mecharena/internal/entity"

// Kind identifies an action.
type Kind string

const (
	KindCooldown    Kind = "cooldown"
	KindWalk        Kind = "walk"
	KindStomp       Kind = "stomp"
	KindUseWeapon   Kind = "useWeapon"
	KindToggleDrone Kind = "toggleDrone"
	KindCharge      Kind = "charge"
	KindTeleport    Kind = "teleport"
	KindHook        Kind = "hook"
)

// Kinds lists every action kind.
var Kinds = []Kind{
	KindCooldown,
	KindWalk,
	KindStomp,
	KindUseWeapon,
	KindToggleDrone,
	KindCharge,
	KindTeleport,
	KindHook,
}

// Valid reports whether k is a known action kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Action is a single move submitted by a combatant. Optional fields are
// pointers so that an explicit zero survives the wire.
type Action struct {
	Kind    Kind   `json:"name"`
	ActorID string `json:"actorID"`

	// Slot is the weapon to fire (useWeapon).
	Slot *entity.Slot `json:"slotName,omitempty"`
	// Position is the destination (walk, teleport).
	Position *int `json:"position,omitempty"`

	// DamageScale and DroneDamageScale pin the random rolls in [0,1] so
	// that every peer computes the same damage.
	DamageScale      *float64 `json:"damageScale,omitempty"`
	DroneDamageScale *float64 `json:"droneDamageScale,omitempty"`

	// FromServer marks an action as canonical in online battles.
	FromServer bool `json:"fromServer,omitempty"`
}

func Cooldown(actorID string) Action    { return Action{Kind: KindCooldown, ActorID: actorID} }
func Stomp(actorID string) Action       { return Action{Kind: KindStomp, ActorID: actorID} }
func ToggleDrone(actorID string) Action { return Action{Kind: KindToggleDrone, ActorID: actorID} }
func Charge(actorID string) Action      { return Action{Kind: KindCharge, ActorID: actorID} }
func Hook(actorID string) Action        { return Action{Kind: KindHook, ActorID: actorID} }

func Walk(actorID string, position int) Action {
	return Action{Kind: KindWalk, ActorID: actorID, Position: &position}
}

func Teleport(actorID string, position int) Action {
	return Action{Kind: KindTeleport, ActorID: actorID, Position: &position}
}

func UseWeapon(actorID string, slot entity.Slot) Action {
	return Action{Kind: KindUseWeapon, ActorID: actorID, Slot: &slot}
}

// WithDamageScale returns a copy with the damage roll fixed.
func (a Action) WithDamageScale(scale float64) Action {
	a.DamageScale = &scale
	return a
}

// WithDroneDamageScale returns a copy with the drone roll fixed.
func (a Action) WithDroneDamageScale(scale float64) Action {
	a.DroneDamageScale = &scale
	return a
}

// Authorized returns a copy marked as coming from the server.
func (a Action) Authorized() Action {
	a.FromServer = true
	return a
}
