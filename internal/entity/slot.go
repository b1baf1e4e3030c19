// Package entity provides the combat model of a mech: its slots, the
// per-battle copies of its parts and its live resource pools.
package entity

import "github.com/samdwyer/mecharena/internal/gamedata"

// Slot is an equipment socket on a mech.
type Slot int

const (
	SlotTorso Slot = iota
	SlotLegs
	SlotSideWeapon1
	SlotSideWeapon2
	SlotSideWeapon3
	SlotSideWeapon4
	SlotTopWeapon1
	SlotTopWeapon2
	SlotDrone
	SlotChargeEngine
	SlotTeleporter
	SlotGrapplingHook
	SlotModule1
	SlotModule2
	SlotModule3
	SlotModule4
	SlotModule5
	SlotModule6
	SlotModule7
	SlotModule8

	// SlotCount is the number of slots on every mech.
	SlotCount
)

var slotNames = [SlotCount]string{
	"torso", "legs",
	"sideWeapon1", "sideWeapon2", "sideWeapon3", "sideWeapon4",
	"topWeapon1", "topWeapon2",
	"drone", "chargeEngine", "teleporter", "grapplingHook",
	"module1", "module2", "module3", "module4",
	"module5", "module6", "module7", "module8",
}

// String returns the slot identifier used on the wire.
func (s Slot) String() string {
	if s < 0 || s >= SlotCount {
		return "unknown"
	}
	return slotNames[s]
}

// ParseSlot is the inverse of String.
func ParseSlot(name string) (Slot, bool) {
	for i, n := range slotNames {
		if n == name {
			return Slot(i), true
		}
	}
	return 0, false
}

// Valid reports whether s is one of the known slots.
func (s Slot) Valid() bool {
	return s >= 0 && s < SlotCount
}

// IsWeapon reports whether s holds a side or top weapon.
func (s Slot) IsWeapon() bool {
	return s >= SlotSideWeapon1 && s <= SlotTopWeapon2
}

// IsUtility reports whether s holds a drone, charge engine, teleporter or hook.
func (s Slot) IsUtility() bool {
	return s >= SlotDrone && s <= SlotGrapplingHook
}

// IsModule reports whether s holds a module.
func (s Slot) IsModule() bool {
	return s >= SlotModule1 && s <= SlotModule8
}

// Accepts reports whether a part of category c may be equipped in s.
func (s Slot) Accepts(c gamedata.Category) bool {
	switch {
	case s == SlotTorso:
		return c == gamedata.CategoryTorso
	case s == SlotLegs:
		return c == gamedata.CategoryLegs
	case s >= SlotSideWeapon1 && s <= SlotSideWeapon4:
		return c == gamedata.CategorySideWeapon
	case s == SlotTopWeapon1 || s == SlotTopWeapon2:
		return c == gamedata.CategoryTopWeapon
	case s == SlotDrone:
		return c == gamedata.CategoryDrone
	case s == SlotChargeEngine:
		return c == gamedata.CategoryChargeEngine
	case s == SlotTeleporter:
		return c == gamedata.CategoryTeleporter
	case s == SlotGrapplingHook:
		return c == gamedata.CategoryGrapplingHook
	case s.IsModule():
		return c == gamedata.CategoryModule
	default:
		return false
	}
}

// MarshalText encodes the slot by name.
func (s Slot) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a slot name.
func (s *Slot) UnmarshalText(text []byte) error {
	slot, ok := ParseSlot(string(text))
	if !ok {
		return &UnknownSlotError{Name: string(text)}
	}
	*s = slot
	return nil
}

// UnknownSlotError is returned when decoding an unrecognized slot name.
type UnknownSlotError struct {
	Name string
}

func (e *UnknownSlotError) Error() string {
	return "unknown slot " + `"` + e.Name + `"`
}
