package entity

import (
	"errors"
	"fmt"

	"github.com/samdwyer/mecharena/internal/gamedata"
)

// ErrInvalidLoadout is returned when a setup cannot be turned into a combatant.
var ErrInvalidLoadout = errors.New("invalid loadout")

// PartLookup resolves catalog ids. gamedata.PartRegistry implements it.
type PartLookup interface {
	GetByID(id int) *gamedata.Part
}

// Setup lists one part id per slot, in slot order. 0 marks an empty slot.
type Setup [SlotCount]int

// SetupFromIDs converts a stored id list into a Setup. Shorter lists are
// padded with empty slots.
func SetupFromIDs(ids []int) (Setup, error) {
	var s Setup
	if len(ids) > int(SlotCount) {
		return s, fmt.Errorf("%w: %d part ids for %d slots", ErrInvalidLoadout, len(ids), SlotCount)
	}
	copy(s[:], ids)
	return s, nil
}

// Resolve looks up every part of the setup. Unknown ids and parts placed in
// the wrong slot are reported as ErrInvalidLoadout.
func (s Setup) Resolve(lookup PartLookup) ([SlotCount]*gamedata.Part, error) {
	var parts [SlotCount]*gamedata.Part
	for i, id := range s {
		if id == 0 {
			continue
		}
		slot := Slot(i)
		part := lookup.GetByID(id)
		if part == nil {
			return parts, fmt.Errorf("%w: %s: no part with id %d", ErrInvalidLoadout, slot, id)
		}
		if !slot.Accepts(part.Type) {
			return parts, fmt.Errorf("%w: %s can't hold %s (%s)", ErrInvalidLoadout, slot, part.Name, part.Type)
		}
		parts[i] = part
	}
	return parts, nil
}

// CombatPart is a per-battle copy of a catalog part.
type CombatPart struct {
	gamedata.Part
	Slot      Slot
	TimesUsed int
}

// NewCombatPart copies a catalog part into a slot.
func NewCombatPart(p *gamedata.Part, slot Slot) *CombatPart {
	return &CombatPart{Part: *p, Slot: slot}
}

// OutOfUses reports whether a limited part has been used up.
func (p *CombatPart) OutOfUses() bool {
	return p.Stats.Uses != nil && p.TimesUsed >= *p.Stats.Uses
}

// Pools are the live resources of a combatant.
type Pools struct {
	Health    int `json:"health"`
	HealthCap int `json:"healthCap"`

	Energy      int `json:"energy"`
	EnergyCap   int `json:"energyCap"`
	EnergyRegen int `json:"energyRegen"`

	Heat        int `json:"heat"`
	HeatCap     int `json:"heatCap"`
	HeatCooling int `json:"heatCooling"`

	PhysicalRes  int `json:"physicalRes"`
	ExplosiveRes int `json:"explosiveRes"`
	ElectricRes  int `json:"electricRes"`
}

// Resistance returns the resistance matching an element. Combined damage is
// never resisted.
func (p *Pools) Resistance(e gamedata.Element) int {
	switch e {
	case gamedata.ElementPhysical:
		return p.PhysicalRes
	case gamedata.ElementExplosive:
		return p.ExplosiveRes
	case gamedata.ElementElectric:
		return p.ElectricRes
	default:
		return 0
	}
}

// ReduceResistance lowers the resistance matching an element. The result may
// go negative.
func (p *Pools) ReduceResistance(e gamedata.Element, amount int) {
	switch e {
	case gamedata.ElementPhysical:
		p.PhysicalRes -= amount
	case gamedata.ElementExplosive:
		p.ExplosiveRes -= amount
	case gamedata.ElementElectric:
		p.ElectricRes -= amount
	}
}

// CombatantArgs describes one side of a battle.
type CombatantArgs struct {
	ID       string
	Name     string
	MechName string
	Setup    Setup
	AI       bool
	Position int
}

// Combatant is a mech taking part in a battle.
type Combatant struct {
	ID       string
	Name     string
	MechName string
	AI       bool

	Slots [SlotCount]*CombatPart

	Position     int
	DroneActive  bool
	UsedThisTurn []*CombatPart
	Stats        Pools
}

// NewCombatant builds a combatant from a setup. A torso and legs are required,
// and the parts must provide some heat cooling.
func NewCombatant(args CombatantArgs, lookup PartLookup) (*Combatant, error) {
	parts, err := args.Setup.Resolve(lookup)
	if err != nil {
		return nil, err
	}
	if parts[SlotTorso] == nil || parts[SlotLegs] == nil {
		return nil, fmt.Errorf("%w: torso and legs are necessary to battle", ErrInvalidLoadout)
	}

	c := &Combatant{
		ID:       args.ID,
		Name:     args.Name,
		MechName: args.MechName,
		AI:       args.AI,
		Position: args.Position,
	}
	for i, p := range parts {
		if p != nil {
			c.Slots[i] = NewCombatPart(p, Slot(i))
		}
	}

	summary := Summarize(parts[:])
	if summary.HeatCooling < 1 {
		return nil, fmt.Errorf("%w: no part provides heat cooling", ErrInvalidLoadout)
	}
	c.Stats = Pools{
		Health:       summary.Health,
		HealthCap:    summary.Health,
		Energy:       summary.EnergyCap,
		EnergyCap:    summary.EnergyCap,
		EnergyRegen:  summary.EnergyRegen,
		HeatCap:      summary.HeatCap,
		HeatCooling:  summary.HeatCooling,
		PhysicalRes:  summary.PhysicalRes,
		ExplosiveRes: summary.ExplosiveRes,
		ElectricRes:  summary.ElectricRes,
	}

	return c, nil
}

// Part returns the part in a slot, or nil.
func (c *Combatant) Part(s Slot) *CombatPart {
	if !s.Valid() {
		return nil
	}
	return c.Slots[s]
}

func (c *Combatant) Torso() *CombatPart         { return c.Slots[SlotTorso] }
func (c *Combatant) Legs() *CombatPart          { return c.Slots[SlotLegs] }
func (c *Combatant) Drone() *CombatPart         { return c.Slots[SlotDrone] }
func (c *Combatant) ChargeEngine() *CombatPart  { return c.Slots[SlotChargeEngine] }
func (c *Combatant) Teleporter() *CombatPart    { return c.Slots[SlotTeleporter] }
func (c *Combatant) GrapplingHook() *CombatPart { return c.Slots[SlotGrapplingHook] }

// Weapons returns the equipped side and top weapons in slot order.
func (c *Combatant) Weapons() []*CombatPart {
	return c.collect(SlotSideWeapon1, SlotTopWeapon2)
}

// Utilities returns the equipped drone, charge engine, teleporter and hook.
func (c *Combatant) Utilities() []*CombatPart {
	return c.collect(SlotDrone, SlotGrapplingHook)
}

// Modules returns the equipped modules.
func (c *Combatant) Modules() []*CombatPart {
	return c.collect(SlotModule1, SlotModule8)
}

func (c *Combatant) collect(from, to Slot) []*CombatPart {
	var parts []*CombatPart
	for s := from; s <= to; s++ {
		if c.Slots[s] != nil {
			parts = append(parts, c.Slots[s])
		}
	}
	return parts
}

// IsWeapon reports whether p is one of this combatant's side or top weapons.
func (c *Combatant) IsWeapon(p *CombatPart) bool {
	return p != nil && p.Slot.IsWeapon() && c.Slots[p.Slot] == p
}

// HasUsed reports whether p was already used this turn.
func (c *Combatant) HasUsed(p *CombatPart) bool {
	for _, used := range c.UsedThisTurn {
		if used == p {
			return true
		}
	}
	return false
}

// CanJump reports whether the legs can jump.
func (c *Combatant) CanJump() bool {
	legs := c.Legs()
	return legs != nil && legs.Stats.Jump > 0
}

// IsAlive returns true while health remains.
func (c *Combatant) IsAlive() bool {
	return c.Stats.Health > 0
}

// Clone returns a deep copy. Parts in UsedThisTurn point into the copy.
func (c *Combatant) Clone() *Combatant {
	clone := *c
	for i, p := range c.Slots {
		if p != nil {
			cp := *p
			clone.Slots[i] = &cp
		}
	}
	clone.UsedThisTurn = make([]*CombatPart, 0, len(c.UsedThisTurn))
	for _, used := range c.UsedThisTurn {
		clone.UsedThisTurn = append(clone.UsedThisTurn, clone.Slots[used.Slot])
	}
	return &clone
}
