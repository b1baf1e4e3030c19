package gamedata

// =============================================================================
// PART CATALOG
// =============================================================================
//
// Overview:
// ---------
// Every mech is assembled from parts. A part is a read-only catalog entry:
// it never changes during a battle. The battle takes a per-battle copy of
// each equipped part (entity.CombatPart) to track how often it was used.
//
// Categories:
// -----------
//    - TORSO:          chassis, carries most of the health/energy/heat pools
//    - LEGS:           movement (walk/jump), can stomp
//    - SIDE_WEAPON:    up to four per mech
//    - TOP_WEAPON:     up to two per mech
//    - DRONE:          fires on its own when the turn ends with no action points left
//    - CHARGE_ENGINE:  rams the opponent
//    - TELEPORTER:     moves anywhere, hurts only when landing next to the opponent
//    - GRAPPLING_HOOK: drags the opponent next to the mech
//    - MODULE:         passive stat bonuses
//
// Elements:
// ---------
// PHYSICAL, EXPLOSIVE and ELECTRIC damage is reduced by the matching
// resistance and can shred it (phyResDmg, expResDmg, eleResDmg).
// COMBINED parts have no damage stat of their own.
//
// JSON Schema:
// ------------
// {
//   "id": 12,
//   "name": "Hornet",
//   "type": "SIDE_WEAPON",
//   "element": "EXPLOSIVE",
//   "stats": { "weight": 55, "expDmg": [40, 56], "range": [2, 4], "heaCost": 30 },
//   "tags": { "require_jump": false }
// }

// Category is the kind of slot a part fits into.
type Category string

const (
	CategoryTorso         Category = "TORSO"
	CategoryLegs          Category = "LEGS"
	CategorySideWeapon    Category = "SIDE_WEAPON"
	CategoryTopWeapon     Category = "TOP_WEAPON"
	CategoryDrone         Category = "DRONE"
	CategoryChargeEngine  Category = "CHARGE_ENGINE"
	CategoryTeleporter    Category = "TELEPORTER"
	CategoryGrapplingHook Category = "GRAPPLING_HOOK"
	CategoryModule        Category = "MODULE"
)

// Categories lists every known category.
var Categories = []Category{
	CategoryTorso,
	CategoryLegs,
	CategorySideWeapon,
	CategoryTopWeapon,
	CategoryDrone,
	CategoryChargeEngine,
	CategoryTeleporter,
	CategoryGrapplingHook,
	CategoryModule,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Element is the damage type of a part.
type Element string

const (
	ElementPhysical  Element = "PHYSICAL"
	ElementExplosive Element = "EXPLOSIVE"
	ElementElectric  Element = "ELECTRIC"
	ElementCombined  Element = "COMBINED"
)

// Span is an inclusive [min, max] pair, encoded in JSON as a two element array.
type Span [2]int

// Min returns the lower bound.
func (s Span) Min() int { return s[0] }

// Max returns the upper bound.
func (s Span) Max() int { return s[1] }

// Stats is the stat bag of a part. A zero value means the stat is absent,
// except for Uses where only a nil pointer means "unlimited".
type Stats struct {
	Weight int `json:"weight,omitempty"`
	Health int `json:"health,omitempty"`

	EnergyCap   int `json:"eneCap,omitempty"`
	EnergyRegen int `json:"eneReg,omitempty"`
	HeatCap     int `json:"heaCap,omitempty"`
	HeatCooling int `json:"heaCol,omitempty"`
	HealthRegen int `json:"healthReg,omitempty"`

	PhysicalRes  int `json:"phyRes,omitempty"`
	ExplosiveRes int `json:"expRes,omitempty"`
	ElectricRes  int `json:"eleRes,omitempty"`

	PhysicalDmg  *Span `json:"phyDmg,omitempty"`
	ExplosiveDmg *Span `json:"expDmg,omitempty"`
	ElectricDmg  *Span `json:"eleDmg,omitempty"`

	PhysicalResDmg  int `json:"phyResDmg,omitempty"`
	ExplosiveResDmg int `json:"expResDmg,omitempty"`
	ElectricResDmg  int `json:"eleResDmg,omitempty"`
	HeatDmg         int `json:"heaDmg,omitempty"`
	HeatCapDmg      int `json:"heaCapDmg,omitempty"`
	HeatCoolingDmg  int `json:"heaColDmg,omitempty"`
	EnergyDmg       int `json:"eneDmg,omitempty"`
	EnergyCapDmg    int `json:"eneCapDmg,omitempty"`
	EnergyRegenDmg  int `json:"eneRegDmg,omitempty"`

	Walk    int `json:"walk,omitempty"`
	Jump    int `json:"jump,omitempty"`
	Push    int `json:"push,omitempty"`
	Pull    int `json:"pull,omitempty"`
	Recoil  int `json:"recoil,omitempty"`
	Advance int `json:"advance,omitempty"`
	Retreat int `json:"retreat,omitempty"`

	Range *Span `json:"range,omitempty"`
	Uses  *int  `json:"uses,omitempty"`

	Backfire   int `json:"backfire,omitempty"`
	HeatCost   int `json:"heaCost,omitempty"`
	EnergyCost int `json:"eneCost,omitempty"`
}

// Damage returns the damage span for the given element, or nil if the part
// deals no base damage of that element.
func (s *Stats) Damage(e Element) *Span {
	switch e {
	case ElementPhysical:
		return s.PhysicalDmg
	case ElementExplosive:
		return s.ExplosiveDmg
	case ElementElectric:
		return s.ElectricDmg
	default:
		return nil
	}
}

// ResistanceDamage returns how much of the matching resistance the part strips.
func (s *Stats) ResistanceDamage(e Element) int {
	switch e {
	case ElementPhysical:
		return s.PhysicalResDmg
	case ElementExplosive:
		return s.ExplosiveResDmg
	case ElementElectric:
		return s.ElectricResDmg
	default:
		return 0
	}
}

// Tags are boolean markers on a part.
type Tags struct {
	Premium     bool `json:"premium,omitempty"`
	Sword       bool `json:"sword,omitempty"`
	Melee       bool `json:"melee,omitempty"`
	Roller      bool `json:"roller,omitempty"`
	RequireJump bool `json:"require_jump,omitempty"`
}

// Part is a catalog entry loaded from JSON.
type Part struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Type    Category `json:"type"`
	Element Element  `json:"element"`
	Stats   Stats    `json:"stats"`
	Tags    Tags     `json:"tags"`
}

// IsWeapon returns true for side and top weapons.
func (p *Part) IsWeapon() bool {
	return p.Type == CategorySideWeapon || p.Type == CategoryTopWeapon
}

// CanDealDamage returns false for parts that never act in battle.
func (p *Part) CanDealDamage() bool {
	return p.Type != CategoryTorso && p.Type != CategoryModule
}

// PartsFile represents the structure of parts.json.
type PartsFile struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Parts []Part `json:"parts"`
}

// LoadParts loads part definitions from the embedded parts.json file.
func LoadParts() ([]Part, error) {
	file, err := Load[PartsFile]("parts.json")
	if err != nil {
		return nil, err
	}
	return file.Parts, nil
}
