package combat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samdwyer/mecharena/internal/entity"
	"github.com/samdwyer/mecharena/internal/gamedata"
)

func span(lo, hi int) *gamedata.Span { return &gamedata.Span{lo, hi} }
func uses(n int) *int                { return &n }

// Part ids used by the tests.
const (
	partTorso = iota + 1
	partWalker
	partJumper
	partGun
	partSword
	partRail
	partDrone
	partEngine
	partTeleporter
	partHook
	partArmor
	partShotgun
	partRetro
	partRepair
	partRocket
	partLeech
	partFortress
	partStunBlinker
	partColdTorso
)

func testParts() *gamedata.PartRegistry {
	return gamedata.NewPartRegistry([]gamedata.Part{
		{ID: partTorso, Name: "Torso", Type: gamedata.CategoryTorso,
			Stats: gamedata.Stats{Health: 1000, EnergyCap: 300, EnergyRegen: 50, HeatCap: 600, HeatCooling: 100}},
		{ID: partWalker, Name: "Walker", Type: gamedata.CategoryLegs, Element: gamedata.ElementPhysical,
			Stats: gamedata.Stats{Health: 200, Walk: 2, PhysicalDmg: span(40, 60), Range: span(1, 1)},
			Tags:  gamedata.Tags{Melee: true}},
		{ID: partJumper, Name: "Jumper", Type: gamedata.CategoryLegs,
			Stats: gamedata.Stats{Health: 150, Walk: 1, Jump: 3}},
		{ID: partGun, Name: "Gun", Type: gamedata.CategorySideWeapon, Element: gamedata.ElementPhysical,
			Stats: gamedata.Stats{PhysicalDmg: span(20, 40), Range: span(2, 4), HeatCost: 30}},
		{ID: partSword, Name: "Sword", Type: gamedata.CategorySideWeapon, Element: gamedata.ElementPhysical,
			Stats: gamedata.Stats{PhysicalDmg: span(50, 50), Range: span(1, 2)},
			Tags:  gamedata.Tags{Sword: true, Melee: true}},
		{ID: partRail, Name: "Rail", Type: gamedata.CategoryTopWeapon, Element: gamedata.ElementExplosive,
			Stats: gamedata.Stats{ExplosiveDmg: span(80, 80), Range: span(7, 9)}},
		{ID: partDrone, Name: "Drone", Type: gamedata.CategoryDrone, Element: gamedata.ElementPhysical,
			Stats: gamedata.Stats{PhysicalDmg: span(10, 10), Uses: uses(2)}},
		{ID: partEngine, Name: "Engine", Type: gamedata.CategoryChargeEngine, Element: gamedata.ElementPhysical,
			Stats: gamedata.Stats{PhysicalDmg: span(30, 30), Uses: uses(2)}},
		{ID: partTeleporter, Name: "Blinker", Type: gamedata.CategoryTeleporter, Element: gamedata.ElementElectric,
			Stats: gamedata.Stats{ElectricDmg: span(25, 25), HeatCost: 40, EnergyCost: 20, Uses: uses(2)}},
		{ID: partHook, Name: "Hook", Type: gamedata.CategoryGrapplingHook, Element: gamedata.ElementPhysical,
			Stats: gamedata.Stats{PhysicalDmg: span(15, 15), Range: span(2, 6), Uses: uses(3)}},
		{ID: partArmor, Name: "Armor", Type: gamedata.CategoryModule,
			Stats: gamedata.Stats{PhysicalRes: 10}},
		{ID: partShotgun, Name: "Shotgun", Type: gamedata.CategorySideWeapon, Element: gamedata.ElementPhysical,
			Stats: gamedata.Stats{PhysicalDmg: span(30, 30), Range: span(1, 3), Recoil: 1}},
		{ID: partRetro, Name: "Retro", Type: gamedata.CategoryTopWeapon, Element: gamedata.ElementExplosive,
			Stats: gamedata.Stats{ExplosiveDmg: span(20, 20), Range: span(1, 5), Retreat: 1},
			Tags:  gamedata.Tags{RequireJump: true}},
		{ID: partRepair, Name: "Repair", Type: gamedata.CategoryModule, Element: gamedata.ElementCombined,
			Stats: gamedata.Stats{HealthRegen: 40}},
		{ID: partRocket, Name: "Rocket", Type: gamedata.CategorySideWeapon, Element: gamedata.ElementExplosive,
			Stats: gamedata.Stats{ExplosiveDmg: span(10, 10), Range: span(1, 9), Push: 2}},
		{ID: partLeech, Name: "Leech", Type: gamedata.CategorySideWeapon, Element: gamedata.ElementElectric,
			Stats: gamedata.Stats{EnergyDmg: 400}},
		{ID: partFortress, Name: "Fortress", Type: gamedata.CategoryModule,
			Stats: gamedata.Stats{PhysicalRes: 100}},
		{ID: partStunBlinker, Name: "Stun Blinker", Type: gamedata.CategoryTeleporter, Element: gamedata.ElementElectric,
			Stats: gamedata.Stats{ElectricDmg: span(25, 25), HeatCost: 40, EnergyCost: 20,
				HeatDmg: 70, EnergyDmg: 100, ElectricResDmg: 5}},
		{ID: partColdTorso, Name: "Cold Torso", Type: gamedata.CategoryTorso,
			Stats: gamedata.Stats{Health: 1000, EnergyCap: 300, HeatCap: 600}},
	})
}

// option tweaks a battle config before the battle is built.
type option func(*Config)

func equip(player int, slot entity.Slot, id int) option {
	return func(c *Config) {
		args := &c.P1
		if player == 2 {
			args = &c.P2
		}
		args.Setup[slot] = id
	}
}

func at(p1, p2 int) option {
	return func(c *Config) {
		c.P1.Position = p1
		c.P2.Position = p2
	}
}

func withBrain(brain Brain) option {
	return func(c *Config) {
		c.P2.AI = true
		c.Brain = brain
	}
}

func baseConfig() Config {
	setup := entity.Setup{partTorso, partWalker, partGun}
	return Config{
		P1:        entity.CombatantArgs{ID: "p1", Name: "Alice", Setup: setup, Position: 2},
		P2:        entity.CombatantArgs{ID: "p2", Name: "Bob", Setup: setup, Position: 6},
		StarterID: "p1",
		Parts:     testParts(),
		Rand:      rand.New(rand.NewSource(1)),
	}
}

func newTestBattle(t *testing.T, opts ...option) *Battle {
	t.Helper()
	cfg := baseConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	b, err := NewBattle(cfg)
	require.NoError(t, err)
	return b
}

// scriptedBrain delegates to next, or cools down when next is nil.
type scriptedBrain struct {
	calls int
	next  func(b *Battle, actorID string) (Action, error)
}

func (s *scriptedBrain) Think(b *Battle, actorID string) (Action, error) {
	s.calls++
	if s.next != nil {
		return s.next(b, actorID)
	}
	return Cooldown(actorID), nil
}
