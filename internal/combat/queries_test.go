package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/mecharena/internal/entity"
)

func TestPositionalDirection(t *testing.T) {
	b := newTestBattle(t, at(2, 6))
	assert.Equal(t, 1, b.PositionalDirection("p1"))
	assert.Equal(t, -1, b.PositionalDirection("p2"))
	assert.Equal(t, -1, b.PositionalDirection("nobody"))
}

func TestPositionsInRange(t *testing.T) {
	b := newTestBattle(t, at(2, 6))
	gun := b.P1.Part(entity.SlotSideWeapon1)

	assert.Equal(t, []int{4, 5, 6}, b.PositionsInRange(b.P1, gun, false))
	assert.NotContains(t, b.WhyCantFire(gun), ReasonOutOfRange)

	b.P2.Position = 8
	assert.Contains(t, b.WhyCantFire(gun), ReasonOutOfRange)

	// Facing left from the edge
	b.P1.Position, b.P2.Position = 1, 0
	assert.Empty(t, b.PositionsInRange(b.P1, gun, false))
	assert.Equal(t, []int{-1, -2, -3}, b.PositionsInRange(b.P1, gun, true))
}

func TestPositionsInRangeWithoutRange(t *testing.T) {
	b := newTestBattle(t, equip(1, entity.SlotChargeEngine, partEngine))
	engine := b.P1.ChargeEngine()
	assert.Len(t, b.PositionsInRange(b.P1, engine, false), 10)
}

func TestWhyCantFire(t *testing.T) {
	t.Run("energy", func(t *testing.T) {
		b := newTestBattle(t, equip(1, entity.SlotTeleporter, partTeleporter))
		b.P1.Stats.Energy = 10
		assert.Contains(t, b.WhyCantFire(b.P1.Teleporter()), ReasonNotEnoughEnergy)
	})

	t.Run("uses", func(t *testing.T) {
		b := newTestBattle(t, equip(1, entity.SlotTeleporter, partTeleporter))
		b.P1.Teleporter().TimesUsed = 2
		assert.Equal(t, []Reason{ReasonOutOfUses}, b.WhyCantFire(b.P1.Teleporter()))
	})

	t.Run("require jump", func(t *testing.T) {
		b := newTestBattle(t, equip(1, entity.SlotTopWeapon1, partRetro))
		assert.Contains(t, b.WhyCantFire(b.P1.Part(entity.SlotTopWeapon1)), ReasonRequireJumping)
	})

	t.Run("retreat off the arena", func(t *testing.T) {
		b := newTestBattle(t, at(0, 3),
			equip(1, entity.SlotLegs, partJumper),
			equip(1, entity.SlotTopWeapon1, partRetro))
		assert.Equal(t, []Reason{ReasonOutOfRetreatingRange}, b.WhyCantFire(b.P1.Part(entity.SlotTopWeapon1)))
	})

	t.Run("already used", func(t *testing.T) {
		b := newTestBattle(t, equip(1, entity.SlotGrapplingHook, partHook))
		gun, hook := b.P1.Part(entity.SlotSideWeapon1), b.P1.GrapplingHook()
		b.P1.UsedThisTurn = []*entity.CombatPart{gun, hook}

		assert.Contains(t, b.WhyCantFire(gun), ReasonAlreadyUsed)
		assert.NotContains(t, b.WhyCantFire(hook), ReasonAlreadyUsed)
	})

	t.Run("ignored reasons", func(t *testing.T) {
		b := newTestBattle(t, at(2, 8))
		gun := b.P1.Part(entity.SlotSideWeapon1)
		assert.False(t, b.CanFire(gun))
		assert.True(t, b.CanFire(gun, ReasonOutOfRange))
		assert.Equal(t, []*entity.CombatPart{gun}, b.FirableWeapons(ReasonOutOfRange))
		assert.Empty(t, b.FirableWeapons())
	})
}

func TestDamageForPart(t *testing.T) {
	b := newTestBattle(t, equip(1, entity.SlotSideWeapon2, partLeech))
	gun := b.P1.Part(entity.SlotSideWeapon1)

	assert.Equal(t, 20, b.DamageForPart(gun, 0))
	assert.Equal(t, 30, b.DamageForPart(gun, 0.5))
	assert.Equal(t, 40, b.DamageForPart(gun, 1))
	assert.Equal(t, b.DamageForPart(gun, 0.37), b.DamageForPart(gun, 0.37))

	// 400 energy damage against 300 energy spills 100 into health
	assert.Equal(t, 100, b.DamageForPart(b.P1.Part(entity.SlotSideWeapon2), 0))
}

func TestDamageForPartResistance(t *testing.T) {
	t.Run("reduced", func(t *testing.T) {
		b := newTestBattle(t, equip(2, entity.SlotModule1, partArmor))
		assert.Equal(t, 10, b.DamageForPart(b.P1.Part(entity.SlotSideWeapon1), 0))
	})

	t.Run("at least one", func(t *testing.T) {
		b := newTestBattle(t, equip(2, entity.SlotModule1, partFortress))
		assert.Equal(t, 1, b.DamageForPart(b.P1.Part(entity.SlotSideWeapon1), 1))
	})

	t.Run("shredded below zero", func(t *testing.T) {
		b := newTestBattle(t)
		b.P2.Stats.PhysicalRes = -5
		assert.Equal(t, 25, b.DamageForPart(b.P1.Part(entity.SlotSideWeapon1), 0))
	})
}

func TestWalkablePositions(t *testing.T) {
	t.Run("walker stops short of the opponent", func(t *testing.T) {
		b := newTestBattle(t, at(2, 6))
		assert.Equal(t, []int{0, 1, 3, 4}, Indices(b.WalkablePositions()))
	})

	t.Run("walker facing left", func(t *testing.T) {
		b := newTestBattle(t, at(7, 6))
		assert.Equal(t, []int{8, 9}, Indices(b.WalkablePositions()))
	})

	t.Run("jumper passes over", func(t *testing.T) {
		b := newTestBattle(t, at(4, 5), equip(1, entity.SlotLegs, partJumper))
		assert.Equal(t, []int{1, 2, 3, 6, 7}, Indices(b.WalkablePositions()))
	})
}

func TestTeleportablePositions(t *testing.T) {
	b := newTestBattle(t, at(2, 6))
	assert.Equal(t, []int{0, 1, 3, 4, 5, 7, 8, 9}, Indices(b.TeleportablePositions()))
}

func TestUsableUtilities(t *testing.T) {
	b := newTestBattle(t, at(2, 6),
		equip(1, entity.SlotChargeEngine, partEngine),
		equip(1, entity.SlotGrapplingHook, partHook))
	require.Len(t, b.UsableUtilities(), 2)

	b.P1.ChargeEngine().TimesUsed = 2
	assert.Equal(t, []*entity.CombatPart{b.P1.GrapplingHook()}, b.UsableUtilities())
}
