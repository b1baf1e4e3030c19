package ai

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/mecharena/internal/combat"
	"github.com/samdwyer/mecharena/internal/entity"
	"github.com/samdwyer/mecharena/internal/gamedata"
)

// Catalog ids used below.
const (
	bruteChassis = 1
	striderLegs  = 10
	autocannon   = 20
	longshotRail = 30
	waspDrone    = 40
	ramEngine    = 50
	blinkCoil    = 51
)

// mech returns a Brute Chassis on Strider Legs with extra parts.
func mech(extra map[entity.Slot]int) entity.Setup {
	s := entity.Setup{bruteChassis, striderLegs}
	for slot, id := range extra {
		s[slot] = id
	}
	return s
}

func newBattle(t *testing.T, setup entity.Setup, p1, p2 int) *combat.Battle {
	t.Helper()
	b, err := combat.NewBattle(combat.Config{
		P1:        entity.CombatantArgs{ID: "p1", Name: "Alice", Setup: setup, Position: p1},
		P2:        entity.CombatantArgs{ID: "p2", Name: "Bob", Setup: mech(nil), Position: p2},
		StarterID: "p1",
		Parts:     gamedata.MustLoadPartRegistry(),
		Rand:      rand.New(rand.NewSource(7)),
	})
	require.NoError(t, err)
	return b
}

func think(t *testing.T, b *combat.Battle) combat.Action {
	t.Helper()
	action, err := NewBrain(rand.New(rand.NewSource(3))).Think(b, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", action.ActorID)
	return action
}

func TestThinkRejectsOtherPlayer(t *testing.T) {
	b := newBattle(t, mech(nil), 2, 7)
	_, err := NewBrain(nil).Think(b, "p2")
	assert.ErrorIs(t, err, ErrNotAttacker)
}

func TestUseScope(t *testing.T) {
	t.Run("fires when in range", func(t *testing.T) {
		b := newBattle(t, mech(map[entity.Slot]int{entity.SlotTopWeapon1: longshotRail}), 0, 8)
		action := think(t, b)

		assert.Equal(t, combat.KindUseWeapon, action.Kind)
		require.NotNil(t, action.Slot)
		assert.Equal(t, entity.SlotTopWeapon1, *action.Slot)
	})

	t.Run("backs off to get in range", func(t *testing.T) {
		b := newBattle(t, mech(map[entity.Slot]int{entity.SlotTopWeapon1: longshotRail}), 2, 8)
		b.ActionPoints = 2
		action := think(t, b)

		assert.Equal(t, combat.KindWalk, action.Kind)
		require.NotNil(t, action.Position)
		assert.Equal(t, 0, *action.Position)
		assert.Equal(t, "useScope", NewBrain(nil).Explain(b))
	})

	t.Run("needs two points to move", func(t *testing.T) {
		b := newBattle(t, mech(map[entity.Slot]int{entity.SlotTopWeapon1: longshotRail}), 2, 8)
		assert.NotEqual(t, "useScope", NewBrain(nil).Explain(b))
	})
}

func TestActivateDrone(t *testing.T) {
	b := newBattle(t, mech(map[entity.Slot]int{entity.SlotDrone: waspDrone}), 2, 8)
	assert.Equal(t, combat.KindToggleDrone, think(t, b).Kind)

	b.P1.DroneActive = true
	assert.NotEqual(t, "activateDrone", NewBrain(nil).Explain(b))
}

func TestPreventShutdown(t *testing.T) {
	b := newBattle(t, mech(map[entity.Slot]int{entity.SlotSideWeapon1: autocannon}), 2, 4)
	b.P1.Stats.Heat = b.P1.Stats.HeatCap - 10

	assert.Equal(t, combat.KindCooldown, think(t, b).Kind)
	assert.Equal(t, "preventShutdown", NewBrain(nil).Explain(b))
}

func TestUseWeapon(t *testing.T) {
	t.Run("fires when in range", func(t *testing.T) {
		b := newBattle(t, mech(map[entity.Slot]int{entity.SlotSideWeapon1: autocannon}), 2, 4)
		action := think(t, b)

		assert.Equal(t, combat.KindUseWeapon, action.Kind)
		assert.Equal(t, entity.SlotSideWeapon1, *action.Slot)
	})

	t.Run("walks into range", func(t *testing.T) {
		b := newBattle(t, mech(map[entity.Slot]int{entity.SlotSideWeapon1: autocannon}), 2, 8)
		b.ActionPoints = 2
		action := think(t, b)

		assert.Equal(t, combat.KindWalk, action.Kind)
		assert.Equal(t, 4, *action.Position)
		assert.Equal(t, "useWeapon", NewBrain(nil).Explain(b))
	})

	t.Run("charges a cornered opponent", func(t *testing.T) {
		b := newBattle(t, mech(map[entity.Slot]int{
			entity.SlotSideWeapon1:  autocannon,
			entity.SlotChargeEngine: ramEngine,
		}), 0, 9)
		b.ActionPoints = 2

		assert.Equal(t, combat.KindCharge, think(t, b).Kind)
	})

	t.Run("teleports into range", func(t *testing.T) {
		b := newBattle(t, mech(map[entity.Slot]int{
			entity.SlotSideWeapon1: autocannon,
			entity.SlotTeleporter:  blinkCoil,
		}), 0, 9)
		b.ActionPoints = 2
		action := think(t, b)

		assert.Equal(t, combat.KindTeleport, action.Kind)
		assert.Contains(t, []int{5, 6, 7, 8}, *action.Position)
	})
}

func TestSmartMotion(t *testing.T) {
	b := newBattle(t, mech(map[entity.Slot]int{entity.SlotSideWeapon1: autocannon}), 2, 8)
	action := think(t, b)

	assert.Equal(t, combat.KindWalk, action.Kind)
	assert.Equal(t, 4, *action.Position)
	assert.Equal(t, "smartMotion", NewBrain(nil).Explain(b))
}

func TestDumbMotion(t *testing.T) {
	t.Run("uses a utility", func(t *testing.T) {
		b := newBattle(t, mech(map[entity.Slot]int{entity.SlotChargeEngine: ramEngine}), 2, 8)
		assert.Equal(t, combat.KindCharge, think(t, b).Kind)
	})

	t.Run("walks somewhere", func(t *testing.T) {
		b := newBattle(t, mech(nil), 4, 9)
		action := think(t, b)

		assert.Equal(t, combat.KindWalk, action.Kind)
		assert.True(t, b.WalkablePositions()[*action.Position])
	})
}

func TestCooldownWhenNothingElseWorks(t *testing.T) {
	b := newBattle(t, mech(nil), 0, 1)

	assert.Equal(t, combat.KindCooldown, think(t, b).Kind)
	assert.Equal(t, "cooldown", NewBrain(nil).Explain(b))
}

func TestThinkIsReproducible(t *testing.T) {
	pick := func() int {
		b := newBattle(t, mech(nil), 4, 9)
		return *think(t, b).Position
	}
	assert.Equal(t, pick(), pick())
}

func TestBrainDrivesBattle(t *testing.T) {
	parts := gamedata.MustLoadPartRegistry()
	loadouts := gamedata.MustLoadLoadoutRegistry()
	setup := func(id string) entity.Setup {
		s, err := entity.SetupFromIDs(loadouts.GetByID(id).Setup)
		require.NoError(t, err)
		return s
	}

	b, err := combat.NewBattle(combat.Config{
		P1:        entity.CombatantArgs{ID: "p1", Name: "Alice", Setup: setup("brawler"), Position: 3},
		P2:        entity.CombatantArgs{ID: "p2", Name: "Bot", Setup: setup("sniper"), Position: 6, AI: true},
		StarterID: "p1",
		Parts:     parts,
		Brain:     NewBrain(nil),
		Rand:      rand.New(rand.NewSource(11)),
	})
	require.NoError(t, err)

	require.NoError(t, b.Submit(context.Background(), combat.Cooldown("p1")))

	if !b.IsComplete() {
		assert.Equal(t, "p1", b.Attacker.ID)
		assert.Equal(t, 2, b.ActionPoints)
	}

	var botActions int
	for _, entry := range b.Log {
		if entry.ActorID == "p2" && entry.Severity == combat.SeverityAction {
			botActions++
		}
	}
	assert.GreaterOrEqual(t, botActions, 2)
}

func TestExplainLeavesBattleSourceAlone(t *testing.T) {
	setup := mech(map[entity.Slot]int{entity.SlotSideWeapon1: autocannon})
	explained := newBattle(t, setup, 2, 4)
	untouched := newBattle(t, setup, 2, 4)

	name := NewBrain(nil).Explain(explained)
	assert.Equal(t, "useWeapon", name)
	assert.Equal(t, untouched.Rand().Int63(), explained.Rand().Int63())
}
