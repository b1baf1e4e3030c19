package ui

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/mecharena/internal/combat"
	"github.com/samdwyer/mecharena/internal/entity"
	"github.com/samdwyer/mecharena/internal/gamedata"
	"github.com/samdwyer/mecharena/internal/world"
)

func TestArenaRunes(t *testing.T) {
	var highlight [world.Size]bool
	highlight[0] = true
	highlight[3] = true

	got := string(ArenaRunes(world.NewArena(), 3, 7, highlight))
	assert.Equal(t, "0__1___2__", got)
}

func TestPoolsLine(t *testing.T) {
	c := &entity.Combatant{
		Name:     "Alice",
		MechName: "Brute",
		Stats: entity.Pools{
			Health: 800, HealthCap: 1000,
			Energy: 120, EnergyCap: 300, EnergyRegen: 50,
			Heat: 40, HeatCap: 600, HeatCooling: 100,
			PhysicalRes: 5,
		},
	}

	line := PoolsLine(c)
	assert.True(t, strings.HasPrefix(line, "Alice (Brute)"))
	assert.Contains(t, line, "HP 800/1000")
	assert.Contains(t, line, "EN 120/300 +50")
	assert.Contains(t, line, "HEAT 40/600 -100")
	assert.Contains(t, line, "RES 5/0/0")
	assert.NotContains(t, line, "DRONE")

	c.DroneActive = true
	assert.Contains(t, PoolsLine(c), "DRONE")
}

func TestLogTail(t *testing.T) {
	log := []combat.LogEntry{{Message: "a"}, {Message: "b"}, {Message: "c"}}

	assert.Len(t, LogTail(log, 5), 3)

	tail := LogTail(log, 2)
	assert.Len(t, tail, 2)
	assert.Equal(t, "b", tail[0].Message)
	assert.Equal(t, "c", tail[1].Message)

	assert.Empty(t, LogTail(log, 0))
}

func TestPartLine(t *testing.T) {
	// Brute Chassis on Strider Legs with an Autocannon (range 1-4).
	setup := entity.Setup{1, 10, 20}
	newBattle := func(p1, p2 int) *combat.Battle {
		b, err := combat.NewBattle(combat.Config{
			P1:        entity.CombatantArgs{ID: "p1", Name: "Alice", Setup: setup, Position: p1},
			P2:        entity.CombatantArgs{ID: "p2", Name: "Bob", Setup: setup, Position: p2},
			StarterID: "p1",
			Parts:     gamedata.MustLoadPartRegistry(),
			Rand:      rand.New(rand.NewSource(1)),
		})
		require.NoError(t, err)
		return b
	}

	far := newBattle(2, 7)
	gun := far.P1.Part(entity.SlotSideWeapon1)
	require.NotNil(t, gun)
	assert.Equal(t, "[1] Autocannon  70-90  (Out of range)", PartLine("1", far, gun))

	near := newBattle(4, 6)
	gun = near.P1.Part(entity.SlotSideWeapon1)
	assert.Equal(t, "[1] Autocannon  70-90  ready", PartLine("1", near, gun))
}
