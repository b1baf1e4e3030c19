package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mecharena.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
seed: 42
mode: simulate
player:
  name: Alice
  loadout: brawler
simulation:
  matches: 3
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, ModeSimulate, cfg.Mode)
	assert.Equal(t, "Alice", cfg.Player.Name)
	assert.Equal(t, "brawler", cfg.Player.Loadout)
	assert.Equal(t, "Bot", cfg.Opponent.Name, "unset fields keep their defaults")
	assert.Equal(t, 3, cfg.Simulation.Matches)
	assert.Equal(t, 200, cfg.Simulation.MaxTurns)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, "seed: 1\nmode: play\n")
	t.Setenv(EnvSeed, "99")
	t.Setenv(EnvMode, ModeSimulate)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, ModeSimulate, cfg.Mode)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "seed: [1"))
		assert.Error(t, err)
	})

	t.Run("bad seed", func(t *testing.T) {
		t.Setenv(EnvSeed, "abc")
		_, err := LoadConfig("")
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	tests := []struct {
		name    string
		content string
	}{
		{"unknown mode", "mode: arcade\n"},
		{"no matches", "simulation:\n  matches: 0\n"},
		{"no turns", "simulation:\n  max_turns: -1\n"},
		{"no workers", "simulation:\n  workers: 0\n"},
		{"blank name", "player:\n  name: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateBattle, "battle"},
		{StateSelectWalk, "select_walk"},
		{StateSelectTeleport, "select_teleport"},
		{StateOver, "over"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.state.String())
	}
}
