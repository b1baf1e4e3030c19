package game

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Modes the binary can run in.
const (
	ModePlay     = "play"
	ModeSimulate = "simulate"
)

// Environment variables that override the config file.
const (
	EnvSeed = "MECHARENA_SEED"
	EnvMode = "MECHARENA_MODE"
)

// ErrInvalidConfig is returned for configs that fail validation.
var ErrInvalidConfig = errors.New("invalid config")

var validate = validator.New()

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible battles.
	// A seed of 0 means a random seed will be generated.
	Seed int64  `yaml:"seed"`
	Mode string `yaml:"mode" validate:"oneof=play simulate"`

	Player   PlayerConfig `yaml:"player"`
	Opponent PlayerConfig `yaml:"opponent"`

	Simulation SimulationConfig `yaml:"simulation"`

	// LogFile receives JSON logs while the terminal UI owns the screen.
	LogFile string `yaml:"log_file"`
}

// PlayerConfig picks the mech for one side. An empty loadout is drawn at random.
type PlayerConfig struct {
	Name    string `yaml:"name" validate:"required,max=24"`
	Loadout string `yaml:"loadout"`
}

// SimulationConfig controls headless AI vs AI runs.
type SimulationConfig struct {
	Matches int `yaml:"matches" validate:"min=1"`
	// MaxTurns ends a stalled match as a draw.
	MaxTurns int `yaml:"max_turns" validate:"min=1"`
	// Workers is how many matches run at once.
	Workers int `yaml:"workers" validate:"min=1,max=64"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Mode:     ModePlay,
		Player:   PlayerConfig{Name: "Player"},
		Opponent: PlayerConfig{Name: "Bot"},
		Simulation: SimulationConfig{
			Matches:  10,
			MaxTurns: 200,
			Workers:  4,
		},
	}
}

// LoadConfig reads a YAML config over the defaults and applies environment
// overrides. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from MECHARENA_* variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvSeed, v, err)
		}
		c.Seed = seed
	}
	if v := os.Getenv(EnvMode); v != "" {
		c.Mode = v
	}
	return nil
}

// Validate checks the values that can't be fixed up silently.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fields validator.ValidationErrors
		if errors.As(err, &fields) && len(fields) > 0 {
			f := fields[0]
			return fmt.Errorf("%w: %s fails %q (got %v)", ErrInvalidConfig, f.Namespace(), f.Tag(), f.Value())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
