package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/samdwyer/mecharena/internal/combat"
	"github.com/samdwyer/mecharena/internal/entity"
	"github.com/samdwyer/mecharena/internal/gamedata"
	"github.com/samdwyer/mecharena/internal/world"
)

// ErrUnknownLoadout is returned for a loadout id missing from the catalog.
var ErrUnknownLoadout = errors.New("unknown loadout")

// Catalog holds the read-only game data battles are built from.
type Catalog struct {
	Parts    *gamedata.PartRegistry
	Loadouts *gamedata.LoadoutRegistry
}

// LoadCatalog loads the embedded parts and loadouts.
func LoadCatalog() (*Catalog, error) {
	parts, err := gamedata.LoadPartRegistry()
	if err != nil {
		return nil, err
	}
	loadouts, err := gamedata.LoadLoadoutRegistry()
	if err != nil {
		return nil, err
	}
	return &Catalog{Parts: parts, Loadouts: loadouts}, nil
}

// Side describes one participant of a match.
type Side struct {
	ID      string
	Name    string
	Loadout string
	AI      bool
}

// Setup resolves a loadout into a battle-ready setup and its mech name.
// An empty id picks a random loadout.
func (c *Catalog) Setup(loadoutID string, rng *rand.Rand) (entity.Setup, string, error) {
	var def *gamedata.LoadoutDef
	if loadoutID == "" {
		def = c.Loadouts.Random(rng)
	} else {
		def = c.Loadouts.GetByID(loadoutID)
	}
	if def == nil {
		return entity.Setup{}, "", fmt.Errorf("%w: %q", ErrUnknownLoadout, loadoutID)
	}

	setup, err := entity.SetupFromIDs(def.Setup)
	if err != nil {
		return setup, "", fmt.Errorf("loadout %s: %w", def.ID, err)
	}
	parts, err := setup.Resolve(c.Parts)
	if err != nil {
		return setup, "", fmt.Errorf("loadout %s: %w", def.ID, err)
	}
	if err := entity.CheckSetup(parts); err != nil {
		return setup, "", fmt.Errorf("loadout %s: %w", def.ID, err)
	}
	return setup, def.Name, nil
}

// NewBattle places both sides on a random preset and picks a random starter.
func (c *Catalog) NewBattle(p1, p2 Side, rng *rand.Rand, brain combat.Brain, onUpdate func(*combat.Battle)) (*combat.Battle, error) {
	setup1, mech1, err := c.Setup(p1.Loadout, rng)
	if err != nil {
		return nil, err
	}
	setup2, mech2, err := c.Setup(p2.Loadout, rng)
	if err != nil {
		return nil, err
	}

	left, right := world.StartingPositions(rng)
	starter := p1.ID
	if rng.Intn(2) == 1 {
		starter = p2.ID
	}

	return combat.NewBattle(combat.Config{
		P1: entity.CombatantArgs{
			ID: p1.ID, Name: p1.Name, MechName: mech1, Setup: setup1, AI: p1.AI, Position: left,
		},
		P2: entity.CombatantArgs{
			ID: p2.ID, Name: p2.Name, MechName: mech2, Setup: setup2, AI: p2.AI, Position: right,
		},
		StarterID: starter,
		Parts:     c.Parts,
		Brain:     brain,
		Rand:      rng,
		OnUpdate:  onUpdate,
	})
}

// newRand seeds from the config, or from the clock for seed 0.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = rand.Int63()
	}
	return rand.New(rand.NewSource(seed))
}
