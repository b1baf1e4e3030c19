package game

import (
	"context"
	"fmt"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/mecharena/internal/ai"
	"github.com/samdwyer/mecharena/internal/combat"
	"github.com/samdwyer/mecharena/internal/logging"
	"github.com/samdwyer/mecharena/internal/telemetry"
)

// SimulationResult summarizes a batch of AI vs AI matches.
type SimulationResult struct {
	Matches int
	Draws   int
	Turns   int
	// Wins counts victories per side id.
	Wins map[string]int
}

// Simulate plays cfg.Simulation.Matches headless matches between two AI
// mechs, up to Workers at a time. A match still running after MaxTurns is
// a draw. Every match draws from its own seeded source, so a fixed seed
// gives the same results whatever the worker count.
func Simulate(ctx context.Context, cat *Catalog, cfg Config) (SimulationResult, error) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "match.simulate")
	defer span.End()

	rng := newRand(cfg.Seed)
	brain := ai.NewBrain(nil)
	result := SimulationResult{Wins: map[string]int{}}

	p1 := Side{ID: "p1", Name: cfg.Player.Name, Loadout: cfg.Player.Loadout}
	// p2 plays inside the battle, p1 is driven from here so that the turn
	// cap can be enforced between turns.
	p2 := Side{ID: "p2", Name: cfg.Opponent.Name, Loadout: cfg.Opponent.Loadout, AI: true}

	battles := make([]*combat.Battle, cfg.Simulation.Matches)
	for i := range battles {
		matchRng := rand.New(rand.NewSource(rng.Int63()))
		b, err := cat.NewBattle(p1, p2, matchRng, brain, nil)
		if err != nil {
			return result, fmt.Errorf("match %d: %w", i+1, err)
		}
		battles[i] = b
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, cfg.Simulation.Workers))
	for i, b := range battles {
		g.Go(func() error {
			if err := playOut(gctx, b, brain, cfg.Simulation.MaxTurns); err != nil {
				return fmt.Errorf("match %d: %w", i+1, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	for i, b := range battles {
		result.Matches++
		result.Turns += b.Turn
		fields := logging.Fields{
			"battle": b.ID,
			"match":  i + 1,
			"turns":  b.Turn,
			"p1":     b.P1.MechName,
			"p2":     b.P2.MechName,
		}
		if b.Completion == nil {
			result.Draws++
			logging.Info("match drawn", fields)
			continue
		}
		result.Wins[b.Completion.WinnerID]++
		fields["winner"] = b.Completion.WinnerID
		fields["p1_health"] = b.P1.Stats.Health
		fields["p2_health"] = b.P2.Stats.Health
		logging.Info("match finished", fields)
	}

	span.SetAttributes(
		attribute.Int("matches", result.Matches),
		attribute.Int("draws", result.Draws),
		attribute.Int("p1_wins", result.Wins["p1"]),
		attribute.Int("p2_wins", result.Wins["p2"]),
	)
	return result, nil
}

// playOut drives the non-AI side with the brain until the battle ends,
// maxTurns is reached or ctx is cancelled.
func playOut(ctx context.Context, b *combat.Battle, brain *ai.Brain, maxTurns int) error {
	b.Start(ctx)

	for !b.IsComplete() && b.Turn < maxTurns {
		if err := ctx.Err(); err != nil {
			return err
		}
		actorID := b.Attacker.ID
		action, err := brain.Think(b, actorID)
		if err != nil {
			action = combat.Cooldown(actorID)
		}
		if err := b.Submit(ctx, action); err != nil {
			if err := b.Submit(ctx, combat.Cooldown(actorID)); err != nil {
				return err
			}
		}
	}
	return nil
}
