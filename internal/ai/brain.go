// Package ai picks actions for computer-controlled mechs.
//
// The Brain walks an ordered list of heuristics ("thoughts") and submits the
// first action one of them produces, falling back to a cooldown:
//
//  1. useScope        fire a long range weapon, or move so one can fire
//  2. activateDrone   switch on an idle drone
//  3. preventShutdown cool down when close to the heat cap
//  4. useWeapon       fire anything, or walk/charge/hook/teleport into range
//  5. smartMotion     reposition so a weapon can fire next turn
//  6. dumbMotion      use a random utility or walk somewhere
package ai

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/samdwyer/mecharena/internal/combat"
	"github.com/samdwyer/mecharena/internal/entity"
)

// ErrNotAttacker is returned when asked to think for a mech whose turn it isn't.
var ErrNotAttacker = errors.New("not the attacker")

// scopeMinRange is the minimum range above which a weapon counts as a scope.
const scopeMinRange = 6

// Brain implements combat.Brain.
type Brain struct {
	rng *rand.Rand
}

// NewBrain creates a Brain. With a nil source it samples from the battle's
// own random source.
func NewBrain(rng *rand.Rand) *Brain {
	return &Brain{rng: rng}
}

// thought is one heuristic. It returns false when it has no opinion.
type thought struct {
	name string
	fn   func(m *mind) (combat.Action, bool)
}

var thoughts = []thought{
	{"useScope", useScope},
	{"activateDrone", activateDrone},
	{"preventShutdown", preventShutdown},
	{"useWeapon", useWeapon},
	{"smartMotion", smartMotion},
	{"dumbMotion", dumbMotion},
}

// Think returns the next action for actorID.
func (br *Brain) Think(b *combat.Battle, actorID string) (combat.Action, error) {
	if b.Attacker == nil || b.Attacker.ID != actorID {
		return combat.Action{}, fmt.Errorf("%w: %s", ErrNotAttacker, actorID)
	}

	m := &mind{
		battle: b,
		me:     b.Attacker,
		foe:    b.Defender,
		rng:    br.rng,
	}
	if m.rng == nil {
		m.rng = b.Rand()
	}

	action, _ := m.decide()
	return action, nil
}

// Explain returns the name of the thought that would pick the next action,
// or "cooldown" when none applies. Thoughts only sample once they have
// decided to fire, so a throwaway source names the same thought Think picks
// and leaves the battle's source untouched.
func (br *Brain) Explain(b *combat.Battle) string {
	m := &mind{battle: b, me: b.Attacker, foe: b.Defender, rng: rand.New(rand.NewSource(0))}
	_, name := m.decide()
	return name
}

// mind is the per-decision view of the battle.
type mind struct {
	battle  *combat.Battle
	me, foe *entity.Combatant
	rng     *rand.Rand
}

func (m *mind) decide() (combat.Action, string) {
	for _, t := range thoughts {
		if action, ok := t.fn(m); ok {
			action.ActorID = m.me.ID
			return action, t.name
		}
	}
	return combat.Cooldown(m.me.ID), "cooldown"
}

func isScope(p *entity.CombatPart) bool {
	return p.Stats.Range != nil && p.Stats.Range.Min() > scopeMinRange
}

func filter(parts []*entity.CombatPart, keep func(*entity.CombatPart) bool) []*entity.CombatPart {
	var out []*entity.CombatPart
	for _, p := range parts {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func sample[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}
