// Package combat resolves a turn-based duel between two mechs on a 1D
// arena: action validation, effect resolution, turn passing and completion.
package combat

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/mecharena/internal/entity"
	"github.com/samdwyer/mecharena/internal/telemetry"
	"github.com/samdwyer/mecharena/internal/world"
)

// Brain picks the next action for an AI-controlled combatant.
type Brain interface {
	Think(b *Battle, actorID string) (Action, error)
}

// Completion is set once the battle is over.
type Completion struct {
	WinnerID string `json:"winner"`
	Quit     bool   `json:"quit"`
}

// Config describes a new battle.
type Config struct {
	P1, P2 entity.CombatantArgs

	// StarterID is the combatant acting first.
	StarterID string
	// Online battles only accept actions marked FromServer.
	Online bool

	Parts entity.PartLookup
	Brain Brain
	Rand  *rand.Rand

	// OnUpdate runs after every state change and OnEvent after every
	// resolved effect. Both run while the battle is locked and must not
	// call Submit, Start or Forfeit.
	OnUpdate func(*Battle)
	OnEvent  func(Event)
}

// Lifecycle states of the battle.
const (
	StateIdle       = "idle"
	StateProcessing = "processing"
	StateComplete   = "complete"
)

const (
	evProcess  = "process"
	evSettle   = "settle"
	evComplete = "complete"
)

// Battle is a single duel. Submit, Start, Forfeit and Snapshot are safe for
// concurrent use. The exported fields and query methods are not locked and
// must only be read from the owning goroutine, an observer or a Brain.
type Battle struct {
	ID string

	P1, P2             *entity.Combatant
	Attacker, Defender *entity.Combatant

	ActionPoints int
	Turn         int
	Online       bool
	Completion   *Completion
	Log          []LogEntry

	mu        sync.Mutex
	lifecycle *fsm.FSM
	brain     Brain
	rng       *rand.Rand
	onUpdate  func(*Battle)
	onEvent   func(Event)
	now       func() time.Time
}

// NewBattle builds both combatants and hands the first turn to StarterID
// with a single action point.
func NewBattle(cfg Config) (*Battle, error) {
	if cfg.Parts == nil {
		return nil, fmt.Errorf("%w: no part catalog", ErrInvalidLoadout)
	}

	p1, err := entity.NewCombatant(cfg.P1, cfg.Parts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.P1.ID, err)
	}
	p2, err := entity.NewCombatant(cfg.P2, cfg.Parts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.P2.ID, err)
	}
	if p1.ID == p2.ID {
		return nil, fmt.Errorf("%w: both players have id %q", ErrUnknownPlayer, p1.ID)
	}
	for _, c := range []*entity.Combatant{p1, p2} {
		if !world.InBounds(c.Position) {
			return nil, fmt.Errorf("%w: %s at %d", ErrInvalidPosition, c.ID, c.Position)
		}
	}
	if p1.Position == p2.Position {
		return nil, fmt.Errorf("%w: both players at %d", ErrInvalidPosition, p1.Position)
	}
	if (p1.AI || p2.AI) && cfg.Brain == nil {
		return nil, ErrNoBrain
	}

	b := &Battle{
		ID:           uuid.NewString(),
		P1:           p1,
		P2:           p2,
		ActionPoints: 1,
		Online:       cfg.Online,
		brain:        cfg.Brain,
		rng:          cfg.Rand,
		onUpdate:     cfg.OnUpdate,
		onEvent:      cfg.OnEvent,
		now:          time.Now,
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	switch cfg.StarterID {
	case p1.ID:
		b.Attacker, b.Defender = p1, p2
	case p2.ID:
		b.Attacker, b.Defender = p2, p1
	default:
		return nil, fmt.Errorf("%w: starter %q", ErrUnknownPlayer, cfg.StarterID)
	}

	b.lifecycle = fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: evProcess, Src: []string{StateIdle}, Dst: StateProcessing},
			{Name: evSettle, Src: []string{StateProcessing}, Dst: StateIdle},
			{Name: evComplete, Src: []string{StateIdle, StateProcessing}, Dst: StateComplete},
		},
		fsm.Callbacks{},
	)

	b.pushLog("Battle started", SeverityInfo)
	return b, nil
}

// State returns the lifecycle state: idle, processing or complete.
func (b *Battle) State() string {
	return b.lifecycle.Current()
}

// IsComplete reports whether a winner has been decided.
func (b *Battle) IsComplete() bool {
	return b.Completion != nil
}

// Rand returns the battle's random source. Brains draw from it so that a
// seeded battle replays identically.
func (b *Battle) Rand() *rand.Rand {
	return b.rng
}

// Start lets an AI starter play its opening turn.
func (b *Battle) Start(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.runAI(ctx)
}

// Submit validates and resolves one action. A rejected action is logged
// and returned as an error; the battle keeps waiting for the turn holder.
// If the turn passes to an AI opponent, its whole turn is played before
// Submit returns.
func (b *Battle) Submit(ctx context.Context, a Action) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	err := b.submit(ctx, a)
	b.runAI(ctx)
	return err
}

// Forfeit ends the battle in favor of the opponent of loserID.
func (b *Battle) Forfeit(ctx context.Context, loserID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.Completion != nil {
		return ErrBattleComplete
	}
	loser, winner := b.Player(loserID), b.Opponent(loserID)
	if loser == nil {
		return fmt.Errorf("%w: %q", ErrUnknownPlayer, loserID)
	}

	b.pushLog(loser.Name+" forfeited", SeverityInfo)
	b.complete(ctx, winner, true)
	return nil
}

// Snapshot is a detached copy of the battle state.
type Snapshot struct {
	ID           string
	P1, P2       *entity.Combatant
	AttackerID   string
	ActionPoints int
	Turn         int
	Completion   *Completion
	Log          []LogEntry
}

// Snapshot copies the battle under lock for readers on other goroutines.
func (b *Battle) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := Snapshot{
		ID:           b.ID,
		P1:           b.P1.Clone(),
		P2:           b.P2.Clone(),
		AttackerID:   b.Attacker.ID,
		ActionPoints: b.ActionPoints,
		Turn:         b.Turn,
		Log:          append([]LogEntry(nil), b.Log...),
	}
	if b.Completion != nil {
		c := *b.Completion
		s.Completion = &c
	}
	return s
}

// submit checks who may act, then resolves the action.
func (b *Battle) submit(ctx context.Context, a Action) error {
	if err := b.sanityCheck(a); err != nil {
		b.pushLog(err.Error(), SeverityError)
		return err
	}
	return b.process(ctx, a)
}

func (b *Battle) sanityCheck(a Action) error {
	if b.Completion != nil {
		return ErrBattleComplete
	}
	if b.Online && !a.FromServer {
		return ErrUnauthorizedAction
	}
	if a.ActorID != b.Attacker.ID {
		if a.ActorID == b.Defender.ID {
			return fmt.Errorf("%w: it's %s's turn", ErrWrongTurnHolder, b.Attacker.Name)
		}
		return fmt.Errorf("%w: %q", ErrUnknownPlayer, a.ActorID)
	}
	if b.ActionPoints <= 0 {
		return ErrNoActionPoints
	}
	return nil
}

// process resolves a sane action, spends an action point, and then either
// completes the battle or, when no points remain, fires the drone and
// passes the turn.
func (b *Battle) process(ctx context.Context, a Action) error {
	tracer := telemetry.Tracer("combat")
	ctx, span := tracer.Start(ctx, "battle.action")
	span.SetAttributes(
		attribute.String("battle.id", b.ID),
		attribute.String("action", string(a.Kind)),
		attribute.String("actor", a.ActorID),
		attribute.Int("turn", b.Turn),
		attribute.Int("action_points", b.ActionPoints),
	)
	defer span.End()

	if err := b.lifecycle.Event(ctx, evProcess); err != nil {
		return fmt.Errorf("battle %s: %w", b.State(), err)
	}

	if err := b.execute(a); err != nil {
		b.pushLog(err.Error(), SeverityError)
		span.RecordError(err)
		span.SetStatus(codes.Error, "action rejected")
		b.settle(ctx)
		return err
	}

	b.ActionPoints--
	b.notify()

	if b.deadPlayer() {
		b.complete(ctx, b.winnerByHealth(), false)
		return nil
	}

	if b.ActionPoints == 0 {
		if drone := b.Attacker.Drone(); drone != nil && b.Attacker.DroneActive && b.CanFire(drone) {
			b.fireDrone(b.Attacker, b.DamageForPart(drone, b.scale(a.DroneDamageScale)))
			if b.deadPlayer() {
				b.complete(ctx, b.winnerByHealth(), false)
				return nil
			}
		}
		b.passTurn(ctx)
	}

	b.settle(ctx)
	return nil
}

func (b *Battle) settle(ctx context.Context) {
	// The only failure is already being idle, which is fine.
	_ = b.lifecycle.Event(ctx, evSettle)
}

// execute validates the action against the rules and applies it.
func (b *Battle) execute(a Action) error {
	attacker := b.Attacker

	switch a.Kind {
	case KindCooldown:
		b.doCooldown(attacker)

	case KindWalk:
		if a.Position == nil {
			return fmt.Errorf("%w: walk needs a position", ErrMissingTarget)
		}
		if !inMask(b.WalkablePositions(), *a.Position) {
			return fmt.Errorf("%w: can't walk to %d", ErrInvalidTarget, *a.Position)
		}
		b.doWalk(attacker, *a.Position)

	case KindStomp:
		legs := attacker.Legs()
		if err := b.checkLegal(legs); err != nil {
			return err
		}
		b.doStomp(attacker, b.DamageForPart(legs, b.scale(a.DamageScale)))

	case KindUseWeapon:
		if a.Slot == nil {
			return fmt.Errorf("%w: useWeapon needs a slot", ErrMissingTarget)
		}
		if !a.Slot.IsWeapon() {
			return fmt.Errorf("%w: %s is not a weapon slot", ErrInvalidTarget, a.Slot)
		}
		weapon := attacker.Part(*a.Slot)
		if weapon == nil {
			return fmt.Errorf("%w: nothing in %s", ErrMissingEquipment, a.Slot)
		}
		if err := b.checkLegal(weapon); err != nil {
			return err
		}
		b.doUseWeapon(attacker, weapon, b.DamageForPart(weapon, b.scale(a.DamageScale)))

	case KindToggleDrone:
		if attacker.Drone() == nil {
			return fmt.Errorf("%w: no drone", ErrMissingEquipment)
		}
		b.doToggleDrone(attacker)

	case KindCharge:
		engine := attacker.ChargeEngine()
		if engine == nil {
			return fmt.Errorf("%w: no charge engine", ErrMissingEquipment)
		}
		if err := b.checkLegal(engine); err != nil {
			return err
		}
		b.doCharge(attacker, b.DamageForPart(engine, b.scale(a.DamageScale)))

	case KindTeleport:
		teleporter := attacker.Teleporter()
		if teleporter == nil {
			return fmt.Errorf("%w: no teleporter", ErrMissingEquipment)
		}
		if a.Position == nil {
			return fmt.Errorf("%w: teleport needs a position", ErrMissingTarget)
		}
		if !inMask(b.TeleportablePositions(), *a.Position) {
			return fmt.Errorf("%w: can't teleport to %d", ErrInvalidTarget, *a.Position)
		}
		if err := b.checkLegal(teleporter); err != nil {
			return err
		}
		b.doTeleport(attacker, *a.Position, b.DamageForPart(teleporter, b.scale(a.DamageScale)))

	case KindHook:
		hook := attacker.GrapplingHook()
		if hook == nil {
			return fmt.Errorf("%w: no grappling hook", ErrMissingEquipment)
		}
		if err := b.checkLegal(hook); err != nil {
			return err
		}
		b.doHook(attacker, b.DamageForPart(hook, b.scale(a.DamageScale)))

	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
	}

	return nil
}

func (b *Battle) checkLegal(p *entity.CombatPart) error {
	reasons := b.WhyCantFire(p)
	if len(reasons) == 0 {
		return nil
	}
	msgs := make([]error, len(reasons))
	for i, r := range reasons {
		msgs[i] = errors.New(string(r))
	}
	return fmt.Errorf("%w: %s: %w", ErrIllegalAction, p.Name, errors.Join(msgs...))
}

// scale returns a pinned roll clamped to [0,1], or a fresh random one.
func (b *Battle) scale(pinned *float64) float64 {
	if pinned == nil {
		return b.rng.Float64()
	}
	return min(1, max(0, *pinned))
}

// passTurn ends the attacker's turn. An overheated new attacker vents
// first: one cooling leaves it a single action point, a double cooling
// costs it the whole turn and play passes straight back.
func (b *Battle) passTurn(ctx context.Context) {
	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "battle.turn_pass")
	defer span.End()

	shutdowns := 0
	for {
		b.ActionPoints = 0
		outgoing := b.Attacker
		b.record(EventTurnPass, outgoing, nil, func() int {
			regen(outgoing)
			return 0
		})
		outgoing.UsedThisTurn = nil

		b.Attacker, b.Defender = b.Defender, b.Attacker
		b.Turn++

		attacker := b.Attacker
		if attacker.Stats.Heat <= attacker.Stats.HeatCap {
			b.ActionPoints = 2
			break
		}

		var (
			cooled int
			double bool
		)
		b.record(EventForcedCooldown, attacker, nil, func() int {
			cooled, double = forceCooldown(attacker)
			return 0
		})
		if !double {
			b.pushLog(fmt.Sprintf("%s overheated and vented %d heat", attacker.Name, cooled), SeverityInfo)
			b.ActionPoints = 1
			break
		}
		b.pushLog(fmt.Sprintf("%s overheated and lost the turn venting %d heat", attacker.Name, cooled), SeverityInfo)
		shutdowns++
	}

	span.SetAttributes(
		attribute.String("attacker", b.Attacker.ID),
		attribute.Int("turn", b.Turn),
		attribute.Int("shutdowns", shutdowns),
	)
	b.notify()
}

func (b *Battle) deadPlayer() bool {
	return !b.P1.IsAlive() || !b.P2.IsAlive()
}

// winnerByHealth picks the healthier mech. On a tie the side that did not
// act wins.
func (b *Battle) winnerByHealth() *entity.Combatant {
	switch {
	case b.P1.Stats.Health < b.P2.Stats.Health:
		return b.P2
	case b.P2.Stats.Health < b.P1.Stats.Health:
		return b.P1
	default:
		b.pushLog("Both mechs went down", SeverityInfo)
		return b.Defender
	}
}

func (b *Battle) complete(ctx context.Context, winner *entity.Combatant, quit bool) {
	tracer := telemetry.Tracer("combat")
	ctx, span := tracer.Start(ctx, "battle.complete", trace.WithAttributes(
		attribute.String("battle.id", b.ID),
		attribute.String("winner", winner.ID),
		attribute.Bool("quit", quit),
		attribute.Int("turn", b.Turn),
	))
	defer span.End()

	b.ActionPoints = 0
	b.Completion = &Completion{WinnerID: winner.ID, Quit: quit}
	b.record(EventCompletion, winner, nil, func() int { return 0 })
	if err := b.lifecycle.Event(ctx, evComplete); err != nil {
		span.RecordError(err)
	}
	b.pushLog(winner.Name+" won!", SeverityInfo)
}

// runAI plays AI turns until a human is to act or the battle ends. A Brain
// failure is logged and replaced by a cooldown.
func (b *Battle) runAI(ctx context.Context) {
	for b.Completion == nil && b.ActionPoints > 0 && b.Attacker.AI {
		actorID := b.Attacker.ID
		action, err := b.think(actorID)
		if err == nil {
			err = b.submit(ctx, action)
		}
		if err != nil {
			b.pushLog(fmt.Sprintf("AI error: %v", err), SeverityError)
			if err := b.submit(ctx, Cooldown(actorID)); err != nil {
				return
			}
		}
	}
}

func (b *Battle) think(actorID string) (a Action, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrAIFailure, r)
		}
	}()
	return b.brain.Think(b, actorID)
}

func (b *Battle) notify() {
	if b.onUpdate != nil {
		b.onUpdate(b)
	}
}

func inMask(mask [world.Size]bool, pos int) bool {
	return pos >= 0 && pos < len(mask) && mask[pos]
}
