package game

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/mecharena/internal/ai"
	"github.com/samdwyer/mecharena/internal/combat"
	"github.com/samdwyer/mecharena/internal/entity"
	"github.com/samdwyer/mecharena/internal/telemetry"
	"github.com/samdwyer/mecharena/internal/ui"
)

const humanID = "p1"

// weaponKeys maps the number keys to weapon slots.
var weaponKeys = [...]entity.Slot{
	entity.SlotSideWeapon1,
	entity.SlotSideWeapon2,
	entity.SlotSideWeapon3,
	entity.SlotSideWeapon4,
	entity.SlotTopWeapon1,
	entity.SlotTopWeapon2,
}

// Game holds the entire game state.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	battle   *combat.Battle
	state    State
	message  string
	running  bool
}

// New creates a new game instance: a human on p1 against the AI on p2.
func New(cfg Config, cat *Catalog) (*Game, error) {
	g, err := newGame(cfg, cat)
	if err != nil {
		return nil, err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	g.screen = screen
	g.renderer = ui.NewRenderer(screen)
	return g, nil
}

// newGame sets up the battle without touching the terminal.
func newGame(cfg Config, cat *Catalog) (*Game, error) {
	rng := newRand(cfg.Seed)
	b, err := cat.NewBattle(
		Side{ID: humanID, Name: cfg.Player.Name, Loadout: cfg.Player.Loadout},
		Side{ID: "p2", Name: cfg.Opponent.Name, Loadout: cfg.Opponent.Loadout, AI: true},
		rng, ai.NewBrain(nil), nil,
	)
	if err != nil {
		return nil, err
	}

	return &Game{
		battle:  b,
		state:   StateBattle,
		running: true,
	}, nil
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "match.play")
	span.SetAttributes(
		attribute.String("battle.id", g.battle.ID),
		attribute.String("p1.mech", g.battle.P1.MechName),
		attribute.String("p2.mech", g.battle.P2.MechName),
	)
	defer span.End()

	// The AI may have drawn the first turn
	g.battle.Start(ctx)
	g.checkOver()

	for g.running {
		g.renderer.Render(g.battle, g.view())
		g.handleInput(ctx)
	}

	if c := g.battle.Completion; c != nil {
		span.SetAttributes(
			attribute.String("winner", c.WinnerID),
			attribute.Bool("quit", c.Quit),
		)
	}
	span.SetAttributes(attribute.Int("turns", g.battle.Turn))
	return nil
}

// view describes what the renderer should highlight.
func (g *Game) view() ui.View {
	v := ui.View{ViewerID: humanID, Message: g.message}

	switch g.state {
	case StateSelectWalk:
		v.Prompt = "Walk to which position? (0-9, esc to cancel)"
		v.Highlight = g.battle.WalkablePositions()
	case StateSelectTeleport:
		v.Prompt = "Teleport to which position? (0-9, esc to cancel)"
		v.Highlight = g.battle.TeleportablePositions()
	case StateOver:
		v.Prompt = "Press q to leave"
	default:
		v.Prompt = ui.HelpLine
	}
	return v
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		g.running = false
	case tcell.KeyEscape:
		if g.state == StateSelectWalk || g.state == StateSelectTeleport {
			g.state = StateBattle
			return
		}
		g.running = false
	case tcell.KeyRune:
		g.handleRune(ctx, ev.Rune())
	}
}

// handleRune maps a key to an action for the human player.
func (g *Game) handleRune(ctx context.Context, r rune) {
	switch g.state {
	case StateOver:
		if r == 'q' || r == 'Q' {
			g.running = false
		}
		return

	case StateSelectWalk, StateSelectTeleport:
		selecting := g.state
		g.state = StateBattle
		if r < '0' || r > '9' {
			return
		}
		pos := int(r - '0')
		if selecting == StateSelectWalk {
			g.submit(ctx, combat.Walk(humanID, pos))
		} else {
			g.submit(ctx, combat.Teleport(humanID, pos))
		}
		return
	}

	switch r {
	case '1', '2', '3', '4', '5', '6':
		g.submit(ctx, combat.UseWeapon(humanID, weaponKeys[r-'1']))
	case 's':
		g.submit(ctx, combat.Stomp(humanID))
	case 'd':
		g.submit(ctx, combat.ToggleDrone(humanID))
	case 'g':
		g.submit(ctx, combat.Charge(humanID))
	case 'h':
		g.submit(ctx, combat.Hook(humanID))
	case 'c':
		g.submit(ctx, combat.Cooldown(humanID))
	case 'w':
		g.state = StateSelectWalk
	case 't':
		g.state = StateSelectTeleport
	case 'q', 'Q':
		if err := g.battle.Forfeit(ctx, humanID); err != nil {
			g.message = err.Error()
		}
		g.checkOver()
	}
}

func (g *Game) submit(ctx context.Context, a combat.Action) {
	g.message = ""
	if err := g.battle.Submit(ctx, a); err != nil {
		g.message = err.Error()
		if errors.Is(err, combat.ErrIllegalAction) {
			g.message = "Can't do that: " + err.Error()
		}
	}
	g.checkOver()
}

func (g *Game) checkOver() {
	c := g.battle.Completion
	if c == nil {
		return
	}
	g.state = StateOver
	switch {
	case c.WinnerID == humanID:
		g.message = "You won!"
	case c.Quit:
		g.message = "You forfeited."
	default:
		g.message = "You lost."
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
