package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/mecharena/internal/combat"
	"github.com/samdwyer/mecharena/internal/entity"
	"github.com/samdwyer/mecharena/internal/gamedata"
	"github.com/samdwyer/mecharena/internal/world"
)

// View is the per-frame state owned by the game loop.
type View struct {
	ViewerID  string
	Prompt    string
	Message   string
	Highlight [world.Size]bool
}

// partKeys pairs every actionable slot with the key that uses it.
var partKeys = []struct {
	key  string
	slot entity.Slot
}{
	{"1", entity.SlotSideWeapon1},
	{"2", entity.SlotSideWeapon2},
	{"3", entity.SlotSideWeapon3},
	{"4", entity.SlotSideWeapon4},
	{"5", entity.SlotTopWeapon1},
	{"6", entity.SlotTopWeapon2},
	{"s", entity.SlotLegs},
	{"d", entity.SlotDrone},
	{"g", entity.SlotChargeEngine},
	{"t", entity.SlotTeleporter},
	{"h", entity.SlotGrapplingHook},
}

const logLines = 8

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
	arena  *world.Arena
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen, arena: world.NewArena()}
}

// Render draws the arena, both mechs' pools, the viewer's parts and the log.
func (r *Renderer) Render(b *combat.Battle, v View) {
	r.screen.Clear()
	plain := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)

	r.screen.DrawText(0, 0, fmt.Sprintf("MECH ARENA  turn %d  %s's move  AP %d", b.Turn+1, b.Attacker.Name, b.ActionPoints), plain.Bold(true))

	r.renderArena(b, v, 2)

	r.screen.DrawText(0, 5, PoolsLine(b.P1), tcell.StyleDefault.Foreground(tcell.ColorYellow))
	r.screen.DrawText(0, 6, PoolsLine(b.P2), tcell.StyleDefault.Foreground(tcell.ColorRed))

	y := 8
	if viewer := b.Player(v.ViewerID); viewer != nil && viewer == b.Attacker && !b.IsComplete() {
		for _, pk := range partKeys {
			p := viewer.Part(pk.slot)
			if p == nil {
				continue
			}
			style := tcell.StyleDefault.Foreground(gamedata.ElementColor(p.Element))
			if !b.CanFire(p) {
				style = dim
			}
			r.screen.DrawText(0, y, PartLine(pk.key, b, p), style)
			y++
		}
	}

	_, height := r.screen.Size()
	tail := LogTail(b.Log, logLines)
	if room := height - y - 4; room >= 0 && room < len(tail) {
		tail = LogTail(tail, room)
	}

	y++
	for _, entry := range tail {
		style := plain
		switch entry.Severity {
		case combat.SeverityError:
			style = tcell.StyleDefault.Foreground(tcell.ColorRed)
		case combat.SeverityInfo:
			style = dim
		}
		r.screen.DrawText(0, y, entry.Message, style)
		y++
	}

	y++
	if v.Message != "" {
		r.RenderMessage(v.Message, y)
		y++
	}
	r.screen.DrawText(0, y, v.Prompt, dim)

	r.screen.Show()
}

// renderArena draws the walls, the floor and both mechs on row y.
func (r *Renderer) renderArena(b *combat.Battle, v View, y int) {
	wall := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	r.screen.SetContent(0, y, r.arena.GetTile(-1).Rune(), wall)

	for i, ch := range ArenaRunes(r.arena, b.P1.Position, b.P2.Position, v.Highlight) {
		x := 2 + i*2
		r.screen.SetContent(x, y, ch, r.getCellStyle(i, b, v))
		r.screen.SetContent(x, y+1, rune('0'+i), tcell.StyleDefault.Foreground(tcell.ColorDarkGray))
	}

	r.screen.SetContent(2+world.Size*2, y, r.arena.GetTile(world.Size).Rune(), wall)
}

// getCellStyle returns the style for an arena position.
func (r *Renderer) getCellStyle(pos int, b *combat.Battle, v View) tcell.Style {
	switch {
	case pos == b.P1.Position:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	case pos == b.P2.Position:
		return tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	case v.Highlight[pos]:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
}

// RenderMessage displays a message at the bottom of the screen.
func (r *Renderer) RenderMessage(msg string, y int) {
	r.screen.DrawText(0, y, msg, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))
}
