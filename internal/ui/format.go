package ui

import (
	"fmt"
	"strings"

	"github.com/samdwyer/mecharena/internal/combat"
	"github.com/samdwyer/mecharena/internal/entity"
	"github.com/samdwyer/mecharena/internal/world"
)

// HelpLine lists the battle keys.
const HelpLine = "1-6 fire  s stomp  w walk  t teleport  g charge  h hook  d drone  c cool  q forfeit"

// ArenaRunes returns one rune per position: the side number for occupied
// positions, the position digit for highlighted ones, the tile otherwise.
func ArenaRunes(a *world.Arena, p1, p2 int, highlight [world.Size]bool) []rune {
	runes := make([]rune, world.Size)
	for i := range runes {
		switch {
		case i == p1:
			runes[i] = '1'
		case i == p2:
			runes[i] = '2'
		case highlight[i]:
			runes[i] = rune('0' + i)
		default:
			runes[i] = a.GetTile(i).Rune()
		}
	}
	return runes
}

// PoolsLine summarizes a combatant's resources.
func PoolsLine(c *entity.Combatant) string {
	s := c.Stats
	line := fmt.Sprintf("%s (%s)  HP %d/%d  EN %d/%d +%d  HEAT %d/%d -%d  RES %d/%d/%d",
		c.Name, c.MechName,
		s.Health, s.HealthCap,
		s.Energy, s.EnergyCap, s.EnergyRegen,
		s.Heat, s.HeatCap, s.HeatCooling,
		s.PhysicalRes, s.ExplosiveRes, s.ElectricRes)
	if c.DroneActive {
		line += "  DRONE"
	}
	return line
}

// PartLine describes a part the attacker could use, with why it can't.
func PartLine(key string, b *combat.Battle, p *entity.CombatPart) string {
	line := fmt.Sprintf("[%s] %s", key, p.Name)
	if span := p.Stats.Damage(p.Element); span != nil {
		line += fmt.Sprintf("  %d-%d", span.Min(), span.Max())
	}
	if p.Stats.Uses != nil {
		line += fmt.Sprintf("  %d/%d", *p.Stats.Uses-p.TimesUsed, *p.Stats.Uses)
	}
	reasons := b.WhyCantFire(p)
	if len(reasons) == 0 {
		return line + "  ready"
	}
	names := make([]string, len(reasons))
	for i, r := range reasons {
		names[i] = string(r)
	}
	return line + "  (" + strings.Join(names, ", ") + ")"
}

// LogTail returns the last n log entries, oldest first.
func LogTail(log []combat.LogEntry, n int) []combat.LogEntry {
	if len(log) <= n {
		return log
	}
	return log[len(log)-n:]
}
