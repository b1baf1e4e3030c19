// Package game hosts battles: an interactive terminal match against the AI
// and headless AI vs AI simulations.
package game

// State represents the current input mode of the terminal match.
type State int

const (
	// StateBattle accepts action keys.
	StateBattle State = iota
	// StateSelectWalk waits for a destination digit to walk to.
	StateSelectWalk
	// StateSelectTeleport waits for a destination digit to teleport to.
	StateSelectTeleport
	// StateOver shows the result until the player quits.
	StateOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateBattle:
		return "battle"
	case StateSelectWalk:
		return "select_walk"
	case StateSelectTeleport:
		return "select_teleport"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}
