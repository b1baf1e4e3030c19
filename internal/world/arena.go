package world

import "math/rand"

const (
	// Size is the number of positions in the arena.
	Size = 10
	// MaxPosition is the highest valid position index.
	MaxPosition = Size - 1
)

// startingPresets are the mirrored spawn pairs a match may begin with.
var startingPresets = [][2]int{{4, 5}, {3, 6}, {2, 7}}

// InBounds reports whether pos is a valid arena position.
func InBounds(pos int) bool {
	return pos >= 0 && pos <= MaxPosition
}

// Clamp forces pos into [0, MaxPosition].
func Clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > MaxPosition {
		return MaxPosition
	}
	return pos
}

// Positions returns every arena position in ascending order.
func Positions() []int {
	positions := make([]int, Size)
	for i := range positions {
		positions[i] = i
	}
	return positions
}

// StartingPositions picks one of the spawn presets. The first value is the
// left-hand mech.
func StartingPositions(rng *rand.Rand) (int, int) {
	p := startingPresets[rng.Intn(len(startingPresets))]
	return p[0], p[1]
}

// Arena is the row of tiles mechs fight on.
type Arena struct {
	Tiles [Size]Tile
}

// NewArena creates an arena with every position open.
func NewArena() *Arena {
	a := &Arena{}
	for i := range a.Tiles {
		a.Tiles[i] = TileFloor
	}
	return a
}

// GetTile returns the tile at pos, or a wall outside the arena.
func (a *Arena) GetTile(pos int) Tile {
	if !InBounds(pos) {
		return TileWall
	}
	return a.Tiles[pos]
}

// IsPassable returns true if a mech can stand on pos.
func (a *Arena) IsPassable(pos int) bool {
	return a.GetTile(pos).IsPassable()
}
