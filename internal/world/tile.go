// Package world provides the one-dimensional battle arena.
package world

// Tile represents a single arena tile.
type Tile rune

const (
	// TileWall is drawn past both ends of the arena.
	TileWall Tile = '#'
	// TileFloor represents a position a mech can stand on.
	TileFloor Tile = '_'
)

// IsPassable returns true if the tile can be stood on.
func (t Tile) IsPassable() bool {
	return t == TileFloor
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}
