package core

// Color represents a foreground color for a screen cell.
// The platform layer maps each value to a concrete terminal style.
type Color uint8

// Colors used by the board renderer.
const (
	ColorDefault Color = iota
	ColorFrame
	ColorEmpty
	ColorTile2
	ColorTile4
	ColorTile8
	ColorTile16
	ColorTile32
	ColorTile64
	ColorTile128
	ColorTile256
	ColorTile512
	ColorTile1024
	ColorTile2048
	ColorTileBeyond
	ColorWin
	ColorLose
	ColorHint
)
