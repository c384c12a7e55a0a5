package game

import (
	"github.com/vovakirdan/term2048/internal/core"
	"github.com/vovakirdan/term2048/internal/engine"
)

type glyph struct {
	r     rune
	color core.Color
}

// glyphs maps tile values to the single character drawn for them.
var glyphs = map[uint32]glyph{
	2:    {'2', core.ColorTile2},
	4:    {'4', core.ColorTile4},
	8:    {'8', core.ColorTile8},
	16:   {'A', core.ColorTile16},
	32:   {'B', core.ColorTile32},
	64:   {'C', core.ColorTile64},
	128:  {'D', core.ColorTile128},
	256:  {'E', core.ColorTile256},
	512:  {'F', core.ColorTile512},
	1024: {'G', core.ColorTile1024},
	2048: {'*', core.ColorTile2048},
}

// Glyph returns the character and color for a cell.
func Glyph(c engine.Cell) (rune, core.Color) {
	v, ok := c.Get()
	if !ok {
		return '#', core.ColorEmpty
	}
	if g, ok := glyphs[v]; ok {
		return g.r, g.color
	}
	return '+', core.ColorTileBeyond
}

// Legend lists glyphs and their values in ascending order for the help line.
func Legend() []string {
	return []string{"A=16", "B=32", "C=64", "D=128", "E=256", "F=512", "G=1024", "*=2048"}
}
