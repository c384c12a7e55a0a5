package game

import (
	"fmt"
	"sync/atomic"

	"github.com/vovakirdan/term2048/internal/engine"
	"github.com/vovakirdan/term2048/internal/registry"
)

// Variant describes a board shape.
type Variant struct {
	ID     string
	Title  string
	Width  int
	Height int
}

// Built-in variants.
var (
	Classic = Variant{ID: "classic", Title: "Classic 4x4", Width: 4, Height: 4}
	Small   = Variant{ID: "small", Title: "Small 3x3", Width: 3, Height: 3}
	Large   = Variant{ID: "large", Title: "Large 5x5", Width: 5, Height: 5}
	Huge    = Variant{ID: "huge", Title: "Huge 6x6", Width: 6, Height: 6}
	Wide    = Variant{ID: "wide", Title: "Wide 6x4", Width: 6, Height: 4}
)

// DefaultVariant is played when no variant is named.
const DefaultVariant = "classic"

// CustomVariant builds a variant for an arbitrary size.
func CustomVariant(width, height int) (Variant, error) {
	if err := engine.ValidateSize(width, height); err != nil {
		return Variant{}, err
	}
	return Variant{
		ID:     fmt.Sprintf("custom-%dx%d", width, height),
		Title:  fmt.Sprintf("Custom %dx%d", width, height),
		Width:  width,
		Height: height,
	}, nil
}

// openingRounds is how many spawn rounds run on an empty board.
var openingRounds atomic.Int32

// SetOpeningRounds sets the spawn rounds run at reset. Values below 1 are
// treated as 1.
func SetOpeningRounds(n int) {
	openingRounds.Store(int32(max(n, 1)))
}

func init() {
	SetOpeningRounds(1)

	for _, v := range []Variant{Classic, Small, Large, Huge, Wide} {
		v := v
		registry.Register(v.ID, func() registry.Game {
			return NewSession(v)
		})
	}
}
