package game

import (
	"strings"
	"testing"

	"github.com/vovakirdan/term2048/internal/core"
	"github.com/vovakirdan/term2048/internal/engine"
)

func TestRenderBoard(t *testing.T) {
	g := newTestSession(t, Classic, [][]uint32{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{0, 0, 0, 0},
	})

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{
		"┌─────────┐",
		"│ 2 4 8 A │",
		"│ B C D E │",
		"│ F G * + │",
		"│ # # # # │",
		"└─────────┘",
		"2048 - Classic 4x4",
		"Moves: 0  Max: 4096",
		hintText,
		"A=16 B=32 C=64",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestRenderBannerUntilFirstKey(t *testing.T) {
	g := newTestSession(t, Classic, nil)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if !strings.Contains(screen.String(), bannerLines[0]) {
		t.Fatalf("banner should be shown after reset:\n%s", screen.String())
	}

	g.Step(input(core.ActionConfirm))
	g.Render(screen)
	if strings.Contains(screen.String(), bannerLines[0]) {
		t.Errorf("banner should be gone after the first key:\n%s", screen.String())
	}
}

func TestRenderBannerSkippedWhenShort(t *testing.T) {
	g := newTestSession(t, Classic, nil)
	g.Resize(40, 14)

	screen := core.NewScreen(40, 14)
	g.Render(screen)
	out := screen.String()
	if strings.Contains(out, bannerLines[0]) {
		t.Error("banner should not be drawn when it does not fit")
	}
	if !strings.Contains(out, "┌─────────┐") {
		t.Errorf("board should still be drawn:\n%s", out)
	}
}

func TestRenderOutcomeMessage(t *testing.T) {
	g := newTestSession(t, Classic, [][]uint32{
		{1024, 1024, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	g.Step(input(core.ActionLeft))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "You reached 2048!") {
		t.Errorf("win message missing:\n%s", screen.String())
	}

	g.Reset(testCfg)
	g.Abort()
	g.Render(screen)
	if !strings.Contains(screen.String(), "Session aborted") {
		t.Errorf("abort message missing:\n%s", screen.String())
	}
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		cell  engine.Cell
		r     rune
		color core.Color
	}{
		{engine.Empty, '#', core.ColorEmpty},
		{engine.Value(2), '2', core.ColorTile2},
		{engine.Value(4), '4', core.ColorTile4},
		{engine.Value(8), '8', core.ColorTile8},
		{engine.Value(16), 'A', core.ColorTile16},
		{engine.Value(32), 'B', core.ColorTile32},
		{engine.Value(64), 'C', core.ColorTile64},
		{engine.Value(128), 'D', core.ColorTile128},
		{engine.Value(256), 'E', core.ColorTile256},
		{engine.Value(512), 'F', core.ColorTile512},
		{engine.Value(1024), 'G', core.ColorTile1024},
		{engine.Value(2048), '*', core.ColorTile2048},
		{engine.Value(8192), '+', core.ColorTileBeyond},
	}

	for _, tt := range tests {
		r, c := Glyph(tt.cell)
		if r != tt.r || c != tt.color {
			t.Errorf("Glyph(%v) = (%q, %d), want (%q, %d)", tt.cell, r, c, tt.r, tt.color)
		}
	}
}
