package game

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/term2048/internal/core"
)

const (
	hudHeight = 3 // title, status, gap
	hintText  = "WASD/arrows: move  q: quit"
)

var bannerLines = []string{
	"Welcome to 2048!",
	"Shift the board in any direction",
	"to merge equal tiles. 2 + 2 = 4...",
	"Move with W A S D or the arrow keys.",
	"Reach the 2048 tile to win. Good luck!",
}

// boardSize returns the size of the framed board: one glyph per cell with a
// space between cells and a one-space margin inside the frame.
func (g *Session) boardSize() (int, int) {
	return 2*g.variant.Width + 3, g.variant.Height + 2
}

// layoutSize is the smallest screen that fits HUD, board, message and hint.
func (g *Session) layoutSize() (int, int) {
	bw, bh := g.boardSize()
	w := max(bw, len(hintText), len(g.titleLine()))
	h := hudHeight + bh + 3
	return w, h
}

func bannerSize() (int, int) {
	w := 0
	for _, l := range bannerLines {
		w = max(w, len(l))
	}
	return w + 4, len(bannerLines) + 2
}

func (g *Session) titleLine() string {
	return fmt.Sprintf("2048 - %s", g.variant.Title)
}

// Render draws the session to the screen.
func (g *Session) Render(dst *core.Screen) {
	dst.Clear()
	if g.state == nil {
		return
	}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	_, layoutH := g.layoutSize()
	y := 0
	if g.banner {
		bw, bh := bannerSize()
		if dst.Height() >= layoutH+bh && dst.Width() >= bw {
			g.renderBanner(dst, y)
			y += bh
		}
	}

	g.renderHUD(dst, y)
	y += hudHeight

	bw, bh := g.boardSize()
	boardX := (dst.Width() - bw) / 2
	g.renderBoard(dst, boardX, y)
	y += bh + 1

	g.renderMessage(dst, y)
	dst.DrawTextCentered(y+1, hintText, core.ColorHint)

	if legend := strings.Join(Legend(), " "); dst.Width() >= len(legend) {
		dst.DrawTextCentered(y+2, legend, core.ColorHint)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Session) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorHint)
}

func (g *Session) renderBanner(dst *core.Screen, y int) {
	bw, bh := bannerSize()
	box := core.NewRect((dst.Width()-bw)/2, y, bw, bh)
	dst.FillRect(box, ' ')
	dst.DrawBox(box, core.ColorFrame)
	for i, line := range bannerLines {
		x := box.X + (bw-len(line))/2
		dst.DrawText(x, y+1+i, line)
	}
}

// renderHUD draws the title and the move counter.
func (g *Session) renderHUD(dst *core.Screen, y int) {
	dst.DrawTextCentered(y, g.titleLine(), core.ColorDefault)
	status := fmt.Sprintf("Moves: %d  Max: %d", g.moves, g.state.MaxTile())
	dst.DrawTextCentered(y+1, status, core.ColorHint)
}

// renderBoard draws the framed grid, one glyph per cell.
func (g *Session) renderBoard(dst *core.Screen, x, y int) {
	bw, bh := g.boardSize()
	dst.DrawBox(core.NewRect(x, y, bw, bh), core.ColorFrame)

	for r, row := range g.state.Rows() {
		for c, cell := range row {
			ch, color := Glyph(cell)
			dst.SetColored(x+2+2*c, y+1+r, ch, color)
		}
	}
}

// renderMessage draws the end-of-game line.
func (g *Session) renderMessage(dst *core.Screen, y int) {
	switch g.outcome {
	case core.OutcomeWon:
		dst.DrawTextCentered(y, "You reached 2048! r: new game", core.ColorWin)
	case core.OutcomeLost:
		dst.DrawTextCentered(y, "No moves left. r: new game", core.ColorLose)
	case core.OutcomeAborted:
		dst.DrawTextCentered(y, "Session aborted", core.ColorLose)
	}
}
