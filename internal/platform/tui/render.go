package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/term2048/internal/core"
)

// colorStyles maps core.Color to lipgloss styles. Tile colors follow the
// classic 2048 palette.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:    lipgloss.NewStyle(),
	core.ColorFrame:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	core.ColorEmpty:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorTile2:      tileStyle("#EEE4DA"),
	core.ColorTile4:      tileStyle("#EDE0C8"),
	core.ColorTile8:      tileStyle("#F2B179"),
	core.ColorTile16:     tileStyle("#F59563"),
	core.ColorTile32:     tileStyle("#F67C5F"),
	core.ColorTile64:     tileStyle("#F65E3B"),
	core.ColorTile128:    tileStyle("#EDCF72"),
	core.ColorTile256:    tileStyle("#EDCC61"),
	core.ColorTile512:    tileStyle("#EDC85A"),
	core.ColorTile1024:   tileStyle("#EDC53F"),
	core.ColorTile2048:   tileStyle("#EDC22E"),
	core.ColorTileBeyond: tileStyle("#3C3A32"),
	core.ColorWin:        lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorLose:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorHint:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

func tileStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Bold(true)
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
