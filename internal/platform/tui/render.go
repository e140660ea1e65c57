package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/go2048/internal/game"
)

const tileWidth = 7 // fits 131072 with a space on each side

// tileColors maps a rank to its background; ranks past the end reuse the last.
var tileColors = []lipgloss.Color{
	"237", // empty
	"255", // 2
	"223", // 4
	"215", // 8
	"209", // 16
	"203", // 32
	"196", // 64
	"229", // 128
	"228", // 256
	"227", // 512
	"220", // 1024
	"214", // 2048
	"57",  // 4096 and up
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	hudStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	rewardStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	gameOverStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("1")).
			Padding(0, 1)

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// tileStyle returns the style used for a tile of the given rank. A fresh
// tile (the one just spawned) is drawn bold and underlined.
func tileStyle(rank int, fresh bool) lipgloss.Style {
	idx := min(rank, len(tileColors)-1)
	fg := lipgloss.Color("232")
	if rank >= 6 {
		fg = lipgloss.Color("15")
	}
	return lipgloss.NewStyle().
		Width(tileWidth).
		Align(lipgloss.Center).
		Foreground(fg).
		Background(tileColors[idx]).
		Bold(fresh).
		Underline(fresh)
}

// renderTile draws a single tile; empty cells show a dot.
func renderTile(rank int, fresh bool) string {
	label := "·"
	if rank > 0 {
		label = strconv.Itoa(game.TileValue(rank))
	}
	return tileStyle(rank, fresh).Render(label)
}

// RenderBoard draws the board as a grid of colored tiles, highlighting
// the fresh cell if one is given.
func RenderBoard(b game.Board, fresh *game.Cell) string {
	rows := make([]string, 0, game.BoardSize)
	for r := range game.BoardSize {
		cells := make([]string, game.BoardSize)
		for c := range game.BoardSize {
			isFresh := fresh != nil && *fresh == (game.Cell{Row: r, Col: c})
			cells[c] = renderTile(b[r][c], isFresh)
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return boardStyle.Render(strings.Join(rows, "\n\n"))
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
