// Package game implements the 2048 rules engine: a 4x4 grid of tile ranks
// with move actions, scoring, random tile spawning and undo/redo history.
package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// BoardSize is the board dimension.
const BoardSize = 4

// ErrInvalidBoard is returned for boards that are not 4x4 or hold negative ranks.
var ErrInvalidBoard = errors.New("game: invalid board")

// Board holds tile ranks. Rank 0 is an empty cell, rank r > 0 is a tile
// whose displayed value is 2^r.
type Board [BoardSize][BoardSize]int

// Cell is a board coordinate.
type Cell struct {
	Row, Col int
}

// BoardFromRows builds a Board from a row-major slice of ranks.
func BoardFromRows(rows [][]int) (Board, error) {
	var b Board
	if len(rows) != BoardSize {
		return b, fmt.Errorf("%w: %d rows, want %d", ErrInvalidBoard, len(rows), BoardSize)
	}
	for r, row := range rows {
		if len(row) != BoardSize {
			return b, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoard, r, len(row), BoardSize)
		}
		copy(b[r][:], row)
	}
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// ParseBoard reads the compact form written by Encode: ranks row by row,
// rows separated by '/' and cells by ','. For example
// "1,1,0,0/0,0,0,0/0,0,2,0/0,0,0,0".
func ParseBoard(s string) (Board, error) {
	var rows [][]int
	for _, line := range strings.Split(s, "/") {
		var row []int
		for _, cell := range strings.Split(line, ",") {
			v, err := strconv.Atoi(strings.TrimSpace(cell))
			if err != nil {
				return Board{}, fmt.Errorf("%w: %v", ErrInvalidBoard, err)
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return BoardFromRows(rows)
}

// Encode returns the compact form read by ParseBoard.
func (b Board) Encode() string {
	rows := make([]string, BoardSize)
	for r := range BoardSize {
		cells := make([]string, BoardSize)
		for c := range BoardSize {
			cells[c] = strconv.Itoa(b[r][c])
		}
		rows[r] = strings.Join(cells, ",")
	}
	return strings.Join(rows, "/")
}

// Validate reports an error if any cell holds a negative rank.
func (b Board) Validate() error {
	for r := range BoardSize {
		for c := range BoardSize {
			if b[r][c] < 0 {
				return fmt.Errorf("%w: cell (%d,%d) has rank %d", ErrInvalidBoard, r, c, b[r][c])
			}
		}
	}
	return nil
}

// Value returns the displayed tile value at (row, col), 0 for empty cells.
func (b Board) Value(row, col int) int {
	return TileValue(b[row][col])
}

// TileValue converts a rank to its displayed value.
func TileValue(rank int) int {
	if rank <= 0 {
		return 0
	}
	return 1 << rank
}

// EmptyCells returns all empty cells in row-major order.
func (b Board) EmptyCells() []Cell {
	var cells []Cell
	for r := range BoardSize {
		for c := range BoardSize {
			if b[r][c] == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// TileCount returns the number of non-empty cells.
func (b Board) TileCount() int {
	n := 0
	for r := range BoardSize {
		for c := range BoardSize {
			if b[r][c] != 0 {
				n++
			}
		}
	}
	return n
}

// MaxRank returns the highest rank on the board.
func (b Board) MaxRank() int {
	maxRank := 0
	for r := range BoardSize {
		for c := range BoardSize {
			maxRank = max(maxRank, b[r][c])
		}
	}
	return maxRank
}

// MaxTile returns the highest displayed value on the board.
func (b Board) MaxTile() int {
	return TileValue(b.MaxRank())
}

// Rotate turns the board k quarter turns counter-clockwise.
// Negative k turns clockwise; Rotate(Rotate(b, k), -k) == b.
func Rotate(b Board, k int) Board {
	k = ((k % 4) + 4) % 4
	for range k {
		var out Board
		for r := range BoardSize {
			for c := range BoardSize {
				out[r][c] = b[c][BoardSize-1-r]
			}
		}
		b = out
	}
	return b
}

// String renders the board as a plain-text grid of displayed values.
func (b Board) String() string {
	sep := strings.Repeat("-", 25)

	var sb strings.Builder
	sb.WriteString(sep)
	sb.WriteByte('\n')
	for r := range BoardSize {
		sb.WriteByte('|')
		for c := range BoardSize {
			if c > 0 {
				sb.WriteByte('|')
			}
			if b[r][c] > 0 {
				fmt.Fprintf(&sb, "%5d", b.Value(r, c))
			} else {
				sb.WriteString("     ")
			}
		}
		sb.WriteString("|\n")
		sb.WriteString(sep)
		sb.WriteByte('\n')
	}
	return sb.String()
}
