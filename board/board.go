package board

import (
	"errors"
	"fmt"
	"strings"
)

type Cell string

const (
	Empty Cell = ""
	X     Cell = "X"
	O     Cell = "O"
)

// Opponent returns the other side. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case X:
		return O
	case O:
		return X
	}
	return Empty
}

func (c Cell) Valid() bool {
	return c == Empty || c == X || c == O
}

// Outcome is always derived from a Board, never stored alongside it.
type Outcome string

const (
	InProgress Outcome = "in_progress"
	WinX       Outcome = "X"
	WinO       Outcome = "O"
	Draw       Outcome = "draw"
)

// Decided reports whether one side has completed a line.
func (o Outcome) Decided() bool {
	return o == WinX || o == WinO
}

// Side returns the winning symbol, or Empty when nobody has won.
func (o Outcome) Side() Cell {
	switch o {
	case WinX:
		return X
	case WinO:
		return O
	}
	return Empty
}

// Size is the number of cells on the board.
const Size = 9

type Board [Size]Cell

var (
	ErrInvalidLength = errors.New("board must have 9 cells")
	ErrInvalidCell   = errors.New("invalid cell value")
)

// Lines holds the rows, columns and diagonals in row-major indices.
var Lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// FromSlice copies cells into a Board, rejecting wrong lengths and unknown symbols.
func FromSlice(cells []Cell) (Board, error) {
	var b Board
	if len(cells) != Size {
		return b, fmt.Errorf("%w: got %d", ErrInvalidLength, len(cells))
	}
	for i, c := range cells {
		if !c.Valid() {
			return b, fmt.Errorf("%w %q at index %d", ErrInvalidCell, string(c), i)
		}
		b[i] = c
	}
	return b, nil
}

// Parse reads a 9 character board such as "XX..OO...". '.', '-', '_' and ' ' mean empty.
func Parse(s string) (Board, error) {
	var b Board
	if len(s) != Size {
		return b, fmt.Errorf("%w: got %d", ErrInvalidLength, len(s))
	}
	for i, r := range strings.ToUpper(s) {
		switch r {
		case 'X':
			b[i] = X
		case 'O':
			b[i] = O
		case '.', '-', '_', ' ':
			b[i] = Empty
		default:
			return b, fmt.Errorf("%w %q at index %d", ErrInvalidCell, r, i)
		}
	}
	return b, nil
}

// Winner checks lines before fullness, so a full board with a line is a win.
func (b Board) Winner() Outcome {
	for _, line := range Lines {
		a := b[line[0]]
		if a != Empty && a == b[line[1]] && a == b[line[2]] {
			if a == X {
				return WinX
			}
			return WinO
		}
	}
	if b.Full() {
		return Draw
	}
	return InProgress
}

func (b Board) Full() bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

// AvailableMoves returns the empty indices in ascending order.
func (b Board) AvailableMoves() []int {
	moves := make([]int, 0, Size)
	for i, c := range b {
		if c == Empty {
			moves = append(moves, i)
		}
	}
	return moves
}

// Slice returns the cells as a fresh slice, suitable for JSON.
func (b Board) Slice() []Cell {
	out := make([]Cell, Size)
	copy(out, b[:])
	return out
}

// String renders the board as three rows, '-' for empty cells.
func (b Board) String() string {
	var sb strings.Builder
	for i, c := range b {
		if c == Empty {
			sb.WriteString("-")
		} else {
			sb.WriteString(string(c))
		}
		if i%3 == 2 && i != Size-1 {
			sb.WriteString("\n")
		} else if i%3 != 2 {
			sb.WriteString(" ")
		}
	}
	return sb.String()
}
