package ai

import (
	"math"

	"github.com/cameroncuttingedge/tictactoe_ai/board"
)

const (
	WinScore  = 10
	LossScore = -10
)

// Evaluate scores b from aiSymbol's point of view with plain minimax,
// looking at most depth plies ahead. A depth of zero is the horizon and
// scores neutral; a negative depth never reaches it, so the search runs to
// the end of the game.
//
// Moves are placed on b and retracted before returning, so b is unchanged
// once Evaluate returns. b must not be shared with another goroutine while
// the search runs.
func Evaluate(b *board.Board, aiSymbol board.Cell, depth int, maximizing bool) int {
	opponent := aiSymbol.Opponent()

	outcome := b.Winner()
	switch {
	case outcome.Side() == aiSymbol && aiSymbol != board.Empty:
		return WinScore
	case outcome.Side() == opponent && opponent != board.Empty:
		return LossScore
	case outcome == board.Draw || depth == 0:
		return 0
	}

	mover := opponent
	best := math.MaxInt
	if maximizing {
		mover = aiSymbol
		best = math.MinInt
	}

	for _, i := range b.AvailableMoves() {
		b[i] = mover
		score := Evaluate(b, aiSymbol, depth-1, !maximizing)
		b[i] = board.Empty

		if maximizing && score > best || !maximizing && score < best {
			best = score
		}
	}
	return best
}
