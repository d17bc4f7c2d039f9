package ai

import (
	"testing"

	"github.com/cameroncuttingedge/tictactoe_ai/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) board.Board {
	t.Helper()
	b, err := board.Parse(s)
	require.NoError(t, err)
	return b
}

func TestEvaluateTerminalScores(t *testing.T) {
	won := mustParse(t, "OOO"+"XX-"+"X--")
	assert.Equal(t, WinScore, Evaluate(&won, board.O, 5, true))
	assert.Equal(t, LossScore, Evaluate(&won, board.X, 5, true))

	draw := mustParse(t, "XOX"+"XOO"+"OXX")
	assert.Equal(t, 0, Evaluate(&draw, board.O, 5, true))
}

func TestEvaluateHorizon(t *testing.T) {
	// O wins at 2 if it gets to move, but depth 0 stops before looking
	b := mustParse(t, "OO-"+"XX-"+"X--")
	assert.Equal(t, 0, Evaluate(&b, board.O, 0, true))
	assert.Equal(t, WinScore, Evaluate(&b, board.O, 1, true))
}

func TestEvaluateMinimizingSide(t *testing.T) {
	// X to move and X completes the middle row
	b := mustParse(t, "OO-"+"XX-"+"---")
	assert.Equal(t, LossScore, Evaluate(&b, board.O, 1, false))
}

func TestEvaluateForcedWin(t *testing.T) {
	// X to move: 6 threatens both 2 and 3
	b := mustParse(t, "XO-"+"-X-"+"--O")
	assert.Equal(t, WinScore, Evaluate(&b, board.X, 9, true))
	assert.Equal(t, WinScore, Evaluate(&b, board.X, 3, true))
	assert.Equal(t, 0, Evaluate(&b, board.X, 2, true))
}

func TestEvaluatePreservesBoard(t *testing.T) {
	boards := []string{
		"----X----",
		"X-O-X-O--",
		"XOX-O----",
	}
	for _, s := range boards {
		b := mustParse(t, s)
		before := b
		for depth := -1; depth <= 9; depth++ {
			Evaluate(&b, board.O, depth, true)
			Evaluate(&b, board.X, depth, false)
			require.Equal(t, before, b, "board %s depth %d", s, depth)
		}
	}
}

func TestEvaluateNegativeDepthSearchesToEnd(t *testing.T) {
	b := mustParse(t, "XO-"+"-X-"+"--O")
	assert.Equal(t, WinScore, Evaluate(&b, board.X, -1, true))
}
