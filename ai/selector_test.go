package ai

import (
	"testing"

	"github.com/cameroncuttingedge/tictactoe_ai/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constSource always returns the same values. A zero float disables noise.
type constSource struct {
	f float64
	n int
}

func (s constSource) Float64() float64 { return s.f }
func (s constSource) IntN(n int) int   { return s.n % n }

// seqSource replays floats in order and records every IntN bound it is asked for.
type seqSource struct {
	floats []float64
	pos    int
	bounds []int
}

func (s *seqSource) Float64() float64 {
	f := s.floats[s.pos%len(s.floats)]
	s.pos++
	return f
}

func (s *seqSource) IntN(n int) int {
	s.bounds = append(s.bounds, n)
	return n - 1
}

func noiseless() *Selector { return NewSelector(constSource{}) }

func TestSelectMoveDecidedBoard(t *testing.T) {
	b := mustParse(t, "XXX"+"OO-"+"---")
	_, ok := noiseless().SelectMove(b, board.O, 9)
	assert.False(t, ok)

	_, ok = noiseless().SelectMove(b, board.X, 9)
	assert.False(t, ok)
}

func TestSelectMoveFullBoard(t *testing.T) {
	b := mustParse(t, "XOX"+"XOO"+"OXX")
	_, ok := noiseless().SelectMove(b, board.O, 9)
	assert.False(t, ok)
}

func TestSelectMoveTakesWin(t *testing.T) {
	b := mustParse(t, "OO-"+"XX-"+"X--")
	move, ok := noiseless().SelectMove(b, board.O, 9)
	require.True(t, ok)
	assert.Equal(t, 2, move)
}

func TestSelectMoveBlocksLoss(t *testing.T) {
	// X threatens 2; O has nothing better than blocking
	b := mustParse(t, "XX-"+"-O-"+"---")
	move, ok := noiseless().SelectMove(b, board.O, 9)
	require.True(t, ok)
	assert.Equal(t, 2, move)
}

func TestSelectMoveCenterOpening(t *testing.T) {
	b := mustParse(t, "----X----")
	move, ok := noiseless().SelectMove(b, board.O, 9)
	require.True(t, ok)
	assert.Contains(t, []int{0, 2, 6, 8}, move, "edge replies to a center opening lose")
	assert.Equal(t, 0, move, "equal scores keep the first candidate")

	after := b
	after[move] = board.O
	assert.Equal(t, 0, Evaluate(&after, board.O, 8, false), "reply must hold the draw")
}

func TestSelectMoveExploresAtShallowDepth(t *testing.T) {
	b := mustParse(t, "X-O"+"---"+"---")
	src := &seqSource{floats: []float64{0.5}}
	move, ok := NewSelector(src).SelectMove(b, board.X, 2)
	require.True(t, ok)

	// one draw for the exploration roll, one IntN over the 7 empty cells
	assert.Equal(t, 1, src.pos)
	assert.Equal(t, []int{7}, src.bounds)
	assert.Equal(t, 8, move)
}

func TestSelectMoveShallowDepthCanSearch(t *testing.T) {
	b := mustParse(t, "OO-"+"XX-"+"X--")
	src := &seqSource{floats: []float64{0.9, 0, 0, 0, 0}}
	move, ok := NewSelector(src).SelectMove(b, board.O, 2)
	require.True(t, ok)
	assert.Equal(t, 2, move)
	assert.Empty(t, src.bounds)
	// exploration roll plus one noise draw per empty cell
	assert.Equal(t, 5, src.pos)
}

func TestSelectMoveNoiseStaysWithinSpan(t *testing.T) {
	// At depth 3 noise spans [-2, 0]. Cell 2 wins outright and every other
	// cell lets X complete the diagonal.
	b := mustParse(t, "OO-"+"XX-"+"X--")
	src := &seqSource{floats: []float64{0, 0, 0, 0}}
	move, ok := NewSelector(src).SelectMove(b, board.O, 3)
	require.True(t, ok)
	assert.Equal(t, 2, move)

	// the largest noise on the winning cell still leaves it far ahead
	src = &seqSource{floats: []float64{0.99, 0, 0, 0}}
	move, ok = NewSelector(src).SelectMove(b, board.O, 3)
	require.True(t, ok)
	assert.Equal(t, 2, move)
}

func TestSelectMoveCornerOpening(t *testing.T) {
	// the center is the only reply to a corner that does not lose
	b := mustParse(t, "X--------")
	move, ok := noiseless().SelectMove(b, board.O, 9)
	require.True(t, ok)
	assert.Equal(t, 4, move)
}

func TestSelectMoveParallelMatchesSequential(t *testing.T) {
	boards := []string{"----X----", "X-O-X----", "XO--X---O", "X--------"}
	for _, s := range boards {
		b := mustParse(t, s)
		for _, sym := range []board.Cell{board.X, board.O} {
			seq, okSeq := NewSelector(NewSeeded(42)).SelectMove(b, sym, 6)
			par := NewSelector(NewSeeded(42))
			par.Parallel = true
			got, okPar := par.SelectMove(b, sym, 6)
			require.Equal(t, okSeq, okPar)
			assert.Equal(t, seq, got, "board %s symbol %s", s, sym)
		}
	}
}

func TestSelectMoveDoesNotMutateCaller(t *testing.T) {
	b := mustParse(t, "X-O-X----")
	before := b
	_, _ = noiseless().SelectMove(b, board.O, 9)
	assert.Equal(t, before, b)
}

// playAll lets the opponent try every legal move while the selector answers
// for aiSymbol, and fails if the opponent ever wins.
func playAll(t *testing.T, s *Selector, b board.Board, aiSymbol board.Cell, aiToMove bool) {
	t.Helper()
	switch b.Winner() {
	case board.Draw:
		return
	case board.InProgress:
	default:
		require.Equal(t, aiSymbol, b.Winner().Side(), "opponent won on\n%s", b)
		return
	}

	if aiToMove {
		move, ok := s.SelectMove(b, aiSymbol, 9)
		require.True(t, ok)
		b[move] = aiSymbol
		playAll(t, s, b, aiSymbol, false)
		return
	}
	for _, m := range b.AvailableMoves() {
		next := b
		next[m] = aiSymbol.Opponent()
		playAll(t, s, next, aiSymbol, true)
	}
}

func TestSelectMoveNeverLosesAtFullDepth(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive game tree")
	}
	s := noiseless()
	t.Run("second", func(t *testing.T) {
		playAll(t, s, board.Board{}, board.O, false)
	})
	t.Run("first", func(t *testing.T) {
		playAll(t, s, board.Board{}, board.X, true)
	})
}
