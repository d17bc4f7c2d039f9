package ai

import (
	"math"
	"runtime"

	"github.com/cameroncuttingedge/tictactoe_ai/board"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	// Below this depth the selector usually skips the search and plays at random.
	ExploreBelowDepth  = 3
	ExploreProbability = 0.7

	// Noise for a root candidate is drawn from [depth-NoiseSpan, 0], so it
	// shrinks as the configured depth grows.
	NoiseSpan = 5
)

// Selector picks the computer's move: minimax over every root candidate,
// each score offset by random noise.
type Selector struct {
	Source Source
	// Parallel scores root candidates concurrently, one board copy per candidate.
	Parallel bool
}

func NewSelector(src Source) *Selector {
	if src == nil {
		src = Global
	}
	return &Selector{Source: src}
}

// SelectMove returns the index aiSymbol should play. ok is false when the
// board is already won or has no empty cell; no move should be placed then.
func (s *Selector) SelectMove(b board.Board, aiSymbol board.Cell, depth int) (move int, ok bool) {
	if b.Winner().Decided() {
		return 0, false
	}
	moves := b.AvailableMoves()
	if len(moves) == 0 {
		return 0, false
	}

	if depth < ExploreBelowDepth && s.Source.Float64() < ExploreProbability {
		move = moves[s.Source.IntN(len(moves))]
		log.Debug().
			Str("aiSymbol", string(aiSymbol)).
			Int("depth", depth).
			Int("move", move).
			Bool("explored", true).
			Msg("Selected AI move")
		return move, true
	}

	// Noise is drawn up front, in candidate order, so a seeded source gives
	// the same result whether or not the search runs in parallel.
	noise := make([]float64, len(moves))
	for i := range moves {
		noise[i] = float64(depth-NoiseSpan) * s.Source.Float64()
	}

	var scores []int
	if s.Parallel {
		scores = scoreParallel(b, aiSymbol, depth, moves)
	} else {
		scores = scoreSequential(&b, aiSymbol, depth, moves)
	}

	move, best := -1, math.Inf(-1)
	for i, m := range moves {
		if v := float64(scores[i]) + noise[i]; v > best {
			move, best = m, v
		}
	}
	if move < 0 {
		return 0, false
	}

	log.Debug().
		Str("aiSymbol", string(aiSymbol)).
		Int("depth", depth).
		Int("move", move).
		Float64("score", best).
		Bool("explored", false).
		Msg("Selected AI move")
	return move, true
}

func scoreSequential(b *board.Board, aiSymbol board.Cell, depth int, moves []int) []int {
	scores := make([]int, len(moves))
	for i, m := range moves {
		b[m] = aiSymbol
		scores[i] = Evaluate(b, aiSymbol, depth-1, false)
		b[m] = board.Empty
	}
	return scores
}

func scoreParallel(b board.Board, aiSymbol board.Cell, depth int, moves []int) []int {
	scores := make([]int, len(moves))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, m := range moves {
		g.Go(func() error {
			branch := b
			branch[m] = aiSymbol
			scores[i] = Evaluate(&branch, aiSymbol, depth-1, false)
			return nil
		})
	}
	_ = g.Wait()
	return scores
}
