package game

import "github.com/cameroncuttingedge/tictactoe_ai/board"

// history is the decay-mode queue of played indices, oldest first.
type history struct {
	enabled bool
	moves   []int
}

func newHistory(mode Mode, moves []int) *history {
	h := &history{enabled: mode == Decay}
	if h.enabled {
		h.moves = append(make([]int, 0, HistoryLimit+1), moves...)
	}
	return h
}

// record appends idx and clears the oldest pieces from b once more than
// HistoryLimit are on it.
func (h *history) record(b *board.Board, idx int) {
	if !h.enabled {
		return
	}
	h.moves = append(h.moves, idx)
	for len(h.moves) > HistoryLimit {
		b[h.moves[0]] = board.Empty
		h.moves = h.moves[1:]
	}
}

func (h *history) snapshot() []int {
	out := make([]int, len(h.moves))
	copy(out, h.moves)
	return out
}
