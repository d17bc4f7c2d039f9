package game

import "github.com/cameroncuttingedge/tictactoe_ai/board"

// State is the full game snapshot returned to the caller after every call.
type State struct {
	PlayerSymbol board.Cell    `json:"player_symbol"`
	YourTurn     bool          `json:"your_turn"`
	Board        board.Board   `json:"board"`
	AIMove       *int          `json:"ai_move"`
	Result       board.Outcome `json:"result"`
	Depth        int           `json:"depth"`
	AIEnabled    bool          `json:"ai_enabled"`
	Mode         Mode          `json:"mode"`
	MoveHistory  []int         `json:"move_history"`
}

func newState(human board.Cell, yourTurn bool, b board.Board, aiMove *int, cfg Config, h *history) State {
	return State{
		PlayerSymbol: human,
		YourTurn:     yourTurn,
		Board:        b,
		AIMove:       aiMove,
		Result:       b.Winner(),
		Depth:        min(cfg.Depth, len(b.AvailableMoves())),
		AIEnabled:    cfg.AIEnabled,
		Mode:         cfg.Mode,
		MoveHistory:  h.snapshot(),
	}
}

// NewGameRequest is the wire form of a new game.
type NewGameRequest struct {
	Mode   Mode `json:"mode"`
	AIMode bool `json:"ai_mode"`
	Depth  *int `json:"depth"`
}

// Config fills in DefaultDepth when no depth was sent.
func (r NewGameRequest) Config() Config {
	depth := DefaultDepth
	if r.Depth != nil {
		depth = *r.Depth
	}
	return Config{Mode: r.Mode, AIEnabled: r.AIMode, Depth: depth}
}

// MoveRequest is the wire form of a human move.
type MoveRequest struct {
	Board        []board.Cell `json:"board"`
	PlayerMove   *int         `json:"player_move"`
	PlayerSymbol board.Cell   `json:"player_symbol"`
	AIEnabled    bool         `json:"ai_enabled"`
	Depth        int          `json:"depth"`
	Mode         Mode         `json:"mode"`
	MoveHistory  []int        `json:"move_history"`
}

func (r MoveRequest) Move() (Move, error) {
	b, err := board.FromSlice(r.Board)
	if err != nil {
		return Move{}, err
	}
	if r.PlayerMove == nil {
		return Move{}, ErrInvalidMove
	}
	return Move{
		Board:        b,
		Index:        *r.PlayerMove,
		PlayerSymbol: r.PlayerSymbol,
		Config:       Config{Mode: r.Mode, AIEnabled: r.AIEnabled, Depth: r.Depth},
		History:      r.MoveHistory,
	}, nil
}
