package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/cameroncuttingedge/tictactoe_ai/ai"
	"github.com/cameroncuttingedge/tictactoe_ai/board"
	"github.com/cameroncuttingedge/tictactoe_ai/events"
	"github.com/rs/zerolog/log"
)

type Mode string

const (
	Classic Mode = "classic"
	Decay   Mode = "decay"
)

const (
	DefaultDepth = 5
	// HistoryLimit is how many placed pieces survive in decay mode.
	HistoryLimit = 6
)

var (
	ErrInvalidMode    = errors.New("mode must be classic or decay")
	ErrInvalidDepth   = errors.New("depth must not be negative")
	ErrInvalidMove    = errors.New("move index must be in [0,8]")
	ErrInvalidSymbol  = errors.New("player symbol must be X or O")
	ErrInvalidHistory = errors.New("invalid move history")
)

// Config is fixed for the life of a game; the caller echoes it on every move.
type Config struct {
	Mode      Mode
	AIEnabled bool
	Depth     int
}

func (c Config) Validate() error {
	if c.Mode != Classic && c.Mode != Decay {
		return fmt.Errorf("%w: %q", ErrInvalidMode, string(c.Mode))
	}
	if c.Depth < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDepth, c.Depth)
	}
	return nil
}

// MoveSelector picks the computer's reply; ok is false when there is none.
type MoveSelector interface {
	SelectMove(b board.Board, aiSymbol board.Cell, depth int) (move int, ok bool)
}

// Service runs the per-request game flow. It keeps no game state between
// calls, so one Service can serve concurrent requests as long as its
// selector and source can.
type Service struct {
	selector MoveSelector
	source   ai.Source
}

func NewService(selector MoveSelector, src ai.Source) *Service {
	if src == nil {
		src = ai.Global
	}
	return &Service{selector: selector, source: src}
}

// StartGame assigns the human a random side and, when the computer holds X,
// plays its opening move before returning.
func (s *Service) StartGame(cfg Config) (State, error) {
	if err := cfg.Validate(); err != nil {
		return State{}, err
	}

	human := board.X
	if s.source.IntN(2) == 1 {
		human = board.O
	}

	var b board.Board
	h := newHistory(cfg.Mode, nil)
	var aiMove *int
	var elapsed time.Duration
	if cfg.AIEnabled && human == board.O {
		aiMove, elapsed = s.playAI(&b, board.X, cfg.Depth, h)
	}

	st := newState(human, true, b, aiMove, cfg, h)
	log.Info().
		Str("mode", string(cfg.Mode)).
		Bool("aiEnabled", cfg.AIEnabled).
		Str("playerSymbol", string(human)).
		Int("depth", st.Depth).
		Msg("Game started")
	events.Publish(events.GameEvent{
		Kind:      events.GameStarted,
		Mode:      string(cfg.Mode),
		AIEnabled: cfg.AIEnabled,
		Result:    string(st.Result),
		AIMove:    aiMove,
		AIElapsed: elapsed,
	})
	return st, nil
}

// Move is a human move against a caller-supplied board.
type Move struct {
	Board        board.Board
	Index        int
	PlayerSymbol board.Cell
	Config       Config
	// History is only read in decay mode.
	History []int
}

func (m Move) Validate() error {
	if err := m.Config.Validate(); err != nil {
		return err
	}
	if m.Index < 0 || m.Index >= board.Size {
		return fmt.Errorf("%w: %d", ErrInvalidMove, m.Index)
	}
	if m.PlayerSymbol != board.X && m.PlayerSymbol != board.O {
		return fmt.Errorf("%w: %q", ErrInvalidSymbol, string(m.PlayerSymbol))
	}
	if m.Config.Mode != Decay {
		return nil
	}
	if len(m.History) > HistoryLimit {
		return fmt.Errorf("%w: %d entries, at most %d", ErrInvalidHistory, len(m.History), HistoryLimit)
	}
	for _, idx := range m.History {
		if idx < 0 || idx >= board.Size {
			return fmt.Errorf("%w: index %d", ErrInvalidHistory, idx)
		}
	}
	return nil
}

// ApplyMove places the human move and, if the game goes on and the computer
// plays, its reply. A move onto an occupied cell, or onto a board that is
// already won, is answered with the unchanged state.
func (s *Service) ApplyMove(m Move) (State, error) {
	if err := m.Validate(); err != nil {
		return State{}, err
	}
	cfg := m.Config

	if m.Board[m.Index] != board.Empty {
		return s.reject(m, true, "cell occupied"), nil
	}
	if m.Board.Winner().Decided() {
		return s.reject(m, false, "game already won"), nil
	}

	b := m.Board
	h := newHistory(cfg.Mode, m.History)
	b[m.Index] = m.PlayerSymbol
	h.record(&b, m.Index)

	var aiMove *int
	var elapsed time.Duration
	if b.Winner() == board.InProgress && cfg.AIEnabled {
		aiMove, elapsed = s.playAI(&b, m.PlayerSymbol.Opponent(), cfg.Depth, h)
	}

	st := newState(m.PlayerSymbol, b.Winner() == board.InProgress, b, aiMove, cfg, h)
	events.Publish(events.GameEvent{
		Kind:      events.MoveApplied,
		Mode:      string(cfg.Mode),
		AIEnabled: cfg.AIEnabled,
		Result:    string(st.Result),
		AIMove:    aiMove,
		AIElapsed: elapsed,
	})
	return st, nil
}

func (s *Service) playAI(b *board.Board, aiSymbol board.Cell, depth int, h *history) (*int, time.Duration) {
	start := time.Now()
	move, ok := s.selector.SelectMove(*b, aiSymbol, depth)
	elapsed := time.Since(start)
	if !ok {
		log.Warn().Str("aiSymbol", string(aiSymbol)).Msg("No AI move available")
		return nil, elapsed
	}
	b[move] = aiSymbol
	h.record(b, move)
	return &move, elapsed
}

func (s *Service) reject(m Move, yourTurn bool, reason string) State {
	history := []int{}
	if m.Config.Mode == Decay {
		history = append(history, m.History...)
	}
	st := State{
		PlayerSymbol: m.PlayerSymbol,
		YourTurn:     yourTurn,
		Board:        m.Board,
		Result:       m.Board.Winner(),
		Depth:        m.Config.Depth,
		AIEnabled:    m.Config.AIEnabled,
		Mode:         m.Config.Mode,
		MoveHistory:  history,
	}
	log.Debug().Int("move", m.Index).Str("reason", reason).Msg("Move rejected")
	events.Publish(events.GameEvent{
		Kind:      events.MoveRejected,
		Mode:      string(m.Config.Mode),
		AIEnabled: m.Config.AIEnabled,
		Result:    string(st.Result),
	})
	return st
}
