package events

import (
	"time"

	"github.com/rs/zerolog/log"
)

type Kind string

const (
	GameStarted  Kind = "game_started"
	MoveApplied  Kind = "move_applied"
	MoveRejected Kind = "move_rejected"
)

type GameEvent struct {
	Kind      Kind          `json:"kind"`
	Mode      string        `json:"mode"`
	AIEnabled bool          `json:"aiEnabled"`
	Result    string        `json:"result"`
	AIMove    *int          `json:"aiMove,omitempty"`
	AIElapsed time.Duration `json:"aiElapsed"`
}

var EventChannel = make(chan GameEvent, 100)

// Publish never blocks the caller; events are dropped when the channel is full.
func Publish(e GameEvent) {
	select {
	case EventChannel <- e:
	default:
		log.Warn().Str("kind", string(e.Kind)).Msg("Event channel full, dropping game event")
	}
}

func StartEventListening(handle func(GameEvent)) {
	log.Info().Msg("Event listener starting...")
	go func() {
		for e := range EventChannel {
			handle(e)
		}
		log.Info().Msg("Event listener goroutine exited.")
	}()
}
