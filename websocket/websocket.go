package websocket

import (
	"encoding/json"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/cameroncuttingedge/tictactoe_ai/game"
	"github.com/cameroncuttingedge/tictactoe_ai/metrics"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Frame types accepted on and sent from the play socket.
const (
	FrameNewGame  = "new_game"
	FrameMakeMove = "make_move"
	FrameState    = "state"
	FrameError    = "error"
)

// Request is one inbound frame. Payload holds a game.NewGameRequest or a
// game.MoveRequest depending on Type.
type Request struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type Response struct {
	Type   string      `json:"type"`
	State  *game.State `json:"state,omitempty"`
	Detail string      `json:"detail,omitempty"`
}

var (
	connections = make(map[*websocket.Conn]struct{})
	lock        sync.Mutex
)

// NewPlayHandler upgrades to a websocket on which every frame is answered
// independently; the connection carries no game state.
func NewPlayHandler(games *game.Service, defaultDepth int, origins []string) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(origins, origin)
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error().Err(err).Msg("WebSocket upgrade error")
			return
		}
		registerConnection(conn)
		defer deregisterConnection(conn)

		for {
			var req Request
			if err := conn.ReadJSON(&req); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Error().Err(err).Msg("WebSocket closed unexpectedly")
				}
				return
			}
			if err := conn.WriteJSON(handleFrame(games, defaultDepth, req)); err != nil {
				log.Error().Err(err).Msg("Error sending game state")
				return
			}
		}
	}
}

func handleFrame(games *game.Service, defaultDepth int, req Request) Response {
	var (
		state game.State
		err   error
	)
	switch req.Type {
	case FrameNewGame:
		var ng game.NewGameRequest
		if err = json.Unmarshal(req.Payload, &ng); err != nil {
			break
		}
		cfg := ng.Config()
		if ng.Depth == nil {
			cfg.Depth = defaultDepth
		}
		state, err = games.StartGame(cfg)
	case FrameMakeMove:
		var mr game.MoveRequest
		if err = json.Unmarshal(req.Payload, &mr); err != nil {
			break
		}
		var move game.Move
		if move, err = mr.Move(); err != nil {
			break
		}
		state, err = games.ApplyMove(move)
	default:
		return Response{Type: FrameError, Detail: "unknown frame type " + req.Type}
	}
	if err != nil {
		return Response{Type: FrameError, Detail: err.Error()}
	}
	return Response{Type: FrameState, State: &state}
}

func registerConnection(conn *websocket.Conn) {
	lock.Lock()
	defer lock.Unlock()
	connections[conn] = struct{}{}
	metrics.OpenConnections.Inc()
	log.Info().Str("remote", conn.RemoteAddr().String()).Int("connectionsCount", len(connections)).Msg("WebSocket connection registered")
}

func deregisterConnection(conn *websocket.Conn) {
	lock.Lock()
	defer lock.Unlock()
	if _, ok := connections[conn]; !ok {
		return
	}
	delete(connections, conn)
	conn.Close()
	metrics.OpenConnections.Dec()
	log.Info().Int("remainingConnections", len(connections)).Msg("WebSocket connection deregistered")
}

// CloseAll sends a going-away close frame to every open connection, used on shutdown.
func CloseAll() {
	lock.Lock()
	conns := make([]*websocket.Conn, 0, len(connections))
	for c := range connections {
		conns = append(conns, c)
	}
	lock.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	deadline := time.Now().Add(time.Second)
	for _, c := range conns {
		if err := c.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
			log.Error().Err(err).Msg("Failed to send close frame")
		}
		deregisterConnection(c)
	}
}
