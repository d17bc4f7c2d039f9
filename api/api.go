package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cameroncuttingedge/tictactoe_ai/game"
	"github.com/cameroncuttingedge/tictactoe_ai/metrics"
	"github.com/cameroncuttingedge/tictactoe_ai/websocket"
	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

const requestIDHeader = "X-Request-ID"

type server struct {
	games        *game.Service
	defaultDepth int
}

// NewRouter wires the game routes behind request logging, panic recovery
// and CORS for the given origins.
func NewRouter(games *game.Service, defaultDepth int, origins []string) http.Handler {
	s := &server{games: games, defaultDepth: defaultDepth}

	r := mux.NewRouter()
	r.HandleFunc("/new_game", s.newGameHandler).Methods("POST")
	r.HandleFunc("/make_move", s.makeMoveHandler).Methods("POST")
	r.HandleFunc("/healthz", healthHandler).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")
	r.Handle("/ws/play", websocket.NewPlayHandler(games, defaultDepth, origins))
	r.Use(requestLogger)

	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowCredentials(),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", requestIDHeader}),
	)
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(cors(r))
}

func (s *server) newGameHandler(w http.ResponseWriter, r *http.Request) {
	var req game.NewGameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cfg := req.Config()
	if req.Depth == nil {
		cfg.Depth = s.defaultDepth
	}
	state, err := s.games.StartGame(cfg)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *server) makeMoveHandler(w http.ResponseWriter, r *http.Request) {
	var req game.MoveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	move, err := req.Move()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	state, err := s.games.ApplyMove(move)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

var errEmptyBody = errors.New("request body is required")

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return errEmptyBody
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.New("error decoding JSON: " + err.Error())
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		m := httpsnoop.CaptureMetrics(next, w, r)
		log.Info().
			Str("requestID", id).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", m.Code).
			Dur("duration", m.Duration).
			Msg("Handled request")
	})
}
