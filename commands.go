package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cameroncuttingedge/tictactoe_ai/ai"
	"github.com/cameroncuttingedge/tictactoe_ai/api"
	"github.com/cameroncuttingedge/tictactoe_ai/board"
	"github.com/cameroncuttingedge/tictactoe_ai/config"
	"github.com/cameroncuttingedge/tictactoe_ai/events"
	"github.com/cameroncuttingedge/tictactoe_ai/game"
	"github.com/cameroncuttingedge/tictactoe_ai/metrics"
	"github.com/cameroncuttingedge/tictactoe_ai/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	envFile    string
	boardFlag  string
	symbolFlag string
	depthFlag  int
	seedFlag   uint64
	parallel   bool
	showScores bool

	rootCmd = &cobra.Command{
		Use:           "tictactoe",
		Short:         "Tic-tac-toe move service with a minimax computer opponent",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and websocket API",
		RunE:  runServe,
	}

	moveCmd = &cobra.Command{
		Use:   "move",
		Short: "Pick the computer's move for a board and print it as JSON",
		Example: `  tictactoe move --board "XX..OO..." --symbol O --depth 9
  tictactoe move --board "----X----" --symbol O --depth 9 --seed 7 --scores`,
		RunE: runMove,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	moveCmd.Flags().StringVar(&boardFlag, "board", "---------", "9 cells in row-major order; X, O, or one of .-_ for empty")
	moveCmd.Flags().StringVar(&symbolFlag, "symbol", "O", "symbol the computer plays")
	moveCmd.Flags().IntVar(&depthFlag, "depth", game.DefaultDepth, "search depth in plies")
	moveCmd.Flags().Uint64Var(&seedFlag, "seed", 0, "seed for reproducible play; 0 uses the global source")
	moveCmd.Flags().BoolVar(&parallel, "parallel", false, "score root moves concurrently")
	moveCmd.Flags().BoolVar(&showScores, "scores", false, "also print the noiseless minimax score of every empty cell")

	rootCmd.AddCommand(serveCmd, moveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	closeLog := InitializeLogger(cfg)
	defer closeLog()

	events.StartEventListening(metrics.Record)

	selector := ai.NewSelector(ai.Global)
	selector.Parallel = cfg.ParallelSearch
	games := game.NewService(selector, ai.Global)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(games, cfg.DefaultDepth, cfg.Origins()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Strs("origins", cfg.Origins()).Msg("Starting App")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	websocket.CloseAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type moveOutput struct {
	Board   string      `json:"board"`
	Symbol  board.Cell  `json:"symbol"`
	Depth   int         `json:"depth"`
	Move    *int        `json:"move"`
	Outcome string      `json:"outcome"`
	Scores  map[int]int `json:"scores,omitempty"`
}

func runMove(cmd *cobra.Command, args []string) error {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	b, err := board.Parse(boardFlag)
	if err != nil {
		return err
	}
	sym := board.Cell(symbolFlag)
	if sym != board.X && sym != board.O {
		return fmt.Errorf("%w: %q", game.ErrInvalidSymbol, symbolFlag)
	}
	if depthFlag < 0 {
		return fmt.Errorf("%w: %d", game.ErrInvalidDepth, depthFlag)
	}

	src := ai.Global
	if seedFlag != 0 {
		src = ai.NewSeeded(seedFlag)
	}
	selector := ai.NewSelector(src)
	selector.Parallel = parallel

	out := moveOutput{Board: boardFlag, Symbol: sym, Depth: depthFlag}
	if m, ok := selector.SelectMove(b, sym, depthFlag); ok {
		out.Move = &m
		b[m] = sym
	}
	out.Outcome = string(b.Winner())

	if showScores && out.Move != nil {
		b[*out.Move] = board.Empty
		out.Scores = make(map[int]int)
		for _, m := range b.AvailableMoves() {
			b[m] = sym
			out.Scores[m] = ai.Evaluate(&b, sym, depthFlag-1, false)
			b[m] = board.Empty
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
