package main

import (
	"os"

	"github.com/cameroncuttingedge/tictactoe_ai/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// InitializeLogger sends logs to stdout, and also to cfg.LogFile when file
// logging is enabled. The returned func closes the file.
func InitializeLogger(cfg config.Config) func() {
	zerolog.SetGlobalLevel(cfg.LogLevel)
	if !cfg.Logging {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		return func() {}
	}

	runLogFile, err := os.OpenFile(
		cfg.LogFile,
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0664,
	)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.LogFile).Msg("Failed to open log file")
	}
	multi := zerolog.MultiLevelWriter(runLogFile, os.Stdout)
	log.Logger = zerolog.New(multi).With().Timestamp().Logger()
	return func() { _ = runLogFile.Close() }
}
