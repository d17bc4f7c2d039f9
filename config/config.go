package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	Port           string
	FrontendURL    string
	Logging        bool
	LogFile        string
	LogLevel       zerolog.Level
	DefaultDepth   int
	ParallelSearch bool
}

// Load reads the given .env files (".env" when none are given) and then the
// process environment. Missing files are skipped. Variables already set in
// the environment win over the files.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := Config{
		Port:        getenv("PORT", "8080"),
		FrontendURL: strings.TrimSpace(os.Getenv("FRONTEND_URL")),
		Logging:     os.Getenv("LOGGING") == "true",
		LogFile:     getenv("LOG_FILE", "tictactoe.log"),
	}

	level, err := zerolog.ParseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	cfg.DefaultDepth, err = strconv.Atoi(getenv("DEFAULT_DEPTH", "5"))
	if err != nil || cfg.DefaultDepth < 0 {
		return Config{}, fmt.Errorf("DEFAULT_DEPTH must be a non-negative integer, got %q", os.Getenv("DEFAULT_DEPTH"))
	}

	cfg.ParallelSearch, err = strconv.ParseBool(getenv("PARALLEL_SEARCH", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("PARALLEL_SEARCH: %w", err)
	}
	return cfg, nil
}

// Origins lists the CORS origins the API accepts.
func (c Config) Origins() []string {
	origins := make([]string, 0, 3)
	if c.FrontendURL != "" {
		origins = append(origins, c.FrontendURL)
	}
	return append(origins, "http://localhost", "http://localhost:5000")
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
