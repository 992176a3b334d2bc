// internal/config/config.go
//
// Typed configuration for every command.
// Responsibilities:
//   - Parse environment variables (after main has loaded .env) into Config.
//   - Apply defaults so an empty environment is a working local setup.
//   - Configure the global zerolog logger from LOG_LEVEL / LOG_PRETTY.
//
// Command-line flags override these values in main.

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds process configuration.
type Config struct {
	// server
	Port         string `env:"PORT"          envDefault:"5175"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`

	// logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`

	// dictionary override; empty uses the embedded list
	WordsFile string `env:"WORDS_FILE"`

	// puzzle proxy
	PuzzleBaseURL  string        `env:"PUZZLE_BASE_URL"  envDefault:"https://www.nytimes.com/svc/wordle/v2"`
	PuzzleTimeout  time.Duration `env:"PUZZLE_TIMEOUT"   envDefault:"10s"`
	PuzzleRate     float64       `env:"PUZZLE_RATE"      envDefault:"2"`
	PuzzleCacheDSN string        `env:"PUZZLE_CACHE_DSN"`

	// browser driver
	WordleURL   string        `env:"WORDLE_URL"   envDefault:"https://www.nytimes.com/games/wordle/index.html"`
	StartWord   string        `env:"START_WORD"   envDefault:"stare"`
	Days        int           `env:"DAYS"         envDefault:"0"`
	Headless    bool          `env:"HEADLESS"     envDefault:"false"`
	RecordVideo string        `env:"RECORD_VIDEO"`
	CopyStats   bool          `env:"COPY_STATS"   envDefault:"false"`
	SettleDelay time.Duration `env:"SETTLE_DELAY" envDefault:"3s"`
	RevealDelay time.Duration `env:"REVEAL_DELAY" envDefault:"350ms"`
	RowDelay    time.Duration `env:"ROW_DELAY"    envDefault:"300ms"`
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.StartWord = strings.ToLower(strings.TrimSpace(cfg.StartWord))
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// SetupLogging applies the log level and output format to the global logger.
// An unknown level keeps the current one and is reported.
func (c Config) SetupLogging() {
	if c.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || c.LogLevel == "" {
		log.Warn().Str("level", c.LogLevel).Msg("unknown LOG_LEVEL, keeping default")
		return
	}
	zerolog.SetGlobalLevel(lvl)
}
