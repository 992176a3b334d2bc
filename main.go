// main.go
//
// Entry point for the wordle-buddy CLI.
// Responsibilities:
//   - Load .env (if present) and the typed configuration.
//   - Configure the global zerolog logger.
//   - Dispatch to the serve / solve / simulate / suggest commands (commands.go).

package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-buddy/internal/config"
	"github.com/robalobadob/wordle-buddy/internal/words"
)

var (
	cfg       config.Config
	wordsFile string
)

var rootCmd = &cobra.Command{
	Use:           "wordle-buddy",
	Short:         "A bot that solves the daily word puzzle",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		cfg.SetupLogging()

		if wordsFile != "" {
			cfg.WordsFile = wordsFile
		}
		if cfg.WordsFile != "" {
			// words.Load reads the override from the environment.
			_ = os.Setenv("WORDS_FILE", cfg.WordsFile)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&wordsFile, "words", "", "word list file (JSON array or one word per line)")
	rootCmd.AddCommand(serveCmd, solveCmd, simulateCmd, suggestCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("wordle-buddy exited")
	}
}

// dictionary loads the shared word list.
func dictionary() (*words.Dictionary, error) {
	d, err := words.Load()
	if err != nil {
		return nil, err
	}
	log.Debug().Int("words", d.Len()).Msg("dictionary loaded")
	return d, nil
}
