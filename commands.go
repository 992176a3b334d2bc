// commands.go
//
// Command definitions:
//   - serve    → HTTP puzzle proxy and engine API
//   - solve    → drive the live puzzle page in a browser
//   - simulate → play a day's puzzle in the terminal
//   - suggest  → one-shot suggestion from constraint flags
//
// Flags override the matching environment configuration only when set.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-buddy/internal/driver"
	"github.com/robalobadob/wordle-buddy/internal/game"
	"github.com/robalobadob/wordle-buddy/internal/httpserver"
	"github.com/robalobadob/wordle-buddy/internal/puzzle"
	"github.com/robalobadob/wordle-buddy/internal/render"
	"github.com/robalobadob/wordle-buddy/internal/simulate"
	"github.com/robalobadob/wordle-buddy/internal/solver"
	"github.com/robalobadob/wordle-buddy/internal/store"
)

var (
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the puzzle proxy and engine API",
		RunE:  runServe,
	}
	solveCmd = &cobra.Command{
		Use:   "solve",
		Short: "Solve the live puzzle in a browser",
		RunE:  runSolve,
	}
	simulateCmd = &cobra.Command{
		Use:   "simulate",
		Short: "Simulate solving a day's puzzle in the terminal",
		RunE:  runSimulate,
	}
	suggestCmd = &cobra.Command{
		Use:   "suggest",
		Short: "Print the next guess for the given constraints",
		Example: `  wordle-buddy suggest --absent st --correct a2,e4 --present r3 --banned stare
  wordle-buddy suggest --all --limit 20`,
		RunE: runSuggest,
	}
)

var (
	flagPort        string
	flagStart       string
	flagDays        int
	flagHeadless    bool
	flagVideo       string
	flagCopyStats   bool
	flagURL         string
	flagDate        string
	flagSolution    string
	flagAbsent      string
	flagCorrect     string
	flagPresent     string
	flagBanned      string
	flagAll         bool
	flagLimit       int
	flagRevealDelay time.Duration
)

func init() {
	serveCmd.Flags().StringVar(&flagPort, "port", "", "listen port (default $PORT or 5175)")

	solveCmd.Flags().StringVar(&flagStart, "start", "", "starting word (default $START_WORD or stare)")
	solveCmd.Flags().IntVar(&flagDays, "days", 0, "solve the puzzle this many days from today")
	solveCmd.Flags().BoolVar(&flagHeadless, "headless", false, "run the browser without a window")
	solveCmd.Flags().StringVar(&flagVideo, "record-video", "", "directory to record a session video into")
	solveCmd.Flags().BoolVar(&flagCopyStats, "copy-stats", false, "click Share once the game is over")
	solveCmd.Flags().StringVar(&flagURL, "url", "", "puzzle page URL")

	simulateCmd.Flags().StringVar(&flagStart, "start", "", "starting word (default $START_WORD or stare)")
	simulateCmd.Flags().StringVar(&flagDate, "date", "", "puzzle date YYYY-MM-DD (default today)")
	simulateCmd.Flags().IntVar(&flagDays, "days", 0, "puzzle this many days from today, when --date is not set")
	simulateCmd.Flags().StringVar(&flagSolution, "solution", "", "play against this word instead of fetching the puzzle")
	simulateCmd.Flags().DurationVar(&flagRevealDelay, "reveal-delay", 0, "pause before each tile (default $REVEAL_DELAY)")

	suggestCmd.Flags().StringVar(&flagAbsent, "absent", "", "letters not in the word, e.g. st or s,t")
	suggestCmd.Flags().StringVar(&flagCorrect, "correct", "", "letters at known tiles (0-4), e.g. a2,e4")
	suggestCmd.Flags().StringVar(&flagPresent, "present", "", "letters in the word but not at these tiles, e.g. r3")
	suggestCmd.Flags().StringVar(&flagBanned, "banned", "", "comma separated words never to suggest")
	suggestCmd.Flags().BoolVar(&flagAll, "all", false, "list every candidate in selection order")
	suggestCmd.Flags().IntVar(&flagLimit, "limit", 10, "maximum candidates printed with --all (0 for all)")
}

// signalContext is cancelled on Ctrl-C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// puzzleClient builds the upstream client with the configured cache.
func puzzleClient() (*puzzle.Client, store.Store, error) {
	var (
		cache store.Store
		err   error
	)
	if cfg.PuzzleCacheDSN != "" {
		if cache, err = store.OpenSQLite(cfg.PuzzleCacheDSN); err != nil {
			return nil, nil, fmt.Errorf("open puzzle cache: %w", err)
		}
	} else {
		cache = store.NewMemoryStore()
	}
	return puzzle.NewClient(puzzle.Options{
		BaseURL:       cfg.PuzzleBaseURL,
		Timeout:       cfg.PuzzleTimeout,
		RatePerSecond: cfg.PuzzleRate,
		Cache:         cache,
	}), cache, nil
}

// ------------------------------- serve -------------------------------------

func runServe(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("port") {
		cfg.Port = flagPort
	}
	d, err := dictionary()
	if err != nil {
		return fmt.Errorf("failed to load word list: %w", err)
	}
	client, cache, err := puzzleClient()
	if err != nil {
		return err
	}
	defer cache.Close()

	engine := solver.NewEngine(d)
	srv := httpserver.New(httpserver.Options{
		Engine:       engine,
		Puzzles:      client,
		Runner:       simulate.NewRunner(engine, client, simulate.Options{Logger: log.Logger}),
		ClientOrigin: cfg.ClientOrigin,
	})

	ctx, stop := signalContext()
	defer stop()
	log.Info().Str("addr", cfg.Addr()).Int("words", d.Len()).Msg("starting wordle-buddy server")
	return srv.Run(ctx, cfg.Addr())
}

// ------------------------------- solve -------------------------------------

func runSolve(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	if f.Changed("start") {
		cfg.StartWord = strings.ToLower(strings.TrimSpace(flagStart))
	}
	if f.Changed("days") {
		cfg.Days = flagDays
	}
	if f.Changed("headless") {
		cfg.Headless = flagHeadless
	}
	if f.Changed("record-video") {
		cfg.RecordVideo = flagVideo
	}
	if f.Changed("copy-stats") {
		cfg.CopyStats = flagCopyStats
	}
	if f.Changed("url") {
		cfg.WordleURL = flagURL
	}

	d, err := dictionary()
	if err != nil {
		return fmt.Errorf("failed to load word list: %w", err)
	}
	start, err := solver.ValidateStartWord(d, cfg.StartWord)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	b, err := driver.Launch(ctx, driver.LaunchOptions{
		URL:      cfg.WordleURL,
		Now:      puzzle.Shift(time.Now(), cfg.Days),
		Headless: cfg.Headless,
		VideoDir: cfg.RecordVideo,
		Settle:   cfg.SettleDelay,
		Logger:   log.Logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := b.Close(); err != nil {
			log.Warn().Err(err).Msg("browser close")
		}
	}()

	var gens solver.Generations
	out, err := driver.New(solver.NewEngine(d), b.Board(), log.Logger).Solve(ctx, gens.Begin(), start)
	for _, a := range out.Attempts {
		fmt.Println(render.Feedback(a.Word, a.Feedback))
	}
	msg, err := solveMessage(out, err)
	if err != nil {
		return err
	}
	fmt.Println(render.Message(msg))
	if msg == simulate.MsgAborted {
		return nil
	}

	if cfg.CopyStats && out.State == solver.Won {
		if err := b.CopyStats(ctx); err != nil {
			log.Warn().Err(err).Msg("copy stats")
		}
	}

	// A visible browser stays open for the user until interrupted.
	if !cfg.Headless && cfg.RecordVideo == "" {
		log.Info().Msg("press Ctrl-C to close the browser")
		<-ctx.Done()
	}
	return nil
}

// solveMessage turns the driver's result into the line printed at the end.
// Ctrl-C while solving is a clean exit, not a failure.
func solveMessage(out driver.Outcome, err error) (string, error) {
	switch {
	case errors.Is(err, solver.ErrSessionAborted), errors.Is(err, context.Canceled):
		return simulate.MsgAborted, nil
	case err != nil:
		return "", err
	}
	return outcomeMessage(out), nil
}

func outcomeMessage(out driver.Outcome) string {
	switch out.Reason {
	case solver.ReasonSolved:
		return simulate.SolvedMessage(len(out.Attempts))
	case solver.ReasonExhausted:
		return simulate.MsgNoneLeft
	case solver.ReasonAborted:
		return simulate.MsgAborted
	}
	return simulate.MsgOutOfTurn
}

// ------------------------------ simulate -----------------------------------

func runSimulate(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	if f.Changed("start") {
		cfg.StartWord = flagStart
	}
	if f.Changed("reveal-delay") {
		cfg.RevealDelay = flagRevealDelay
	}
	date := flagDate
	if date == "" {
		date = puzzle.Today(flagDays)
	}

	d, err := dictionary()
	if err != nil {
		return fmt.Errorf("failed to load word list: %w", err)
	}
	client, cache, err := puzzleClient()
	if err != nil {
		return err
	}
	defer cache.Close()

	runner := simulate.NewRunner(solver.NewEngine(d), client, simulate.Options{
		RevealDelay: cfg.RevealDelay,
		RowDelay:    cfg.RowDelay,
		Logger:      log.Logger,
	})

	// Ctrl-C supersedes the running session.
	ctx, stop := signalContext()
	defer stop()
	var gens solver.Generations
	tok := gens.Begin()
	go func() {
		<-ctx.Done()
		gens.Cancel()
	}()

	tv := &terminalView{}
	res, err := runner.Run(ctx, tok, simulate.Request{
		StartWord: cfg.StartWord,
		Date:      date,
		Solution:  flagSolution,
	}, tv)
	switch {
	case errors.Is(err, solver.ErrSessionAborted):
		fmt.Println()
		fmt.Println(render.Message(simulate.MsgAborted))
		return nil
	case errors.Is(err, solver.ErrInvalidStartWord):
		fmt.Println(render.Message(res.Message))
		return err
	case err != nil:
		return err
	}
	fmt.Println()
	fmt.Println(render.Keyboard(tv.keys))
	return nil
}

// terminalView redraws the current row as tiles are revealed.
type terminalView struct {
	word  string
	marks []game.Mark
	keys  game.Keyboard
}

func (v *terminalView) Observe(e simulate.Event) {
	switch e.Kind {
	case simulate.EventMessage:
		fmt.Println(render.Message(e.Message))
	case simulate.EventAttempt:
		v.word, v.marks = e.Word, nil
		fmt.Print(render.Row(v.word, nil))
	case simulate.EventReveal:
		v.marks = append(v.marks, e.Mark)
		fmt.Print("\r" + render.Row(v.word, v.marks))
		if len(v.marks) == len(v.word) {
			fmt.Println()
		}
	case simulate.EventKey:
		v.keys = v.keys.Update(e.Letter[0], e.Mark)
	}
}

// ------------------------------- suggest -----------------------------------

func runSuggest(cmd *cobra.Command, args []string) error {
	view, err := constraintFlags(flagAbsent, flagCorrect, flagPresent, flagBanned)
	if err != nil {
		return err
	}
	c, err := view.Constraints()
	if err != nil {
		return err
	}
	d, err := dictionary()
	if err != nil {
		return fmt.Errorf("failed to load word list: %w", err)
	}
	engine := solver.NewEngine(d)

	if flagAll {
		list := engine.Candidates(c)
		if flagLimit > 0 && len(list) > flagLimit {
			list = list[:flagLimit]
		}
		for _, w := range list {
			fmt.Println(w)
		}
		return nil
	}
	word, ok := engine.Suggest(c)
	if !ok {
		fmt.Println(render.Message(simulate.MsgNoneLeft))
		return nil
	}
	fmt.Println(word)
	return nil
}
