// internal/driver/playwright.go
//
// Browser side of the driver, backed by playwright.
// Responsibilities:
//   - Install and start playwright, launch chromium and open the puzzle page.
//   - Freeze the page's Date before first load so a chosen day's puzzle is
//     served, then restore the real Date.
//   - Get past the welcome screen and the first-visit help dialog.
//   - Implement Board over the rendered Row-module / Tile-module elements.
//   - Optionally copy the share text once the game is over.
//
// Notes:
//   - Playwright calls are synchronous; ctx is checked between them.

package driver

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle-buddy/internal/words"
)

// DefaultURL is the public puzzle page.
const DefaultURL = "https://www.nytimes.com/games/wordle/index.html"

const (
	rowSelector       = `[class*="Row-module"]`
	tileSelector      = `[class*="Tile-module"]`
	pendingSelector   = `[class*="Tile-module"][data-state="tbd"]`
	welcomeSelector   = `[data-testid="Play"], [data-testid="Continue"]`
	helpCloseSelector = `dialog button[aria-label="Close"]`
	modalCloseButton  = `button[aria-label="Close"]`
	shareButton       = `button:has-text("Share")`
)

// LaunchOptions configures Launch.
type LaunchOptions struct {
	URL      string
	Now      time.Time // moment the page believes it is; zero means real time
	Headless bool
	VideoDir string        // record a video of the session when set
	Settle   time.Duration // wait after submitting a word for the reveal animation
	Logger   zerolog.Logger
}

// Browser is a running puzzle page.
type Browser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	board   *PageBoard
	log     zerolog.Logger
}

// Launch starts chromium and leaves the page on an empty board.
func Launch(ctx context.Context, opts LaunchOptions) (*Browser, error) {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	runOpts := &playwright.RunOptions{
		Browsers: []string{"chromium"},
		Verbose:  false,
		Stdout:   io.Discard,
		Stderr:   io.Discard,
	}
	// Install is a no-op once the driver and chromium are present.
	if err := playwright.Install(runOpts); err != nil {
		return nil, fmt.Errorf("failed to install playwright: %w", err)
	}
	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}
	b := &Browser{pw: pw, log: opts.Logger}

	b.browser, err = pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	contextOpts := playwright.BrowserNewContextOptions{}
	if opts.VideoDir != "" {
		contextOpts.RecordVideo = &playwright.RecordVideo{Dir: opts.VideoDir}
	}
	b.context, err = b.browser.NewContext(contextOpts)
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	b.page, err = b.context.NewPage()
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	b.board = &PageBoard{page: b.page, settle: opts.Settle}

	if err := b.open(ctx, opts); err != nil {
		_ = b.Close()
		return nil, err
	}
	return b, nil
}

func (b *Browser) open(ctx context.Context, opts LaunchOptions) error {
	if !opts.Now.IsZero() {
		script := FakeClockScript(opts.Now)
		if err := b.page.AddInitScript(playwright.Script{Content: &script}); err != nil {
			return fmt.Errorf("install fake clock: %w", err)
		}
	}
	if _, err := b.page.Goto(opts.URL); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	if !opts.Now.IsZero() {
		if _, err := b.page.Evaluate(restoreDateScript); err != nil {
			return fmt.Errorf("restore clock: %w", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := b.page.Locator(welcomeSelector).First().Click(); err != nil {
		return fmt.Errorf("welcome screen: %w", err)
	}

	// The help dialog only shows for first-time visitors.
	closeHelp := b.page.Locator(helpCloseSelector)
	if err := closeHelp.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(2000),
	}); err == nil {
		if err := closeHelp.Click(); err != nil {
			return fmt.Errorf("close help dialog: %w", err)
		}
	}
	b.log.Debug().Str("url", opts.URL).Time("now", opts.Now).Msg("puzzle page ready")
	return nil
}

// Board returns the page as a Board.
func (b *Browser) Board() Board { return b.board }

// CopyStats closes the end-of-game modal and clicks Share.
func (b *Browser) CopyStats(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.page.Locator(modalCloseButton).First().Click(); err != nil {
		return fmt.Errorf("close stats modal: %w", err)
	}
	if err := b.page.Locator(shareButton).First().Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		return fmt.Errorf("share: %w", err)
	}
	return nil
}

// Close shuts everything down. Closing the context flushes a recorded video.
func (b *Browser) Close() error {
	var errs []string
	if b.context != nil {
		if err := b.context.Close(); err != nil {
			errs = append(errs, "context: "+err.Error())
		}
	}
	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			errs = append(errs, "browser: "+err.Error())
		}
	}
	if b.pw != nil {
		if err := b.pw.Stop(); err != nil {
			errs = append(errs, "playwright: "+err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close browser: %s", strings.Join(errs, "; "))
	}
	return nil
}

// PageBoard reads and types into the rendered puzzle.
type PageBoard struct {
	page   playwright.Page
	settle time.Duration
}

func (p *PageBoard) Rows(ctx context.Context) ([]Row, error) {
	rowEls, err := p.page.Locator(rowSelector).All()
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(rowEls))
	for _, rowEl := range rowEls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tiles, err := rowEl.Locator(tileSelector).All()
		if err != nil {
			return nil, err
		}
		var row Row
		for i := range row {
			row[i].State = TileEmpty
		}
		for i, tile := range tiles {
			if i >= words.Length {
				break
			}
			state, err := tile.GetAttribute("data-state")
			if err != nil {
				return nil, err
			}
			text, err := tile.TextContent()
			if err != nil {
				return nil, err
			}
			row[i].State = TileState(state)
			if text = strings.ToLower(strings.TrimSpace(text)); text != "" {
				row[i].Letter = text[0]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (p *PageBoard) Enter(ctx context.Context, word string) error {
	kb := p.page.Keyboard()
	if err := kb.Type(word); err != nil {
		return err
	}
	if err := kb.Press("Enter"); err != nil {
		return err
	}
	return sleep(ctx, p.settle)
}

func (p *PageBoard) Erase(ctx context.Context) error {
	kb := p.page.Keyboard()
	for i := 0; i < words.Length; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := kb.Press("Backspace"); err != nil {
			return err
		}
	}
	return nil
}

func (p *PageBoard) Pending(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	n, err := p.page.Locator(pendingSelector).Count()
	return n > 0, err
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
