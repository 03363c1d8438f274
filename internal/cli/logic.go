package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/idelchi/filecensus/internal/census"
)

// barWidth is the number of cells in the stderr progress bar.
const barWidth = 40

// logger provides conditional debug output.
type logger struct {
	enabled bool
}

// printf prints debug output if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.enabled {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// renderBar draws a block progress bar: |████----|  42.00%.
// A zero total renders as complete.
func renderBar(done, total int) string {
	percent := 100.0
	filled := barWidth

	if total > 0 {
		percent = float64(done) / float64(total) * 100 //nolint:mnd // Percentage
		filled = barWidth * done / total
	}

	return fmt.Sprintf("|%s%s| %6.2f%%",
		strings.Repeat("█", filled), strings.Repeat("-", barWidth-filled), percent)
}

func logic(opts options) error {
	log := logger{enabled: opts.debug}

	enableProgress := strings.ToLower(opts.output) != "json" &&
		!opts.quiet &&
		!opts.debug &&
		isatty.IsTerminal(os.Stderr.Fd())

	// Ctrl-C cancels the scan; partial totals are still printed below.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var onProgress census.ProgressFunc

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(os.Stderr, "\033[?25l")
		defer fmt.Fprint(os.Stderr, "\033[?25h")

		// Redraw only when the displayed percentage moves, so huge trees
		// don't spend their time repainting the status line.
		lastTick := -1

		onProgress = func(done, total int) {
			if total > 0 && done < total {
				tick := done * 10000 / total
				if tick == lastTick {
					return
				}

				lastTick = tick
			}

			fmt.Fprintf(os.Stderr, "\r\033[2K%s\r", renderBar(done, total))
		}
	}

	log.printf("[debug]: scanning %q\n", opts.path)

	result, err := census.Scan(ctx, opts.path, onProgress)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}

	aborted := errors.Is(err, context.Canceled)
	if err != nil && !aborted {
		return err
	}

	log.printf("[debug]: %d directories visited, %d skipped\n", result.Dirs, result.SkippedDirs)

	switch strings.ToLower(opts.output) {
	case "json":
		if err := PrintJSON(result, os.Stdout); err != nil {
			return err
		}
	default:
		if err := PrintTable(result, os.Stdout); err != nil {
			return err
		}
	}

	if aborted {
		return errors.New("scan aborted; totals above are partial")
	}

	return nil
}
