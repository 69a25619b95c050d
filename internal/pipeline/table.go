package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/backmassage/assetopt/internal/display"
	"github.com/backmassage/assetopt/internal/term"
)

const maxNameWidth = 50

// printResultTable writes one row per result: file, outcome, sizes and
// reduction. Growth and failures are colored.
func printResultTable(w io.Writer, results []Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, "  (no files)")
		return
	}

	nameW := len("File")
	for _, r := range results {
		if n := utf8.RuneCountInString(filepath.Base(r.Target.Source)); n > nameW {
			nameW = n
		}
	}
	if nameW > maxNameWidth {
		nameW = maxNameWidth
	}
	const outcomeW, sizeW, redW = len("success"), len("1023.9 KiB"), len("Reduction")

	header := fmt.Sprintf("  %-*s  %-*s  %*s  %*s  %*s",
		nameW, "File", outcomeW, "Outcome", sizeW, "Before", sizeW, "After", redW, "Reduction")
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, "  "+strings.Repeat("─", utf8.RuneCountInString(header)-2))

	for _, r := range results {
		name := truncate(filepath.Base(r.Target.Source), nameW)

		before, after, red := "-", "-", "-"
		if r.SourceBytes > 0 {
			before = display.FormatBytes(r.SourceBytes)
		}
		if r.Outcome == Success {
			red = r.Reduction.String()
			if r.Reduction.Known {
				after = display.FormatBytes(r.OutputBytes)
			}
		}

		// Pad the plain text first, then wrap in ANSI color, so escape
		// bytes do not count toward the column width.
		outcomeCell := colorPad(r.Outcome.String(), outcomeW, outcomeColor(r.Outcome), false)
		redCell := colorPad(red, redW, reductionColor(r), true)

		fmt.Fprintf(w, "  %-*s  %s  %*s  %*s  %s\n",
			nameW, name, outcomeCell, sizeW, before, sizeW, after, redCell)
	}
	fmt.Fprintln(w)
}

func outcomeColor(o Outcome) term.Role {
	switch o {
	case Success:
		return term.Success
	case Failure:
		return term.Error
	default:
		return term.Muted
	}
}

func reductionColor(r Result) term.Role {
	if r.Outcome == Success && r.Reduction.Known && r.Reduction.Percent < 0 {
		return term.Warn
	}
	return term.Plain
}

// colorPad pads s to width (right-aligned when right is set), then wraps it
// in color.
func colorPad(s string, width int, color term.Role, right bool) string {
	var padded string
	if right {
		padded = fmt.Sprintf("%*s", width, s)
	} else {
		padded = fmt.Sprintf("%-*s", width, s)
	}
	return term.Paint(color, padded)
}

// truncate shortens s to at most width runes, marking the cut with "…".
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-1]) + "…"
}
