package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/praetorian-inc/ctxgrep/pkg/search"
	"github.com/praetorian-inc/ctxgrep/pkg/types"
)

// separator replaces skipped lines between two blocks.
const separator = "--"

type styles struct {
	path      *color.Color
	lineNo    *color.Color
	separator *color.Color
	match     *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		path:      color.New(color.Bold, color.FgMagenta),
		lineNo:    color.New(color.FgGreen),
		separator: color.New(color.FgCyan),
		match:     color.New(color.Bold, color.FgRed),
	}
	for _, c := range []*color.Color{s.path, s.lineNo, s.separator, s.match} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// Human renders grep-style text: a filename header, then each block with
// "N:" on matched lines and "N-" on context lines. Files are separated by a
// blank line.
type Human struct {
	styles *styles
	column bool
	files  int
}

// NewHuman creates a human renderer. With column set, matched lines also
// carry the display column of their first hit.
func NewHuman(colorEnabled, column bool) *Human {
	return &Human{styles: newStyles(colorEnabled), column: column}
}

func (h *Human) Render(w io.Writer, res *search.FileResult) error {
	if !res.Matched() {
		return nil
	}

	var b strings.Builder
	if h.files > 0 {
		b.WriteString("\n")
	}
	h.files++
	b.WriteString(h.styles.path.Sprint(res.Path))
	b.WriteString("\n")

	matched := make(map[int]bool)
	for _, blk := range res.Blocks {
		for _, m := range blk.Matches {
			matched[m.Index] = true
		}
	}

	prevEnd := -1
	for i, blk := range res.Blocks {
		if i > 0 {
			switch gap := blk.Window.Begin - prevEnd - 1; {
			case gap == 1:
				h.writeLine(&b, res, prevEnd+1, matched)
			case gap > 1:
				b.WriteString(h.styles.separator.Sprint(separator))
				b.WriteString("\n")
			}
		}
		for idx := blk.Window.Begin; idx <= blk.Window.End && idx < len(res.Lines); idx++ {
			h.writeLine(&b, res, idx, matched)
		}
		prevEnd = blk.Window.End
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (h *Human) writeLine(b *strings.Builder, res *search.FileResult, idx int, matched map[int]bool) {
	text := res.Lines[idx].Text
	mark := "-"
	if matched[idx] {
		mark = ":"
	}
	b.WriteString(h.styles.lineNo.Sprintf("%d", idx+1))
	b.WriteString(mark)

	if !matched[idx] {
		b.WriteString(text)
		b.WriteString("\n")
		return
	}

	spans := res.Highlights[idx]
	if h.column {
		col := 1
		if len(spans) > 0 {
			col = runewidth.StringWidth(text[:spans[0].Begin]) + 1
		}
		b.WriteString(h.styles.lineNo.Sprintf("%d", col))
		b.WriteString(mark)
	}
	b.WriteString(highlight(text, spans, h.styles.match))
	b.WriteString("\n")
}

// highlight wraps each span of text in style. Spans must be ordered and
// non-overlapping.
func highlight(text string, spans []types.Span, style *color.Color) string {
	var b strings.Builder
	pos := 0
	for _, s := range spans {
		if s.Begin < pos || s.End > len(text) {
			continue
		}
		b.WriteString(text[pos:s.Begin])
		if !s.Empty() {
			b.WriteString(style.Sprint(text[s.Begin:s.End]))
		}
		pos = s.End
	}
	b.WriteString(text[pos:])
	return b.String()
}

// Summary is printed after a run when requested.
func Summary(w io.Writer, stats search.Stats) error {
	_, err := fmt.Fprintf(w, "%d matches in %d of %d files (%d skipped)\n",
		stats.Matches, stats.Matched, stats.Files, stats.Skipped)
	return err
}
