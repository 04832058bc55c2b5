// Package expand grows each match into the smallest surrounding block
// worth showing: the enclosing brackets, an indentation header, the rest
// of an open comment or string, and continued lines.
package expand

import (
	"strings"

	"github.com/praetorian-inc/ctxgrep/pkg/language"
	"github.com/praetorian-inc/ctxgrep/pkg/types"
)

// Block is one displayed window and the matches it holds, in line order.
type Block struct {
	Window  types.Window
	Matches []types.Match
}

// Merge decides whether a match at index joins the block ending with
// prev. When it does, the returned window is extended to cover index.
func Merge(prev types.Window, index int) (types.Window, bool) {
	if index > prev.End+1 {
		return prev, false
	}
	if index > prev.End {
		prev.End = index
	}
	return prev, true
}

// Expander computes display windows over one file's lexed lines.
type Expander struct {
	lang       *language.Language
	lines      []types.Line
	maxContext int
}

// New creates an expander. maxContext caps each direction; 0 means no cap.
func New(lang *language.Language, lines []types.Line, maxContext int) *Expander {
	return &Expander{
		lang:       lang,
		lines:      lines,
		maxContext: maxContext,
	}
}

// Fold merges and expands matches given in increasing line order. A match
// next to or inside the previous block joins it without its own expansion;
// any other match is expanded with the previous block's end as a floor, so
// windows never overlap and never move backwards.
func (e *Expander) Fold(matches []types.Match) []Block {
	var blocks []Block
	for _, m := range matches {
		if n := len(blocks); n > 0 {
			last := &blocks[n-1]
			if w, ok := Merge(last.Window, m.Index); ok {
				prevIndex := last.Matches[len(last.Matches)-1].Index
				last.Window = w
				m.ContextBegin = max(m.Index-1, prevIndex)
				m.ContextEnd = m.Index
				last.Matches = append(last.Matches, m)
				continue
			}
		}

		floor := 0
		if n := len(blocks); n > 0 {
			floor = blocks[n-1].Window.End + 1
		}
		w := e.Expand(m.Index, floor)
		m.ContextBegin, m.ContextEnd = w.Begin, w.End
		blocks = append(blocks, Block{Window: w, Matches: []types.Match{m}})
	}

	for i := range blocks {
		blocks[i].Matches[0].ContextEnd = blocks[i].Window.End
	}
	return blocks
}

// Expand returns the window for a match at index. Backward expansion
// never goes above floor.
func (e *Expander) Expand(index, floor int) types.Window {
	if index < 0 || index >= len(e.lines) {
		return types.Window{Begin: index, End: index}
	}
	return types.Window{
		Begin: e.backward(index, max(floor, 0)),
		End:   e.forward(index),
	}
}

func (e *Expander) withinBudget(distance int) bool {
	return e.maxContext <= 0 || distance <= e.maxContext
}

func (e *Expander) backward(index, floor int) int {
	match := e.lines[index]
	indent := types.LeadingWhitespace(match.Text)

	bal := newBalance(e.lang.Brackets)
	bal.scanBackward(match)
	carry := match.ContinuesRegion()

	// A top-level match has no indentation to follow.
	indentPhase := indent != ""
	enclosed := false
	begin := index

	for i := index - 1; i >= floor && e.withinBudget(index-i); i-- {
		line := e.lines[i]

		byIndent := false
		if indentPhase {
			switch {
			case sameIndent(line.Text, indent):
				byIndent = true
			case shallower(line.Text, indent):
				// header line; the indent phase ends with it
				byIndent = true
				indentPhase = false
			default:
				indentPhase = false
			}
		}

		demand := bal.pending() || carry || e.lang.HasContinuation(line.Text)
		wasPending := bal.pending()
		opener := bal.scanBackward(line)
		if byIndent && !indentPhase && !wasPending && bal.pending() {
			// a shallower line that only closes a block is not a header
			byIndent = false
		}

		if !byIndent && !demand && (!opener || enclosed) {
			break
		}
		if opener {
			enclosed = true
		}
		carry = line.ContinuesRegion()
		begin = i
	}
	return begin
}

func (e *Expander) forward(index int) int {
	match := e.lines[index]
	indent := types.LeadingWhitespace(match.Text)

	bal := newBalance(e.lang.Brackets)
	bal.scanForward(match)
	continued := e.lang.HasContinuation(match.Text)

	indentPhase := indent != ""
	enclosed := false
	end := index

	for i := index + 1; i < len(e.lines) && e.withinBudget(i-index); i++ {
		line := e.lines[i]

		byIndent := false
		if indentPhase {
			if sameIndent(line.Text, indent) {
				byIndent = true
			} else {
				indentPhase = false
			}
		}

		demand := bal.pending() || line.ContinuesRegion() || continued
		closer := bal.scanForward(line)

		if !byIndent && !demand && (!closer || enclosed) {
			break
		}
		if closer {
			enclosed = true
		}
		continued = e.lang.HasContinuation(line.Text)
		end = i
	}
	return end
}

// sameIndent reports whether text starts with exactly indent: the prefix
// is followed by a non-blank character or by nothing.
func sameIndent(text, indent string) bool {
	if !strings.HasPrefix(text, indent) {
		return false
	}
	rest := text[len(indent):]
	return rest == "" || (rest[0] != ' ' && rest[0] != '\t')
}

// shallower reports whether text is a non-blank line indented less than
// indent, with its indentation a prefix of indent.
func shallower(text, indent string) bool {
	ws := types.LeadingWhitespace(text)
	if ws == text {
		return false
	}
	return len(ws) < len(indent) && strings.HasPrefix(indent, ws)
}
