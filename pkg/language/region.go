package language

import (
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/praetorian-inc/ctxgrep/pkg/rx"
)

// Region is the resolved terminator of one comment or string occurrence.
// It is what the lexer carries from line to line while a multiline region
// is open. A Region with neither a literal nor a pattern terminator ends at
// end of line.
type Region struct {
	end       string
	endRe     *regexp2.Regexp
	ignores   []string
	multiline bool
}

// NewLiteralRegion returns a region terminated by the literal end.
func NewLiteralRegion(end string, multiline bool, ignores []string) *Region {
	return &Region{end: end, multiline: multiline, ignores: ignores}
}

// NewPatternRegion returns a region terminated by a match of endRe.
func NewPatternRegion(endRe *regexp2.Regexp, multiline bool, ignores []string) *Region {
	return &Region{endRe: endRe, multiline: multiline, ignores: ignores}
}

// NewLineRegion returns a region that runs to end of line.
func NewLineRegion() *Region {
	return &Region{}
}

// Multiline reports whether an unterminated occurrence carries into the next line.
func (r *Region) Multiline() bool {
	return r.multiline
}

// EndsAtEOL reports whether the region has no terminator besides end of line.
func (r *Region) EndsAtEOL() bool {
	return r.end == "" && r.endRe == nil
}

// Terminator describes the terminator for logs and listings.
func (r *Region) Terminator() string {
	switch {
	case r.endRe != nil:
		return r.endRe.String()
	case r.end != "":
		return r.end
	default:
		return "EOL"
	}
}

// FindEnd searches line from byte offset from and returns the offset just
// past the first real terminator. A terminator overlapped by an ignore
// token that starts at or before it is escaped, and the search resumes
// after that token.
func (r *Region) FindEnd(line string, from int) (int, bool) {
	if r.EndsAtEOL() {
		return 0, false
	}
	pos := from
	for pos <= len(line) {
		start, end, ok := r.findTerminator(line, pos)
		if !ok {
			return 0, false
		}
		if q, n, ok := r.nextIgnore(line, pos); ok && q <= start {
			pos = q + n
			continue
		}
		return end, true
	}
	return 0, false
}

func (r *Region) findTerminator(line string, from int) (int, int, bool) {
	if r.endRe != nil {
		res, ok := rx.FindAt(r.endRe, line, from)
		if !ok {
			return 0, 0, false
		}
		return res.Start, res.End, true
	}
	idx := strings.Index(line[from:], r.end)
	if idx < 0 {
		return 0, 0, false
	}
	return from + idx, from + idx + len(r.end), true
}

// nextIgnore finds the earliest ignore token at or after from. Ties go to
// the longest token.
func (r *Region) nextIgnore(line string, from int) (int, int, bool) {
	best, bestLen := -1, 0
	for _, tok := range r.ignores {
		if tok == "" {
			continue
		}
		idx := strings.Index(line[from:], tok)
		if idx < 0 {
			continue
		}
		q := from + idx
		if best < 0 || q < best || (q == best && len(tok) > bestLen) {
			best, bestLen = q, len(tok)
		}
	}
	return best, bestLen, best >= 0
}
