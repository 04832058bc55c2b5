// Package matcher finds pattern hits within lexed lines, optionally
// restricted to code or to comments and strings.
package matcher

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"github.com/praetorian-inc/ctxgrep/pkg/prefilter"
	"github.com/praetorian-inc/ctxgrep/pkg/rx"
	"github.com/praetorian-inc/ctxgrep/pkg/types"
)

// ErrEmptyPattern is returned by New for an empty pattern.
var ErrEmptyPattern = errors.New("empty pattern")

// Matcher searches lines for a single compiled pattern. It is safe for
// concurrent use.
type Matcher struct {
	cfg       Config
	re        *regexp2.Regexp
	prefilter *prefilter.Prefilter
}

// New compiles the pattern. Literal patterns are escaped first.
func New(cfg Config) (*Matcher, error) {
	if cfg.Pattern == "" {
		return nil, ErrEmptyPattern
	}

	expr := cfg.Pattern
	keyword := cfg.Pattern
	if !cfg.Fixed {
		keyword = prefilter.RequiredLiteral(cfg.Pattern)
	} else {
		expr = regexp2.Escape(cfg.Pattern)
	}

	re, err := rx.Compile(expr, cfg.IgnoreCase)
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern: %w", err)
	}

	if cfg.IgnoreCase && !isASCII(keyword) {
		// non-ASCII case folding is not byte-for-byte
		keyword = ""
	}
	var keywords []string
	if keyword != "" {
		keywords = []string{keyword}
	}
	return &Matcher{
		cfg:       cfg,
		re:        re,
		prefilter: prefilter.New(keywords, cfg.IgnoreCase),
	}, nil
}

// Config returns the configuration the matcher was built from.
func (m *Matcher) Config() Config {
	return m.cfg
}

// MaxContext is the per-direction cap for context expansion.
func (m *Matcher) MaxContext() int {
	return m.cfg.MaxContext
}

// MayMatch reports whether content could contain a match. A false answer
// lets the caller skip lexing the file.
func (m *Matcher) MayMatch(content []byte) bool {
	return m.prefilter.MayContain(content)
}

// Find returns the first hit on the line. With a skip mode, only eligible
// chunks are searched, each bounded to its own range and in chunk order.
func (m *Matcher) Find(line types.Line) (types.Span, bool) {
	if m.cfg.Skip == SkipNone {
		return m.findIn(line.Text, 0)
	}
	for _, c := range line.Chunks {
		if !m.cfg.Skip.Eligible(c.Kind) {
			continue
		}
		if span, ok := m.findIn(line.Text[:c.End], c.Begin); ok {
			return span, true
		}
	}
	return types.Span{}, false
}

// FindAll returns every non-overlapping hit on the line, in order. It is
// used for highlighting.
func (m *Matcher) FindAll(line types.Line) []types.Span {
	if m.cfg.Skip == SkipNone {
		return m.findAllIn(line.Text, 0)
	}
	var spans []types.Span
	for _, c := range line.Chunks {
		if m.cfg.Skip.Eligible(c.Kind) {
			spans = append(spans, m.findAllIn(line.Text[:c.End], c.Begin)...)
		}
	}
	return spans
}

func (m *Matcher) findIn(text string, from int) (types.Span, bool) {
	res, ok := rx.FindAt(m.re, text, from)
	if !ok {
		return types.Span{}, false
	}
	return types.Span{Begin: res.Start, End: res.End}, true
}

func (m *Matcher) findAllIn(text string, from int) []types.Span {
	var spans []types.Span
	for from <= len(text) {
		span, ok := m.findIn(text, from)
		if !ok {
			break
		}
		spans = append(spans, span)
		if span.End > span.Begin {
			from = span.End
			continue
		}
		// step over an empty match
		if span.End >= len(text) {
			break
		}
		_, size := utf8.DecodeRuneInString(text[span.End:])
		from = span.End + size
	}
	return spans
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
