package language

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/praetorian-inc/ctxgrep/pkg/rx"
)

// Opening is a comment or string occurrence found on a line.
type Opening struct {
	Start     int     // offset of the opening delimiter
	BodyStart int     // offset just past the opening delimiter
	Region    *Region // terminator resolved for this occurrence
}

// DelimiterLen returns the length of the opening delimiter.
func (o Opening) DelimiterLen() int {
	return o.BodyStart - o.Start
}

// CommentRule locates the start of a comment or string region. Every
// variant resolves to an Opening so the lexer never branches on the kind
// of rule or on the language.
type CommentRule interface {
	// Resolve finds the first occurrence at or after offset.
	Resolve(line string, offset int) (Opening, bool)
	// Describe renders the rule for listings.
	Describe() string
}

// LiteralRule is delimited by fixed strings, such as /* */ or quotes.
type LiteralRule struct {
	Begin     string
	End       string // empty with EOL=false means End equals Begin
	EOL       bool   // region ends at end of line
	Multiline bool
	Ignores   []string
}

// Resolve implements CommentRule.
func (r *LiteralRule) Resolve(line string, offset int) (Opening, bool) {
	if r.Begin == "" || offset > len(line) {
		return Opening{}, false
	}
	idx := strings.Index(line[offset:], r.Begin)
	if idx < 0 {
		return Opening{}, false
	}
	start := offset + idx
	return Opening{Start: start, BodyStart: start + len(r.Begin), Region: r.region()}, true
}

func (r *LiteralRule) region() *Region {
	if r.EOL {
		return NewLineRegion()
	}
	end := r.End
	if end == "" {
		end = r.Begin
	}
	return NewLiteralRegion(end, r.Multiline, r.Ignores)
}

// Describe implements CommentRule.
func (r *LiteralRule) Describe() string {
	return fmt.Sprintf("%s ... %s", r.Begin, r.region().Terminator())
}

// PatternRule opens on a pattern match and ends on a literal or a
// pattern searched independently.
type PatternRule struct {
	Begin     *regexp2.Regexp
	End       string
	EndRe     *regexp2.Regexp
	Multiline bool
	Ignores   []string
}

// Resolve implements CommentRule.
func (r *PatternRule) Resolve(line string, offset int) (Opening, bool) {
	res, ok := rx.FindAt(r.Begin, line, offset)
	if !ok {
		return Opening{}, false
	}
	var region *Region
	switch {
	case r.EndRe != nil:
		region = NewPatternRegion(r.EndRe, r.Multiline, r.Ignores)
	case r.End != "":
		region = NewLiteralRegion(r.End, r.Multiline, r.Ignores)
	default:
		region = NewLineRegion()
	}
	return Opening{Start: res.Start, BodyStart: res.End, Region: region}, true
}

// Describe implements CommentRule.
func (r *PatternRule) Describe() string {
	end := r.End
	if r.EndRe != nil {
		end = r.EndRe.String()
	}
	if end == "" {
		end = "EOL"
	}
	return fmt.Sprintf("/%s/ ... %s", r.Begin.String(), end)
}

// HeredocRule opens on a pattern with capture groups; the terminator is
// built per occurrence by substituting \1..\9 in EndTemplate with the
// captured text. Shell heredocs and raw-string delimiters use this.
type HeredocRule struct {
	Begin        *regexp2.Regexp
	EndTemplate  string
	EndIsPattern bool
	Multiline    bool
	Ignores      []string
}

// Resolve implements CommentRule.
func (r *HeredocRule) Resolve(line string, offset int) (Opening, bool) {
	for from := offset; from <= len(line); {
		res, ok := rx.FindAt(r.Begin, line, from)
		if !ok {
			return Opening{}, false
		}
		region, err := r.resolveEnd(rx.Groups(res.Match))
		if err == nil {
			return Opening{Start: res.Start, BodyStart: res.End, Region: region}, true
		}
		// The substituted terminator did not compile; this occurrence
		// cannot open a region, try the next one.
		from = res.Start + 1
		for from < len(line) && !isRuneStart(line[from]) {
			from++
		}
	}
	return Opening{}, false
}

func (r *HeredocRule) resolveEnd(groups []string) (*Region, error) {
	end := expandTemplate(r.EndTemplate, groups, r.EndIsPattern)
	if !r.EndIsPattern {
		return NewLiteralRegion(end, r.Multiline, r.Ignores), nil
	}
	re, err := rx.Compile(end, false)
	if err != nil {
		return nil, err
	}
	return NewPatternRegion(re, r.Multiline, r.Ignores), nil
}

// Describe implements CommentRule.
func (r *HeredocRule) Describe() string {
	return fmt.Sprintf("/%s/ ... %s", r.Begin.String(), r.EndTemplate)
}

// expandTemplate replaces \N (N in 1..9) with capture group N. Captured
// text is escaped when the result is compiled as a pattern.
func expandTemplate(tmpl string, groups []string, escape bool) string {
	var b strings.Builder
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c == '\\' && i+1 < len(tmpl) && tmpl[i+1] >= '1' && tmpl[i+1] <= '9' {
			n, _ := strconv.Atoi(tmpl[i+1 : i+2])
			if n <= len(groups) {
				g := groups[n-1]
				if escape {
					g = regexp2.Escape(g)
				}
				b.WriteString(g)
			}
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
