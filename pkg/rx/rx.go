// Package rx wraps regexp2 with byte-offset search helpers.
//
// regexp2 accepts a byte offset to start searching from but reports match
// positions as rune indexes. Everything else in ctxgrep works in byte
// offsets, so these helpers convert at the boundary.
package rx

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// MatchTimeout bounds a single regexp2 evaluation to prevent catastrophic
// backtracking from stalling a search.
const MatchTimeout = 5 * time.Second

// Compile compiles pattern, trying RE2-compatible syntax first and falling
// back to the Perl-compatible default for features RE2 mode rejects.
func Compile(pattern string, ignoreCase bool) (*regexp2.Regexp, error) {
	opts := regexp2.RegexOptions(regexp2.RE2)
	if ignoreCase {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		fallback := regexp2.None
		if ignoreCase {
			fallback |= regexp2.IgnoreCase
		}
		re, err = regexp2.Compile(pattern, fallback)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
	}
	re.MatchTimeout = MatchTimeout
	return re, nil
}

// MustCompile is like Compile but panics on error. Only for tests and
// static tables.
func MustCompile(pattern string) *regexp2.Regexp {
	re, err := Compile(pattern, false)
	if err != nil {
		panic(err)
	}
	return re
}

// Result is a match located by byte offsets.
type Result struct {
	Start int
	End   int
	Match *regexp2.Match
}

// FindAt searches text starting at byte offset from. Anchors keep their
// whole-string meaning: ^ does not match at from unless from is 0.
func FindAt(re *regexp2.Regexp, text string, from int) (Result, bool) {
	if from < 0 || from > len(text) {
		return Result{}, false
	}
	m, err := re.FindStringMatchStartingAt(text, from)
	if err != nil || m == nil {
		return Result{}, false
	}
	start := ByteOffset(text, m.Index)
	end := start + ByteOffset(text[start:], m.Length)
	return Result{Start: start, End: end, Match: m}, true
}

// Groups returns the text of capture groups 1..n of m. A group that did
// not participate yields an empty string.
func Groups(m *regexp2.Match) []string {
	if m == nil {
		return nil
	}
	all := m.Groups()
	out := make([]string, 0, len(all))
	for i := 1; i < len(all); i++ {
		if len(all[i].Captures) == 0 {
			out = append(out, "")
			continue
		}
		out = append(out, all[i].String())
	}
	return out
}

// ByteOffset converts rune index runeIdx within s into a byte offset.
func ByteOffset(s string, runeIdx int) int {
	if runeIdx <= 0 {
		return 0
	}
	n := 0
	for i := range s {
		if n == runeIdx {
			return i
		}
		n++
	}
	return len(s)
}
