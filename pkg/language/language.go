// Package language holds the static lexical description of each supported
// language: comment and string rules, bracket pairs and the continuation
// marker. It also resolves a file to a Language.
package language

import "strings"

// BracketPair is an opener and its matching closer.
type BracketPair struct {
	Open  rune
	Close rune
}

// Language is immutable once loaded.
type Language struct {
	Name       string
	Aliases    []string
	Extensions []string
	Mimes      []string

	// Comments is a priority list: on ties it decides which rule wins.
	Comments []CommentRule
	Brackets []BracketPair

	// Continuation is a literal suffix marking a line that logically
	// continues on the next one, such as a trailing backslash.
	Continuation string

	// Fallback marks the plain-text language used when nothing else matches.
	Fallback bool
}

// Earliest returns the comment or string opening that starts first at or
// after offset. Ties on start go to the longest opening delimiter, then to
// declaration order.
func (l *Language) Earliest(line string, offset int) (Opening, bool) {
	var best Opening
	found := false
	for _, rule := range l.Comments {
		o, ok := rule.Resolve(line, offset)
		if !ok || o.DelimiterLen() == 0 {
			continue
		}
		if !found || o.Start < best.Start ||
			(o.Start == best.Start && o.DelimiterLen() > best.DelimiterLen()) {
			best, found = o, true
		}
	}
	return best, found
}

// HasContinuation reports whether line ends with the continuation marker.
func (l *Language) HasContinuation(line string) bool {
	return l.Continuation != "" && strings.HasSuffix(line, l.Continuation)
}

// MatchesName reports whether name is the language name or one of its
// aliases, ignoring case.
func (l *Language) MatchesName(name string) bool {
	if strings.EqualFold(l.Name, name) {
		return true
	}
	for _, a := range l.Aliases {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

// MatchesFilename reports whether the base name of path ends with one of
// the language's extensions. Extensions may be full names such as
// "Makefile".
func (l *Language) MatchesFilename(path string) bool {
	base := path
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	for _, ext := range l.Extensions {
		if ext != "" && strings.HasSuffix(base, ext) {
			return true
		}
	}
	return false
}

// MatchesMime reports whether mime is listed for the language.
func (l *Language) MatchesMime(mime string) bool {
	for _, m := range l.Mimes {
		if strings.EqualFold(m, mime) {
			return true
		}
	}
	return false
}
