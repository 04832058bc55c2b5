// Package prefilter skips files that cannot contain a match before they
// are lexed.
package prefilter

import (
	"bytes"
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// Prefilter uses Aho-Corasick for efficient keyword matching. A file can
// only match if it contains at least one keyword.
type Prefilter struct {
	matcher    *ahocorasick.Matcher
	keywords   []string
	ignoreCase bool
}

// New creates a prefilter from keywords. With no keywords every file
// passes. With ignoreCase set, keywords and content are compared lowercased.
func New(keywords []string, ignoreCase bool) *Prefilter {
	pf := &Prefilter{ignoreCase: ignoreCase}

	seen := make(map[string]bool)
	for _, kw := range keywords {
		if kw == "" {
			// an empty keyword matches everything
			return &Prefilter{ignoreCase: ignoreCase}
		}
		if ignoreCase {
			kw = strings.ToLower(kw)
		}
		if !seen[kw] {
			seen[kw] = true
			pf.keywords = append(pf.keywords, kw)
		}
	}

	if len(pf.keywords) > 0 {
		pf.matcher = ahocorasick.NewStringMatcher(pf.keywords)
	}
	return pf
}

// Keywords returns the deduplicated keywords.
func (pf *Prefilter) Keywords() []string {
	return pf.keywords
}

// MayContain reports whether content contains any keyword.
func (pf *Prefilter) MayContain(content []byte) bool {
	if pf.matcher == nil {
		return true
	}
	if pf.ignoreCase {
		content = bytes.ToLower(content)
	}
	return len(pf.matcher.Match(content)) > 0
}
