// Package source turns raw file content into lexed lines.
package source

import (
	"github.com/praetorian-inc/ctxgrep/pkg/language"
	"github.com/praetorian-inc/ctxgrep/pkg/lexer"
	"github.com/praetorian-inc/ctxgrep/pkg/types"
)

// Source is one file's lines, lexed with its resolved language. It is
// read-only once built.
type Source struct {
	Name     string
	Language *language.Language
	Lines    []types.Line
}

// New splits content into lines and lexes them with lang.
func New(name string, lang *language.Language, content []byte) *Source {
	lines, _ := lexer.Lex(types.SplitLines(content), lang)
	return &Source{
		Name:     name,
		Language: lang,
		Lines:    lines,
	}
}

// Len returns the number of lines.
func (s *Source) Len() int {
	return len(s.Lines)
}

// Texts returns the raw line texts.
func (s *Source) Texts() []string {
	out := make([]string, len(s.Lines))
	for i, l := range s.Lines {
		out[i] = l.Text
	}
	return out
}
