// Package ctxgrep provides context-aware text search.
//
// A search finds every line matching a pattern and widens each hit to the
// smallest block that makes sense on its own in the file's language: the
// enclosing bracket pair, the indented header above it, the rest of a
// comment or a continued line.
//
// # Basic Usage
//
//	s, err := ctxgrep.NewSearcher("timeout", ctxgrep.WithSkip(ctxgrep.SkipComments))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := s.SearchFile("server.go")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, b := range res.Blocks {
//	    fmt.Printf("lines %d-%d\n", b.Window.Begin+1, b.Window.End+1)
//	}
package ctxgrep

import (
	"fmt"
	"os"

	"github.com/praetorian-inc/ctxgrep/pkg/expand"
	"github.com/praetorian-inc/ctxgrep/pkg/language"
	"github.com/praetorian-inc/ctxgrep/pkg/matcher"
	"github.com/praetorian-inc/ctxgrep/pkg/search"
	"github.com/praetorian-inc/ctxgrep/pkg/types"
)

type (
	// Result holds everything found in one file.
	Result = search.FileResult

	// Block is one contiguous display window and the matches inside it.
	Block = expand.Block

	// Match is one matched line.
	Match = types.Match

	// Language describes comments, brackets and continuation for a file type.
	Language = language.Language

	// SkipMode restricts which chunks of a line may match.
	SkipMode = matcher.SkipMode
)

const (
	SkipNone     = matcher.SkipNone
	SkipComments = matcher.SkipComments
	SkipCode     = matcher.SkipCode
)

// ErrUnknownLanguage is returned when no language can be resolved for a file.
var ErrUnknownLanguage = language.ErrUnknownLanguage

// Searcher searches content for one pattern.
type Searcher struct {
	searcher *search.Searcher
	registry *language.Registry
}

type searcherConfig struct {
	matcher   matcher.Config
	languages []*Language
	forced    string
	sniff     bool
}

// Option configures a Searcher.
type Option func(*searcherConfig)

// WithFixedString treats the pattern as a literal string.
func WithFixedString() Option {
	return func(c *searcherConfig) { c.matcher.Fixed = true }
}

// WithIgnoreCase matches case-insensitively.
func WithIgnoreCase() Option {
	return func(c *searcherConfig) { c.matcher.IgnoreCase = true }
}

// WithSkip restricts matches to code or to comments and strings.
func WithSkip(mode SkipMode) Option {
	return func(c *searcherConfig) { c.matcher.Skip = mode }
}

// WithMaxContext caps context expansion at n lines in each direction.
// Zero means unlimited.
func WithMaxContext(n int) Option {
	return func(c *searcherConfig) { c.matcher.MaxContext = n }
}

// WithLanguage forces every file to be treated as the named language.
func WithLanguage(name string) Option {
	return func(c *searcherConfig) { c.forced = name }
}

// WithLanguages adds language definitions ahead of the built-in table.
func WithLanguages(langs []*Language) Option {
	return func(c *searcherConfig) { c.languages = langs }
}

// WithoutSniffing disables shebang and MIME content sniffing.
func WithoutSniffing() Option {
	return func(c *searcherConfig) { c.sniff = false }
}

// NewSearcher creates a Searcher for pattern. By default the pattern is a
// regular expression, the whole line is searched, context is unlimited and
// files without a known extension are sniffed before falling back to
// plain text.
func NewSearcher(pattern string, opts ...Option) (*Searcher, error) {
	config := &searcherConfig{
		matcher: matcher.Config{Pattern: pattern},
		sniff:   true,
	}
	for _, opt := range opts {
		opt(config)
	}

	m, err := matcher.New(config.matcher)
	if err != nil {
		return nil, fmt.Errorf("creating matcher: %w", err)
	}

	var regOpts []language.RegistryOption
	if config.sniff {
		regOpts = append(regOpts, language.WithSniffer(language.DefaultSniffer()))
	}
	reg, err := language.DefaultRegistry(config.languages, regOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading languages: %w", err)
	}

	cfg := search.Config{Registry: reg, Matcher: m, Unknown: search.UnknownAbort}
	if config.forced != "" {
		if cfg.Language, err = reg.ByName(config.forced); err != nil {
			return nil, err
		}
	}

	s, err := search.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Searcher{searcher: s, registry: reg}, nil
}

// SearchString searches content as if it were a file called name. The name
// only drives language resolution.
func (s *Searcher) SearchString(name, content string) (*Result, error) {
	return s.SearchBytes(name, []byte(content))
}

// SearchBytes searches content as if it were a file called name.
func (s *Searcher) SearchBytes(name string, content []byte) (*Result, error) {
	return s.searcher.SearchContent(types.FileProvenance{FilePath: name}, content)
}

// SearchFile reads and searches a file.
func (s *Searcher) SearchFile(path string) (*Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return s.SearchBytes(path, content)
}

// Languages returns the languages the Searcher resolves against, in
// resolution order.
func (s *Searcher) Languages() []*Language {
	return s.registry.Languages()
}

// LoadLanguagesFromFile loads language definitions from a YAML file for use
// with WithLanguages.
func LoadLanguagesFromFile(path string) ([]*Language, error) {
	return language.NewLoader().LoadFile(path)
}

// LoadBuiltinLanguages returns the built-in language table.
func LoadBuiltinLanguages() ([]*Language, error) {
	return language.NewLoader().LoadBuiltinLanguages()
}
