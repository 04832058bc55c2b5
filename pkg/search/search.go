// Package search runs the per-file pipeline: resolve the language, lex,
// match line by line, and fold matches into display blocks.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/praetorian-inc/ctxgrep/pkg/enum"
	"github.com/praetorian-inc/ctxgrep/pkg/expand"
	"github.com/praetorian-inc/ctxgrep/pkg/language"
	"github.com/praetorian-inc/ctxgrep/pkg/matcher"
	"github.com/praetorian-inc/ctxgrep/pkg/source"
	"github.com/praetorian-inc/ctxgrep/pkg/types"
)

// Config for a Searcher.
type Config struct {
	Registry *language.Registry
	Matcher  *matcher.Matcher

	// Language, when set, is used for every file instead of resolution.
	Language *language.Language

	Unknown UnknownPolicy
	Logger  *slog.Logger
}

// FileResult is everything found in one file.
type FileResult struct {
	Path     string
	Language *language.Language
	Lines    []types.Line
	Blocks   []expand.Block

	// Highlights holds every hit on each matched line, keyed by line index.
	Highlights map[int][]types.Span
}

// MatchCount returns the number of matched lines.
func (r *FileResult) MatchCount() int {
	n := 0
	for _, b := range r.Blocks {
		n += len(b.Matches)
	}
	return n
}

// Matched reports whether the file has at least one match.
func (r *FileResult) Matched() bool {
	return len(r.Blocks) > 0
}

// Stats summarises a run.
type Stats struct {
	Files   int // files delivered by the enumerator
	Matched int // files with at least one match
	Matches int // matched lines
	Skipped int // files skipped for an unknown language
}

// Searcher applies one matcher to many files. Files are processed strictly
// one at a time.
type Searcher struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a searcher.
func New(cfg Config) (*Searcher, error) {
	if cfg.Matcher == nil {
		return nil, fmt.Errorf("matcher is required")
	}
	if cfg.Registry == nil && cfg.Language == nil {
		return nil, fmt.Errorf("a language registry or a forced language is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Searcher{cfg: cfg, logger: logger}, nil
}

// languageHinter is implemented by provenances whose display path is not
// the name to resolve a language from, such as archive members.
type languageHinter interface {
	LanguageHint() string
}

// SearchContent searches one file's content.
func (s *Searcher) SearchContent(prov types.Provenance, content []byte) (*FileResult, error) {
	path := prov.Path()

	lang, err := s.resolve(prov, content)
	if err != nil {
		return nil, err
	}

	res := &FileResult{Path: path, Language: lang}
	if !s.cfg.Matcher.MayMatch(content) {
		return res, nil
	}

	src := source.New(path, lang, content)
	res.Lines = src.Lines

	var matches []types.Match
	for i, line := range src.Lines {
		span, ok := s.cfg.Matcher.Find(line)
		if !ok {
			continue
		}
		matches = append(matches, types.NewMatch(path, i, span, types.LeadingWhitespace(line.Text)))
	}
	if len(matches) == 0 {
		return res, nil
	}

	res.Blocks = expand.New(lang, src.Lines, s.cfg.Matcher.MaxContext()).Fold(matches)
	res.Highlights = make(map[int][]types.Span, len(matches))
	for _, m := range matches {
		res.Highlights[m.Index] = s.cfg.Matcher.FindAll(src.Lines[m.Index])
	}
	return res, nil
}

func (s *Searcher) resolve(prov types.Provenance, content []byte) (*language.Language, error) {
	if s.cfg.Language != nil {
		return s.cfg.Language, nil
	}
	name := prov.Path()
	if h, ok := prov.(languageHinter); ok {
		name = h.LanguageHint()
	}
	return s.cfg.Registry.Resolve(name, content)
}

// Run searches everything the enumerator yields and hands each searched
// file to sink in enumeration order. Output already handed to sink is not
// rolled back when a later file fails.
func (s *Searcher) Run(ctx context.Context, e enum.Enumerator, sink func(*FileResult) error) (Stats, error) {
	var stats Stats
	err := e.Enumerate(ctx, func(content []byte, prov types.Provenance) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats.Files++

		res, err := s.SearchContent(prov, content)
		if err != nil {
			if errors.Is(err, language.ErrUnknownLanguage) && s.cfg.Unknown == UnknownSkip {
				s.logger.Warn("skipping file", "path", prov.Path(), "error", err)
				stats.Skipped++
				return nil
			}
			return err
		}

		if res.Matched() {
			stats.Matched++
			stats.Matches += res.MatchCount()
		}
		s.logger.Debug("searched", "path", res.Path, "language", res.Language.Name, "matches", res.MatchCount())
		return sink(res)
	})
	return stats, err
}
