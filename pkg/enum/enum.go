package enum

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/praetorian-inc/ctxgrep/pkg/types"
)

// Callback receives each file's full content and where it came from.
type Callback func(content []byte, prov types.Provenance) error

// Enumerator discovers content to search. Files are delivered one at a
// time, in a stable order.
type Enumerator interface {
	Enumerate(ctx context.Context, callback Callback) error
}

// Config for enumeration.
type Config struct {
	// Paths are the files and directories named on the command line.
	Paths []string

	// Recursive descends into directories. Without it directories are
	// skipped with a warning.
	Recursive bool

	// FollowSymlinks follows symbolic links while recursing.
	FollowSymlinks bool

	// IncludeHidden includes hidden files/directories (starting with .).
	IncludeHidden bool

	// NoIgnore disables .gitignore handling.
	NoIgnore bool

	// Excludes are glob patterns matched against the base name and the
	// slash-separated path relative to the search root.
	Excludes []string

	// MaxFileSize is the maximum file size to process (0 = no limit).
	MaxFileSize int64

	// ExtractArchives enables searching inside archives and documents
	// (comma-separated: zip,jar,7z,xlsx,docx,pdf or 'all').
	ExtractArchives string

	Logger *slog.Logger
}

// Validate checks the exclude patterns.
func (c Config) Validate() error {
	for _, p := range c.Excludes {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("max file size must not be negative")
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// excluded reports whether a path matches an exclude pattern, either by
// base name or by its path relative to the search root.
func (c Config) excluded(name, rel string) bool {
	for _, p := range c.Excludes {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
