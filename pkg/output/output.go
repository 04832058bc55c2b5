// Package output renders search results.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/praetorian-inc/ctxgrep/pkg/search"
	"golang.org/x/term"
)

// Renderer writes one file's results.
type Renderer interface {
	Render(w io.Writer, res *search.FileResult) error
}

// Format names accepted by New.
const (
	FormatHuman = "human"
	FormatJSON  = "json"
)

// Options select and tune a renderer.
type Options struct {
	Format           string
	Color            bool
	Pattern          string
	ToolVersion      string
	Column           bool
	Count            bool
	FilesWithMatches bool
}

// New returns the renderer for opts. Count and FilesWithMatches take
// precedence over Format.
func New(opts Options) (Renderer, error) {
	switch {
	case opts.FilesWithMatches:
		return &FilesWithMatches{}, nil
	case opts.Count:
		return &Count{}, nil
	}
	switch opts.Format {
	case FormatHuman, "":
		return NewHuman(opts.Color, opts.Column), nil
	case FormatJSON:
		return &JSON{}, nil
	case FormatSARIF:
		return NewSARIF(opts.ToolVersion, opts.Pattern), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (must be human, json or sarif)", opts.Format)
	}
}

// ColorEnabled resolves a --color mode. auto enables color only when out is
// a terminal and NO_COLOR is unset. The global color.NoColor switch is set
// to match.
func ColorEnabled(mode string, out *os.File) (bool, error) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto", "":
		if out == nil || !term.IsTerminal(int(out.Fd())) || os.Getenv("NO_COLOR") != "" {
			color.NoColor = true
		} else {
			color.NoColor = false
		}
	default:
		return false, fmt.Errorf("invalid color mode %q (must be auto, always or never)", mode)
	}
	return !color.NoColor, nil
}

// Count prints "path:count" for every searched file.
type Count struct{}

func (Count) Render(w io.Writer, res *search.FileResult) error {
	_, err := fmt.Fprintf(w, "%s:%d\n", res.Path, res.MatchCount())
	return err
}

// FilesWithMatches prints the path of each file with at least one match.
type FilesWithMatches struct{}

func (FilesWithMatches) Render(w io.Writer, res *search.FileResult) error {
	if !res.Matched() {
		return nil
	}
	_, err := fmt.Fprintln(w, res.Path)
	return err
}
