package output

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/praetorian-inc/ctxgrep/pkg/sarif"
	"github.com/praetorian-inc/ctxgrep/pkg/search"
)

// FormatSARIF selects the SARIF renderer.
const FormatSARIF = "sarif"

// Flusher is implemented by renderers that write a single document once
// every file has been rendered.
type Flusher interface {
	Flush(w io.Writer) error
}

// SARIF collects every match into one SARIF report written by Flush.
type SARIF struct {
	report *sarif.Report
}

// NewSARIF creates a SARIF renderer for a search of pattern.
func NewSARIF(toolVersion, pattern string) *SARIF {
	return &SARIF{report: sarif.NewReport(toolVersion, pattern)}
}

func (s *SARIF) Render(_ io.Writer, res *search.FileResult) error {
	for _, blk := range res.Blocks {
		end := min(blk.Window.End, len(res.Lines)-1)
		texts := make([]string, 0, end-blk.Window.Begin+1)
		for idx := blk.Window.Begin; idx <= end; idx++ {
			texts = append(texts, res.Lines[idx].Text)
		}
		context := strings.Join(texts, "\n")

		for _, m := range blk.Matches {
			text := res.Lines[m.Index].Text
			s.report.AddResult(sarif.Finding{
				Path:         res.Path,
				Line:         m.Index + 1,
				StartColumn:  utf8.RuneCountInString(text[:m.Span.Begin]) + 1,
				EndColumn:    utf8.RuneCountInString(text[:m.Span.End]) + 1,
				Match:        text[m.Span.Begin:m.Span.End],
				ContextStart: blk.Window.Begin + 1,
				ContextEnd:   end + 1,
				Context:      context,
			})
		}
	}
	return nil
}

// Flush writes the report.
func (s *SARIF) Flush(w io.Writer) error {
	data, err := s.report.ToJSON()
	if err != nil {
		return fmt.Errorf("encoding sarif report: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
