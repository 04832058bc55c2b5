package output

import (
	"encoding/json"
	"io"

	"github.com/praetorian-inc/ctxgrep/pkg/search"
	"github.com/praetorian-inc/ctxgrep/pkg/types"
)

type jsonFile struct {
	Path     string      `json:"path"`
	Language string      `json:"language"`
	Matches  int         `json:"matches"`
	Blocks   []jsonBlock `json:"blocks"`
}

// jsonBlock line numbers are 1-based and inclusive.
type jsonBlock struct {
	Begin int        `json:"begin"`
	End   int        `json:"end"`
	Lines []jsonLine `json:"lines"`
}

type jsonLine struct {
	Number int          `json:"number"`
	Text   string       `json:"text"`
	Match  bool         `json:"match"`
	Spans  []types.Span `json:"spans,omitempty"`
}

// JSON writes one object per matched file, one per line.
type JSON struct{}

func (JSON) Render(w io.Writer, res *search.FileResult) error {
	if !res.Matched() {
		return nil
	}

	out := jsonFile{
		Path:     res.Path,
		Language: res.Language.Name,
		Matches:  res.MatchCount(),
		Blocks:   make([]jsonBlock, 0, len(res.Blocks)),
	}
	for _, blk := range res.Blocks {
		jb := jsonBlock{Begin: blk.Window.Begin + 1, End: blk.Window.End + 1}
		for idx := blk.Window.Begin; idx <= blk.Window.End && idx < len(res.Lines); idx++ {
			spans, ok := res.Highlights[idx]
			jb.Lines = append(jb.Lines, jsonLine{
				Number: idx + 1,
				Text:   res.Lines[idx].Text,
				Match:  ok,
				Spans:  spans,
			})
		}
		out.Blocks = append(out.Blocks, jb)
	}
	return json.NewEncoder(w).Encode(out)
}
