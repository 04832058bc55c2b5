package types

// Match is a single pattern hit and its display window.
type Match struct {
	Path  string `json:"path"`
	Index int    `json:"index"` // 0-based line index
	Span  Span   `json:"span"`

	// Indent is the exact leading whitespace of the matched line.
	Indent string `json:"-"`

	// ContextBegin and ContextEnd bound the display window (inclusive).
	// Both start at Index and are adjusted by context expansion.
	ContextBegin int `json:"context_begin"`
	ContextEnd   int `json:"context_end"`
}

// NewMatch creates a match whose window is the matched line alone.
func NewMatch(path string, index int, span Span, indent string) Match {
	return Match{
		Path:         path,
		Index:        index,
		Span:         span,
		Indent:       indent,
		ContextBegin: index,
		ContextEnd:   index,
	}
}

// Window returns the match's display window.
func (m Match) Window() Window {
	return Window{Begin: m.ContextBegin, End: m.ContextEnd}
}
