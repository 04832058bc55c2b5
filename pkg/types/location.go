package types

// Span is byte range [Begin, End) within a single line - half-open interval.
type Span struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

// Empty reports whether the span covers no bytes.
func (s Span) Empty() bool {
	return s.End <= s.Begin
}

// Window is an inclusive range of 0-based line indexes chosen for display.
type Window struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

// Contains reports whether line index i falls inside the window.
func (w Window) Contains(i int) bool {
	return i >= w.Begin && i <= w.End
}

// Len returns the number of lines in the window.
func (w Window) Len() int {
	return w.End - w.Begin + 1
}
