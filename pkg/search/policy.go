package search

import "fmt"

// UnknownPolicy decides what happens to a file whose language cannot be
// resolved.
type UnknownPolicy int

const (
	// UnknownSkip logs a warning and continues with the next file.
	UnknownSkip UnknownPolicy = iota
	// UnknownAbort ends the run with the error.
	UnknownAbort
)

func (p UnknownPolicy) String() string {
	if p == UnknownAbort {
		return "abort"
	}
	return "skip"
}

// ParseUnknownPolicy parses "skip" or "abort".
func ParseUnknownPolicy(s string) (UnknownPolicy, error) {
	switch s {
	case "skip", "":
		return UnknownSkip, nil
	case "abort":
		return UnknownAbort, nil
	default:
		return UnknownSkip, fmt.Errorf("invalid unknown-language policy %q (must be skip or abort)", s)
	}
}
