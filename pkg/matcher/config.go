package matcher

import "github.com/praetorian-inc/ctxgrep/pkg/types"

// SkipMode restricts which chunks of a line are searched.
type SkipMode int

const (
	// SkipNone searches the whole line.
	SkipNone SkipMode = iota
	// SkipComments searches code only.
	SkipComments
	// SkipCode searches comments and strings only.
	SkipCode
)

func (s SkipMode) String() string {
	switch s {
	case SkipComments:
		return "skip-comments"
	case SkipCode:
		return "skip-code"
	default:
		return "none"
	}
}

// Eligible reports whether a chunk of kind k is searched under s.
func (s SkipMode) Eligible(k types.ChunkKind) bool {
	switch s {
	case SkipComments:
		return k.IsText()
	case SkipCode:
		return !k.IsText()
	default:
		return true
	}
}

// Config for matcher initialization.
type Config struct {
	// Pattern is a regular expression, or a literal string when Fixed is set.
	Pattern string
	Fixed   bool

	IgnoreCase bool
	Skip       SkipMode

	// MaxContext caps context expansion per direction (0 = unlimited).
	// The expansion engine consumes it; the matcher only carries it.
	MaxContext int
}
