package types

// ChunkKind classifies a sub-range of a line.
type ChunkKind int

const (
	// Text is code outside any comment or string region.
	Text ChunkKind = iota
	// CommentStart opens a region that is still open at end of line.
	CommentStart
	// CommentContinue lies entirely inside a region carried over from a previous line.
	CommentContinue
	// CommentEnd closes a region carried over from a previous line.
	CommentEnd
	// CommentWhole opens and closes on the same line.
	CommentWhole
)

var chunkKindNames = [...]string{
	Text:            "text",
	CommentStart:    "comment_start",
	CommentContinue: "comment_continue",
	CommentEnd:      "comment_end",
	CommentWhole:    "comment_whole",
}

func (k ChunkKind) String() string {
	if k < 0 || int(k) >= len(chunkKindNames) {
		return "unknown"
	}
	return chunkKindNames[k]
}

// MarshalText renders the kind by name in JSON output.
func (k ChunkKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsText reports whether the chunk holds code.
func (k ChunkKind) IsText() bool {
	return k == Text
}

// Chunk is byte range [Begin, End) of a line with its classification.
type Chunk struct {
	Kind  ChunkKind `json:"kind"`
	Begin int       `json:"begin"`
	End   int       `json:"end"`
}

// Len returns the chunk width in bytes.
func (c Chunk) Len() int {
	return c.End - c.Begin
}

// Line is one source line (without its terminator) and its chunks.
// The chunks are ordered, non-overlapping and cover Text exactly.
type Line struct {
	Text   string
	Chunks []Chunk
}

// ChunkText returns the text covered by c.
func (l Line) ChunkText(c Chunk) string {
	return l.Text[c.Begin:c.End]
}

// ContinuesRegion reports whether the line starts inside a region opened on
// an earlier line.
func (l Line) ContinuesRegion() bool {
	if len(l.Chunks) == 0 {
		return false
	}
	k := l.Chunks[0].Kind
	return k == CommentContinue || k == CommentEnd
}

// LeavesRegionOpen reports whether a region is still open at the end of the line.
func (l Line) LeavesRegionOpen() bool {
	if len(l.Chunks) == 0 {
		return false
	}
	k := l.Chunks[len(l.Chunks)-1].Kind
	return k == CommentStart || k == CommentContinue
}
