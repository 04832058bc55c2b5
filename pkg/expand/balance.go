package expand

import (
	"unicode/utf8"

	"github.com/praetorian-inc/ctxgrep/pkg/language"
	"github.com/praetorian-inc/ctxgrep/pkg/types"
)

// balance counts unmatched brackets per pair while walking away from a
// match line. Only code chunks are scanned.
type balance struct {
	pairs []language.BracketPair
	depth []int
}

func newBalance(pairs []language.BracketPair) *balance {
	return &balance{pairs: pairs, depth: make([]int, len(pairs))}
}

// pending reports whether any pair is still waiting for its partner.
func (b *balance) pending() bool {
	for _, d := range b.depth {
		if d > 0 {
			return true
		}
	}
	return false
}

// scanBackward reads the line right to left. Closers wait for an opener
// further up. It reports whether the line holds an opener with no closer
// below it, the start of an enclosing block.
func (b *balance) scanBackward(line types.Line) bool {
	unmatched := false
	for ci := len(line.Chunks) - 1; ci >= 0; ci-- {
		c := line.Chunks[ci]
		if !c.Kind.IsText() {
			continue
		}
		text := line.ChunkText(c)
		for j := len(text); j > 0; {
			r, size := utf8.DecodeLastRuneInString(text[:j])
			j -= size
			for p, pair := range b.pairs {
				switch r {
				case pair.Close:
					b.depth[p]++
				case pair.Open:
					if b.depth[p] > 0 {
						b.depth[p]--
					} else {
						unmatched = true
					}
				}
			}
		}
	}
	return unmatched
}

// scanForward reads the line left to right. Openers wait for a closer
// further down. It reports whether the line holds a closer with no opener
// above it, the end of an enclosing block.
func (b *balance) scanForward(line types.Line) bool {
	unmatched := false
	for _, c := range line.Chunks {
		if !c.Kind.IsText() {
			continue
		}
		for _, r := range line.ChunkText(c) {
			for p, pair := range b.pairs {
				switch r {
				case pair.Open:
					b.depth[p]++
				case pair.Close:
					if b.depth[p] > 0 {
						b.depth[p]--
					} else {
						unmatched = true
					}
				}
			}
		}
	}
	return unmatched
}
