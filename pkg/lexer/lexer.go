// Package lexer splits source lines into code and comment/string chunks.
//
// Lexing is a left fold over the lines of a file: Split takes the region
// left open by the previous line and returns the region left open by this
// one. At most one region is ever open.
package lexer

import (
	"github.com/praetorian-inc/ctxgrep/pkg/language"
	"github.com/praetorian-inc/ctxgrep/pkg/types"
)

// Split classifies one line. carried is the region still open from the
// previous line, or nil.
func Split(line string, lang *language.Language, carried *language.Region) ([]types.Chunk, *language.Region) {
	var chunks []types.Chunk
	offset := 0

	if carried != nil {
		e, ok := carried.FindEnd(line, 0)
		if !ok {
			return []types.Chunk{{Kind: types.CommentContinue, Begin: 0, End: len(line)}}, carried
		}
		chunks = append(chunks, types.Chunk{Kind: types.CommentEnd, Begin: 0, End: e})
		offset = e
	}

	for offset < len(line) {
		open, ok := lang.Earliest(line, offset)
		if !ok {
			break
		}
		if open.Start > offset {
			chunks = append(chunks, types.Chunk{Kind: types.Text, Begin: offset, End: open.Start})
		}

		region := open.Region
		if region.EndsAtEOL() {
			chunks = append(chunks, types.Chunk{Kind: types.CommentWhole, Begin: open.Start, End: len(line)})
			return chunks, nil
		}

		e, found := region.FindEnd(line, open.BodyStart)
		if found {
			chunks = append(chunks, types.Chunk{Kind: types.CommentWhole, Begin: open.Start, End: e})
			offset = e
			continue
		}
		if region.Multiline() {
			chunks = append(chunks, types.Chunk{Kind: types.CommentStart, Begin: open.Start, End: len(line)})
			return chunks, region
		}
		// unterminated single-line string runs to end of line
		chunks = append(chunks, types.Chunk{Kind: types.CommentWhole, Begin: open.Start, End: len(line)})
		return chunks, nil
	}

	if offset < len(line) || len(chunks) == 0 {
		chunks = append(chunks, types.Chunk{Kind: types.Text, Begin: offset, End: len(line)})
	}
	return chunks, nil
}

// Lex splits every line in order and returns the lexed lines together
// with the region still open after the last line.
func Lex(lines []string, lang *language.Language) ([]types.Line, *language.Region) {
	out := make([]types.Line, len(lines))
	var carried *language.Region
	for i, text := range lines {
		var chunks []types.Chunk
		chunks, carried = Split(text, lang, carried)
		out[i] = types.Line{Text: text, Chunks: chunks}
	}
	return out, carried
}
