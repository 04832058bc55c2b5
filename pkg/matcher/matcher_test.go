package matcher

import (
	"errors"
	"testing"

	"github.com/praetorian-inc/ctxgrep/pkg/language"
	"github.com/praetorian-inc/ctxgrep/pkg/lexer"
	"github.com/praetorian-inc/ctxgrep/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexLine(t *testing.T, langName, text string) types.Line {
	t.Helper()
	reg, err := language.DefaultRegistry(nil)
	require.NoError(t, err)
	lang, err := reg.ByName(langName)
	require.NoError(t, err)
	lines, _ := lexer.Lex([]string{text}, lang)
	return lines[0]
}

func mustNew(t *testing.T, cfg Config) *Matcher {
	t.Helper()
	m, err := New(cfg)
	require.NoError(t, err)
	return m
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Config{})
	assert.True(t, errors.Is(err, ErrEmptyPattern))

	_, err = New(Config{Pattern: "(unclosed"})
	assert.Error(t, err)

	// the same text is fine as a literal
	_, err = New(Config{Pattern: "(unclosed", Fixed: true})
	assert.NoError(t, err)
}

func TestFind_SkipModes(t *testing.T) {
	line := lexLine(t, "python", `call("needle")  # needle here`)

	tests := []struct {
		name      string
		skip      SkipMode
		wantBegin int
		wantHit   bool
	}{
		{"whole line", SkipNone, 6, true},
		{"code only", SkipComments, 0, false},
		{"comments and strings only", SkipCode, 6, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustNew(t, Config{Pattern: "needle", Skip: tt.skip})
			span, ok := m.Find(line)
			require.Equal(t, tt.wantHit, ok)
			if ok {
				assert.Equal(t, tt.wantBegin, span.Begin)
				assert.Equal(t, tt.wantBegin+len("needle"), span.End)
			}
		})
	}
}

func TestFind_NoStraddlingChunks(t *testing.T) {
	// "foo" + "(" is split between a string and code
	line := lexLine(t, "c", `x = "foo"(1);`)
	m := mustNew(t, Config{Pattern: `o"\(`, Skip: SkipComments})
	_, ok := m.Find(line)
	assert.False(t, ok)

	m = mustNew(t, Config{Pattern: `o"\(`})
	_, ok = m.Find(line)
	assert.True(t, ok)
}

func TestFind_PythonComments(t *testing.T) {
	m := mustNew(t, Config{Pattern: "foo", Skip: SkipComments})
	_, ok := m.Find(lexLine(t, "python", "foo()"))
	assert.True(t, ok)

	m = mustNew(t, Config{Pattern: "start", Skip: SkipComments})
	_, ok = m.Find(lexLine(t, "python", "# start"))
	assert.False(t, ok)
}

func TestFind_FixedAndIgnoreCase(t *testing.T) {
	line := types.Line{Text: "a.b and A.B", Chunks: []types.Chunk{{Kind: types.Text, Begin: 0, End: 11}}}

	m := mustNew(t, Config{Pattern: "A.B", Fixed: true})
	span, ok := m.Find(line)
	require.True(t, ok)
	assert.Equal(t, types.Span{Begin: 8, End: 11}, span)

	m = mustNew(t, Config{Pattern: "A.B", Fixed: true, IgnoreCase: true})
	span, ok = m.Find(line)
	require.True(t, ok)
	assert.Equal(t, types.Span{Begin: 0, End: 3}, span)
}

func TestFind_UnicodeOffsets(t *testing.T) {
	line := lexLine(t, "go", `s := "héllo" // wörld`)
	m := mustNew(t, Config{Pattern: "wörld", Skip: SkipCode})
	span, ok := m.Find(line)
	require.True(t, ok)
	assert.Equal(t, "wörld", line.Text[span.Begin:span.End])
}

func TestFindAll(t *testing.T) {
	line := lexLine(t, "go", `x := "ab" + ab + "ab" // ab`)

	m := mustNew(t, Config{Pattern: "ab"})
	assert.Len(t, m.FindAll(line), 4)

	m = mustNew(t, Config{Pattern: "ab", Skip: SkipComments})
	spans := m.FindAll(line)
	require.Len(t, spans, 1)
	assert.Equal(t, "ab", line.Text[spans[0].Begin:spans[0].End])
	assert.Equal(t, 12, spans[0].Begin)

	m = mustNew(t, Config{Pattern: "x*"})
	assert.NotEmpty(t, m.FindAll(types.Line{Text: "héé"}))
}

func TestMayMatch(t *testing.T) {
	m := mustNew(t, Config{Pattern: "needle", Fixed: true})
	assert.True(t, m.MayMatch([]byte("hay needle hay")))
	assert.False(t, m.MayMatch([]byte("hay hay")))

	m = mustNew(t, Config{Pattern: `func \w+`})
	assert.False(t, m.MayMatch([]byte("no functions")))
	assert.True(t, m.MayMatch([]byte("func main")))

	m = mustNew(t, Config{Pattern: `\d+`})
	assert.True(t, m.MayMatch([]byte("anything")))

	m = mustNew(t, Config{Pattern: "Needle", IgnoreCase: true})
	assert.True(t, m.MayMatch([]byte("NEEDLE")))

	m = mustNew(t, Config{Pattern: "straße", Fixed: true, IgnoreCase: true})
	assert.True(t, m.MayMatch([]byte("nothing alike")), "non-ASCII folding disables the prefilter")
}

func TestMayMatch_NumericEscapes(t *testing.T) {
	for _, pattern := range []string{`\x41BC`, `\101BC`, `\u0041BC`, `\x{41}BC`} {
		t.Run(pattern, func(t *testing.T) {
			m := mustNew(t, Config{Pattern: pattern})
			_, found := m.Find(types.Line{Text: "ABC"})
			require.True(t, found)
			assert.True(t, m.MayMatch([]byte("ABC")))
		})
	}
}

func TestSkipMode(t *testing.T) {
	assert.True(t, SkipComments.Eligible(types.Text))
	assert.False(t, SkipComments.Eligible(types.CommentWhole))
	assert.True(t, SkipCode.Eligible(types.CommentContinue))
	assert.False(t, SkipCode.Eligible(types.Text))
	assert.True(t, SkipNone.Eligible(types.CommentStart))
	assert.Equal(t, "skip-code", SkipCode.String())
}
