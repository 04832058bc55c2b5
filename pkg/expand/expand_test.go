package expand

import (
	"strings"
	"testing"

	"github.com/praetorian-inc/ctxgrep/pkg/language"
	"github.com/praetorian-inc/ctxgrep/pkg/lexer"
	"github.com/praetorian-inc/ctxgrep/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setup lexes content and returns an expander plus a match for every line
// containing needle.
func setup(t *testing.T, langName, content, needle string, maxContext int) (*Expander, []types.Match) {
	t.Helper()
	reg, err := language.DefaultRegistry(nil)
	require.NoError(t, err)
	lang, err := reg.ByName(langName)
	require.NoError(t, err)

	lines, _ := lexer.Lex(types.SplitLines([]byte(content)), lang)
	var matches []types.Match
	for i, l := range lines {
		if idx := strings.Index(l.Text, needle); idx >= 0 {
			span := types.Span{Begin: idx, End: idx + len(needle)}
			matches = append(matches, types.NewMatch("f", i, span, types.LeadingWhitespace(l.Text)))
		}
	}
	return New(lang, lines, maxContext), matches
}

func windows(blocks []Block) []types.Window {
	out := make([]types.Window, len(blocks))
	for i, b := range blocks {
		out[i] = b.Window
	}
	return out
}

func TestMerge(t *testing.T) {
	prev := types.Window{Begin: 2, End: 5}

	w, ok := Merge(prev, 4)
	assert.True(t, ok)
	assert.Equal(t, prev, w)

	w, ok = Merge(prev, 6)
	assert.True(t, ok)
	assert.Equal(t, types.Window{Begin: 2, End: 6}, w)

	w, ok = Merge(prev, 7)
	assert.False(t, ok)
	assert.Equal(t, prev, w)
}

func TestFold(t *testing.T) {
	tests := []struct {
		name       string
		lang       string
		content    string
		needle     string
		maxContext int
		want       []types.Window
	}{
		{
			name:    "enclosing parens",
			lang:    "c",
			content: "foo(\n  bar,\n  baz\n)\n",
			needle:  "bar",
			want:    []types.Window{{Begin: 0, End: 3}},
		},
		{
			name: "enclosing function body",
			lang: "go",
			content: "func f() {\n" +
				"\tif x {\n" +
				"\t\ta()\n" +
				"\t}\n" +
				"\tneedle()\n" +
				"}\n" +
				"func g() {}\n",
			needle: "needle",
			want:   []types.Window{{Begin: 0, End: 5}},
		},
		{
			name:    "block opened on the match line",
			lang:    "go",
			content: "x := 1\nif needle {\n\ty()\n}\nz := 2\n",
			needle:  "needle",
			want:    []types.Window{{Begin: 1, End: 3}},
		},
		{
			name:    "top-level lines stay alone",
			lang:    "python",
			content: "# start\nfoo()\n# end\n",
			needle:  "foo",
			want:    []types.Window{{Begin: 1, End: 1}},
		},
		{
			name:    "distant matches stay separate",
			lang:    "text",
			content: "a needle\nb\nc\nd\ne needle\n",
			needle:  "needle",
			want:    []types.Window{{Begin: 0, End: 0}, {Begin: 4, End: 4}},
		},
		{
			name:    "adjacent matches merge",
			lang:    "text",
			content: "x\nneedle one\nneedle two\ny\n",
			needle:  "needle",
			want:    []types.Window{{Begin: 1, End: 2}},
		},
		{
			name:    "open comment above and below",
			lang:    "c",
			content: "int x;\n/* start\nneedle\nend */\nint y;\n",
			needle:  "needle",
			want:    []types.Window{{Begin: 1, End: 3}},
		},
		{
			name:    "continuation lines",
			lang:    "shell",
			content: "a=1\ncmd --one \\\nneedle \\\n--three\nb=2\n",
			needle:  "needle",
			want:    []types.Window{{Begin: 1, End: 3}},
		},
		{
			name: "indentation header",
			lang: "python",
			content: "class A:\n" +
				"    def f(self):\n" +
				"        x = 1\n" +
				"        needle()\n" +
				"    def g(self):\n" +
				"        pass\n",
			needle: "needle",
			want:   []types.Window{{Begin: 1, End: 3}},
		},
		{
			name:    "closing line is not a header",
			lang:    "go",
			content: "func f() {\n\tif a {\n\t\tb()\n}\n\tneedle()\n",
			needle:  "needle",
			want:    []types.Window{{Begin: 4, End: 4}},
		},
		{
			name:    "brackets inside strings are ignored",
			lang:    "c",
			content: "int a;\nputs(\")\");\nneedle();\nputs(\"(\");\nint b;\n",
			needle:  "needle",
			want:    []types.Window{{Begin: 2, End: 2}},
		},
		{
			name:    "backward floor is the previous block",
			lang:    "text",
			content: "needle\na\nb\nneedle )\n",
			needle:  "needle",
			want:    []types.Window{{Begin: 0, End: 0}, {Begin: 1, End: 3}},
		},
		{
			name:       "max context caps unbalanced brackets",
			lang:       "text",
			content:    strings.Repeat("a\n", 10) + "needle ))) (((\n" + strings.Repeat("b\n", 10),
			needle:     "needle",
			maxContext: 3,
			want:       []types.Window{{Begin: 7, End: 13}},
		},
		{
			name:    "unbalanced brackets run to file bounds",
			lang:    "text",
			content: strings.Repeat("a\n", 10) + "needle ))) (((\n" + strings.Repeat("b\n", 10),
			needle:  "needle",
			want:    []types.Window{{Begin: 0, End: 20}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, matches := setup(t, tt.lang, tt.content, tt.needle, tt.maxContext)
			require.NotEmpty(t, matches)
			assert.Equal(t, tt.want, windows(e.Fold(matches)))
		})
	}
}

func TestFold_MergedMatchWindows(t *testing.T) {
	e, matches := setup(t, "text", "x\nneedle one\nneedle two\ny\n", "needle", 0)
	blocks := e.Fold(matches)
	require.Len(t, blocks, 1)
	require.Len(t, blocks[0].Matches, 2)

	first, second := blocks[0].Matches[0], blocks[0].Matches[1]
	assert.Equal(t, types.Window{Begin: 1, End: 2}, first.Window())
	assert.Equal(t, types.Window{Begin: 1, End: 2}, second.Window())
}

func TestFold_MatchAbsorbedByExpandedBlock(t *testing.T) {
	content := "func f() {\n\tneedle(1)\n\tx()\n\tneedle(2)\n}\n"
	e, matches := setup(t, "go", content, "needle", 0)
	require.Len(t, matches, 2)

	blocks := e.Fold(matches)
	require.Len(t, blocks, 1)
	assert.Equal(t, types.Window{Begin: 0, End: 4}, blocks[0].Window)
	assert.Len(t, blocks[0].Matches, 2)
}

func TestFold_WindowsNeverRegress(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 60; i++ {
		switch i % 7 {
		case 0:
			b.WriteString("func f() {\n")
		case 3:
			b.WriteString("\tneedle(\n")
		case 4:
			b.WriteString("\t)\n")
		case 6:
			b.WriteString("}\n")
		default:
			b.WriteString("\tneedle /* c\n")
		}
	}
	for _, maxContext := range []int{0, 1, 2, 5} {
		e, matches := setup(t, "go", b.String(), "needle", maxContext)
		blocks := e.Fold(matches)
		require.NotEmpty(t, blocks)

		for i, blk := range blocks {
			assert.LessOrEqual(t, blk.Window.Begin, blk.Window.End)
			for _, m := range blk.Matches {
				assert.True(t, blk.Window.Contains(m.Index))
			}
			if i > 0 {
				assert.Greater(t, blk.Window.Begin, blocks[i-1].Window.End)
			}
			if maxContext > 0 {
				first := blk.Matches[0].Index
				assert.GreaterOrEqual(t, blk.Window.Begin, first-maxContext)
			}
		}
	}
}

func TestExpand_OutOfRange(t *testing.T) {
	e := New(&language.Language{Name: "text"}, nil, 0)
	assert.Equal(t, types.Window{Begin: 3, End: 3}, e.Expand(3, 0))
}

func TestBalance(t *testing.T) {
	pairs := []language.BracketPair{{Open: '(', Close: ')'}, {Open: '{', Close: '}'}}
	line := func(s string) types.Line {
		return types.Line{Text: s, Chunks: []types.Chunk{{Kind: types.Text, Begin: 0, End: len(s)}}}
	}

	b := newBalance(pairs)
	assert.False(t, b.scanBackward(line("f(x)")))
	assert.False(t, b.pending())
	assert.False(t, b.scanBackward(line("})")))
	assert.True(t, b.pending())
	assert.False(t, b.scanBackward(line("{")))
	assert.True(t, b.pending(), "paren still open")
	assert.True(t, b.scanBackward(line("h( {")), "extra opener encloses")

	b = newBalance(pairs)
	assert.False(t, b.scanForward(line("if (a) {")))
	assert.True(t, b.pending())
	assert.True(t, b.scanForward(line("} )")), "the paren closes something above")
	assert.False(t, b.pending())
}
