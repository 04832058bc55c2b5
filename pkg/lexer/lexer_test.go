package lexer

import (
	"strings"
	"testing"

	"github.com/praetorian-inc/ctxgrep/pkg/language"
	"github.com/praetorian-inc/ctxgrep/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builtin(t *testing.T, name string) *language.Language {
	t.Helper()
	reg, err := language.DefaultRegistry(nil)
	require.NoError(t, err)
	lang, err := reg.ByName(name)
	require.NoError(t, err)
	return lang
}

type piece struct {
	kind types.ChunkKind
	text string
}

func pieces(line string, chunks []types.Chunk) []piece {
	out := make([]piece, len(chunks))
	for i, c := range chunks {
		out[i] = piece{c.Kind, line[c.Begin:c.End]}
	}
	return out
}

func assertPartition(t *testing.T, line string, chunks []types.Chunk) {
	t.Helper()
	require.NotEmpty(t, chunks)
	pos := 0
	var b strings.Builder
	for _, c := range chunks {
		assert.Equal(t, pos, c.Begin, "chunks must be contiguous")
		assert.LessOrEqual(t, c.Begin, c.End)
		b.WriteString(line[c.Begin:c.End])
		pos = c.End
	}
	assert.Equal(t, len(line), pos)
	assert.Equal(t, line, b.String())
}

func TestSplit_C(t *testing.T) {
	c := builtin(t, "c")

	tests := []struct {
		name string
		line string
		want []piece
		open bool
	}{
		{
			name: "plain code",
			line: "int x = 1;",
			want: []piece{{types.Text, "int x = 1;"}},
		},
		{
			name: "line comment",
			line: "x++; // bump",
			want: []piece{{types.Text, "x++; "}, {types.CommentWhole, "// bump"}},
		},
		{
			name: "two block comments",
			line: "a /* b */ c /* d */ e",
			want: []piece{
				{types.Text, "a "},
				{types.CommentWhole, "/* b */"},
				{types.Text, " c "},
				{types.CommentWhole, "/* d */"},
				{types.Text, " e"},
			},
		},
		{
			name: "unterminated block comment",
			line: "f(); /* starts",
			want: []piece{{types.Text, "f(); "}, {types.CommentStart, "/* starts"}},
			open: true,
		},
		{
			name: "escaped quote stays in string",
			line: `s = "say \"hi\" // not a comment";`,
			want: []piece{
				{types.Text, "s = "},
				{types.CommentWhole, `"say \"hi\" // not a comment"`},
				{types.Text, ";"},
			},
		},
		{
			name: "escaped backslash ends string",
			line: `p = "C:\\"; q = 1;`,
			want: []piece{
				{types.Text, "p = "},
				{types.CommentWhole, `"C:\\"`},
				{types.Text, "; q = 1;"},
			},
		},
		{
			name: "unterminated string runs to end of line",
			line: `puts("oops`,
			want: []piece{{types.Text, "puts("}, {types.CommentWhole, `"oops`}},
		},
		{
			name: "comment opener inside string",
			line: `x = "/*"; y`,
			want: []piece{{types.Text, "x = "}, {types.CommentWhole, `"/*"`}, {types.Text, "; y"}},
		},
		{
			name: "empty line",
			line: "",
			want: []piece{{types.Text, ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, carried := Split(tt.line, c, nil)
			assertPartition(t, tt.line, chunks)
			assert.Equal(t, tt.want, pieces(tt.line, chunks))
			assert.Equal(t, tt.open, carried != nil)
		})
	}
}

func TestSplit_CarriedRegion(t *testing.T) {
	c := builtin(t, "c")

	_, carried := Split("a(); /* open", c, nil)
	require.NotNil(t, carried)

	chunks, still := Split("   still inside", c, carried)
	assert.Equal(t, []piece{{types.CommentContinue, "   still inside"}}, pieces("   still inside", chunks))
	assert.Same(t, carried, still)

	line := "done */ b(); /* again */"
	chunks, after := Split(line, c, carried)
	assertPartition(t, line, chunks)
	assert.Equal(t, []piece{
		{types.CommentEnd, "done */"},
		{types.Text, " b(); "},
		{types.CommentWhole, "/* again */"},
	}, pieces(line, chunks))
	assert.Nil(t, after)
}

func TestSplit_LongestDelimiterWins(t *testing.T) {
	py := builtin(t, "python")

	line := `x = """doc`
	chunks, carried := Split(line, py, nil)
	assert.Equal(t, []piece{{types.Text, "x = "}, {types.CommentStart, `"""doc`}}, pieces(line, chunks))
	require.NotNil(t, carried)

	chunks, carried = Split(`more""" + y`, py, carried)
	assert.Equal(t, []piece{{types.CommentEnd, `more"""`}, {types.Text, " + y"}}, pieces(`more""" + y`, chunks))
	assert.Nil(t, carried)
}

func TestLex_HeredocPerOccurrence(t *testing.T) {
	sh := builtin(t, "shell")
	lines := []string{
		"cat <<EOF",
		"FOO inside first",
		"EOF",
		"cat <<-'FOO'",
		"  EOF is not my end",
		"  FOO",
		"echo after",
	}

	lexed, carried := Lex(lines, sh)
	require.Len(t, lexed, len(lines))
	assert.Nil(t, carried)

	kinds := func(i int) []types.ChunkKind {
		var out []types.ChunkKind
		for _, c := range lexed[i].Chunks {
			out = append(out, c.Kind)
		}
		return out
	}
	assert.Equal(t, []types.ChunkKind{types.Text, types.CommentStart}, kinds(0))
	assert.Equal(t, []types.ChunkKind{types.CommentContinue}, kinds(1))
	assert.Equal(t, []types.ChunkKind{types.CommentEnd}, kinds(2))
	assert.Equal(t, []types.ChunkKind{types.Text, types.CommentStart}, kinds(3))
	assert.Equal(t, []types.ChunkKind{types.CommentContinue}, kinds(4))
	assert.Equal(t, []types.ChunkKind{types.CommentEnd}, kinds(5))
	assert.Equal(t, []types.ChunkKind{types.Text}, kinds(6))
}

func TestLex_RawStrings(t *testing.T) {
	rs := builtin(t, "rust")
	lines := []string{
		`let s = r#"has "quotes"`,
		`and " ends"#; let c = '"';`,
		`fn f<'a>(x: &'a str) {}`,
	}
	lexed, carried := Lex(lines, rs)
	assert.Nil(t, carried)

	assert.Equal(t, []piece{
		{types.Text, "let s = "},
		{types.CommentStart, `r#"has "quotes"`},
	}, pieces(lines[0], lexed[0].Chunks))
	assert.Equal(t, []piece{
		{types.CommentEnd, `and " ends"#`},
		{types.Text, "; let c = "},
		{types.CommentWhole, `'"'`},
		{types.Text, ";"},
	}, pieces(lines[1], lexed[1].Chunks))
	assert.Equal(t, []piece{{types.Text, lines[2]}}, pieces(lines[2], lexed[2].Chunks))
}

func TestLex_SQLDoubledQuote(t *testing.T) {
	sql := builtin(t, "sql")
	line := `SELECT 'it''s' -- note`
	lexed, _ := Lex([]string{line}, sql)
	assert.Equal(t, []piece{
		{types.Text, "SELECT "},
		{types.CommentWhole, `'it''s'`},
		{types.Text, " "},
		{types.CommentWhole, "-- note"},
	}, pieces(line, lexed[0].Chunks))
}

func TestLex_LuaLongComment(t *testing.T) {
	lua := builtin(t, "lua")
	lines := []string{
		"x = 1 --[==[ long",
		"]] not yet",
		"]==] y = 2",
	}
	lexed, carried := Lex(lines, lua)
	assert.Nil(t, carried)
	assert.Equal(t, types.CommentStart, lexed[0].Chunks[1].Kind)
	assert.Equal(t, []types.Chunk{{Kind: types.CommentContinue, Begin: 0, End: len(lines[1])}}, lexed[1].Chunks)
	assert.Equal(t, []piece{{types.CommentEnd, "]==]"}, {types.Text, " y = 2"}}, pieces(lines[2], lexed[2].Chunks))
}

// At most one region is carried and every line is partitioned, across all
// built-in languages and a mix of tricky inputs.
func TestLex_PartitionAllLanguages(t *testing.T) {
	reg, err := language.DefaultRegistry(nil)
	require.NoError(t, err)

	input := []string{
		`/* a */ "b\"" 'c' # d -- e`,
		`{- f <!-- g """ h ''' i`,
		"` j <<EOF r#\" k",
		`--[[ l ]] =begin m`,
		"",
		`EOF */ -} --> """ ''' "# ]]`,
		`\`,
		"plain",
	}
	for _, lang := range reg.Languages() {
		t.Run(lang.Name, func(t *testing.T) {
			lexed, _ := Lex(input, lang)
			for i, l := range lexed {
				assertPartition(t, input[i], l.Chunks)
			}
		})
	}
}
