package source

import (
	"testing"

	"github.com/praetorian-inc/ctxgrep/pkg/language"
	"github.com/praetorian-inc/ctxgrep/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	reg, err := language.DefaultRegistry(nil)
	require.NoError(t, err)
	lang, err := reg.ByName("c")
	require.NoError(t, err)

	src := New("a.c", lang, []byte("int x; /* one\ntwo */ y();\r\n"))

	require.Equal(t, 2, src.Len())
	assert.Equal(t, []string{"int x; /* one", "two */ y();"}, src.Texts())
	assert.Equal(t, types.CommentStart, src.Lines[0].Chunks[1].Kind)
	assert.True(t, src.Lines[1].ContinuesRegion())
	assert.Same(t, lang, src.Language)
}

func TestNew_Empty(t *testing.T) {
	src := New("empty.txt", &language.Language{Name: "text"}, nil)
	assert.Equal(t, 0, src.Len())
}
