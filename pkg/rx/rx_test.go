package rx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	re, err := Compile(`foo\d+`, false)
	require.NoError(t, err)
	assert.Equal(t, MatchTimeout, re.MatchTimeout)

	_, err = Compile(`foo(`, false)
	assert.Error(t, err)
}

func TestCompileIgnoreCase(t *testing.T) {
	re, err := Compile(`hello`, true)
	require.NoError(t, err)

	r, ok := FindAt(re, "say HeLLo", 0)
	require.True(t, ok)
	assert.Equal(t, 4, r.Start)
	assert.Equal(t, 9, r.End)
}

func TestCompileUsesRE2Syntax(t *testing.T) {
	for _, ignoreCase := range []bool{false, true} {
		re, err := Compile(`(?P<word>ab)`, ignoreCase)
		require.NoError(t, err)
		_, ok := FindAt(re, "xAB", 0)
		assert.Equal(t, ignoreCase, ok)

		// RE2 digits are ASCII only
		re, err = Compile(`\d`, ignoreCase)
		require.NoError(t, err)
		_, ok = FindAt(re, "٣", 0)
		assert.False(t, ok)
		_, ok = FindAt(re, "3", 0)
		assert.True(t, ok)
	}
}

func TestFindAtByteOffsets(t *testing.T) {
	re := MustCompile(`bar`)

	// "héllo " is 7 bytes but 6 runes.
	r, ok := FindAt(re, "héllo bar", 0)
	require.True(t, ok)
	assert.Equal(t, 7, r.Start)
	assert.Equal(t, 10, r.End)
	assert.Equal(t, "bar", "héllo bar"[r.Start:r.End])
}

func TestFindAtRespectsStart(t *testing.T) {
	re := MustCompile(`ab`)
	r, ok := FindAt(re, "ab ab", 1)
	require.True(t, ok)
	assert.Equal(t, 3, r.Start)

	_, ok = FindAt(re, "ab ab", 4)
	assert.False(t, ok)

	_, ok = FindAt(re, "ab", 10)
	assert.False(t, ok)
}

func TestFindAtAnchorsKeepWholeStringMeaning(t *testing.T) {
	re := MustCompile(`^EOF$`)
	_, ok := FindAt(re, "x EOF", 2)
	assert.False(t, ok, "^ must not match at a non-zero start offset")

	r, ok := FindAt(re, "EOF", 0)
	require.True(t, ok)
	assert.Equal(t, 3, r.End)
}

func TestGroups(t *testing.T) {
	re := MustCompile(`<<-?(\w+)(x)?`)
	r, ok := FindAt(re, "cat <<-TAG", 0)
	require.True(t, ok)
	assert.Equal(t, []string{"TAG", ""}, Groups(r.Match))
	assert.Nil(t, Groups(nil))
}

func TestByteOffset(t *testing.T) {
	assert.Equal(t, 0, ByteOffset("héllo", 0))
	assert.Equal(t, 1, ByteOffset("héllo", 1))
	assert.Equal(t, 3, ByteOffset("héllo", 2))
	assert.Equal(t, 6, ByteOffset("héllo", 5))
	assert.Equal(t, 6, ByteOffset("héllo", 99))
}
