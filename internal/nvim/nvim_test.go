package nvim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferLineConversion(t *testing.T) {
	t.Run("terminated lines", func(t *testing.T) {
		raw, eol, dos := toBufferLines([]string{"a\n", "b\n"})
		assert.True(t, eol)
		assert.False(t, dos)
		assert.Equal(t, [][]byte{[]byte("a"), []byte("b")}, raw)
		assert.Equal(t, []string{"a\n", "b\n"}, fromBufferLines(raw, eol, dos))
	})

	t.Run("missing final newline", func(t *testing.T) {
		raw, eol, dos := toBufferLines([]string{"a\n", "b"})
		assert.False(t, eol)
		assert.Equal(t, []string{"a\n", "b"}, fromBufferLines(raw, eol, dos))
	})

	t.Run("crlf file becomes a dos buffer", func(t *testing.T) {
		raw, eol, dos := toBufferLines([]string{"a\r\n", "b\r\n", "c"})
		assert.True(t, dos)
		assert.False(t, eol)
		assert.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, raw)
		assert.Equal(t, []string{"a\r\n", "b\r\n", "c"}, fromBufferLines(raw, eol, dos))
	})

	t.Run("mixed endings keep the carriage return", func(t *testing.T) {
		raw, eol, dos := toBufferLines([]string{"a\r\n", "b\n"})
		assert.False(t, dos)
		assert.True(t, eol)
		assert.Equal(t, [][]byte{[]byte("a\r"), []byte("b")}, raw)
	})

	t.Run("empty buffer", func(t *testing.T) {
		assert.Empty(t, fromBufferLines([][]byte{{}}, true, false))
	})
}

func TestEscapePath(t *testing.T) {
	assert.Equal(t, `/tmp/my\ file\#1.ts`, escapePath("/tmp/my file#1.ts"))
}
