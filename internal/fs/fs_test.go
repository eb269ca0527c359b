package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAFSStore(t *testing.T) {
	ctx := context.Background()
	store := NewAFSStore()
	dir := t.TempDir()

	t.Run("round trip keeps bytes", func(t *testing.T) {
		path := filepath.Join(dir, "roundtrip.txt")
		content := "first\r\nsecond\n\nlast without newline"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		got, err := store.ReadLines(ctx, path)
		require.NoError(t, err)
		assert.Len(t, got, 4)

		require.NoError(t, store.WriteLines(ctx, path, got))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, content, string(data))
	})

	t.Run("write replaces previous content", func(t *testing.T) {
		path := filepath.Join(dir, "shrink.txt")
		require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\n"), 0640))

		require.NoError(t, store.WriteLines(ctx, path, []string{"a\n"}))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "a\n", string(data))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0640), info.Mode().Perm())
	})

	t.Run("symlink target is written through", func(t *testing.T) {
		target := filepath.Join(dir, "real.ts")
		link := filepath.Join(dir, "link.ts")
		require.NoError(t, os.WriteFile(target, []byte("1\n2\n3\n4\n5\n"), 0644))
		require.NoError(t, os.Symlink(target, link))

		got, err := store.ReadLines(ctx, link)
		require.NoError(t, err)
		require.NoError(t, store.WriteLines(ctx, link, got[:2]))

		info, err := os.Lstat(link)
		require.NoError(t, err)
		assert.NotZero(t, info.Mode()&os.ModeSymlink, "link must stay a symlink")

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "1\n2\n", string(data))
	})

	t.Run("read-only file is not overwritten", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root can write read-only files")
		}
		path := filepath.Join(dir, "readonly.ts")
		require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\n"), 0444))

		got, err := store.ReadLines(ctx, path)
		require.NoError(t, err)
		err = store.WriteLines(ctx, path, got[:1])
		assert.ErrorIs(t, err, ErrFileAccess)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "a\nb\nc\n", string(data))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0444), info.Mode().Perm())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := store.ReadLines(ctx, filepath.Join(dir, "nope.txt"))
		assert.ErrorIs(t, err, ErrFileAccess)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := store.ReadLines(ctx, dir)
		assert.ErrorIs(t, err, ErrFileAccess)
	})
}

func TestPathResolver(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(second, "lib"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(second, "lib", "api.ts"), []byte("x\n"), 0644))

	r, err := NewPathResolver([]string{first, second})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(second, "lib", "api.ts"), r.Resolve("lib/api.ts"))
	assert.Equal(t, filepath.Join(first, "missing.ts"), r.Resolve("missing.ts"))
	assert.Equal(t, "/pages/AddQuestionPage.tsx", r.Resolve("/pages/AddQuestionPage.tsx"))
}

func TestPathResolverDefaultsToWorkingDir(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	r, err := NewPathResolver(nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "x.txt"), r.Resolve("x.txt"))
}
