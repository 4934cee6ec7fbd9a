package source

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheReadsOnce(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Foo.java")
	require.NoError(t, os.WriteFile(path, []byte("public class Foo {}"), 0o644))

	c, err := NewCache(4)
	require.NoError(t, err)

	for range 3 {
		src, err := c.Read(path)
		require.NoError(t, err)
		assert.Equal(t, "public class Foo {}", string(src))
	}
	assert.Equal(t, 1, c.DiskReads())
	assert.Equal(t, 1, c.Len())
}

func TestCacheEvicts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "A.java")
	b := filepath.Join(dir, "B.java")
	require.NoError(t, os.WriteFile(a, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("b"), 0o644))

	c, err := NewCache(1)
	require.NoError(t, err)

	_, err = c.Read(a)
	require.NoError(t, err)
	_, err = c.Read(b)
	require.NoError(t, err)
	_, err = c.Read(a)
	require.NoError(t, err)

	assert.Equal(t, 3, c.DiskReads())
	assert.Equal(t, 1, c.Len())
}

func TestCacheMissingFile(t *testing.T) {
	t.Parallel()

	c, err := NewCache(0)
	require.NoError(t, err)

	_, err = c.Read(filepath.Join(t.TempDir(), "missing.java"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, 0, c.Len())
}
