package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileSourceLoaderIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.lm")
	require.NoError(t, os.WriteFile(path, []byte("fn main() {}"), 0644))

	l := NewFileSourceLoader()
	_, already, err := l.Load(path)
	require.NoError(t, err)
	require.False(t, already)

	_, already, err = l.Load(path)
	require.NoError(t, err)
	require.True(t, already)
}

func TestFileSourceLoaderMissingFile(t *testing.T) {
	l := NewFileSourceLoader()
	_, _, err := l.Load("/does/not/exist.lm")
	require.Error(t, err)
}

func TestInMemorySourceLoaderIdempotent(t *testing.T) {
	l := NewInMemorySourceLoader()
	l.Add("main.lm", []byte("fn main() {}"))

	_, already, err := l.Load("main.lm")
	require.NoError(t, err)
	require.False(t, already)

	_, already, err = l.Load("main.lm")
	require.NoError(t, err)
	require.True(t, already)
}

func TestInMemorySourceLoaderMissing(t *testing.T) {
	l := NewInMemorySourceLoader()
	_, _, err := l.Load("missing.lm")
	require.Error(t, err)
}
