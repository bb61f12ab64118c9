package driver

import (
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeDirEntry struct {
	name  string
	isDir bool
}

func (f fakeDirEntry) Name() string               { return f.name }
func (f fakeDirEntry) IsDir() bool                 { return f.isDir }
func (f fakeDirEntry) Type() fs.FileMode           { return 0 }
func (f fakeDirEntry) Info() (fs.FileInfo, error)  { return fakeFileInfo(f), nil }

type fakeFileInfo fakeDirEntry

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return 0 }
func (f fakeFileInfo) Mode() fs.FileMode  { return 0 }
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return f.isDir }
func (f fakeFileInfo) Sys() any           { return nil }

type fakeFS map[string][]fakeDirEntry

func (fsys fakeFS) ReadDir(path string) ([]fs.DirEntry, error) {
	entries, ok := fsys[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	out := make([]fs.DirEntry, len(entries))
	for i, e := range entries {
		out[i] = e
	}
	return out, nil
}

func TestExpandSourceNamesLiteral(t *testing.T) {
	out, err := ExpandSourceNames(fakeFS{}, []string{"main.lm"})
	require.NoError(t, err)
	require.Equal(t, []string{"main.lm"}, out)
}

func TestExpandSourceNamesRejectsNonLmNonWildcard(t *testing.T) {
	_, err := ExpandSourceNames(fakeFS{}, []string{"README.md"})
	require.Error(t, err)
}

func TestExpandSourceNamesOneLevelWildcard(t *testing.T) {
	fsys := fakeFS{
		"pkg": {
			{name: "b.lm"},
			{name: "a.lm"},
			{name: "notes.txt"},
			{name: "sub", isDir: true},
		},
	}
	out, err := ExpandSourceNames(fsys, []string{"pkg/*"})
	require.NoError(t, err)
	require.Equal(t, []string{"pkg/a.lm", "pkg/b.lm"}, out)
}

func TestExpandSourceNamesBareStar(t *testing.T) {
	fsys := fakeFS{
		".": {{name: "main.lm"}},
	}
	out, err := ExpandSourceNames(fsys, []string{"*"})
	require.NoError(t, err)
	require.Equal(t, []string{"main.lm"}, out)
}

func TestExpandSourceNamesRecursiveWildcard(t *testing.T) {
	fsys := fakeFS{
		"pkg":     {{name: "a.lm"}, {name: "sub", isDir: true}},
		"pkg/sub": {{name: "b.lm"}},
	}
	out, err := ExpandSourceNames(fsys, []string{"pkg/**"})
	require.NoError(t, err)
	require.Equal(t, []string{"pkg/a.lm", "pkg/sub/b.lm"}, out)
}

func TestExpandSourceNamesBareDoubleStar(t *testing.T) {
	fsys := fakeFS{
		".":   {{name: "main.lm"}, {name: "sub", isDir: true}},
		"sub": {{name: "helper.lm"}},
	}
	out, err := ExpandSourceNames(fsys, []string{"**"})
	require.NoError(t, err)
	require.Equal(t, []string{"main.lm", "sub/helper.lm"}, out)
}
