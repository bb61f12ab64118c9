package driver

import (
	"os"
)

// FileSourceLoader loads sources from the real filesystem. Load is
// idempotent per path: the second Load of the same path reports
// alreadyLoaded=true and returns the same FileHandle (the path itself)
// without touching the filesystem again.
type FileSourceLoader struct {
	seen map[string]struct{}
}

// NewFileSourceLoader creates a loader with an empty already-loaded set.
func NewFileSourceLoader() *FileSourceLoader {
	return &FileSourceLoader{seen: map[string]struct{}{}}
}

func (l *FileSourceLoader) Load(path string) (FileHandle, bool, error) {
	if _, ok := l.seen[path]; ok {
		return path, true, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, false, err
	}
	l.seen[path] = struct{}{}
	return path, false, nil
}

// InMemorySourceLoader serves sources from an in-process map, used in
// tests and by embedders that synthesize sources rather than reading
// files (e.g. the standard library bundled into the binary).
type InMemorySourceLoader struct {
	files map[string][]byte
	seen  map[string]struct{}
}

// NewInMemorySourceLoader creates an empty loader.
func NewInMemorySourceLoader() *InMemorySourceLoader {
	return &InMemorySourceLoader{files: map[string][]byte{}, seen: map[string]struct{}{}}
}

// Add registers content under path, available to later Load calls.
func (l *InMemorySourceLoader) Add(path string, content []byte) {
	l.files[path] = content
}

func (l *InMemorySourceLoader) Load(path string) (FileHandle, bool, error) {
	if _, ok := l.seen[path]; ok {
		return path, true, nil
	}
	if _, ok := l.files[path]; !ok {
		return nil, false, os.ErrNotExist
	}
	l.seen[path] = struct{}{}
	return path, false, nil
}

// Content returns the bytes registered under path, if any.
func (l *InMemorySourceLoader) Content(path string) ([]byte, bool) {
	b, ok := l.files[path]
	return b, ok
}
