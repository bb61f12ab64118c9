package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExtension is the source file suffix this driver recognizes,
// analogous to c3c's ".c3" (§6). Lumen sources use ".lm".
const SourceExtension = ".lm"

// FS is the minimal filesystem surface ExpandSourceNames needs, so
// wildcard expansion can be tested without touching the real
// filesystem.
type FS interface {
	ReadDir(path string) ([]os.DirEntry, error)
}

// OSFS is the FS backed by the real filesystem.
type OSFS struct{}

func (OSFS) ReadDir(path string) ([]os.DirEntry, error) { return os.ReadDir(path) }

// ExpandSourceNames implements the source-name expansion rules of §6:
// literal ".lm" paths pass through unchanged; "dir/*" expands to the
// ".lm" files directly inside dir (including the bare "*", meaning the
// current directory); "dir/**" expands recursively into
// subdirectories. Any other name is a fatal configuration error.
// Results are returned sorted, per directory, for deterministic
// compilation order across runs on the same inputs.
func ExpandSourceNames(fsys FS, names []string) ([]string, error) {
	var out []string
	for _, name := range names {
		switch {
		case strings.HasSuffix(name, ".lm"):
			out = append(out, name)

		case name == "**" || strings.HasSuffix(name, "/**"):
			dir := strings.TrimSuffix(name, "**")
			dir = strings.TrimSuffix(dir, "/")
			if dir == "" {
				dir = "."
			}
			found, err := expandRecursive(fsys, dir)
			if err != nil {
				return nil, fmt.Errorf("expanding %q: %w", name, err)
			}
			out = append(out, found...)

		case name == "*" || strings.HasSuffix(name, "/*"):
			dir := strings.TrimSuffix(name, "*")
			dir = strings.TrimSuffix(dir, "/")
			if dir == "" {
				dir = "."
			}
			found, err := expandOneLevel(fsys, dir)
			if err != nil {
				return nil, fmt.Errorf("expanding %q: %w", name, err)
			}
			out = append(out, found...)

		default:
			return nil, NewFatalConfigError("fatal: %q is not a %s file or a wildcard", name, SourceExtension)
		}
	}
	return out, nil
}

func expandOneLevel(fsys FS, dir string) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), SourceExtension) {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

func expandRecursive(fsys FS, dir string) ([]string, error) {
	var out []string
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var subdirs []string
	for _, e := range entries {
		if e.IsDir() {
			subdirs = append(subdirs, e.Name())
			continue
		}
		if strings.HasSuffix(e.Name(), SourceExtension) {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	sort.Strings(subdirs)
	for _, sub := range subdirs {
		nested, err := expandRecursive(fsys, filepath.Join(dir, sub))
		if err != nil {
			return nil, err
		}
		out = append(out, nested...)
	}
	return out, nil
}
