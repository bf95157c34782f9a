package ignore

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Filter decides whether files found under a scan root are excluded by a set
// of ignore patterns.
//
// Matching is a raw string prefix test, not a path-segment test: the relative
// pattern "src" excludes both "src/main.go" and "src2/main.go".
type Filter struct {
	root     string
	absolute []string // Patterns compared against the resolved absolute path.
	relative []string // Patterns compared against the root-relative slash path.
	resolve  func(string) string
}

// NewFilter compiles patterns for files under root. Symlinks are only
// resolved when fsys is the OS filesystem.
func NewFilter(fsys afero.Fs, root string, patterns Set) *Filter {
	f := &Filter{root: root, resolve: absPath}
	if _, ok := fsys.(*afero.OsFs); ok {
		f.resolve = realPath
	}
	for _, p := range patterns.Sorted() {
		if filepath.IsAbs(p) {
			f.absolute = append(f.absolute, p)
		} else {
			f.relative = append(f.relative, p)
		}
	}
	return f
}

// ShouldIgnore reports whether path, a file under root on the OS filesystem,
// matches any of the patterns.
func ShouldIgnore(path, root string, patterns Set) bool {
	return NewFilter(afero.NewOsFs(), root, patterns).ShouldIgnore(path)
}

// ShouldIgnore reports whether path is excluded. Paths outside the root are
// always excluded.
func (f *Filter) ShouldIgnore(path string) bool {
	_, ignored := f.MatchedPattern(path)
	return ignored
}

// MatchedPattern returns the first pattern that excludes path. For a path
// outside the root it returns an empty pattern and true.
func (f *Filter) MatchedPattern(path string) (string, bool) {
	rel, ok := RelativePath(f.root, path)
	if !ok {
		return "", true
	}

	if len(f.absolute) > 0 {
		abs := f.resolve(path)
		for _, p := range f.absolute {
			if strings.HasPrefix(abs, p) {
				return p, true
			}
		}
	}
	for _, p := range f.relative {
		if strings.HasPrefix(rel, p) {
			return p, true
		}
	}
	return "", false
}

// RelativePath returns path relative to root with forward slashes. It reports
// false when path does not lie under root.
func RelativePath(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func realPath(path string) string {
	abs := absPath(path)
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
