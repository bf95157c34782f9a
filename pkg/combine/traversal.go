// File: pkg/combine/traversal.go
package combine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"codeprompt/pkg/ignore"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ErrInvalidRoot is returned when the scan root is not an existing directory.
var ErrInvalidRoot = errors.New("not a valid directory")

// ValidateRoot checks that root names an existing directory.
func ValidateRoot(fsys afero.Fs, root string) error {
	info, err := fsys.Stat(root)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("'%s' is %w", root, ErrInvalidRoot)
	}
	return nil
}

// Scan walks root and returns every regular file not excluded by patterns.
// Entries within each directory are visited in lexical order, so the result
// is deterministic for a given tree.
func Scan(fsys afero.Fs, root string, patterns ignore.Set, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := ValidateRoot(fsys, root); err != nil {
		return nil, err
	}

	filter := ignore.NewFilter(fsys, root, patterns)
	var files []string
	logger.Debug("Starting file traversal", zap.String("root", root), zap.Int("patternCount", patterns.Len()))

	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			return nil // Skip paths that cause errors
		}
		if info.IsDir() {
			return nil
		}
		if !isRegular(fsys, path, info) {
			logger.Debug("Skipping non-regular file", zap.String("path", path))
			return nil
		}

		if pattern, ignored := filter.MatchedPattern(path); ignored {
			logger.Debug("Skipping ignored file", zap.String("path", path), zap.String("pattern", pattern))
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		logger.Error("Error during file traversal", zap.String("root", root), zap.Error(err))
		return files, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	logger.Debug("Completed file traversal", zap.Int("fileCount", len(files)))
	return files, nil
}

// isRegular reports whether the walked entry is a regular file, following a
// symlink to its target.
func isRegular(fsys afero.Fs, path string, info fs.FileInfo) bool {
	if info.Mode()&fs.ModeSymlink == 0 {
		return info.Mode().IsRegular()
	}
	target, err := fsys.Stat(path)
	return err == nil && target.Mode().IsRegular()
}
