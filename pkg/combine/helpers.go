// File: pkg/combine/helpers.go
package combine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ensureDirectory ensures the parent directory of path exists.
func ensureDirectory(fsys afero.Fs, path string, logger *zap.Logger) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := fsys.MkdirAll(dir, os.ModePerm); err != nil {
		logger.Error("Failed to create directory", zap.String("path", dir), zap.Error(err))
		return err
	}
	logger.Debug("Ensured directory exists", zap.String("path", dir))
	return nil
}

// writeToFile overwrites path with data, creating parent directories.
func writeToFile(fsys afero.Fs, path string, data []byte, logger *zap.Logger) error {
	if err := ensureDirectory(fsys, path, logger); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		logger.Error("Failed to write file", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Successfully wrote file", zap.String("path", path), zap.Int("sizeBytes", len(data)))
	return nil
}
