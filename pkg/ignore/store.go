package ignore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Store persists an ignore Set as a flat text file, one pattern per line.
type Store struct {
	fs     afero.Fs
	path   string
	logger *zap.Logger
}

// NewStore returns a Store backed by the file at path on fsys.
func NewStore(fsys afero.Fs, path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{fs: fsys, path: path, logger: logger}
}

// Path returns the location of the ignore file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the ignore file. A missing file yields an empty set.
func (s *Store) Load() (Set, error) {
	content, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("Ignore file does not exist, starting with an empty set", zap.String("filePath", s.path))
			return NewSet(), nil
		}
		s.logger.Error("Failed to read ignore file", zap.String("filePath", s.path), zap.Error(err))
		return nil, fmt.Errorf("failed to read ignore file %s: %w", s.path, err)
	}

	set := NewSet(strings.Split(string(content), "\n")...)
	s.logger.Debug("Loaded ignore patterns", zap.String("filePath", s.path), zap.Int("patternCount", set.Len()))
	return set, nil
}

// Save overwrites the ignore file with the sorted patterns of set.
func (s *Store) Save(set Set) error {
	var b strings.Builder
	for _, p := range set.Sorted() {
		b.WriteString(p)
		b.WriteByte('\n')
	}

	if err := afero.WriteFile(s.fs, s.path, []byte(b.String()), os.FileMode(0o644)); err != nil {
		s.logger.Error("Failed to write ignore file", zap.String("filePath", s.path), zap.Error(err))
		return fmt.Errorf("failed to write ignore file %s: %w", s.path, err)
	}
	s.logger.Debug("Saved ignore patterns", zap.String("filePath", s.path), zap.Int("patternCount", set.Len()))
	return nil
}
