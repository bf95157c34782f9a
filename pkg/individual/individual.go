// Package individual loads and persists the curated list of files used by
// individual selection mode.
package individual

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// SourceInput names entries typed by the user rather than read from a file.
const SourceInput = "input"

// scriptHeader precedes the path list in the generated fallback script.
const scriptHeader = "#!/bin/bash\n" +
	"# Script containing file paths used for prompt generation.\n" +
	"# You can use this file as input for future runs.\n\n"

// Warning records a listed path that does not name a regular file.
type Warning struct {
	Source string // File the path was read from, or SourceInput.
	Path   string
}

func (w Warning) String() string {
	if w.Source == SourceInput {
		return fmt.Sprintf("'%s' is not a valid file", w.Path)
	}
	return fmt.Sprintf("'%s' from '%s' is not a valid file", w.Path, w.Source)
}

// Result is the outcome of loading the persisted file list.
type Result struct {
	Source   string    // File the paths came from; empty when nothing was found.
	Paths    []string  // Valid paths in file order.
	Warnings []Warning // Skipped entries across every source consulted.
}

// Found reports whether any source yielded a valid path.
func (r Result) Found() bool {
	return len(r.Paths) > 0
}

// Loader reads the primary list and, failing that, the fallback script.
type Loader struct {
	fs       afero.Fs
	primary  string
	fallback string
	logger   *zap.Logger
}

// NewLoader returns a Loader for the primary list file and fallback script.
func NewLoader(fsys afero.Fs, primary, fallback string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{fs: fsys, primary: primary, fallback: fallback, logger: logger}
}

// Load returns the paths of the first source that yields at least one valid
// file. A source that is absent or contains only invalid paths falls through
// to the next; Result.Found is false when none succeed.
func (l *Loader) Load() (Result, error) {
	var result Result

	sources := []struct {
		path        string
		skipComment bool
	}{
		{l.primary, false},
		{l.fallback, true},
	}
	for _, src := range sources {
		if src.path == "" {
			continue
		}
		lines, err := l.readLines(src.path)
		if err != nil {
			return result, err
		}
		if lines == nil {
			continue
		}

		var entries []string
		for _, line := range lines {
			if line == "" || (src.skipComment && strings.HasPrefix(line, "#")) {
				continue
			}
			entries = append(entries, line)
		}

		paths, warnings := l.validate(src.path, entries)
		result.Warnings = append(result.Warnings, warnings...)
		if len(paths) > 0 {
			result.Source = src.path
			result.Paths = paths
			l.logger.Info("Loaded file paths", zap.String("source", src.path), zap.Int("count", len(paths)))
			return result, nil
		}
		l.logger.Debug("File list contains no valid file paths", zap.String("source", src.path))
	}

	l.logger.Info("No valid file paths could be loaded from either list",
		zap.String("primary", l.primary), zap.String("fallback", l.fallback))
	return result, nil
}

// Validate checks interactively entered paths and keeps the ones naming
// regular files, in order.
func (l *Loader) Validate(entries []string) ([]string, []Warning) {
	return l.validate(SourceInput, entries)
}

// SaveScript writes paths to the fallback script so a later run can reload
// them.
func (l *Loader) SaveScript(paths []string) error {
	var b strings.Builder
	b.WriteString(scriptHeader)
	for _, p := range paths {
		b.WriteString(p)
		b.WriteByte('\n')
	}

	if err := afero.WriteFile(l.fs, l.fallback, []byte(b.String()), os.FileMode(0o644)); err != nil {
		l.logger.Error("Failed to write file list script", zap.String("filePath", l.fallback), zap.Error(err))
		return fmt.Errorf("failed to write %s: %w", l.fallback, err)
	}
	l.logger.Debug("Saved file list script", zap.String("filePath", l.fallback), zap.Int("count", len(paths)))
	return nil
}

// readLines returns the trimmed lines of path, or nil when it does not exist.
func (l *Loader) readLines(path string) ([]string, error) {
	content, err := afero.ReadFile(l.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Debug("File list does not exist", zap.String("source", path))
			return nil, nil
		}
		l.logger.Error("Failed to read file list", zap.String("source", path), zap.Error(err))
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	lines := strings.Split(string(content), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines, nil
}

func (l *Loader) validate(source string, entries []string) ([]string, []Warning) {
	var (
		paths    []string
		warnings []Warning
	)
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if IsFile(l.fs, entry) {
			paths = append(paths, entry)
			continue
		}
		w := Warning{Source: source, Path: entry}
		warnings = append(warnings, w)
		l.logger.Debug("Skipping invalid file path", zap.String("source", source), zap.String("path", entry))
	}
	return paths, warnings
}

// IsFile reports whether path names an existing regular file, following
// symlinks.
func IsFile(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
