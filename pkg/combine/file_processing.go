package combine

import (
	"context"
	"fmt"

	"codeprompt/pkg/ignore"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// BulkSources pairs scanned paths with their root-relative slash identifiers.
func BulkSources(root string, paths []string) []Source {
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		id, ok := ignore.RelativePath(root, p)
		if !ok {
			id = p
		}
		sources = append(sources, Source{Path: p, ID: id})
	}
	return sources
}

// IndividualSources uses each path exactly as supplied as its identifier.
func IndividualSources(paths []string) []Source {
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		sources = append(sources, Source{Path: p, ID: p})
	}
	return sources
}

// Capture reads every source in order. Files that cannot be read are
// returned as failures and left out of the entries; reporting them is up to
// the caller.
func Capture(ctx context.Context, fsys afero.Fs, sources []Source, logger *zap.Logger) ([]FileEntry, []ReadFailure, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	entries := make([]FileEntry, 0, len(sources))
	var failures []ReadFailure
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return entries, failures, err
		}

		entry, err := ProcessSingleFile(fsys, src, logger)
		if err != nil {
			failures = append(failures, ReadFailure{Path: src.Path, Err: err})
			continue
		}
		entries = append(entries, entry)
	}
	return entries, failures, nil
}

// ProcessSingleFile reads the content of a single source.
func ProcessSingleFile(fsys afero.Fs, src Source, logger *zap.Logger) (FileEntry, error) {
	logger.Debug("Reading file content", zap.String("filePath", src.Path))

	data, err := afero.ReadFile(fsys, src.Path)
	if err != nil {
		logger.Debug("Failed to read file", zap.String("filePath", src.Path), zap.Error(err))
		return FileEntry{}, fmt.Errorf("error reading file %s: %w", src.Path, err)
	}

	content, err := decodeText(data)
	if err != nil {
		logger.Debug("Skipping file that is not text", zap.String("filePath", src.Path), zap.Error(err))
		return FileEntry{}, fmt.Errorf("error reading file %s: %w", src.Path, err)
	}

	logger.Debug("Successfully read file content",
		zap.String("filePath", src.Path),
		zap.Int("contentSizeBytes", len(data)))
	return FileEntry{ID: src.ID, Content: content}, nil
}
