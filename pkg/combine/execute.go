// File: pkg/combine/execute.go
package combine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// NoFilesMessage is written in place of a prompt when individual mode ends
// with no files selected.
const NoFilesMessage = "No files selected for individual prompt generation."

// RunBulk scans req.Root, renders every non-ignored file and writes the
// prompt artifact. An invalid root fails before anything is read.
func RunBulk(ctx context.Context, fsys afero.Fs, req BulkRequest, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if req.Outputs.Prompt == "" {
		return nil, errors.New("prompt output path is required")
	}
	if err := ValidateRoot(fsys, req.Root); err != nil {
		logger.Error("Invalid scan root", zap.String("root", req.Root), zap.Error(err))
		return nil, err
	}

	startTime := time.Now()
	logger.Info("Scanning codebase", zap.String("root", req.Root))

	files, err := Scan(fsys, req.Root, req.Patterns, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to collect files: %w", err)
	}
	logger.Info("Found files to include in the prompt", zap.Int("fileCount", len(files)))

	result, err := execute(ctx, fsys, BulkSources(req.Root, files), req.Outputs, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Combination process completed", zap.Duration("elapsed", time.Since(startTime)))
	return result, nil
}

// RunIndividual renders the given paths, identified exactly as supplied,
// writes the prompt artifact and returns the result. With no paths the
// artifact holds NoFilesMessage instead.
func RunIndividual(ctx context.Context, fsys afero.Fs, req IndividualRequest, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if req.Outputs.Prompt == "" {
		return nil, errors.New("prompt output path is required")
	}

	if len(req.Paths) == 0 {
		logger.Debug("No files were selected for prompt generation")
		if err := writeToFile(fsys, req.Outputs.Prompt, []byte(NoFilesMessage), logger); err != nil {
			return nil, fmt.Errorf("failed to write prompt: %w", err)
		}
		return &Result{Prompt: NoFilesMessage}, nil
	}

	logger.Info("Collected files for inclusion in the prompt", zap.Int("fileCount", len(req.Paths)))
	return execute(ctx, fsys, IndividualSources(req.Paths), req.Outputs, logger)
}

func execute(ctx context.Context, fsys afero.Fs, sources []Source, out Outputs, logger *zap.Logger) (*Result, error) {
	entries, failures, err := Capture(ctx, fsys, sources, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to read files: %w", err)
	}

	kept := Included(entries)
	ids := make([]string, 0, len(kept))
	for _, e := range kept {
		ids = append(ids, e.ID)
	}
	prompt := render(kept)

	if err := writeToFile(fsys, out.Prompt, []byte(prompt), logger); err != nil {
		return nil, fmt.Errorf("failed to write prompt: %w", err)
	}
	if out.Tree != "" {
		if err := writeToFile(fsys, out.Tree, []byte(GenerateTree(ids)), logger); err != nil {
			return nil, fmt.Errorf("failed to write tree structure: %w", err)
		}
	}

	logger.Info("Prompt generated",
		zap.String("outputFile", out.Prompt),
		zap.Int("includedFiles", len(ids)),
		zap.Int("skippedEmpty", len(entries)-len(kept)),
		zap.Int("failedFiles", len(failures)))

	return &Result{
		Prompt:   prompt,
		Files:    len(sources),
		Included: ids,
		Failures: failures,
	}, nil
}
