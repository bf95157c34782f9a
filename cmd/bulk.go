package cmd

import (
	"fmt"

	"codeprompt/pkg/combine"
	"codeprompt/pkg/ignore"
	"codeprompt/pkg/input"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type bulkOptions struct {
	root       string
	patterns   []string
	editIgnore *bool // nil asks the user.
}

func newBulkCommand(a *app) *cobra.Command {
	var (
		opts       bulkOptions
		editIgnore bool
	)
	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Scan a directory and combine every file not ignored",
		Long: `Recursively scan the target folder and combine every regular file into the prompt, except files matching the persistent ignore list.

Ignore patterns are string prefixes: absolute patterns are compared with each file's absolute path, all others with its path relative to the target folder.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("edit-ignore") {
				opts.editIgnore = &editIgnore
			}
			return a.runBulk(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.root, "root", "r", "", "Target folder of the codebase (prompted for when omitted)")
	cmd.Flags().StringArrayVarP(&opts.patterns, "ignore", "i", nil, "Add an ignore pattern to the persistent list (repeatable)")
	cmd.Flags().BoolVarP(&editIgnore, "edit-ignore", "e", false, "Interactively add ignore patterns before scanning")
	return cmd
}

func (a *app) runBulk(cmd *cobra.Command, opts bulkOptions) error {
	out := cmd.OutOrStdout()

	root := opts.root
	if root == "" {
		var err error
		root, err = a.prompter.Input("Enter the target folder path of your codebase")
		if err != nil {
			return fmt.Errorf("failed to read target folder: %w", err)
		}
	}
	if err := combine.ValidateRoot(a.fs, root); err != nil {
		return err
	}

	store := ignore.NewStore(a.fs, a.cfg.IgnoreFile, a.logger)
	patterns, err := store.Load()
	if err != nil {
		return err
	}

	changed := false
	if len(opts.patterns) > 0 {
		changed = a.mergePatterns(cmd, patterns, opts.patterns) || changed
	}

	edit := false
	if opts.editIgnore != nil {
		edit = *opts.editIgnore
	} else if len(opts.patterns) == 0 {
		edit, err = a.prompter.Confirm("Would you like to update the ignore paths?")
		if err != nil {
			return fmt.Errorf("failed to read answer: %w", err)
		}
	}

	if edit {
		printPatterns(cmd, patterns)
		fmt.Fprintf(out, "\nEnter file or directory paths to ignore. Type '%s' when finished.\n", a.cfg.Sentinel)
		entries, err := input.Collect(a.prompter.Entries("Ignore path", a.cfg.Sentinel, nil), a.cfg.Sentinel)
		if err != nil {
			return err
		}
		a.mergePatterns(cmd, patterns, entries)
		changed = true
	}

	if changed {
		if err := store.Save(patterns); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nIgnore paths updated and saved to '%s'.\n", store.Path())
	} else {
		fmt.Fprintln(out, "\nUsing existing ignore paths.")
	}

	fmt.Fprintln(out, "\nScanning codebase...")
	result, err := combine.RunBulk(cmd.Context(), a.fs, combine.BulkRequest{
		Root:     root,
		Patterns: patterns,
		Outputs:  a.outputs(),
	}, a.logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Found %d files to include in the prompt.\n", result.Files)

	a.report(cmd, result)
	return nil
}

// mergePatterns adds entries to patterns, reporting each outcome. It returns
// whether anything was added.
func (a *app) mergePatterns(cmd *cobra.Command, patterns ignore.Set, entries []string) bool {
	added, duplicates := patterns.Merge(entries)
	for _, p := range duplicates {
		fmt.Fprintf(cmd.OutOrStdout(), "'%s' is already in the ignore list. Skipping duplicate.\n", p)
	}
	for _, p := range added {
		fmt.Fprintf(cmd.OutOrStdout(), "Added '%s' to ignore list.\n", p)
	}
	a.logger.Debug("Merged ignore patterns", zap.Int("added", len(added)), zap.Int("duplicates", len(duplicates)))
	return len(added) > 0
}

func printPatterns(cmd *cobra.Command, patterns ignore.Set) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\nCurrent ignore paths:")
	if patterns.Len() == 0 {
		fmt.Fprintln(out, " (none)")
		return
	}
	for _, p := range patterns.Sorted() {
		fmt.Fprintln(out, " -", p)
	}
}
