package cmd

import (
	"fmt"

	"codeprompt/pkg/combine"
	"codeprompt/pkg/individual"
	"codeprompt/pkg/input"

	"github.com/spf13/cobra"
)

type individualOptions struct {
	files    []string
	fromFile *bool // nil asks the user.
}

func newIndividualCommand(a *app) *cobra.Command {
	var (
		opts     individualOptions
		fromFile bool
	)
	cmd := &cobra.Command{
		Use:   "individual",
		Short: "Combine an explicit list of files",
		Long: `Combine individually selected files into the prompt. Paths can be loaded from the target list file (falling back to the generated script), passed with --file, and entered one at a time until the sentinel.

After a successful run the selected paths are written to the script file so the next run can reload them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("from-file") {
				opts.fromFile = &fromFile
			}
			return a.runIndividual(cmd, opts)
		},
	}

	cmd.Flags().BoolVarP(&fromFile, "from-file", "l", false, "Load paths from the target list file or the fallback script")
	cmd.Flags().StringArrayVarP(&opts.files, "file", "f", nil, "Add a file path (repeatable)")
	return cmd
}

func (a *app) runIndividual(cmd *cobra.Command, opts individualOptions) error {
	out := cmd.OutOrStdout()
	loader := individual.NewLoader(a.fs, a.cfg.TargetFiles, a.cfg.IndividualScript, a.logger)

	load := false
	if opts.fromFile != nil {
		load = *opts.fromFile
	} else {
		var err error
		load, err = a.prompter.Confirm(fmt.Sprintf("Load file paths from '%s' (or fallback to '%s') if available?",
			a.cfg.TargetFiles, a.cfg.IndividualScript))
		if err != nil {
			return fmt.Errorf("failed to read answer: %w", err)
		}
	}

	var paths []string
	if load {
		result, err := loader.Load()
		if err != nil {
			return err
		}
		printWarnings(cmd, result.Warnings)
		if result.Found() {
			fmt.Fprintf(out, "Loaded %d file paths from '%s'.\n", len(result.Paths), result.Source)
			paths = append(paths, result.Paths...)
		} else {
			fmt.Fprintln(out, "No valid file paths could be loaded from either target file.")
		}
	}

	if len(opts.files) > 0 {
		valid, warnings := loader.Validate(opts.files)
		printWarnings(cmd, warnings)
		paths = append(paths, valid...)
	}

	fmt.Fprintf(out, "You may now add additional file paths. Type '%s' when finished.\n", a.cfg.Sentinel)
	entries, err := input.Collect(a.prompter.Entries("File path", a.cfg.Sentinel, func(s string) error {
		if !individual.IsFile(a.fs, s) {
			return fmt.Errorf("'%s' is not a valid file", s)
		}
		return nil
	}), a.cfg.Sentinel)
	if err != nil {
		return err
	}
	valid, warnings := loader.Validate(entries)
	printWarnings(cmd, warnings)
	paths = append(paths, valid...)

	if len(paths) > 0 {
		fmt.Fprintf(out, "Collected %d files for inclusion in the prompt.\n", len(paths))
	}
	result, err := combine.RunIndividual(cmd.Context(), a.fs, combine.IndividualRequest{
		Paths:   paths,
		Outputs: a.outputs(),
	}, a.logger)
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		fmt.Fprintln(out, "No files were selected for prompt generation.")
		fmt.Fprintf(out, "\nPrompt generated and saved to '%s'.\n", a.cfg.OutputFile)
		return nil
	}
	if err := loader.SaveScript(paths); err != nil {
		return err
	}
	fmt.Fprintf(out, "Script with file paths saved to '%s'.\n", a.cfg.IndividualScript)

	a.report(cmd, result)
	return nil
}

func printWarnings(cmd *cobra.Command, warnings []individual.Warning) {
	for _, w := range warnings {
		fmt.Fprintf(cmd.OutOrStdout(), "Warning: %s. Skipping.\n", w)
	}
}
