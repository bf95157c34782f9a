package cmd

import (
	"fmt"

	"codeprompt/pkg/combine"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// outputs returns the artifact paths for a run.
func (a *app) outputs() combine.Outputs {
	return combine.Outputs{Prompt: a.cfg.OutputFile, Tree: a.tree}
}

// report prints read failures and the final location of the prompt, then
// hands the prompt to the optional token counter and clipboard.
func (a *app) report(cmd *cobra.Command, result *combine.Result) {
	out := cmd.OutOrStdout()
	for _, f := range result.Failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", f.Path, f.Err)
	}
	fmt.Fprintf(out, "\nPrompt generated and saved to '%s'.\n", a.cfg.OutputFile)
	if a.tree != "" {
		fmt.Fprintf(out, "File tree saved to '%s'.\n", a.tree)
	}

	if a.tokens {
		counter, err := a.newCounter(a.cfg.TokenEncoding)
		if err != nil {
			a.logger.Warn("Token counting unavailable", zap.String("encoding", a.cfg.TokenEncoding), zap.Error(err))
		} else if n, err := counter.Count(result.Prompt); err != nil {
			a.logger.Warn("Failed to count tokens", zap.Error(err))
		} else {
			fmt.Fprintf(out, "Prompt size: %d tokens (%s).\n", n, a.cfg.TokenEncoding)
		}
	}

	if a.copy {
		if err := a.copyToClipboard(result.Prompt); err != nil {
			a.logger.Warn("Failed to copy prompt to clipboard", zap.Error(err))
		} else {
			fmt.Fprintln(out, "Prompt copied to clipboard.")
		}
	}
}
