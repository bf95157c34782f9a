package cmd

import (
	"fmt"

	"codeprompt/pkg/config"
	"codeprompt/pkg/logging"
	"codeprompt/pkg/tokens"
	"codeprompt/pkg/version"

	"github.com/atotto/clipboard"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	modeBulk       = "bulk"
	modeIndividual = "individual"
)

// app carries the collaborators shared by every command. Fields left nil are
// filled in before the command runs.
type app struct {
	fs       afero.Fs
	cfg      *config.Config
	logger   *zap.Logger
	prompter Prompter

	copyToClipboard func(string) error
	newCounter      func(encoding string) (tokens.Counter, error)

	// Persistent flags.
	output string
	tree   string
	copy   bool
	tokens bool
	debug  bool
}

func newApp() *app {
	return &app{
		fs:              afero.NewOsFs(),
		copyToClipboard: clipboard.WriteAll,
		newCounter: func(encoding string) (tokens.Counter, error) {
			return tokens.NewTiktoken(encoding)
		},
	}
}

// NewRootCommand builds the codeprompt command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(newApp())
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "codeprompt",
		Short: "codeprompt turns a codebase into a single prompt",
		Long: `codeprompt concatenates the contents of selected text files into one prompt file, ready to paste into a text-based assistant.

Files are selected either by scanning a directory (bulk mode, honouring a persistent ignore list) or from a curated list of paths (individual mode).`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := a.prompter.Select("Select mode:", []string{modeBulk, modeIndividual})
			if err != nil {
				return fmt.Errorf("failed to read mode: %w", err)
			}
			if mode == modeBulk {
				return a.runBulk(cmd, bulkOptions{})
			}
			return a.runIndividual(cmd, individualOptions{})
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.output, "output", "o", "", "Prompt output file (default from config: codebase_prompt.txt)")
	flags.StringVar(&a.tree, "tree", "", "Also write a tree of the included files to this file")
	flags.BoolVar(&a.copy, "copy", false, "Copy the generated prompt to the clipboard")
	flags.BoolVar(&a.tokens, "tokens", false, "Report the token count of the generated prompt")
	flags.BoolVar(&a.debug, "debug", false, "Enable debug logging")

	root.AddCommand(newBulkCommand(a), newIndividualCommand(a), newVersionCommand())
	return root
}

// setup loads configuration, builds the logger and picks a prompter.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.cfg == nil {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.output != "" {
		a.cfg.OutputFile = a.output
	}
	if a.debug {
		a.cfg.Debug = true
	}

	if a.logger == nil {
		if err := logging.Setup(a.cfg.Debug, "codeprompt", version.Get().Version); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.logger = logging.Get()
	}
	if a.prompter == nil {
		a.prompter = newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
