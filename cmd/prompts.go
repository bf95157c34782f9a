package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"codeprompt/pkg/input"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// Prompter asks the user for the few decisions a run needs.
type Prompter interface {
	Select(title string, options []string) (string, error)
	Confirm(title string) (bool, error)
	Input(title string) (string, error)
	// Entries returns a reader yielding one entry per prompt. validate, when
	// non-nil, is applied to anything other than a blank line or the sentinel.
	Entries(title, sentinel string, validate func(string) error) input.Reader
}

// newPrompter uses interactive forms on a terminal and plain line reads
// otherwise, so piped input keeps working.
func newPrompter(in io.Reader, out io.Writer) Prompter {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return huhPrompter{}
	}
	return &linePrompter{lines: input.NewLineReader(in, out, ""), out: out}
}

type huhPrompter struct{}

func (huhPrompter) Select(title string, options []string) (string, error) {
	var choice string
	err := huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Value(&choice).
		Run()
	return choice, err
}

func (huhPrompter) Confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}

func (huhPrompter) Input(title string) (string, error) {
	var value string
	err := huh.NewInput().
		Title(title).
		Value(&value).
		Run()
	return strings.TrimSpace(value), err
}

func (huhPrompter) Entries(title, sentinel string, validate func(string) error) input.Reader {
	return input.ReaderFunc(func() (string, error) {
		var value string
		field := huh.NewInput().
			Title(title).
			Description(fmt.Sprintf("Type '%s' when finished.", sentinel)).
			Value(&value)
		if validate != nil {
			field.Validate(func(s string) error {
				s = strings.TrimSpace(s)
				if s == "" || strings.EqualFold(s, sentinel) {
					return nil
				}
				return validate(s)
			})
		}
		if err := field.Run(); err != nil {
			return "", err
		}
		return value, nil
	})
}

// linePrompter reads answers line by line, printing each question first.
type linePrompter struct {
	lines *input.LineReader
	out   io.Writer
}

func (p *linePrompter) readLine(question string) (string, error) {
	answer, err := p.lines.Ask(question)
	return strings.TrimSpace(answer), err
}

func (p *linePrompter) Select(title string, options []string) (string, error) {
	question := fmt.Sprintf("%s (%s): ", title, strings.Join(options, "/"))
	for {
		answer, err := p.readLine(question)
		if err != nil {
			return "", err
		}
		for _, o := range options {
			if strings.EqualFold(answer, o) {
				return o, nil
			}
		}
		fmt.Fprintf(p.out, "Invalid input. Please enter one of: %s.\n", strings.Join(options, ", "))
	}
}

// Confirm treats end of input as "no".
func (p *linePrompter) Confirm(title string) (bool, error) {
	answer, err := p.readLine(title + " (y/n): ")
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

func (p *linePrompter) Input(title string) (string, error) {
	return p.readLine(title + ": ")
}

// Entries re-prompts after an entry that fails validate, warning about it
// before the next question.
func (p *linePrompter) Entries(title, sentinel string, validate func(string) error) input.Reader {
	question := fmt.Sprintf("%s (or '%s'): ", title, sentinel)
	return input.ReaderFunc(func() (string, error) {
		for {
			answer, err := p.readLine(question)
			if err != nil || validate == nil || answer == "" || strings.EqualFold(answer, sentinel) {
				return answer, err
			}
			if err := validate(answer); err != nil {
				fmt.Fprintf(p.out, "Warning: %v. Please try again.\n", err)
				continue
			}
			return answer, nil
		}
	})
}
