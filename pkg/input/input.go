// Package input collects repeated entries (ignore patterns, file paths) from
// an interactive source until a sentinel token is entered.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultSentinel ends an entry loop.
const DefaultSentinel = "done"

// Reader yields one raw entry per call. It returns io.EOF when the source is
// exhausted.
type Reader interface {
	ReadEntry() (string, error)
}

// ReaderFunc adapts a function to the Reader interface.
type ReaderFunc func() (string, error)

// ReadEntry calls f.
func (f ReaderFunc) ReadEntry() (string, error) {
	return f()
}

// Collect reads entries from r until the sentinel (compared
// case-insensitively) or io.EOF. Entries are trimmed and blank ones dropped.
func Collect(r Reader, sentinel string) ([]string, error) {
	if sentinel == "" {
		sentinel = DefaultSentinel
	}

	var entries []string
	for {
		entry, err := r.ReadEntry()
		if err != nil && !errors.Is(err, io.EOF) {
			return entries, fmt.Errorf("failed to read entry: %w", err)
		}

		entry = strings.TrimSpace(entry)
		if strings.EqualFold(entry, sentinel) {
			return entries, nil
		}
		if entry != "" {
			entries = append(entries, entry)
		}
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
	}
}

// FromSlice returns a Reader over fixed entries.
func FromSlice(entries []string) Reader {
	i := 0
	return ReaderFunc(func() (string, error) {
		if i >= len(entries) {
			return "", io.EOF
		}
		i++
		return entries[i-1], nil
	})
}

// LineReader reads newline-terminated entries, optionally writing a prompt
// before each one.
type LineReader struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string
}

// NewLineReader wraps r. When out is nil no prompt is written.
func NewLineReader(r io.Reader, out io.Writer, prompt string) *LineReader {
	return &LineReader{scanner: bufio.NewScanner(r), out: out, prompt: prompt}
}

// ReadEntry returns the next line without its terminator.
func (l *LineReader) ReadEntry() (string, error) {
	return l.Ask(l.prompt)
}

// Ask writes prompt and returns the next line without its terminator.
func (l *LineReader) Ask(prompt string) (string, error) {
	if l.out != nil && prompt != "" {
		fmt.Fprint(l.out, prompt)
	}
	if l.scanner.Scan() {
		return l.scanner.Text(), nil
	}
	if err := l.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
