package combine

import "codeprompt/pkg/ignore"

// Source is a file to include in the prompt and the identifier it is shown
// under.
type Source struct {
	Path string // Location to read from.
	ID   string // Identifier rendered in the prompt.
}

// FileEntry is a file's identifier paired with its content at read time.
type FileEntry struct {
	ID      string
	Content string
}

// ReadFailure records a file that could not be included.
type ReadFailure struct {
	Path string
	Err  error
}

func (f ReadFailure) Error() string {
	return f.Err.Error()
}

func (f ReadFailure) Unwrap() error {
	return f.Err
}

// Outputs names the artifacts written by a run.
type Outputs struct {
	Prompt string // Rendered prompt document; required.
	Tree   string // Optional tree view of the included identifiers.
}

// BulkRequest holds the arguments of a directory scan run.
type BulkRequest struct {
	Root     string
	Patterns ignore.Set
	Outputs  Outputs
}

// IndividualRequest holds the arguments of an explicit file list run.
type IndividualRequest struct {
	Paths   []string
	Outputs Outputs
}

// Result summarises a completed run.
type Result struct {
	Prompt   string        // Text written to the prompt artifact.
	Files    int           // Files selected before reading.
	Included []string      // Identifiers rendered into the prompt, in order.
	Failures []ReadFailure // Files skipped because they could not be read.
}
