package ignore

import (
	"sort"
	"strings"
)

// Set is a deduplicated collection of ignore patterns. A pattern is either an
// absolute path prefix or a prefix of a path relative to the scan root.
type Set map[string]struct{}

// NewSet builds a Set from the given patterns, dropping blanks and duplicates.
func NewSet(patterns ...string) Set {
	s := make(Set, len(patterns))
	for _, p := range patterns {
		s.Add(p)
	}
	return s
}

// Add trims the pattern and inserts it. It reports false when the pattern is
// empty or already present.
func (s Set) Add(pattern string) bool {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return false
	}
	if _, ok := s[pattern]; ok {
		return false
	}
	s[pattern] = struct{}{}
	return true
}

// Has reports whether the trimmed pattern is in the set.
func (s Set) Has(pattern string) bool {
	_, ok := s[strings.TrimSpace(pattern)]
	return ok
}

// Len returns the number of patterns.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the patterns in lexicographic order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Merge adds every entry to the set. Entries already present are returned in
// duplicates and left untouched; blank entries are dropped silently.
func (s Set) Merge(entries []string) (added, duplicates []string) {
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if s.Add(e) {
			added = append(added, e)
		} else {
			duplicates = append(duplicates, e)
		}
	}
	return added, duplicates
}
