package combine

import "strings"

// Header opens every prompt document.
const Header = "My codebase includes"

// Terminator closes every prompt document.
const Terminator = "."

// Render serialises entries into a prompt document:
//
//	My codebase includes
//	'<id_1>' with '<content_1>',
//	'<id_2>' with '<content_2>'
//	.
//
// Entries whose content is blank after trimming are left out. Single quotes in
// identifiers and content are escaped with a backslash.
func Render(entries []FileEntry) string {
	return render(Included(entries))
}

// Included returns the entries Render keeps, in order.
func Included(entries []FileEntry) []FileEntry {
	kept := make([]FileEntry, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Content) == "" {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

func render(entries []FileEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, "'"+Escape(e.ID)+"' with '"+Escape(e.Content)+"'")
	}

	var b strings.Builder
	b.WriteString(Header)
	b.WriteByte('\n')
	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteByte('\n')
	b.WriteString(Terminator)
	return b.String()
}

// Escape prefixes every single quote in s with a backslash.
func Escape(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}
