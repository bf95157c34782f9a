// File: pkg/combine/tree.go
package combine

import (
	"sort"
	"strings"
)

type treeNode struct {
	name     string
	children map[string]*treeNode
}

func (n *treeNode) isDir() bool {
	return len(n.children) > 0
}

// GenerateTree renders slash-separated identifiers as a directory tree.
// Directories are listed before files, each group alphabetically without
// regard to case.
func GenerateTree(ids []string) string {
	root := &treeNode{children: map[string]*treeNode{}}
	for _, id := range ids {
		node := root
		for _, part := range strings.Split(id, "/") {
			if part == "" || part == "." {
				continue
			}
			child, ok := node.children[part]
			if !ok {
				child = &treeNode{name: part, children: map[string]*treeNode{}}
				node.children[part] = child
			}
			node = child
		}
	}

	var lines []string
	generateTreeRecursively(root, "", &lines)
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func generateTreeRecursively(node *treeNode, prefix string, lines *[]string) {
	entries := make([]*treeNode, 0, len(node.children))
	for _, child := range node.children {
		entries = append(entries, child)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].isDir() != entries[j].isDir() {
			return entries[i].isDir()
		}
		li, lj := strings.ToLower(entries[i].name), strings.ToLower(entries[j].name)
		if li != lj {
			return li < lj
		}
		return entries[i].name < entries[j].name
	})

	for i, entry := range entries {
		connector := "├── "
		extension := "│   "
		if i == len(entries)-1 {
			connector = "└── "
			extension = "    "
		}

		if entry.isDir() {
			*lines = append(*lines, prefix+connector+entry.name+"/")
			generateTreeRecursively(entry, prefix+extension, lines)
			continue
		}
		*lines = append(*lines, prefix+connector+entry.name)
	}
}
