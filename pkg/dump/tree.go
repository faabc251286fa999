package dump

import (
	"path/filepath"
	"sort"
	"strings"
)

// treeNode is one directory or file in the rendered project tree.
type treeNode struct {
	name     string
	children map[string]*treeNode
	isDir    bool
}

// RenderTree renders the dumped entries as a connector-drawn directory tree.
// Only files that made it into the dump appear, so the tree doubles as a
// manifest of the document's contents.
func RenderTree(root string, entries []FileEntry) string {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		absRoot = root
	}

	top := &treeNode{name: filepath.Base(absRoot), children: map[string]*treeNode{}, isDir: true}
	for _, entry := range entries {
		node := top
		parts := strings.Split(entry.RelPath, "/")
		for i, part := range parts {
			child, ok := node.children[part]
			if !ok {
				child = &treeNode{
					name:     part,
					children: map[string]*treeNode{},
					isDir:    i < len(parts)-1,
				}
				node.children[part] = child
			}
			node = child
		}
	}

	var b strings.Builder
	b.WriteString(top.name + "/\n")
	renderSubtree(&b, top, "")
	return b.String()
}

// renderSubtree draws one level of the tree, directories first, each level
// alphabetical.
func renderSubtree(b *strings.Builder, node *treeNode, prefix string) {
	names := make([]string, 0, len(node.children))
	for name := range node.children {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, c := node.children[names[i]], node.children[names[j]]
		if a.isDir != c.isDir {
			return a.isDir
		}
		return strings.ToLower(a.name) < strings.ToLower(c.name)
	})

	for i, name := range names {
		child := node.children[name]
		connector := "├── "
		extension := "│   "
		if i == len(names)-1 {
			connector = "└── "
			extension = "    "
		}

		if child.isDir {
			b.WriteString(prefix + connector + child.name + "/\n")
			renderSubtree(b, child, prefix+extension)
		} else {
			b.WriteString(prefix + connector + child.name + "\n")
		}
	}
}
