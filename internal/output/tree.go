package output

import (
	"path/filepath"
	"sort"
	"strings"
)

const (
	branchMid  = "├── "
	branchEnd  = "└── "
	indentPipe = "│   "
	indentGap  = "    "

	// annotationColumn is where change annotations start.
	annotationColumn = 36
)

type treeNode struct {
	name     string
	note     string
	dir      bool
	children []*treeNode
}

func (n *treeNode) child(name string, dir bool) *treeNode {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	c := &treeNode{name: name, dir: dir}
	n.children = append(n.children, c)
	return c
}

// RenderChangeTree renders the files a generation step touched, keyed by
// slash-separated path relative to rootName, with each file's annotation
// aligned in a column.
func RenderChangeTree(rootName string, changes map[string]string) string {
	if len(changes) == 0 {
		return ""
	}

	root := &treeNode{name: rootName, dir: true}
	for rel, note := range changes {
		parts := strings.Split(filepath.ToSlash(rel), "/")
		node := root
		for i, part := range parts {
			node = node.child(part, i < len(parts)-1)
		}
		node.note = note
	}
	sortNodes(root)

	styles := GetStyles()
	var sb strings.Builder
	sb.WriteString(styles.Bold.Render(rootName + "/"))
	sb.WriteString("\n")
	for i, c := range root.children {
		writeNode(&sb, styles, c, "", i == len(root.children)-1)
	}
	return sb.String()
}

func sortNodes(n *treeNode) {
	sort.Slice(n.children, func(i, j int) bool {
		a, b := n.children[i], n.children[j]
		if a.dir != b.dir {
			return a.dir
		}
		return a.name < b.name
	})
	for _, c := range n.children {
		sortNodes(c)
	}
}

func writeNode(sb *strings.Builder, styles *Styles, n *treeNode, prefix string, last bool) {
	branch, indent := branchMid, indentPipe
	if last {
		branch, indent = branchEnd, indentGap
	}

	line := prefix + branch + n.name
	if n.dir {
		line += "/"
	}
	if n.note != "" {
		pad := annotationColumn - len([]rune(line))
		if pad < 2 {
			pad = 2
		}
		line += strings.Repeat(" ", pad) + styles.Muted.Render(n.note)
	}
	sb.WriteString(line)
	sb.WriteString("\n")

	for i, c := range n.children {
		writeNode(sb, styles, c, prefix+indent, i == len(n.children)-1)
	}
}
