package output

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	// Tree characters
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// Note alignment column
	noteColumn = 30
)

// TreeNode represents a directory in a module tree.
type TreeNode struct {
	Name string
	Note string
	// Module is false for intermediate directories that were not selected.
	Module   bool
	Children []*TreeNode
}

// RenderModuleTree renders the modules found below root as a tree.
// Modules maps module paths relative to root to a note printed beside
// them; "." is the root itself.
func RenderModuleTree(root string, modules map[string]string) string {
	if len(modules) == 0 {
		return ""
	}

	top := &TreeNode{Name: root}

	for path, note := range modules {
		if path == "." {
			top.Module = true
			top.Note = note
			continue
		}

		current := top
		for _, part := range strings.Split(filepath.ToSlash(path), "/") {
			var child *TreeNode
			for _, c := range current.Children {
				if c.Name == part {
					child = c
					break
				}
			}
			if child == nil {
				child = &TreeNode{Name: part}
				current.Children = append(current.Children, child)
			}
			current = child
		}
		current.Module = true
		current.Note = note
	}

	sortTree(top)

	var sb strings.Builder
	renderNode(&sb, top, "", true, true)
	return sb.String()
}

// sortTree recursively sorts children by name, matching discovery order.
func sortTree(node *TreeNode) {
	sort.Slice(node.Children, func(i, j int) bool {
		return node.Children[i].Name < node.Children[j].Name
	})
	for _, child := range node.Children {
		sortTree(child)
	}
}

func renderNode(sb *strings.Builder, node *TreeNode, prefix string, isRoot, isLast bool) {
	var line string
	if isRoot {
		line = StyleSummary.Render(node.Name + "/")
	} else {
		connector := treeEdge
		if isLast {
			connector = treeLast
		}
		name := node.Name + "/"
		if node.Module {
			name = StyleNoun.Render(name)
		}
		line = prefix + connector + name
	}

	if node.Note != "" {
		padding := noteColumn - lipgloss.Width(line)
		if padding < 2 {
			padding = 2
		}
		line += strings.Repeat(" ", padding) + StyleDim.Render(node.Note)
	}

	sb.WriteString(line)
	sb.WriteString("\n")

	for i, child := range node.Children {
		childPrefix := ""
		if !isRoot {
			if isLast {
				childPrefix = prefix + treeSpace
			} else {
				childPrefix = prefix + treeVert
			}
		}
		renderNode(sb, child, childPrefix, false, i == len(node.Children)-1)
	}
}
