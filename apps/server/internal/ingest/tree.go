package ingest

import (
	"sort"
	"strings"
)

// treeNode is a prefix tree keyed by path segment. A leaf (file) is a node
// with no children.
type treeNode map[string]treeNode

// RenderTree renders the classic ASCII directory tree for a set of
// root-relative posix paths. Siblings are ordered lexicographically; the last
// sibling at each level gets "└── " and the rest "├── ". The traversal uses
// an explicit stack, so arbitrarily deep paths cannot overflow the goroutine
// stack.
func RenderTree(paths []string) string {
	root := treeNode{}
	for _, p := range paths {
		node := root
		for _, seg := range strings.Split(p, "/") {
			child, ok := node[seg]
			if !ok {
				child = treeNode{}
				node[seg] = child
			}
			node = child
		}
	}

	type frame struct {
		node   treeNode
		keys   []string
		next   int
		indent string
	}

	var b strings.Builder
	stack := []frame{{node: root, keys: sortedKeys(root)}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.next >= len(f.keys) {
			stack = stack[:len(stack)-1]
			continue
		}

		key := f.keys[f.next]
		last := f.next == len(f.keys)-1
		f.next++

		branch, continuation := "├── ", "│   "
		if last {
			branch, continuation = "└── ", "    "
		}
		b.WriteString(f.indent)
		b.WriteString(branch)
		b.WriteString(key)
		b.WriteByte('\n')

		if child := f.node[key]; len(child) > 0 {
			indent := f.indent + continuation
			stack = append(stack, frame{node: child, keys: sortedKeys(child), indent: indent})
		}
	}
	return b.String()
}

func sortedKeys(n treeNode) []string {
	keys := make([]string, 0, len(n))
	for k := range n {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
