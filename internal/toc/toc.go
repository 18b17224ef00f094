// Package toc models a documentation table of contents parsed from the
// backend's Markdown index.
package toc

import "strings"

// Entry is a node in the table of contents. Path is empty for grouping
// entries that exist only as headings.
type Entry struct {
	Title    string   `json:"title"`
	Path     string   `json:"path,omitempty"`
	Level    int      `json:"level"`
	Children []*Entry `json:"children,omitempty"`
}

// Tree is a parsed table of contents.
type Tree struct {
	Title   string   `json:"title"`
	Entries []*Entry `json:"entries"`
}

// FlatEntry is one row of a depth-first flattening, ready for paging and
// token fitting.
type FlatEntry struct {
	Title string `json:"title"`
	Path  string `json:"path,omitempty"`
	Depth int    `json:"depth"`
}

// String renders the entry as a Markdown list line, indented by depth. The
// item fitter uses this rendering for cost estimation.
func (e FlatEntry) String() string {
	indent := strings.Repeat("  ", e.Depth)
	if e.Path != "" {
		return indent + "- [" + e.Title + "](" + e.Path + ")"
	}
	return indent + "- " + e.Title
}

// Flatten lists entries depth-first in document order. The walk keeps its
// own stack with a depth accumulator, so arbitrarily deep trees cannot grow
// the call stack.
func Flatten(entries []*Entry) []FlatEntry {
	type frame struct {
		entry *Entry
		depth int
	}

	stack := make([]frame, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		stack = append(stack, frame{entries[i], 0})
	}

	var out []FlatEntry
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		out = append(out, FlatEntry{Title: f.entry.Title, Path: f.entry.Path, Depth: f.depth})
		for i := len(f.entry.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{f.entry.Children[i], f.depth + 1})
		}
	}
	return out
}
