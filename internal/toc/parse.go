package toc

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Parse builds a Tree from a Markdown index document. Headings form grouping
// entries nested by level; linked list items under a heading become its
// children, with nested lists nesting further.
func Parse(src []byte) *Tree {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	tree := &Tree{}

	type stackEntry struct {
		entry *Entry
		level int
	}
	root := &Entry{}
	stack := []stackEntry{{entry: root, level: 0}}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := strings.TrimSpace(string(node.Text(src)))
			if title == "" {
				continue
			}
			if tree.Title == "" && node.Level == 1 {
				tree.Title = title
				continue
			}

			entry := &Entry{Title: title, Level: node.Level}
			for len(stack) > 1 && stack[len(stack)-1].level >= node.Level {
				stack = stack[:len(stack)-1]
			}
			parent := stack[len(stack)-1].entry
			parent.Children = append(parent.Children, entry)
			stack = append(stack, stackEntry{entry: entry, level: node.Level})

		case *ast.List:
			top := stack[len(stack)-1]
			appendListEntries(node, src, top.entry, top.level+1)
		}
	}

	tree.Entries = root.Children
	return tree
}

func appendListEntries(list *ast.List, src []byte, parent *Entry, level int) {
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		entry := &Entry{Level: level}

		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if nested, ok := c.(*ast.List); ok {
				appendListEntries(nested, src, entry, level+1)
				continue
			}
			if entry.Title != "" {
				continue
			}
			if link := findLink(c); link != nil {
				entry.Title = strings.TrimSpace(string(link.Text(src)))
				entry.Path = string(link.Destination)
			} else {
				entry.Title = strings.TrimSpace(string(c.Text(src)))
			}
		}

		if entry.Title != "" || len(entry.Children) > 0 {
			parent.Children = append(parent.Children, entry)
		}
	}
}

func findLink(n ast.Node) *ast.Link {
	if link, ok := n.(*ast.Link); ok {
		return link
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if link := findLink(c); link != nil {
			return link
		}
	}
	return nil
}
