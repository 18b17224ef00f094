package convert

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// mdRenderer walks an HTML tree and emits Markdown blocks: ATX headings,
// paragraphs, fenced code, lists, tables, and quotes.
type mdRenderer struct {
	b strings.Builder
}

func (r *mdRenderer) String() string {
	out := strings.TrimRight(r.b.String(), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

func (r *mdRenderer) writeBlock(block string) {
	if strings.TrimSpace(block) == "" {
		return
	}
	r.b.WriteString(block)
	r.b.WriteString("\n\n")
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

func (r *mdRenderer) block(n *html.Node, listDepth int) {
	if n.Type == html.ElementNode {
		if level := headingLevel(n.Data); level > 0 {
			if text := inlineText(n); text != "" {
				r.writeBlock(strings.Repeat("#", level) + " " + text)
			}
			return
		}
		switch n.Data {
		case "p":
			r.writeBlock(inlineText(n))
			return
		case "pre":
			code := strings.TrimRight(rawText(n), "\n")
			if code != "" {
				r.writeBlock("```\n" + code + "\n```")
			}
			return
		case "ul", "ol":
			r.list(n, listDepth, n.Data == "ol")
			if listDepth == 0 {
				r.b.WriteString("\n")
			}
			return
		case "table":
			r.table(n)
			return
		case "blockquote":
			if text := inlineText(n); text != "" {
				r.writeBlock("> " + text)
			}
			return
		case "hr":
			r.writeBlock("---")
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.block(c, listDepth)
	}
}

func (r *mdRenderer) list(n *html.Node, depth int, ordered bool) {
	i := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		i++
		marker := "- "
		if ordered {
			marker = strconv.Itoa(i) + ". "
		}
		if text := inlineText(c); text != "" {
			r.b.WriteString(strings.Repeat("  ", depth) + marker + text + "\n")
		}
		// Nested lists inside this item.
		for g := c.FirstChild; g != nil; g = g.NextSibling {
			if g.Type == html.ElementNode && (g.Data == "ul" || g.Data == "ol") {
				r.list(g, depth+1, g.Data == "ol")
			}
		}
	}
}

func (r *mdRenderer) table(n *html.Node) {
	var rows [][]string
	var collectRows func(*html.Node)
	collectRows = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					cells = append(cells, inlineText(c))
				}
			}
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collectRows(c)
		}
	}
	collectRows(n)
	if len(rows) == 0 {
		return
	}

	var b strings.Builder
	for i, cells := range rows {
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
		if i == 0 {
			seps := make([]string, len(cells))
			for j := range seps {
				seps[j] = "---"
			}
			b.WriteString("| " + strings.Join(seps, " | ") + " |\n")
		}
	}
	r.writeBlock(strings.TrimRight(b.String(), "\n"))
}

// inlineText renders the inline content of a block node: links, emphasis,
// and code spans survive, whitespace collapses to single spaces.
func inlineText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.Data {
			case "ul", "ol", "table", "pre":
				// Block children are rendered separately by the caller.
				return
			case "br":
				b.WriteString(" ")
				return
			case "a":
				href := attr(n, "href")
				text := textContent(n)
				if href != "" && text != "" {
					b.WriteString("[" + text + "](" + href + ")")
					return
				}
			case "code":
				if text := textContent(n); text != "" {
					b.WriteString("`" + text + "`")
					return
				}
			case "strong", "b":
				if text := textContent(n); text != "" {
					b.WriteString("**" + text + "**")
					return
				}
			case "em", "i":
				if text := textContent(n); text != "" {
					b.WriteString("*" + text + "*")
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
			b.WriteString(" ")
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// rawText preserves whitespace, for code blocks.
func rawText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
