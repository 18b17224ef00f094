package convert

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/docrelay/docrelay/internal/config"
)

const maxRelatedLinks = 10

// Elements whose subtrees are page chrome, never article content.
var chromeElements = map[string]bool{
	"script": true,
	"style":  true,
	"nav":    true,
	"header": true,
	"footer": true,
	"aside":  true,
	"form":   true,
}

// convertHTML renders an HTML page as Markdown. The page is parsed once to
// pull metadata and locate the content root, then the pruned content subtree
// is sanitized through bluemonday and re-parsed for rendering, so no script
// or event-handler payload can survive into the output.
func (c *Converter) convertHTML(data []byte, pageURL string) (*Result, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	rule := c.siteRule(pageURL)

	res := &Result{
		Title:      pageTitle(doc, rule),
		Breadcrumb: findBreadcrumb(doc),
	}

	root := contentRoot(doc, rule)
	prune(root, rule)

	res.Links = collectLinks(root, pageURL)

	var rendered bytes.Buffer
	if err := html.Render(&rendered, root); err != nil {
		return nil, fmt.Errorf("render content subtree: %w", err)
	}
	clean, err := html.Parse(bytes.NewReader(c.policy.SanitizeBytes(rendered.Bytes())))
	if err != nil {
		return nil, fmt.Errorf("parse sanitized html: %w", err)
	}

	var r mdRenderer
	r.block(clean, 0)
	res.Markdown = r.String()

	if res.Title == "" {
		if h := firstHeading(res.Markdown); h != "" {
			res.Title = h
		} else {
			res.Title = titleFromURL(pageURL)
		}
	}
	return res, nil
}

// contentRoot picks the subtree to convert: the site rule's selector when it
// matches, otherwise <main>, <article>, or <body> in that order.
func contentRoot(doc *html.Node, rule *config.SiteRule) *html.Node {
	if rule != nil && rule.ContentSelector != "" {
		if n := findBySelector(doc, rule.ContentSelector); n != nil {
			return n
		}
	}
	for _, tag := range []string{"main", "article", "body"} {
		if n := findElement(doc, tag); n != nil {
			return n
		}
	}
	return doc
}

// prune unlinks chrome elements and any site-rule strip selectors in place.
func prune(root *html.Node, rule *config.SiteRule) {
	var strip []string
	if rule != nil {
		strip = rule.StripSelectors
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		c := n.FirstChild
		for c != nil {
			next := c.NextSibling
			if shouldPrune(c, strip) {
				n.RemoveChild(c)
			} else {
				walk(c)
			}
			c = next
		}
	}
	walk(root)
}

func shouldPrune(n *html.Node, strip []string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if chromeElements[n.Data] {
		return true
	}
	for _, sel := range strip {
		if matchSelector(n, sel) {
			return true
		}
	}
	return false
}

// matchSelector supports the minimal forms site rules need: "#id", ".class",
// and bare names matching an element tag, id, or class token.
func matchSelector(n *html.Node, sel string) bool {
	if n.Type != html.ElementNode || sel == "" {
		return false
	}
	switch {
	case strings.HasPrefix(sel, "#"):
		return attr(n, "id") == sel[1:]
	case strings.HasPrefix(sel, "."):
		return hasClass(n, sel[1:])
	default:
		return n.Data == sel || attr(n, "id") == sel || hasClass(n, sel)
	}
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, token := range strings.Fields(attr(n, "class")) {
		if token == class {
			return true
		}
	}
	return false
}

func findBySelector(n *html.Node, sel string) *html.Node {
	if matchSelector(n, sel) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findBySelector(c, sel); found != nil {
			return found
		}
	}
	return nil
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func pageTitle(doc *html.Node, rule *config.SiteRule) string {
	if rule != nil && rule.TitleSelector != "" {
		if n := findBySelector(doc, rule.TitleSelector); n != nil {
			return textContent(n)
		}
	}
	if n := findElement(doc, "title"); n != nil {
		return textContent(n)
	}
	return ""
}

// findBreadcrumb collects link texts from a breadcrumb nav, identified by a
// class or aria-label containing "breadcrumb".
func findBreadcrumb(doc *html.Node) []string {
	var nav *html.Node
	var find func(n *html.Node)
	find = func(n *html.Node) {
		if nav != nil {
			return
		}
		if n.Type == html.ElementNode {
			marker := strings.ToLower(attr(n, "class") + " " + attr(n, "aria-label"))
			if strings.Contains(marker, "breadcrumb") {
				nav = n
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(doc)
	if nav == nil {
		return nil
	}

	var crumbs []string
	var collect func(n *html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if t := textContent(n); t != "" {
				crumbs = append(crumbs, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(nav)
	return crumbs
}

// collectLinks gathers related links from the content subtree, resolved
// against the page URL and deduplicated.
func collectLinks(root *html.Node, pageURL string) []Link {
	base, _ := url.Parse(pageURL)
	seen := make(map[string]bool)
	var links []Link

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if len(links) >= maxRelatedLinks {
			return
		}
		if n.Type == html.ElementNode && n.Data == "a" {
			href := attr(n, "href")
			title := textContent(n)
			if href != "" && title != "" && !strings.HasPrefix(href, "#") {
				resolved := href
				if base != nil {
					if u, err := url.Parse(href); err == nil {
						resolved = base.ResolveReference(u).String()
					}
				}
				if !seen[resolved] {
					seen[resolved] = true
					links = append(links, Link{Title: title, URL: resolved})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return links
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func firstHeading(markdown string) string {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimLeft(line, "# ")
		if strings.HasPrefix(line, "#") && trimmed != "" {
			return trimmed
		}
	}
	return ""
}
