package convert

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"
)

// convertDOCX renders a .docx attachment as Markdown. Heading-styled
// paragraphs become ATX headings at the matching level; everything else
// becomes paragraphs.
func convertDOCX(data []byte, pageURL string) (*Result, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	title := titleFromURL(pageURL)
	var md strings.Builder

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}

		text := docxParagraphText(para)
		if text == "" {
			continue
		}
		if level := docxHeadingLevel(para); level > 0 {
			if md.Len() == 0 && level == 1 {
				title = text
			}
			md.WriteString(strings.Repeat("#", level) + " " + text + "\n\n")
		} else {
			md.WriteString(text + "\n\n")
		}
	}

	markdown := strings.TrimRight(md.String(), "\n")
	if markdown != "" {
		markdown += "\n"
	}
	if !strings.HasPrefix(markdown, "# ") {
		markdown = "# " + title + "\n\n" + markdown
	}
	return &Result{Markdown: markdown, Title: title}, nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if !strings.HasPrefix(style, "heading") {
		return 0
	}
	switch style {
	case "heading1":
		return 1
	case "heading2":
		return 2
	case "heading3":
		return 3
	case "heading4":
		return 4
	case "heading5":
		return 5
	case "heading6":
		return 6
	}
	return 0
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
