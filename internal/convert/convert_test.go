package convert

import (
	"strings"
	"testing"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		contentType string
		pageURL     string
		want        string
	}{
		{"text/html; charset=utf-8", "https://x.example.com/p", "html"},
		{"text/markdown", "https://x.example.com/p", "markdown"},
		{"text/plain", "https://x.example.com/readme.md", "markdown"},
		{"text/plain", "https://x.example.com/notes.txt", "text"},
		{"application/pdf", "https://x.example.com/spec", "pdf"},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "https://x.example.com/d", "docx"},
		{"text/csv", "https://x.example.com/data", "csv"},
		{"", "https://x.example.com/page.html", "html"},
		{"", "https://x.example.com/doc.pdf", "pdf"},
		{"application/octet-stream", "https://x.example.com/blob", ""},
	}
	for _, tt := range tests {
		t.Run(tt.contentType+" "+tt.pageURL, func(t *testing.T) {
			if got := detectKind(tt.contentType, tt.pageURL); got != tt.want {
				t.Errorf("detectKind(%q, %q) = %q, want %q", tt.contentType, tt.pageURL, got, tt.want)
			}
		})
	}
}

func TestConvert_UnsupportedType(t *testing.T) {
	c := New(nil)
	if _, err := c.Convert([]byte{0x1}, "application/octet-stream", "https://x.example.com/blob"); err == nil {
		t.Error("expected an error for an unsupported payload")
	}
}

func TestConvert_MarkdownPassthrough(t *testing.T) {
	src := "# Existing Doc\r\n\r\nalready markdown\n"
	c := New(nil)
	res, err := c.Convert([]byte(src), "text/markdown", "https://x.example.com/doc.md")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if res.Title != "Existing Doc" {
		t.Errorf("title = %q", res.Title)
	}
	if strings.Contains(res.Markdown, "\r\n") {
		t.Error("expected CRLF normalization")
	}
	if !strings.Contains(res.Markdown, "already markdown") {
		t.Error("body lost in passthrough")
	}
}

func TestConvert_PlainTextWrapped(t *testing.T) {
	c := New(nil)
	res, err := c.Convert([]byte("just notes\n"), "text/plain", "https://x.example.com/notes.txt")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.HasPrefix(res.Markdown, "# notes\n") {
		t.Errorf("expected a title heading, got:\n%s", res.Markdown)
	}
	if !strings.Contains(res.Markdown, "just notes") {
		t.Error("body missing")
	}
}

func TestConvert_CSVTable(t *testing.T) {
	csvData := "name,status\nalpha,ok\nbeta,failed\n"
	c := New(nil)
	res, err := c.Convert([]byte(csvData), "text/csv", "https://x.example.com/report.csv")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	for _, want := range []string{
		"| name | status |",
		"| --- | --- |",
		"| alpha | ok |",
		"| beta | failed |",
	} {
		if !strings.Contains(res.Markdown, want) {
			t.Errorf("markdown missing %q:\n%s", want, res.Markdown)
		}
	}
}
