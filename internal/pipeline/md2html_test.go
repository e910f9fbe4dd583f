package pipeline

import (
	"strings"
	"testing"
)

func renderHTML(t *testing.T, title, md string) string {
	t.Helper()

	w, err := NewHTMLWriter(title, "")
	if err != nil {
		t.Fatalf("NewHTMLWriter() unexpected error: %v", err)
	}
	src := []byte(md)
	out, err := w.Render(NewParser().Parse(src), src)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	return out
}

func TestHTMLWriter_Render(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		title    string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "document shell",
			input:    "# Hello\n",
			contains: []string{"<!DOCTYPE html>", "<title>Document</title>", `<h1 id="hello">Hello</h1>`, "</html>"},
		},
		{
			name:     "title escaped",
			title:    "A & <B>",
			input:    "x\n",
			contains: []string{"<title>A &amp; &lt;B&gt;</title>"},
		},
		{
			name:     "highlighted code uses classes",
			input:    "```go\nfunc main() {}\n```\n",
			contains: []string{`class="chroma"`, "<style>", ".chroma"},
		},
		{
			name:     "display math block",
			input:    "$$\na < b\n$$\n",
			contains: []string{`<div class="math">\[a &lt; b\]</div>`},
		},
		{
			name:     "labelled display math",
			input:    "```math eq:one\nx\n```\n",
			contains: []string{`<div class="math" id="eq:one">\[x\]</div>`},
		},
		{
			name:     "inline math",
			input:    "see $x^2$ here\n",
			contains: []string{`<span class="math">\(x^2\)</span>`},
		},
		{
			name:     "raw html dropped",
			input:    "<script>alert(1)</script>\n",
			excludes: []string{"<script>alert"},
		},
		{
			name:     "gfm table",
			input:    "| a |\n|---|\n| 1 |\n",
			contains: []string{"<table>", "<th>a</th>", "<td>1</td>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := renderHTML(t, tt.title, tt.input)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\ngot:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("output contains %q", unwanted)
				}
			}
		})
	}
}

func TestHTMLWriter_UnknownStyleFallsBack(t *testing.T) {
	t.Parallel()

	// chroma returns its fallback style for unknown names.
	if _, err := NewHTMLWriter("", "no-such-style"); err != nil {
		t.Errorf("NewHTMLWriter() unexpected error: %v", err)
	}
}

func TestStyleBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "plain", input: "a{}", expected: "<style>a{}</style>\n"},
		{name: "closing tag escaped", input: "</style>", expected: "<style><\\/style></style>\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := styleBlock(tt.input); got != tt.expected {
				t.Errorf("styleBlock(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
