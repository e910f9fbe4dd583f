package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: texprep [flags] <input>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Prepare markdown files for LaTeX: strip control characters, replace")
	fmt.Fprintln(w, "glyphs the TeX fonts lack, and emit display math without split.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -b, --builder <name>      Builder: latex (default), html")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "LaTeX:")
	fmt.Fprintln(w, "      --standalone          Wrap output in a complete document")
	fmt.Fprintln(w, "      --engine <name>       xelatex (default), lualatex, pdflatex")
	fmt.Fprintln(w, "      --document-class <s>  Document class (default article)")
	fmt.Fprintln(w, "      --no-unicode-fallbacks")
	fmt.Fprintln(w, "                            Omit \\newunicodechar declarations")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "      --print-config        Print the effective configuration and exit")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timing and math counts")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0  success")
	fmt.Fprintln(w, "  1  build failure")
	fmt.Fprintln(w, "  2  invalid flags or configuration")
	fmt.Fprintln(w, "  3  file not found or not writable")
}
