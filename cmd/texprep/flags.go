package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared by every invocation.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// latexFlags holds LaTeX writer flags.
type latexFlags struct {
	standalone         bool
	engine             string
	documentClass      string
	noUnicodeFallbacks bool
}

// cliFlags holds all parsed flags.
type cliFlags struct {
	common      commonFlags
	builder     string
	output      string
	workers     int
	latex       latexFlags
	printConfig bool
	version     bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-file timing and math counts")
}

// addLaTeXFlags adds LaTeX writer flags to a FlagSet.
func addLaTeXFlags(fs *flag.FlagSet, f *latexFlags) {
	fs.BoolVar(&f.standalone, "standalone", false, "wrap output in a complete LaTeX document")
	fs.StringVar(&f.engine, "engine", "", "engine for the standalone preamble: xelatex, lualatex, pdflatex")
	fs.StringVar(&f.documentClass, "document-class", "", "standalone document class")
	fs.BoolVar(&f.noUnicodeFallbacks, "no-unicode-fallbacks", false, "omit \\newunicodechar declarations")
}

// parseFlags parses command-line flags and returns positional args.
// Returns flag.ErrHelp for -h/--help.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("texprep", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	f := &cliFlags{}
	fs.StringVarP(&f.builder, "builder", "b", "", "output builder: latex, html (default latex)")
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective configuration and exit")
	fs.BoolVar(&f.version, "version", false, "show version information")

	addCommonFlags(fs, &f.common)
	addLaTeXFlags(fs, &f.latex)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
