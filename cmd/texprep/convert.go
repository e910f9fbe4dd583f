package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-texprep"
	"github.com/alnah/go-texprep/internal/config"
	"github.com/alnah/go-texprep/internal/yamlutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput      = errors.New("no input specified")
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteOutput  = errors.New("failed to write output file")
)

// runConvert orchestrates a build run.
func runConvert(ctx context.Context, positionalArgs []string, flags *cliFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := loadConfig(flags, env)
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins), then revalidate.
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if flags.printConfig {
		out, err := yamlutil.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		_, _ = env.Stdout.Write(out)
		return nil
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	builder := resolveBuilder(cfg)
	files, err := discoverFiles(inputPath, resolveOutputDir(flags.output, cfg), outputExtension(builder))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}

	pool, err := texprep.NewAppPool(texprep.ResolvePoolSize(flags.workers), builder, appOptions(cfg)...)
	if err != nil {
		return fmt.Errorf("configuring %s builder: %w", builder, err)
	}
	defer pool.Close()

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Building %d file(s) with %s, %d worker(s)\n", len(files), builder, pool.Size())
	}

	results := convertBatch(ctx, pool, files)

	failed, firstErr := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		return fmt.Errorf("%d build(s) failed: %w", failed, firstErr)
	}
	return nil
}

// loadConfig returns the config named by --config, or the environment's.
func loadConfig(flags *cliFlags, env *Environment) (*config.Config, error) {
	if flags.common.config == "" {
		if env.Config != nil {
			cp := *env.Config
			return &cp, nil
		}
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(flags.common.config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	if flags.builder != "" {
		cfg.Builder = flags.builder
	}
	if flags.latex.standalone {
		cfg.LaTeX.Standalone = true
	}
	if flags.latex.engine != "" {
		cfg.LaTeX.Engine = flags.latex.engine
	}
	if flags.latex.documentClass != "" {
		cfg.LaTeX.DocumentClass = flags.latex.documentClass
	}
	if flags.latex.noUnicodeFallbacks {
		disabled := false
		cfg.LaTeX.UnicodeFallbacks = &disabled
	}
}

// resolveBuilder returns the configured builder, defaulting to LaTeX.
func resolveBuilder(cfg *config.Config) string {
	if cfg.Builder == "" {
		return texprep.LaTeXBuilder
	}
	return cfg.Builder
}

// resolveInputPath picks the positional argument or the config default.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	switch {
	case len(args) > 1:
		return "", fmt.Errorf("%w: got %d", ErrTooManyArgs, len(args))
	case len(args) == 1:
		return args[0], nil
	case cfg.Input.DefaultDir != "":
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir picks --output or the config default.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// appOptions translates cfg into library options.
func appOptions(cfg *config.Config) []texprep.Option {
	opts := []texprep.Option{
		texprep.WithStandalone(cfg.LaTeX.Standalone),
		texprep.WithUnicodeFallbacks(cfg.LaTeX.FallbacksEnabled()),
		texprep.WithPreambleExtra(cfg.LaTeX.Preamble),
		texprep.WithHTMLTitle(cfg.HTML.Title),
		texprep.WithHighlightStyle(cfg.HTML.HighlightStyle),
	}
	if cfg.LaTeX.Engine != "" {
		opts = append(opts, texprep.WithEngine(cfg.LaTeX.Engine))
	}
	if cfg.LaTeX.DocumentClass != "" {
		opts = append(opts, texprep.WithDocumentClass(cfg.LaTeX.DocumentClass))
	}
	if len(cfg.Replacements) > 0 {
		replacements := make([]texprep.Replacement, len(cfg.Replacements))
		for i, r := range cfg.Replacements {
			replacements[i] = texprep.Replacement{From: r.From, To: r.To}
		}
		opts = append(opts, texprep.WithReplacements(replacements...))
	}
	return opts
}
