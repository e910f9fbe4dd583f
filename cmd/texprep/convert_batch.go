package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/alnah/go-texprep"
	"github.com/alnah/go-texprep/internal/fileutil"
)

// Pool abstracts App pool operations for testability.
type Pool interface {
	Acquire() (*texprep.App, error)
	Release(*texprep.App)
	Size() int
}

// Compile-time interface implementation check.
var _ Pool = (*texprep.AppPool)(nil)

// BuildResult holds the outcome of a single build.
type BuildResult struct {
	InputPath   string
	OutputPath  string
	DisplayMath int
	Tagged      int
	Err         error
	Duration    time.Duration
}

// convertBatch builds files concurrently, one App per worker.
// Results are returned in input order.
func convertBatch(ctx context.Context, pool Pool, files []FileToBuild) []BuildResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]BuildResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			app, err := pool.Acquire()
			if err != nil {
				for idx := range jobs {
					results[idx] = BuildResult{InputPath: files[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(app)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = BuildResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = buildFile(ctx, app, files[idx])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// buildFile reads, builds and writes one file.
func buildFile(ctx context.Context, app *texprep.App, f FileToBuild) (result BuildResult) {
	start := time.Now()
	result = BuildResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	defer func() { result.Duration = time.Since(start) }()

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		return result
	}

	built, err := app.Build(ctx, texprep.Document{Name: f.InputPath, Markdown: string(content)})
	if err != nil {
		result.Err = err
		return result
	}
	result.DisplayMath = built.DisplayMath
	result.Tagged = built.Tagged

	if err := fileutil.WriteFile(f.OutputPath, built.Output); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
		return result
	}
	return result
}

// printResultsWithWriter reports results and returns the failure count and
// the first failure in input order.
func printResultsWithWriter(results []BuildResult, quiet, verbose bool, env *Environment) (int, error) {
	var (
		failed    int
		succeeded int
		firstErr  error
	)

	for _, r := range results {
		if r.Err != nil {
			failed++
			if firstErr == nil {
				firstErr = r.Err
			}
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}
		succeeded++

		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v, %d/%d display math tagged)\n",
				r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond), r.Tagged, r.DisplayMath)
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed, firstErr
}
