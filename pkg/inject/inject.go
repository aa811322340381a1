// Package inject runs one complete batch: expand the input globs, transform
// every file through a fresh pipeline stage and write the results.
package inject

import (
	"path/filepath"
	"time"

	"github.com/MaxGeldner/gulp-include-source/pkg/config"
	"github.com/MaxGeldner/gulp-include-source/pkg/errors"
	"github.com/MaxGeldner/gulp-include-source/pkg/filesystem"
	"github.com/MaxGeldner/gulp-include-source/pkg/logging"
	"github.com/MaxGeldner/gulp-include-source/pkg/marker"
	"github.com/MaxGeldner/gulp-include-source/pkg/output"
	"github.com/MaxGeldner/gulp-include-source/pkg/pipeline"
	"github.com/MaxGeldner/gulp-include-source/pkg/resolver"
	"github.com/spf13/afero"
)

// Options configures a batch.
type Options struct {
	Config *config.Config
	// Inputs are glob patterns relative to the process working directory.
	Inputs []string
	// FS defaults to the real filesystem.
	FS afero.Fs
	// Lock guards the output directory while writing.
	Lock bool
}

// Result summarises a batch.
type Result struct {
	Processed int
	Written   []string
	Errors    []error
	Duration  time.Duration
}

// Failed reports whether any file failed.
func (r *Result) Failed() bool {
	return len(r.Errors) > 0
}

// Summary converts the result for output.Renderer.
func (r *Result) Summary() output.Summary {
	return output.Summary{
		Processed: r.Processed,
		Written:   r.Written,
		Errors:    r.Errors,
		Duration:  r.Duration,
	}
}

// Run executes one batch. Per-file failures are collected in the result; the
// returned error is reserved for failures that stop the batch as a whole.
func Run(opts Options) (*Result, error) {
	start := time.Now()
	logger := logging.GetLogger("inject")
	cfg := opts.Config

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	types, err := cfg.AssetTypes()
	if err != nil {
		return nil, err
	}

	files, err := Collect(fsys, opts.Inputs)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New(errors.ErrNotFound, "no input files matched").
			WithDetail("inputs", opts.Inputs)
	}

	engine := marker.NewEngine(resolver.New(fsys), types)
	stage := pipeline.NewStage(engine, StageOptions(cfg), nil)
	collected := stage.Run(files)

	writer := output.NewWriter(fsys, output.WriterOptions{
		Dir:     cfg.Output.Dir,
		InPlace: cfg.Output.InPlace,
		Lock:    opts.Lock,
	})
	written, err := writer.WriteAll(collected.Files)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Processed: len(files),
		Written:   written,
		Errors:    collected.Errors,
		Duration:  time.Since(start),
	}

	logger.Info().
		Int("processed", result.Processed).
		Int("written", len(result.Written)).
		Int("errors", len(result.Errors)).
		Dur("duration", result.Duration).
		Msg("Batch finished")

	return result, nil
}

// StageOptions maps configuration to pipeline options.
func StageOptions(cfg *config.Config) pipeline.Options {
	return pipeline.Options{
		Cwd:         cfg.Cwd,
		Extensions:  cfg.Extensions(),
		Region:      cfg.MarkerRegion(),
		LineEndings: cfg.LineEndingMode(),
	}
}

// Collect expands every input pattern into files, in pattern order, each
// rooted at its pattern's static prefix. A file matched by several patterns is
// processed once. Directories become files without content.
func Collect(fsys afero.Fs, inputs []string) ([]*pipeline.File, error) {
	var files []*pipeline.File
	seen := make(map[string]bool)

	for _, pattern := range inputs {
		matches, err := filesystem.Glob(fsys, ".", pattern)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrBadPattern, "invalid input pattern %q", pattern).
				WithDetail("pattern", pattern)
		}
		base := filesystem.StaticPrefix(pattern)

		for _, m := range matches {
			p := filepath.Clean(filepath.FromSlash(m))
			if seen[p] {
				continue
			}
			seen[p] = true

			f := &pipeline.File{Path: p, Base: base}
			info, err := fsys.Stat(p)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", p).WithDetail("path", p)
			}
			if !info.IsDir() {
				data, err := afero.ReadFile(fsys, p)
				if err != nil {
					return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", p).WithDetail("path", p)
				}
				f.Contents = data
			}
			files = append(files, f)
		}
	}
	return files, nil
}
