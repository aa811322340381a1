package output

import (
	"os"
	"path/filepath"

	"github.com/MaxGeldner/gulp-include-source/pkg/errors"
	"github.com/MaxGeldner/gulp-include-source/pkg/logging"
	"github.com/MaxGeldner/gulp-include-source/pkg/pipeline"
	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// LockFile is created in the output root while a batch is being written.
const LockFile = ".include-source.lock"

// WriterOptions selects where files go.
type WriterOptions struct {
	// Dir receives files at their relative paths. Ignored when InPlace is set.
	Dir string
	// InPlace overwrites each file at its own path.
	InPlace bool
	// Lock guards a batch with an exclusive lock file. It needs a real
	// filesystem.
	Lock bool
}

// Writer persists pipeline output.
type Writer struct {
	fs     afero.Fs
	opts   WriterOptions
	logger zerolog.Logger
}

// NewWriter creates a writer over fsys.
func NewWriter(fsys afero.Fs, opts WriterOptions) *Writer {
	return &Writer{
		fs:     fsys,
		opts:   opts,
		logger: logging.GetLogger("output.writer"),
	}
}

// Target returns the path f will be written to.
func (w *Writer) Target(f *pipeline.File) string {
	if w.opts.InPlace {
		return f.Path
	}
	return filepath.Join(w.opts.Dir, f.Relative())
}

// WriteAll writes every buffered file and returns the written paths. Files
// without buffered content are skipped. The first failure stops the batch.
func (w *Writer) WriteAll(files []*pipeline.File) ([]string, error) {
	if w.opts.Lock {
		unlock, err := w.lock()
		if err != nil {
			return nil, err
		}
		defer unlock()
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		if f.Mode() != pipeline.ModeBuffer {
			w.logger.Trace().Str("file", f.Path).Msg("Skipping file without content")
			continue
		}
		target := w.Target(f)
		if err := w.atomicWrite(target, f.Contents); err != nil {
			return written, err
		}
		w.logger.Debug().Str("file", f.Path).Str("target", target).Msg("File written")
		written = append(written, target)
	}
	return written, nil
}

func (w *Writer) root() string {
	if w.opts.InPlace || w.opts.Dir == "" {
		return "."
	}
	return w.opts.Dir
}

// lock takes the batch lock in the output root, creating it if needed.
func (w *Writer) lock() (func(), error) {
	root := w.root()
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to create output directory %s", root).
			WithDetail("path", root)
	}

	path := filepath.Join(root, LockFile)
	fl := flock.New(path)
	acquired, err := fl.TryLock()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrLock, "failed to lock %s", path).
			WithDetail("path", path)
	}
	if !acquired {
		w.logger.Info().Str("lock", path).Msg("Output locked by another run, waiting")
		if err := fl.Lock(); err != nil {
			return nil, errors.Wrapf(err, errors.ErrLock, "failed to lock %s", path).
				WithDetail("path", path)
		}
	}

	return func() {
		if err := fl.Unlock(); err != nil {
			w.logger.Warn().Err(err).Str("lock", path).Msg("Failed to release lock")
		}
	}, nil
}

// atomicWrite writes data to a temp file next to path and renames it over path.
func (w *Writer) atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := w.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to create directory %s", dir).
			WithDetail("path", path)
	}

	tmp, err := afero.TempFile(w.fs, dir, ".tmp-*")
	if err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to create temp file").
			WithDetail("path", path)
	}
	tmpPath := tmp.Name()

	fail := func(err error, msg string) error {
		_ = tmp.Close()
		_ = w.fs.Remove(tmpPath)
		return errors.Wrap(err, errors.ErrFileWrite, msg).WithDetail("path", path)
	}

	if _, err := tmp.Write(data); err != nil {
		return fail(err, "failed to write temp file")
	}
	if err := tmp.Sync(); err != nil {
		return fail(err, "failed to sync temp file")
	}
	if err := tmp.Close(); err != nil {
		return fail(err, "failed to close temp file")
	}
	if err := w.fs.Chmod(tmpPath, 0644); err != nil {
		_ = w.fs.Remove(tmpPath)
		return errors.Wrap(err, errors.ErrFileWrite, "failed to set permissions").WithDetail("path", path)
	}
	if err := w.fs.Rename(tmpPath, path); err != nil {
		_ = w.fs.Remove(tmpPath)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to rename temp file to %s", path).
			WithDetail("path", path)
	}
	return nil
}
