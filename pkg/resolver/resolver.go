// Package resolver expands marker specifiers into ordered path lists.
//
// A specifier is either a glob pattern (optionally written as "glob:<pattern>")
// evaluated against a base directory, or "list:<manifest>" naming a plain
// text file whose lines are the paths. Manifests are read relative to the
// process working directory, not the base directory.
package resolver

import (
	stderrors "errors"
	"io/fs"
	"strings"

	"github.com/MaxGeldner/gulp-include-source/pkg/errors"
	"github.com/MaxGeldner/gulp-include-source/pkg/filesystem"
	"github.com/MaxGeldner/gulp-include-source/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const (
	ListPrefix = "list:"
	GlobPrefix = "glob:"
)

// Resolver expands specifiers against a filesystem.
type Resolver struct {
	fs     afero.Fs
	logger zerolog.Logger
}

// New creates a resolver over fsys.
func New(fsys afero.Fs) *Resolver {
	return &Resolver{
		fs:     fsys,
		logger: logging.GetLogger("resolver"),
	}
}

// Resolve expands spec into paths in expansion order. Entries are not
// deduplicated here.
func (r *Resolver) Resolve(spec, baseDir string) ([]string, error) {
	if manifest, ok := strings.CutPrefix(spec, ListPrefix); ok {
		return r.readManifest(manifest)
	}

	pattern := strings.TrimPrefix(spec, GlobPrefix)
	matches, err := filesystem.Glob(r.fs, baseDir, pattern)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrBadPattern, "cannot expand glob %q", pattern).
			WithDetail("spec", spec).
			WithDetail("baseDir", baseDir)
	}

	r.logger.Debug().
		Str("pattern", pattern).
		Str("baseDir", baseDir).
		Int("matches", len(matches)).
		Msg("Expanded glob")

	return matches, nil
}

// readManifest splits the manifest on "\n"; every line, including empty
// trailing ones, is an entry.
func (r *Resolver) readManifest(name string) ([]string, error) {
	data, err := filesystem.ReadFile(r.fs, name)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "manifest %s not found", name).
				WithDetail("path", name)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read manifest %s", name).
			WithDetail("path", name)
	}

	entries := strings.Split(string(data), "\n")

	r.logger.Debug().
		Str("manifest", name).
		Int("entries", len(entries)).
		Msg("Read manifest")

	return entries, nil
}
