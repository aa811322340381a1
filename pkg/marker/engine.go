package marker

import (
	"strings"

	"github.com/MaxGeldner/gulp-include-source/pkg/assets"
	"github.com/MaxGeldner/gulp-include-source/pkg/dedupe"
	"github.com/MaxGeldner/gulp-include-source/pkg/errors"
	"github.com/MaxGeldner/gulp-include-source/pkg/logging"
	"github.com/rs/zerolog"
)

// Resolver expands a marker specifier into paths.
type Resolver interface {
	Resolve(spec, baseDir string) ([]string, error)
}

// Options configures a single Transform call.
type Options struct {
	// BaseDir is the directory glob specifiers are evaluated against.
	BaseDir string
	// Extensions rewrites script/style extensions of rendered paths.
	Extensions assets.Extensions
	// Region confines substitution to the statements region when set.
	Region *Region
	// LineEndings controls line splitting in the exclude pass.
	LineEndings LineEndings
}

// Engine substitutes markers using a resolver and an asset type table.
type Engine struct {
	resolver Resolver
	types    *assets.Registry
	logger   zerolog.Logger
}

// NewEngine creates an engine. A nil types table means the built-in one.
func NewEngine(resolver Resolver, types *assets.Registry) *Engine {
	if types == nil {
		types = assets.Default()
	}
	return &Engine{
		resolver: resolver,
		types:    types,
		logger:   logging.GetLogger("marker.engine"),
	}
}

// Transform rewrites every marker in text. seen is the run's registry and is
// updated as markers are processed.
//
// On error the returned text is the partial result: in whole-document mode the
// markers rendered before the failure followed by the untouched remainder, in
// region mode the original text.
func (e *Engine) Transform(text string, opts Options, seen *dedupe.Registry) (string, error) {
	if opts.Region != nil {
		return e.transformRegion(text, opts, seen)
	}
	working := e.applyExcludes(text, opts.LineEndings, seen)
	return e.expandIncludes(working, opts, seen)
}

// applyExcludes records every exclude marker and deletes it from text.
func (e *Engine) applyExcludes(text string, mode LineEndings, seen *dedupe.Registry) string {
	excludes := ParseExcludes(text, mode)
	for _, m := range excludes {
		seen.RecordExcluded(m.Spec)
		e.logger.Debug().
			Str("path", m.Spec).
			Int("line", m.Line).
			Msg("Excluded path")
	}
	return cut(text, excludes)
}

// expandIncludes renders include markers parsed from a snapshot of text and
// concatenates them with the literal segments between them.
func (e *Engine) expandIncludes(text string, opts Options, seen *dedupe.Registry) (string, error) {
	markers := ParseIncludes(text)
	if len(markers) == 0 {
		return text, nil
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range markers {
		b.WriteString(text[last:m.Start])
		block, err := e.render(m, opts, seen)
		if err != nil {
			b.WriteString(text[m.Start:])
			return b.String(), err
		}
		b.WriteString(block)
		last = m.End
	}
	b.WriteString(text[last:])
	return b.String(), nil
}

func (e *Engine) render(m Marker, opts Options, seen *dedupe.Registry) (string, error) {
	resolved, err := e.resolver.Resolve(m.Spec, opts.BaseDir)
	if err != nil {
		return "", markerError(err, m)
	}

	fresh := seen.FilterNew(resolved)
	seen.Record(fresh...)

	logger := e.logger.With().Str("marker", m.String()).Int("line", m.Line).Logger()

	tmpl, ok := e.types.Lookup(m.Type)
	if !ok {
		logger.Debug().Msg("Unknown asset type, marker removed")
		return "", nil
	}
	if len(fresh) == 0 {
		logger.Debug().Int("resolved", len(resolved)).Msg("Nothing new to include, marker removed")
		return "", nil
	}

	lines := make([]string, len(fresh))
	for i, p := range fresh {
		lines[i] = tmpl.Render(assets.RewriteExtension(p, m.Type, opts.Extensions))
	}

	logger.Debug().
		Int("resolved", len(resolved)).
		Int("emitted", len(lines)).
		Msg("Marker rendered")

	return strings.Join(lines, "\n"), nil
}

func markerError(err error, m Marker) error {
	code := errors.GetErrorCode(err)
	if code == errors.ErrUnknown {
		code = errors.ErrUnstructured
	}
	return errors.Wrapf(err, code, "cannot resolve %s", m).
		WithDetail("line", m.Line).
		WithDetail("spec", m.Spec)
}
