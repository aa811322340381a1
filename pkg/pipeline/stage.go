package pipeline

import (
	"github.com/MaxGeldner/gulp-include-source/pkg/assets"
	"github.com/MaxGeldner/gulp-include-source/pkg/dedupe"
	"github.com/MaxGeldner/gulp-include-source/pkg/errors"
	"github.com/MaxGeldner/gulp-include-source/pkg/logging"
	"github.com/MaxGeldner/gulp-include-source/pkg/marker"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Transformer is the engine a Stage drives.
type Transformer interface {
	Transform(text string, opts marker.Options, seen *dedupe.Registry) (string, error)
}

// Options configures a Stage.
type Options struct {
	// Cwd overrides the per-file base directory for glob evaluation.
	Cwd         string
	Extensions  assets.Extensions
	Region      *marker.Region
	LineEndings marker.LineEndings
}

// Stage transforms files one at a time with a shared registry.
type Stage struct {
	engine Transformer
	opts   Options
	seen   *dedupe.Registry
	logger zerolog.Logger
}

// NewStage creates a stage. A nil registry starts a fresh one.
func NewStage(engine Transformer, opts Options, seen *dedupe.Registry) *Stage {
	if seen == nil {
		seen = dedupe.New()
	}
	return &Stage{
		engine: engine,
		opts:   opts,
		seen:   seen,
		logger: logging.GetLogger("pipeline.stage"),
	}
}

// Registry exposes the stage's deduplication registry.
func (s *Stage) Registry() *dedupe.Registry {
	return s.seen
}

// Process handles a single file.
func (s *Stage) Process(f *File, emit Emitter) {
	s.process(f, emit, s.logger)
}

func (s *Stage) process(f *File, emit Emitter, logger zerolog.Logger) {
	logger = logger.With().Str("file", f.Path).Logger()

	switch f.Mode() {
	case ModeNull:
		logger.Trace().Msg("No content, forwarding")
		emit.Push(f)
		return
	case ModeStream:
		logger.Warn().Msg("Streamed content rejected")
		emit.Error(errors.NewPluginError(f.Path,
			errors.New(errors.ErrUnsupportedMode, "Streaming not supported!")))
		return
	}

	baseDir := s.opts.Cwd
	if baseDir == "" {
		baseDir = f.Dir()
	}

	out, err := s.engine.Transform(string(f.Contents), marker.Options{
		BaseDir:     baseDir,
		Extensions:  s.opts.Extensions,
		Region:      s.opts.Region,
		LineEndings: s.opts.LineEndings,
	}, s.seen)
	if err != nil {
		logger.Error().Err(err).Msg("Transform failed, forwarding unmodified file")
		emit.Error(errors.NewPluginError(f.Path, err))
		emit.Push(f)
		return
	}

	logger.Debug().
		Str("baseDir", baseDir).
		Int("before", len(f.Contents)).
		Int("after", len(out)).
		Msg("File transformed")

	f.Contents = []byte(out)
	emit.Push(f)
}

// Run processes files in order and collects the results.
func (s *Stage) Run(files []*File) *Collector {
	runID := uuid.NewString()
	logger := s.logger.With().Str("run", runID).Logger()
	done := logging.LogOperationStart(logger, "pipeline run")
	defer done()

	c := &Collector{}
	for _, f := range files {
		s.process(f, c, logger)
	}

	logger.Info().
		Int("files", len(files)).
		Int("errors", len(c.Errors)).
		Int("registered", s.seen.Len()).
		Msg("Run complete")

	return c
}
