// Package watch re-triggers a batch when watched files change.
//
// Events are coalesced: a change starts a quiet period, further changes
// restart it, and the callback runs once the period passes without events.
// The callback runs on the goroutine that called Run, so batches never overlap.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/MaxGeldner/gulp-include-source/pkg/errors"
	"github.com/MaxGeldner/gulp-include-source/pkg/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is the quiet period before a batch is triggered.
const DefaultDebounce = 100 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
	// Ignore lists directories whose events are dropped, such as the output
	// directory of the batch being triggered.
	Ignore []string
}

// Watcher observes directories through fsnotify.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	ignore   []string
	dirs     []string
	logger   zerolog.Logger
}

// New watches every given path. A file path watches its parent directory.
func New(paths []string, opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrWatch, "failed to create watcher")
	}

	w := &Watcher{
		fsw:      fsw,
		debounce: opts.Debounce,
		logger:   logging.GetLogger("watch"),
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	for _, dir := range opts.Ignore {
		if abs, err := filepath.Abs(dir); err == nil {
			w.ignore = append(w.ignore, abs)
		}
	}

	added := make(map[string]bool)
	for _, p := range paths {
		dir, err := watchDir(p)
		if err != nil {
			_ = fsw.Close()
			return nil, err
		}
		if added[dir] || w.ignored(dir) {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, errors.Wrapf(err, errors.ErrWatch, "failed to watch %s", dir).
				WithDetail("path", dir)
		}
		added[dir] = true
		w.dirs = append(w.dirs, dir)
	}
	sort.Strings(w.dirs)

	w.logger.Debug().Strs("dirs", w.dirs).Dur("debounce", w.debounce).Msg("Watcher started")
	return w, nil
}

// Dirs lists the watched directories.
func (w *Watcher) Dirs() []string {
	return append([]string(nil), w.dirs...)
}

// Run calls onChange with the sorted set of changed paths after every quiet
// period. It returns nil when ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, onChange func(changed []string)) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Trace().Str("path", event.Name).Str("op", event.Op.String()).Msg("Change detected")
			pending[event.Name] = true
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("Watcher error")

		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			pending = make(map[string]bool)

			w.logger.Debug().Int("changes", len(changed)).Msg("Triggering batch")
			onChange(changed)
		}
	}
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".tmp-") || base == ".include-source.lock" {
		return false
	}
	return !w.ignored(event.Name)
}

func (w *Watcher) ignored(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, dir := range w.ignore {
		if abs == dir || strings.HasPrefix(abs, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func watchDir(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrWatch, "invalid path %s", p)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrWatch, "cannot watch %s", p).WithDetail("path", p)
	}
	if info.IsDir() {
		return abs, nil
	}
	return filepath.Dir(abs), nil
}
