package filesystem

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// Glob expands pattern against baseDir.
//
// The static prefix of the pattern (everything before the first segment with
// a meta character) is resolved against baseDir, or used as-is when absolute,
// so patterns such as "../vendor/*.js" and "/srv/assets/**/*.css" work.
// Matches keep that prefix exactly as written, "./" included, and use forward
// slashes. Entries whose name starts with a dot are skipped unless the pattern
// segment matching them starts with a dot too. Nothing matching yields an
// empty result; a malformed pattern yields doublestar.ErrBadPattern.
func Glob(fsys afero.Fs, baseDir, pattern string) ([]string, error) {
	pattern = filepath.ToSlash(pattern)
	prefix, rest := doublestar.SplitPattern(pattern)
	if !doublestar.ValidatePattern(rest) {
		return nil, doublestar.ErrBadPattern
	}

	root := filepath.FromSlash(prefix)
	if !filepath.IsAbs(root) {
		root = filepath.Join(baseDir, root)
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	matches, err := doublestar.Glob(afero.NewIOFS(afero.NewBasePathFs(fsys, root)), rest)
	if err != nil {
		return nil, err
	}

	dotSegments := hiddenSegments(rest)
	lead := prefix + "/"
	switch {
	case prefix == "." && !strings.HasPrefix(pattern, "./"):
		lead = ""
	case strings.HasSuffix(prefix, "/"):
		lead = prefix
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if !visible(m, dotSegments) {
			continue
		}
		out = append(out, lead+m)
	}
	return out, nil
}

// hiddenSegments returns the pattern segments that opt into dot entries.
func hiddenSegments(pattern string) []string {
	var segs []string
	for _, seg := range strings.Split(pattern, "/") {
		if strings.HasPrefix(seg, ".") && seg != "." && seg != ".." {
			segs = append(segs, seg)
		}
	}
	return segs
}

// visible reports whether every dot-named segment of match is matched by a
// dot-prefixed pattern segment.
func visible(match string, dotSegments []string) bool {
	for _, seg := range strings.Split(match, "/") {
		if !strings.HasPrefix(seg, ".") {
			continue
		}
		allowed := false
		for _, p := range dotSegments {
			if ok, _ := doublestar.Match(p, seg); ok {
				allowed = true
				break
			}
		}
		if !allowed {
			return false
		}
	}
	return true
}

// StaticPrefix returns the leading directories of pattern that contain no
// meta characters, in OS form. It is "." for patterns without one.
func StaticPrefix(pattern string) string {
	prefix, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	return filepath.FromSlash(prefix)
}
