// Package dedupe tracks which paths a pipeline run has already emitted or
// explicitly excluded.
//
// A Registry is created by the host once per run and handed to every file
// transform of that run, so a path included by one file is filtered out of
// every later marker in the same file and in later files. The state only
// grows. Callers needing isolation create a fresh Registry.
//
// A Registry is not safe for concurrent use; hosts that transform files in
// parallel must serialise access or give each run its own instance.
package dedupe

// Registry is an append-only set of paths with insertion order.
type Registry struct {
	seen  map[string]struct{}
	order []string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{seen: make(map[string]struct{})}
}

// FilterNew returns the paths not yet recorded, keeping their relative order.
// Duplicates inside paths are kept; only recorded paths are removed. The
// registry is not modified.
func (r *Registry) FilterNew(paths []string) []string {
	fresh := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := r.seen[p]; !ok {
			fresh = append(fresh, p)
		}
	}
	return fresh
}

// Record adds every given path.
func (r *Registry) Record(paths ...string) {
	for _, p := range paths {
		r.add(p)
	}
}

// RecordExcluded adds a path taken from an exclude marker, whether or not it
// was ever produced by a resolution.
func (r *Registry) RecordExcluded(path string) {
	r.add(path)
}

// Has reports whether path was recorded.
func (r *Registry) Has(path string) bool {
	_, ok := r.seen[path]
	return ok
}

// Len returns the number of distinct recorded paths.
func (r *Registry) Len() int {
	return len(r.order)
}

// Paths returns the distinct recorded paths in first-recorded order.
func (r *Registry) Paths() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) add(p string) {
	if _, ok := r.seen[p]; ok {
		return
	}
	r.seen[p] = struct{}{}
	r.order = append(r.order, p)
}
