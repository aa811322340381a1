package assets

import (
	"regexp"
	"strings"

	"github.com/MaxGeldner/gulp-include-source/pkg/errors"
	"github.com/MaxGeldner/gulp-include-source/pkg/registry"
)

// Placeholder is replaced by the resolved path when a template is rendered.
const Placeholder = "%"

// Built-in asset types.
const (
	TypeJS  = "js"
	TypeCSS = "css"
)

var typeNameRe = regexp.MustCompile(`^[a-z]+$`)

// Template renders one include statement for one path.
type Template string

// Render substitutes every placeholder with path.
func (t Template) Render(path string) string {
	return strings.ReplaceAll(string(t), Placeholder, path)
}

// Validate checks that the template carries exactly one placeholder.
func (t Template) Validate() error {
	if n := strings.Count(string(t), Placeholder); n != 1 {
		return errors.Newf(errors.ErrInvalidInput,
			"template %q must contain exactly one %q placeholder, found %d", string(t), Placeholder, n)
	}
	return nil
}

// Registry maps asset type tags to templates.
type Registry struct {
	templates registry.Registry[Template]
}

// NewRegistry returns an unsealed table holding the built-in types.
func NewRegistry() *Registry {
	r := &Registry{templates: registry.New[Template]()}
	registry.MustRegister(r.templates, TypeJS, Template(`<script src="%"></script>`))
	registry.MustRegister(r.templates, TypeCSS, Template(`<link rel="stylesheet" href="%">`))
	return r
}

// Default returns the sealed built-in table.
func Default() *Registry {
	r := NewRegistry()
	r.Seal()
	return r
}

// Add registers an additional asset type.
func (r *Registry) Add(name string, tmpl Template) error {
	if !typeNameRe.MatchString(name) {
		return errors.Newf(errors.ErrInvalidInput, "asset type %q must be lowercase letters only", name)
	}
	if err := tmpl.Validate(); err != nil {
		return err
	}
	return r.templates.Register(name, tmpl)
}

// Lookup returns the template registered for the asset type.
func (r *Registry) Lookup(name string) (Template, bool) {
	return r.templates.Lookup(name)
}

// Types lists the registered type tags in sorted order.
func (r *Registry) Types() []string {
	return r.templates.List()
}

// Seal freezes the table for the rest of the process.
func (r *Registry) Seal() {
	r.templates.Seal()
}

// FromMap builds a sealed table with the built-ins plus extra.
func FromMap(extra map[string]string) (*Registry, error) {
	r := NewRegistry()
	for name, tmpl := range extra {
		if err := r.Add(name, Template(tmpl)); err != nil {
			return nil, err
		}
	}
	r.Seal()
	return r, nil
}
