package config

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/MaxGeldner/gulp-include-source/pkg/assets"
	"github.com/MaxGeldner/gulp-include-source/pkg/errors"
	"github.com/MaxGeldner/gulp-include-source/pkg/marker"
)

// Config is the effective configuration of a run.
type Config struct {
	Cwd         string            `koanf:"cwd" toml:"cwd" yaml:"cwd" json:"cwd"`
	ScriptExt   string            `koanf:"script_ext" toml:"script_ext" yaml:"script_ext" json:"script_ext"`
	StyleExt    string            `koanf:"style_ext" toml:"style_ext" yaml:"style_ext" json:"style_ext"`
	LineEndings string            `koanf:"line_endings" toml:"line_endings" yaml:"line_endings" json:"line_endings"`
	Region      Region            `koanf:"region" toml:"region" yaml:"region" json:"region"`
	Output      Output            `koanf:"output" toml:"output" yaml:"output" json:"output"`
	Log         Log               `koanf:"log" toml:"log" yaml:"log" json:"log"`
	Types       map[string]string `koanf:"types" toml:"types" yaml:"types" json:"types"`
}

// Region holds the region-mode switch and tag names.
type Region struct {
	Enabled           bool   `koanf:"enabled" toml:"enabled" yaml:"enabled" json:"enabled"`
	InstructionsOpen  string `koanf:"instructions_open" toml:"instructions_open" yaml:"instructions_open" json:"instructions_open"`
	InstructionsClose string `koanf:"instructions_close" toml:"instructions_close" yaml:"instructions_close" json:"instructions_close"`
	StatementsOpen    string `koanf:"statements_open" toml:"statements_open" yaml:"statements_open" json:"statements_open"`
	StatementsClose   string `koanf:"statements_close" toml:"statements_close" yaml:"statements_close" json:"statements_close"`
}

// Output controls where the CLI writes results.
type Output struct {
	Dir     string `koanf:"dir" toml:"dir" yaml:"dir" json:"dir"`
	InPlace bool   `koanf:"in_place" toml:"in_place" yaml:"in_place" json:"in_place"`
}

// Log selects the log file. Empty keeps the XDG state location; "off"
// disables file logging.
type Log struct {
	File string `koanf:"file" toml:"file" yaml:"file" json:"file"`
}

// Validate checks the configuration for values the engine cannot use.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.LineEndings, validation.By(func(value any) error {
			if _, err := marker.ParseLineEndings(value.(string)); err != nil {
				return validation.NewError("line_endings_unknown", "must be crlf or any")
			}
			return nil
		})),
		validation.Field(&c.Region),
		validation.Field(&c.Output),
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigInvalid, "invalid configuration")
	}

	if _, err := c.AssetTypes(); err != nil {
		return err
	}
	return nil
}

// Validate requires four distinct tags while region mode is enabled.
func (r Region) Validate() error {
	if !r.Enabled {
		return nil
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.InstructionsOpen, validation.Required),
		validation.Field(&r.InstructionsClose, validation.Required,
			validation.NotIn(r.InstructionsOpen).Error("must differ from the other region tags")),
		validation.Field(&r.StatementsOpen, validation.Required,
			validation.NotIn(r.InstructionsOpen, r.InstructionsClose).Error("must differ from the other region tags")),
		validation.Field(&r.StatementsClose, validation.Required,
			validation.NotIn(r.InstructionsOpen, r.InstructionsClose, r.StatementsOpen).Error("must differ from the other region tags")),
	)
}

// Validate requires a directory unless files are overwritten in place.
func (o Output) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Dir, validation.When(!o.InPlace, validation.Required.Error("must be set unless in_place is true"))),
	)
}

// AssetTypes builds the sealed asset type table: the built-ins plus Types.
func (c *Config) AssetTypes() (*assets.Registry, error) {
	types, err := assets.FromMap(c.Types)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "invalid asset type in [types]")
	}
	return types, nil
}

// LineEndingMode returns the parsed line ending mode.
func (c *Config) LineEndingMode() marker.LineEndings {
	mode, _ := marker.ParseLineEndings(c.LineEndings)
	return mode
}

// MarkerRegion returns the region tags when region mode is enabled, else nil.
func (c *Config) MarkerRegion() *marker.Region {
	if !c.Region.Enabled {
		return nil
	}
	return &marker.Region{
		InstructionsOpen:  c.Region.InstructionsOpen,
		InstructionsClose: c.Region.InstructionsClose,
		StatementsOpen:    c.Region.StatementsOpen,
		StatementsClose:   c.Region.StatementsClose,
	}
}

// Extensions returns the extension rewrite settings.
func (c *Config) Extensions() assets.Extensions {
	return assets.Extensions{Script: c.ScriptExt, Style: c.StyleExt}
}
