package config

import (
	"bytes"
	"strings"

	"github.com/MaxGeldner/gulp-include-source/pkg/errors"
	gotoml "github.com/pelletier/go-toml/v2"
	goyaml "gopkg.in/yaml.v3"
)

// Format is a config file syntax accepted by Generate.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

const generatedHeader = "# include-source configuration\n"

// Generate renders cfg in the given format.
func Generate(cfg *Config, format Format) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(generatedHeader)

	switch format {
	case FormatTOML, "":
		enc := gotoml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode TOML")
		}
	case FormatYAML, "yml":
		enc := goyaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode YAML")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode YAML")
		}
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown config format %q (want toml or yaml)", format)
	}

	return buf.Bytes(), nil
}

// GenerateCommented returns the embedded defaults with every value commented
// out, ready to be saved as a starting point.
func GenerateCommented() string {
	return commentOutConfigValues(DefaultsContent())
}

// commentOutConfigValues takes the TOML content and comments out all non-comment, non-blank lines
// that contain configuration values (assignments)
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Keep blank lines as-is
		if trimmed == "" {
			result = append(result, line)
			continue
		}

		// Keep lines that are already comments
		if strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		// Keep section headers (e.g., [region], [output]) as-is
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		// Comment out configuration value lines
		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
