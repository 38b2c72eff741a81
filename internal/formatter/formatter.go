package formatter

import (
	"encoding/json"
	"fmt"

	"github.com/mikey/mailsift/internal/core"
	"github.com/mikey/mailsift/internal/utils"
	"gopkg.in/yaml.v3"
)

// Formatter renders an analysis result for output. Rendered output never
// carries trailing newlines.
type Formatter interface {
	Format(result core.Result) (string, error)
}

// ForFormat returns the formatter for an output format name
func ForFormat(name string) (Formatter, error) {
	switch name {
	case "json":
		return JSONFormatter{}, nil
	case "txt":
		return TextFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", name)
	}
}

// JSONFormatter renders results as indented JSON. The rendering is lossless:
// re-parsing the output yields a structurally equal result.
type JSONFormatter struct{}

// Format renders the result as indented JSON
func (JSONFormatter) Format(result core.Result) (string, error) {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result as JSON: %w", err)
	}
	return utils.StripTrailingNewlines(string(out)), nil
}

// TextFormatter renders results in a human-readable key/value form
type TextFormatter struct{}

// Format renders the result as YAML
func (TextFormatter) Format(result core.Result) (string, error) {
	out, err := yaml.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to render result as text: %w", err)
	}
	return utils.StripTrailingNewlines(utils.SanitizeUTF8(string(out))), nil
}
