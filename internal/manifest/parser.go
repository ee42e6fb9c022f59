package manifest

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// InvalidError is returned when a configuration fails schema validation.
type InvalidError struct {
	Path   string
	Issues []ValidationIssue
}

func (e *InvalidError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		msgs = append(msgs, issue.String())
	}
	return fmt.Sprintf("invalid language config %s: %s", e.Path, strings.Join(msgs, "; "))
}

// ParseFile reads, validates and decodes the language configuration at path.
// TemplateRoot is left empty; LoadDir fills it in.
func ParseFile(path string) (*Config, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// Parse validates data against the language schema and decodes it. path is
// used in error messages and recorded as the config's Source.
func Parse(data []byte, path string) (*Config, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid {
		return nil, &InvalidError{Path: path, Issues: result.Issues}
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing language config %s: %w", path, err)
	}

	cfg := &Config{
		Language:    raw.Language,
		Extension:   raw.Ext,
		Description: raw.Description,
		Requires:    raw.Requires,
		Templates:   make(map[string]Template, len(raw.Templates)),
		Recipes:     make(map[string][]string, len(raw.Build)),
		Source:      path,
	}
	for key, value := range raw.Templates {
		cfg.Templates[key] = ParseTemplateValue(value)
	}
	for name, steps := range raw.Build {
		cfg.Recipes[name] = append([]string(nil), steps...)
	}
	return cfg, nil
}

// ParseTemplateValue interprets a stored template value. Any occurrence of
// "[r]" marks the template renameable and is removed from the file name.
func ParseTemplateValue(value string) Template {
	if !strings.Contains(value, RenameMarker) {
		return Template{StoredFileName: value}
	}
	return Template{
		StoredFileName: strings.ReplaceAll(value, RenameMarker, ""),
		Rename:         true,
	}
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
