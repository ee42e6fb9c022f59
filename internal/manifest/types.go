package manifest

import (
	"sort"
)

// RenameMarker flags a template value as renameable. It may appear anywhere
// in the stored value and is stripped from the stored file name.
const RenameMarker = "[r]"

// DefaultRecipe is the recipe every configuration must define.
const DefaultRecipe = "default"

// Template is one entry of a configuration's template table.
type Template struct {
	StoredFileName string `yaml:"file" json:"file"`
	Rename         bool   `yaml:"rename" json:"rename"`
}

// Config is a decoded language configuration.
type Config struct {
	Language    string              `yaml:"language" json:"language"`
	Extension   string              `yaml:"ext" json:"ext"`
	Description string              `yaml:"description,omitempty" json:"description,omitempty"`
	Requires    string              `yaml:"requires,omitempty" json:"requires,omitempty"`
	Templates   map[string]Template `yaml:"templates" json:"templates"`
	Recipes     map[string][]string `yaml:"build" json:"build"`

	// Source is the file the configuration was read from.
	Source string `yaml:"-" json:"source,omitempty"`
	// TemplateRoot is the directory stored file names are relative to.
	TemplateRoot string `yaml:"-" json:"-"`
}

// rawConfig mirrors the on-disk shape, where templates map to plain strings.
type rawConfig struct {
	Language    string              `yaml:"language"`
	Ext         string              `yaml:"ext"`
	Description string              `yaml:"description"`
	Requires    string              `yaml:"requires"`
	Templates   map[string]string   `yaml:"templates"`
	Build       map[string][]string `yaml:"build"`
}

// LookupTemplate returns the template stored under key.
func (c *Config) LookupTemplate(key string) (Template, bool) {
	t, ok := c.Templates[key]
	return t, ok
}

// Recipe returns the raw steps of the named recipe.
func (c *Config) Recipe(name string) ([]string, bool) {
	steps, ok := c.Recipes[name]
	return steps, ok
}

// RecipeNames returns recipe names sorted, with "default" first.
func (c *Config) RecipeNames() []string {
	names := make([]string, 0, len(c.Recipes))
	for name := range c.Recipes {
		if name != DefaultRecipe {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := c.Recipes[DefaultRecipe]; ok {
		names = append([]string{DefaultRecipe}, names...)
	}
	return names
}

// TemplateKeys returns the template keys in sorted order.
func (c *Config) TemplateKeys() []string {
	keys := make([]string, 0, len(c.Templates))
	for k := range c.Templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
