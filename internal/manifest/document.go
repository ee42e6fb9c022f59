package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

var ErrNotMapping = errors.New("language config is not a YAML mapping")

// Value returns the template as it is written in a config file.
func (t Template) Value() string {
	if t.Rename {
		return RenameMarker + t.StoredFileName
	}
	return t.StoredFileName
}

// Document is a language config opened for editing. Edits are applied to
// the YAML node tree, so comments and key order survive a save.
type Document struct {
	Path string

	doc  *yaml.Node
	root *yaml.Node
}

// NewDocument starts an empty config for language. Nothing is written until
// Save.
func NewDocument(path, language, ext, description string) *Document {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	d := &Document{
		Path: path,
		doc:  &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}},
		root: root,
	}
	d.setScalar(d.root, "language", language)
	d.setScalar(d.root, "ext", ext)
	if description != "" {
		d.setScalar(d.root, "description", description)
	}
	d.mapping(d.root, "templates")
	d.mapping(d.root, "build")
	return d
}

// OpenDocument reads the config at path for editing.
func OpenDocument(path string) (*Document, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing language config %s: %w", path, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: %w", path, ErrNotMapping)
	}
	return &Document{Path: path, doc: &doc, root: doc.Content[0]}, nil
}

// SetDescription replaces the language description.
func (d *Document) SetDescription(description string) {
	d.setScalar(d.root, "description", description)
}

// SetTemplate adds or replaces the template stored under key.
func (d *Document) SetTemplate(key string, tpl Template) {
	d.setScalar(d.mapping(d.root, "templates"), key, tpl.Value())
}

// HasRecipe reports whether the build table defines name.
func (d *Document) HasRecipe(name string) bool {
	_, v := lookup(d.mapping(d.root, "build"), name)
	return v != nil
}

// SetRecipe adds or replaces the named recipe.
func (d *Document) SetRecipe(name string, steps []string) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, step := range steps {
		seq.Content = append(seq.Content, scalar(step))
	}
	d.set(d.mapping(d.root, "build"), name, seq)
}

// RemoveRecipe deletes the named recipe. It reports whether it was present.
func (d *Document) RemoveRecipe(name string) bool {
	build := d.mapping(d.root, "build")
	i, _ := lookup(build, name)
	if i < 0 {
		return false
	}
	build.Content = append(build.Content[:i], build.Content[i+2:]...)
	return true
}

// Bytes encodes the document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.doc); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", d.Path, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", d.Path, err)
	}
	return buf.Bytes(), nil
}

// Save validates the document and replaces the file at Path. An edit that
// breaks the schema is rejected and the file is left untouched.
func (d *Document) Save() (*Config, error) {
	data, err := d.Bytes()
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data, d.Path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(d.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".mkdev-*.yaml")
	if err != nil {
		return nil, fmt.Errorf("saving %s: %w", d.Path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("saving %s: %w", d.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("saving %s: %w", d.Path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return nil, fmt.Errorf("saving %s: %w", d.Path, err)
	}
	if err := os.Rename(tmp.Name(), d.Path); err != nil {
		return nil, fmt.Errorf("saving %s: %w", d.Path, err)
	}
	return cfg, nil
}

// mapping returns the mapping stored under key in parent, creating it when
// it is missing or null.
func (d *Document) mapping(parent *yaml.Node, key string) *yaml.Node {
	if _, v := lookup(parent, key); v != nil && v.Kind == yaml.MappingNode {
		return v
	}
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	d.set(parent, key, m)
	return m
}

func (d *Document) setScalar(parent *yaml.Node, key, value string) {
	d.set(parent, key, scalar(value))
}

func (d *Document) set(parent *yaml.Node, key string, value *yaml.Node) {
	if i, _ := lookup(parent, key); i >= 0 {
		parent.Content[i+1] = value
		return
	}
	parent.Content = append(parent.Content, scalar(key), value)
}

// lookup finds key in a mapping node and returns the index of the key node
// and the value node, or -1 and nil.
func lookup(m *yaml.Node, key string) (int, *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return i, m.Content[i+1]
		}
	}
	return -1, nil
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
