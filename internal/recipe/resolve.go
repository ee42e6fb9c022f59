package recipe

import (
	"fmt"
	"path/filepath"

	"github.com/mkdev-labs/mkdev/internal/manifest"
)

// Defaults applied by the CLI when the caller leaves a field empty.
const (
	DefaultRecipe       = "default"
	DefaultBaseFileName = "main"
)

// BuildContext holds the per-invocation inputs of a build. It is not
// modified once a build has started.
type BuildContext struct {
	BuildDir     string // root of the output tree
	BaseFileName string // substituted for renameable templates, e.g. "main"
	RecipeName   string // selects one of the config's recipes
}

// Target is the resolved, filesystem-level form of a Step.
type Target struct {
	Step Step

	// Path is the directory or file the step creates.
	Path string

	// Dir is the directory that must exist before Path can be created.
	Dir string

	// CreateParents reports whether missing directories up to Dir are
	// created by the step itself.
	CreateParents bool

	// Template is set for Template steps only.
	Template *TemplateSource
}

// TemplateSource describes where a template's content is stored and what
// it is written as.
type TemplateSource struct {
	Key        string
	StoredPath string
	FileName   string
	Rename     bool
}

// Resolve maps a step onto concrete paths under bc.BuildDir. Template
// steps are looked up in cfg; the template's stored file is located under
// cfg.TemplateRoot but not read.
func Resolve(step Step, bc BuildContext, cfg *manifest.Config) (Target, error) {
	switch step.Command {
	case MakeDir, Placeholder:
		path := filepath.Join(append([]string{bc.BuildDir}, step.Segments...)...)
		return Target{
			Step:          step,
			Path:          path,
			Dir:           filepath.Dir(path),
			CreateParents: step.Multi,
		}, nil

	case Template:
		key := step.TemplateKey()
		if cfg == nil {
			return Target{}, fmt.Errorf("%w %q", ErrUnknownTemplate, key)
		}
		tmpl, ok := cfg.LookupTemplate(key)
		if !ok {
			return Target{}, fmt.Errorf("%w %q in %s config", ErrUnknownTemplate, key, cfg.Language)
		}

		name := DestinationName(key, tmpl, bc.BaseFileName, cfg.Extension)
		dir := filepath.Join(append([]string{bc.BuildDir}, step.Prefix()...)...)
		return Target{
			Step: step,
			Path: filepath.Join(dir, name),
			Dir:  dir,
			Template: &TemplateSource{
				Key:        key,
				StoredPath: filepath.Join(cfg.TemplateRoot, tmpl.StoredFileName),
				FileName:   name,
				Rename:     tmpl.Rename,
			},
		}, nil

	default:
		return Target{}, fmt.Errorf("%w %d", ErrUnknownCommand, int(step.Command))
	}
}

// DestinationName returns the filename a template is written as: the base
// name plus extension for renameable templates, the template key otherwise.
func DestinationName(key string, tmpl manifest.Template, baseFileName, ext string) string {
	if tmpl.Rename {
		return baseFileName + ext
	}
	return key
}
