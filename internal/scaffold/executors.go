package scaffold

import (
	"fmt"
	"os"

	"github.com/mkdev-labs/mkdev/internal/platform"
	"github.com/mkdev-labs/mkdev/internal/recipe"
)

// executor performs one resolved step.
type executor func(e *Engine, t recipe.Target) error

var executors = map[recipe.Command]executor{
	recipe.MakeDir:     makeDir,
	recipe.Placeholder: makePlaceholder,
	recipe.Template:    makeFromTemplate,
}

// makeDir creates a directory. Multi-segment targets get their parents
// created first; only the leaf must be new.
func makeDir(e *Engine, t recipe.Target) error {
	if t.CreateParents {
		return wrapFS(platform.MkdirLeaf(t.Path, e.dirPerm))
	}
	return wrapFS(platform.Mkdir(t.Path, e.dirPerm))
}

func makePlaceholder(e *Engine, t recipe.Target) error {
	if t.CreateParents {
		if err := os.MkdirAll(t.Dir, e.dirPerm); err != nil {
			return wrapFS(err)
		}
	}
	return wrapFS(platform.WriteExclusive(t.Path, nil, e.filePerm))
}

// makeFromTemplate reads the stored template before touching the
// destination, so a storage failure never leaves an empty file behind.
func makeFromTemplate(e *Engine, t recipe.Target) error {
	res, err := ResolveTemplate(t.Template)
	if err != nil {
		return err
	}
	return wrapFS(platform.WriteExclusive(t.Path, res.Lines, e.filePerm))
}

// checkTemplate reports whether the stored file for src can be opened.
func checkTemplate(src *recipe.TemplateSource) error {
	info, err := os.Stat(src.StoredPath)
	if err != nil {
		return fmt.Errorf("%w: %w", recipe.ErrStorageUnavailable, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", recipe.ErrStorageUnavailable, src.StoredPath)
	}
	return nil
}
