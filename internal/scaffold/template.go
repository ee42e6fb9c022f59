package scaffold

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mkdev-labs/mkdev/internal/recipe"
)

// TemplateResolution is a template's destination name and its content,
// split into lines that keep their terminators.
type TemplateResolution struct {
	FileName string
	Lines    []string
}

// ResolveTemplate loads the stored file behind src. Content is returned
// verbatim: concatenating Lines reproduces the stored bytes.
func ResolveTemplate(src *recipe.TemplateSource) (TemplateResolution, error) {
	if src == nil {
		return TemplateResolution{}, fmt.Errorf("%w: no template source", recipe.ErrStorageUnavailable)
	}
	if err := checkTemplate(src); err != nil {
		return TemplateResolution{}, err
	}

	lines, err := readLines(src.StoredPath)
	if err != nil {
		return TemplateResolution{}, fmt.Errorf("%w: %w", recipe.ErrStorageUnavailable, err)
	}
	return TemplateResolution{FileName: src.FileName, Lines: lines}, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
