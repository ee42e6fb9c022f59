package scaffold

import (
	"fmt"
	"io"

	"github.com/mkdev-labs/mkdev/internal/manifest"
	"github.com/mkdev-labs/mkdev/internal/recipe"
)

// PlannedStep is a resolved step that has not been executed.
type PlannedStep struct {
	Index  int
	Raw    string
	Target recipe.Target
	Err    error // resolution failure, if any
}

// Plan parses and resolves steps without touching the filesystem. Parse
// failures abort the plan the same way they abort Execute.
func Plan(steps []string, cfg *manifest.Config, bc recipe.BuildContext) ([]PlannedStep, error) {
	out := make([]PlannedStep, 0, len(steps))
	for i, raw := range steps {
		step, err := recipe.Parse(raw)
		if err != nil {
			return out, &recipe.StepError{Index: i, Raw: raw, Err: err}
		}
		target, err := recipe.Resolve(step, bc, cfg)
		ps := PlannedStep{Index: i, Raw: raw, Target: target}
		if err != nil {
			ps.Err = &recipe.StepError{Index: i, Raw: raw, Err: err}
		}
		out = append(out, ps)
	}
	return out, nil
}

// WritePlan prints what each planned step would do.
func WritePlan(w io.Writer, buildDir string, plan []PlannedStep) {
	fmt.Fprintf(w, "[dry-run] Would ensure build directory %s\n", buildDir)
	for _, p := range plan {
		if p.Err != nil {
			fmt.Fprintf(w, "[dry-run] %s: %v\n", p.Raw, p.Err)
			continue
		}
		t := p.Target
		switch t.Step.Command {
		case recipe.MakeDir:
			fmt.Fprintf(w, "[dry-run] Would create directory %s\n", t.Path)
		case recipe.Placeholder:
			fmt.Fprintf(w, "[dry-run] Would create empty file %s\n", t.Path)
		case recipe.Template:
			fmt.Fprintf(w, "[dry-run] Would create %s from template %s\n", t.Path, t.Template.StoredPath)
		}
	}
}
