package scaffold

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mkdev-labs/mkdev/internal/manifest"
	"github.com/mkdev-labs/mkdev/internal/platform"
	"github.com/mkdev-labs/mkdev/internal/recipe"
)

// Engine runs recipes against the filesystem. The zero value is not usable;
// construct one with New.
type Engine struct {
	out      io.Writer
	log      *slog.Logger
	dirPerm  os.FileMode
	filePerm os.FileMode
}

// Option configures an Engine.
type Option func(*Engine)

// WithOutput sets where per-step diagnostics are printed.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.out = w }
}

// WithLogger sets the structured logger used for state transitions.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithModes overrides the modes used for created directories and files.
func WithModes(dir, file os.FileMode) Option {
	return func(e *Engine) {
		e.dirPerm = dir
		e.filePerm = file
	}
}

// New returns an Engine with the given options applied.
func New(opts ...Option) *Engine {
	e := &Engine{
		out:      io.Discard,
		log:      slog.New(slog.DiscardHandler),
		dirPerm:  platform.DirPerm,
		filePerm: platform.FilePerm,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Build runs the recipe named by bc.RecipeName, or the default recipe when
// the name is empty.
func (e *Engine) Build(cfg *manifest.Config, bc recipe.BuildContext) (*Result, error) {
	if bc.RecipeName == "" {
		bc.RecipeName = recipe.DefaultRecipe
	}
	steps, err := RecipeSteps(cfg, bc.RecipeName)
	if err != nil {
		return nil, err
	}
	return e.Execute(steps, cfg, bc)
}

// RecipeSteps returns the raw steps of the named recipe, or an
// ErrUnknownRecipe error listing the recipes cfg does define.
func RecipeSteps(cfg *manifest.Config, name string) ([]string, error) {
	steps, ok := cfg.Recipe(name)
	if !ok {
		return nil, fmt.Errorf("%w %q for %s (available: %s)",
			ErrUnknownRecipe, name, cfg.Language, strings.Join(cfg.RecipeNames(), ", "))
	}
	return steps, nil
}

// Execute ensures the build directory exists and then runs steps in order.
//
// A step that fails to parse aborts the build with a *recipe.StepError;
// anything created by earlier steps is left in place. Other step failures
// are recorded in the Result and execution continues, except that a
// multi-segment dir step whose leaf already exists ends the build as
// incomplete. The returned error is nil whenever a Result could be
// produced from running steps; callers check Result.Complete.
func (e *Engine) Execute(steps []string, cfg *manifest.Config, bc recipe.BuildContext) (*Result, error) {
	res := &Result{BuildDir: bc.BuildDir, Recipe: bc.RecipeName, State: StateNotStarted}

	if err := os.MkdirAll(bc.BuildDir, e.dirPerm); err != nil {
		e.transition(res, StateIncomplete)
		return res, fmt.Errorf("creating build directory %s: %w", bc.BuildDir, wrapFS(err))
	}
	e.transition(res, StateBuildDirEnsured)

	for i, raw := range steps {
		e.transition(res, StateStepRunning)

		step, err := recipe.Parse(raw)
		if err != nil {
			e.transition(res, StateIncomplete)
			return res, &recipe.StepError{Index: i, Raw: raw, Err: err}
		}

		rep := e.runStep(i, raw, step, cfg, bc)
		res.Steps = append(res.Steps, rep)
		writeReport(e.out, rep)
		e.log.Debug("step finished", "index", i, "step", raw, "path", rep.Path, "status", rep.Status.String())

		if rep.Fatal {
			e.transition(res, StateIncomplete)
			return res, nil
		}
		e.transition(res, StateStepDone)
	}

	e.transition(res, StateComplete)
	return res, nil
}

func (e *Engine) runStep(i int, raw string, step recipe.Step, cfg *manifest.Config, bc recipe.BuildContext) StepReport {
	rep := StepReport{Index: i, Raw: raw, Step: step}

	target, err := recipe.Resolve(step, bc, cfg)
	if err == nil {
		rep.Path = target.Path
		err = executors[step.Command](e, target)
	}

	rep.Status = statusOf(err)
	if err != nil {
		rep.Err = &recipe.StepError{Index: i, Raw: raw, Err: err}
	}
	rep.Fatal = step.Command == recipe.MakeDir && step.Multi && rep.Status == StatusAlreadyExists
	return rep
}

func (e *Engine) transition(res *Result, next State) {
	e.log.Debug("build state", "from", res.State.String(), "to", next.String(), "dir", res.BuildDir)
	res.State = next
}
