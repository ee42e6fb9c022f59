package scaffold

import (
	"errors"
	"fmt"
	"io"

	"github.com/mkdev-labs/mkdev/internal/platform"
	"github.com/mkdev-labs/mkdev/internal/recipe"
)

// ErrUnknownRecipe is returned by Build when the context names a recipe the
// config does not define.
var ErrUnknownRecipe = errors.New("unknown recipe")

// ErrIncomplete marks a build that stopped before its last step.
var ErrIncomplete = errors.New("build incomplete")

// Status is the outcome of a single step.
type Status int

const (
	StatusCreated Status = iota
	StatusAlreadyExists
	StatusPermissionDenied
	StatusUnknownTemplate
	StatusStorageUnavailable
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusAlreadyExists:
		return "already exists"
	case StatusPermissionDenied:
		return "permission denied"
	case StatusUnknownTemplate:
		return "unknown template"
	case StatusStorageUnavailable:
		return "storage unavailable"
	default:
		return "failed"
	}
}

// State tracks a build's progress.
type State int

const (
	StateNotStarted State = iota
	StateBuildDirEnsured
	StateStepRunning
	StateStepDone
	StateComplete
	StateIncomplete
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateBuildDirEnsured:
		return "build-dir-ensured"
	case StateStepRunning:
		return "step-running"
	case StateStepDone:
		return "step-done"
	case StateComplete:
		return "complete"
	case StateIncomplete:
		return "incomplete"
	default:
		return "unknown"
	}
}

// StepReport records what happened to one step.
type StepReport struct {
	Index  int
	Raw    string
	Step   recipe.Step
	Path   string // empty when the step could not be resolved
	Status Status
	Fatal  bool
	Err    error
}

// OK reports whether the step created its target.
func (r StepReport) OK() bool { return r.Status == StatusCreated }

// Result is the outcome of one build.
type Result struct {
	BuildDir string
	Recipe   string
	State    State
	Steps    []StepReport
}

// Complete reports whether every step ran.
func (r *Result) Complete() bool { return r.State == StateComplete }

// Failed returns the reports of steps that did not create their target.
func (r *Result) Failed() []StepReport {
	var out []StepReport
	for _, s := range r.Steps {
		if !s.OK() {
			out = append(out, s)
		}
	}
	return out
}

// Created returns the paths created by the build, in step order.
func (r *Result) Created() []string {
	var out []string
	for _, s := range r.Steps {
		if s.OK() {
			out = append(out, s.Path)
		}
	}
	return out
}

// statusOf maps a step error onto a Status.
func statusOf(err error) Status {
	switch {
	case err == nil:
		return StatusCreated
	case errors.Is(err, recipe.ErrUnknownTemplate):
		return StatusUnknownTemplate
	case errors.Is(err, recipe.ErrStorageUnavailable):
		return StatusStorageUnavailable
	case errors.Is(err, recipe.ErrAlreadyExists):
		return StatusAlreadyExists
	case errors.Is(err, recipe.ErrPermissionDenied):
		return StatusPermissionDenied
	default:
		return StatusFailed
	}
}

// wrapFS tags a filesystem error with the matching step error sentinel.
func wrapFS(err error) error {
	switch platform.Classify(err) {
	case platform.KindExists:
		return fmt.Errorf("%w: %w", recipe.ErrAlreadyExists, err)
	case platform.KindPermission:
		return fmt.Errorf("%w: %w", recipe.ErrPermissionDenied, err)
	default:
		return err
	}
}

// writeReport prints one diagnostic line for r.
func writeReport(w io.Writer, r StepReport) {
	subject := r.Path
	if subject == "" {
		subject = r.Raw
	}

	switch {
	case r.OK():
		fmt.Fprintf(w, "  [ OK ] Created %s\n", subject)
	case r.Fatal:
		fmt.Fprintf(w, "  [FAIL] One or more of the directories in %s already exist\n", subject)
	case r.Status == StatusAlreadyExists:
		fmt.Fprintf(w, "  [SKIP] %s already exists\n", subject)
	case r.Status == StatusPermissionDenied:
		fmt.Fprintf(w, "  [FAIL] %s: access denied\n", subject)
	default:
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", subject, r.Err)
	}
}
