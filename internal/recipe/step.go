package recipe

import (
	"fmt"
	"strings"
)

// Separator splits a multi-segment argument into path segments.
const Separator = "|"

// Command identifies the action a Step performs.
type Command int

const (
	// MakeDir creates a directory ("dir").
	MakeDir Command = iota + 1
	// Placeholder creates an empty file ("ph").
	Placeholder
	// Template writes a stored template's content ("tmp").
	Template
)

var commandTokens = map[string]Command{
	"dir": MakeDir,
	"ph":  Placeholder,
	"tmp": Template,
}

// Token returns the literal used for the command in raw steps.
func (c Command) Token() string {
	switch c {
	case MakeDir:
		return "dir"
	case Placeholder:
		return "ph"
	case Template:
		return "tmp"
	default:
		return ""
	}
}

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case MakeDir:
		return "directory"
	case Placeholder:
		return "placeholder"
	case Template:
		return "template"
	default:
		return "unknown"
	}
}

// Step is a single parsed build instruction. Segments always holds at least
// one element; Multi reports whether the argument used the '|' form.
type Step struct {
	Command  Command
	Segments []string
	Multi    bool
}

// Parse turns a raw step ("<command> <argument>") into a Step.
//
// Tokens are separated by any run of whitespace, so leading, trailing and
// repeated blanks or tabs are tolerated. The argument is split on '|' when
// present. Empty segments are rejected
// since a zero-length path component cannot be created.
func Parse(raw string) (Step, error) {
	fields := strings.Fields(raw)
	if len(fields) != 2 {
		return Step{}, fmt.Errorf("%w: expected \"<command> <argument>\", got %q", ErrMalformedStep, raw)
	}

	cmd, ok := commandTokens[fields[0]]
	if !ok {
		return Step{}, fmt.Errorf("%w %q: must be one of dir, tmp, or ph", ErrUnknownCommand, fields[0])
	}

	arg := fields[1]
	if !strings.Contains(arg, Separator) {
		return Step{Command: cmd, Segments: []string{arg}}, nil
	}

	segments := strings.Split(arg, Separator)
	for i, seg := range segments {
		if seg == "" {
			return Step{}, fmt.Errorf("%w: empty path segment %d in %q", ErrMalformedStep, i+1, raw)
		}
	}
	return Step{Command: cmd, Segments: segments, Multi: true}, nil
}

// Argument returns the argument as it appears in the raw step.
func (s Step) Argument() string {
	return strings.Join(s.Segments, Separator)
}

// TemplateKey returns the template reference of a Template step: the only
// segment, or the last one in the multi-segment form.
func (s Step) TemplateKey() string {
	if len(s.Segments) == 0 {
		return ""
	}
	return s.Segments[len(s.Segments)-1]
}

// Prefix returns every segment but the last. For the single-segment form it
// is empty.
func (s Step) Prefix() []string {
	if len(s.Segments) < 2 {
		return nil
	}
	return s.Segments[:len(s.Segments)-1]
}

// String renders the step back into its raw form.
func (s Step) String() string {
	return s.Command.Token() + " " + s.Argument()
}
