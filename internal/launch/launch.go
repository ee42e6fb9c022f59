package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ErrNoEditor is returned when no editor command is configured.
var ErrNoEditor = errors.New("no editor configured")

// Launcher opens a directory in an editor.
type Launcher interface {
	Open(ctx context.Context, dir string) error
}

// Dispatch returns the Launcher for an editor command such as "code" or
// "code -n". Returns an error-producing launcher for an empty command.
func Dispatch(editor string) Launcher {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return noEditor{}
	}
	return &CommandLauncher{Bin: fields[0], Args: fields[1:]}
}

// CommandLauncher runs Bin with Args followed by the directory.
type CommandLauncher struct {
	Bin  string
	Args []string

	// Stdin, Stdout and Stderr default to the process's own streams so that
	// terminal editors work.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Open runs the editor with dir as its last argument and working directory,
// waiting for it to exit.
func (c *CommandLauncher) Open(ctx context.Context, dir string) error {
	bin, err := exec.LookPath(c.Bin)
	if err != nil {
		return fmt.Errorf("editor %q not found: %w", c.Bin, err)
	}

	args := append(append([]string{}, c.Args...), dir)
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if c.Stdin != nil {
		cmd.Stdin = c.Stdin
	}
	if c.Stdout != nil {
		cmd.Stdout = c.Stdout
	}
	if c.Stderr != nil {
		cmd.Stderr = c.Stderr
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", c.Bin, err)
	}
	return nil
}

type noEditor struct{}

func (noEditor) Open(context.Context, string) error {
	return fmt.Errorf("%w: set one with 'mkdev config set editor <command>'", ErrNoEditor)
}
