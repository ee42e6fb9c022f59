package launch

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDispatch_Command(t *testing.T) {
	l, ok := Dispatch("code -n --wait").(*CommandLauncher)
	if !ok {
		t.Fatalf("Dispatch returned %T, want *CommandLauncher", l)
	}
	if l.Bin != "code" {
		t.Errorf("Bin = %q, want code", l.Bin)
	}
	if diff := cmp.Diff([]string{"-n", "--wait"}, l.Args); diff != "" {
		t.Errorf("Args mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatch_Empty(t *testing.T) {
	err := Dispatch("   ").Open(context.Background(), t.TempDir())
	if !errors.Is(err, ErrNoEditor) {
		t.Errorf("Open() error = %v, want ErrNoEditor", err)
	}
}

func TestCommandLauncher_NotFound(t *testing.T) {
	err := Dispatch("mkdev-no-such-editor-xyz").Open(context.Background(), t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Open() error = %v, want not found", err)
	}
}

func TestCommandLauncher_RunsWithDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses echo from PATH")
	}
	if _, err := exec.LookPath("echo"); err != nil {
		t.Skip("echo not available")
	}

	dir := t.TempDir()
	var out bytes.Buffer
	l := &CommandLauncher{Bin: "echo", Args: []string{"opening"}, Stdout: &out, Stderr: &out}
	if err := l.Open(context.Background(), dir); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "opening "+dir {
		t.Errorf("output = %q", got)
	}
}
