package recipe

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		raw  string
		want Step
	}{
		{"dir src", Step{Command: MakeDir, Segments: []string{"src"}}},
		{"ph .gitkeep", Step{Command: Placeholder, Segments: []string{".gitkeep"}}},
		{"tmp default", Step{Command: Template, Segments: []string{"default"}}},
		{"dir a|b|c", Step{Command: MakeDir, Segments: []string{"a", "b", "c"}, Multi: true}},
		{"tmp header|body", Step{Command: Template, Segments: []string{"header", "body"}, Multi: true}},
		{"ph src|include|.keep", Step{Command: Placeholder, Segments: []string{"src", "include", ".keep"}, Multi: true}},
		{"  dir   spaced  ", Step{Command: MakeDir, Segments: []string{"spaced"}}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.raw, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestParse_LooseWhitespace(t *testing.T) {
	want, err := Parse("dir a")
	if err != nil {
		t.Fatal(err)
	}
	for _, raw := range []string{"dir  a", " dir a ", "dir\ta", "\tdir \t a\n"} {
		got, err := Parse(raw)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", raw, err)
			continue
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", raw, diff)
		}
	}
}

func TestParse_Deterministic(t *testing.T) {
	raws := []string{"dir a|b|c", "tmp src|main", "ph README.md"}
	for _, raw := range raws {
		first, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", raw, err)
		}
		for i := 0; i < 3; i++ {
			again, err := Parse(raw)
			if err != nil {
				t.Fatalf("Parse(%q) error on repeat: %v", raw, err)
			}
			if diff := cmp.Diff(first, again); diff != "" {
				t.Errorf("Parse(%q) not deterministic (-first +again):\n%s", raw, diff)
			}
		}
	}
}

func TestParse_WrongTokenCount(t *testing.T) {
	for _, raw := range []string{"", "dir", "dir a b", "tmp a b c", "   "} {
		t.Run(raw, func(t *testing.T) {
			_, err := Parse(raw)
			if !errors.Is(err, ErrMalformedStep) {
				t.Errorf("Parse(%q) error = %v, want ErrMalformedStep", raw, err)
			}
		})
	}
}

func TestParse_EmptySegment(t *testing.T) {
	for _, raw := range []string{"dir a||b", "tmp |main", "ph src|", "dir |"} {
		t.Run(raw, func(t *testing.T) {
			_, err := Parse(raw)
			if !errors.Is(err, ErrMalformedStep) {
				t.Errorf("Parse(%q) error = %v, want ErrMalformedStep", raw, err)
			}
		})
	}
}

func TestParse_UnknownCommand(t *testing.T) {
	for _, raw := range []string{"mkdir src", "DIR src", "file x"} {
		t.Run(raw, func(t *testing.T) {
			_, err := Parse(raw)
			if !errors.Is(err, ErrUnknownCommand) {
				t.Errorf("Parse(%q) error = %v, want ErrUnknownCommand", raw, err)
			}
		})
	}
}

func TestStep_TemplateKeyAndPrefix(t *testing.T) {
	s, err := Parse("tmp header|body")
	if err != nil {
		t.Fatal(err)
	}
	if got := s.TemplateKey(); got != "body" {
		t.Errorf("TemplateKey() = %q, want %q", got, "body")
	}
	if diff := cmp.Diff([]string{"header"}, s.Prefix()); diff != "" {
		t.Errorf("Prefix() mismatch (-want +got):\n%s", diff)
	}

	single, err := Parse("tmp main")
	if err != nil {
		t.Fatal(err)
	}
	if single.TemplateKey() != "main" {
		t.Errorf("TemplateKey() = %q, want %q", single.TemplateKey(), "main")
	}
	if len(single.Prefix()) != 0 {
		t.Errorf("Prefix() = %v, want empty", single.Prefix())
	}
}

func TestStep_String(t *testing.T) {
	for _, raw := range []string{"dir a|b|c", "tmp main", "ph x|y"} {
		s, err := Parse(raw)
		if err != nil {
			t.Fatal(err)
		}
		if s.String() != raw {
			t.Errorf("String() = %q, want %q", s.String(), raw)
		}
	}
}

func TestStepError_Unwrap(t *testing.T) {
	err := &StepError{Index: 2, Raw: "tmp nope", Err: ErrUnknownTemplate}
	if !errors.Is(err, ErrUnknownTemplate) {
		t.Error("StepError should unwrap to its cause")
	}
	if want := `step 3 ("tmp nope"): unknown template`; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
