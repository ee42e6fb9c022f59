package manifest

import (
	"testing"
)

func TestValidateFile_Valid(t *testing.T) {
	for _, file := range []string{"valid-python.yaml", "valid-rust.yaml"} {
		t.Run(file, func(t *testing.T) {
			result, err := ValidateFile(testPath(file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) error: %v", file, err)
			}
			if !result.Valid {
				t.Errorf("expected valid, got %d issues:", len(result.Issues))
				for _, issue := range result.Issues {
					t.Errorf("  path=%s keyword=%s message=%s", issue.Path, issue.Keyword, issue.Message)
				}
			}
		})
	}
}

func TestValidateFile_Invalid(t *testing.T) {
	tests := []struct {
		file    string
		keyword string
	}{
		{"invalid-missing-default.yaml", "required"},
		{"invalid-missing-ext.yaml", "required"},
		{"invalid-bad-ext.yaml", "pattern"},
		{"invalid-templates-list.yaml", "type"},
		{"invalid-unknown-field.yaml", "additionalProperties"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			result, err := ValidateFile(testPath(tt.file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) unexpected error: %v", tt.file, err)
			}
			if result.Valid {
				t.Fatalf("expected %s to be invalid", tt.file)
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Keyword == tt.keyword {
					found = true
				}
			}
			if !found {
				t.Errorf("no issue with keyword %q in %+v", tt.keyword, result.Issues)
			}
		})
	}
}

func TestValidate_NumericTemplateKey(t *testing.T) {
	data := []byte("language: c\next: .c\ntemplates:\n  1: one.c\nbuild:\n  default: [tmp 1]\n")
	result, err := Validate(data)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if !result.Valid {
		t.Errorf("expected valid, got %+v", result.Issues)
	}
}

func TestValidateFile_InvalidYAML(t *testing.T) {
	if _, err := ValidateFile(testPath("invalid-not-yaml.yaml")); err == nil {
		t.Fatal("expected error for invalid YAML, got nil")
	}
}

func TestValidate_SchemaCompiles(t *testing.T) {
	schema, err := getSchema()
	if err != nil {
		t.Fatalf("getSchema() error: %v", err)
	}
	if schema == nil {
		t.Fatal("getSchema() returned nil schema")
	}
}

func TestValidationIssue_String(t *testing.T) {
	if got := (ValidationIssue{Path: "/ext", Message: "bad"}).String(); got != "/ext: bad" {
		t.Errorf("String() = %q", got)
	}
	if got := (ValidationIssue{Message: "bad"}).String(); got != "bad" {
		t.Errorf("String() = %q", got)
	}
}
