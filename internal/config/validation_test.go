package config

import (
	"strings"
	"testing"
)

func TestValidatorWithStrictMode(t *testing.T) {
	v := NewValidator().WithStrictMode(true)
	if !v.strictMode {
		t.Error("strictMode should be true after WithStrictMode(true)")
	}

	v2 := NewValidator().WithStrictMode(false)
	if v2.strictMode {
		t.Error("strictMode should be false after WithStrictMode(false)")
	}
}

func TestValidationErrorError(t *testing.T) {
	ve := ValidationError{Field: "palette[Heat]", Message: "p1 must be positive"}
	expected := "palette[Heat]: p1 must be positive"
	if ve.Error() != expected {
		t.Errorf("expected %q, got %q", expected, ve.Error())
	}
}

func TestValidationResult(t *testing.T) {
	r := &ValidationResult{}
	if !r.IsValid() || r.Error() != nil {
		t.Error("empty result should be valid")
	}

	r.AddWarning("palettes", "file defines no palettes")
	if !r.IsValid() {
		t.Error("warnings alone should not invalidate a result")
	}

	other := &ValidationResult{}
	other.AddError("type", "must not be empty")
	other.AddError("method", "unknown palette method")
	r.Merge(other)
	r.Merge(nil)

	if r.IsValid() {
		t.Error("result with errors should be invalid")
	}
	if len(r.Errors) != 2 || len(r.Warnings) != 1 {
		t.Errorf("unexpected counts: %d errors, %d warnings", len(r.Errors), len(r.Warnings))
	}
	msg := r.Error().Error()
	if !strings.Contains(msg, "type: must not be empty; method: unknown palette method") {
		t.Errorf("unexpected combined message %q", msg)
	}
}

func TestValidateValidFile(t *testing.T) {
	result := NewValidator().Validate(sampleFile())
	if !result.IsValid() {
		t.Errorf("expected valid file, got %v", result.Error())
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(f *PaletteFile)
		errMsg string
	}{
		{"empty type", func(f *PaletteFile) { f.Type = " " }, "type: must not be empty"},
		{"unknown method", func(f *PaletteFile) { f.Method = "spiral_hcl" }, "unknown palette method"},
		{"unknown parameter", func(f *PaletteFile) { f.Parameter = append(f.Parameter, "h3") }, `parameter: unknown setting "h3"`},
		{"unknown setting", func(f *PaletteFile) { f.Palettes[0].Settings["hue"] = 1 }, `palette[Blue-Red]: unknown setting "hue"`},
		{"missing name", func(f *PaletteFile) { f.Palettes[0].Name = "" }, "palette: missing name"},
		{"duplicate name", func(f *PaletteFile) { f.Palettes[1].Name = "BLUE-red" }, "duplicate palette name"},
		{"negative chroma", func(f *PaletteFile) { f.Palettes[0].Settings["c1"] = -1 }, "c1 must be non-negative"},
		{"luminance range", func(f *PaletteFile) { f.Palettes[0].Settings["l2"] = int64(101) }, "l2 must be in [0,100]"},
		{"zero power", func(f *PaletteFile) { f.Palettes[0].Settings["p1"] = 0.0 }, "p1 must be positive"},
		{"cmax without c2", func(f *PaletteFile) {
			f.Parameter = append(f.Parameter, "cmax")
			f.Palettes[0].Settings["cmax"] = 90
		}, "cmax requires c2"},
		{"cmax on diverging", func(f *PaletteFile) {
			f.Parameter = append(f.Parameter, "cmax", "c2")
			f.Palettes[0].Settings["cmax"] = 90
			f.Palettes[0].Settings["c2"] = 20
		}, "only supported by sequential palettes"},
		{"build failure", func(f *PaletteFile) { f.Palettes[0].Settings["alpha"] = 1.5 }, `palette "Blue-Red"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := sampleFile()
			tt.modify(f)
			result := NewValidator().Validate(f)
			if result.IsValid() {
				t.Fatal("expected validation errors")
			}
			if !strings.Contains(result.Error().Error(), tt.errMsg) {
				t.Errorf("error %q does not contain %q", result.Error(), tt.errMsg)
			}
		})
	}
}

func TestValidateWarnings(t *testing.T) {
	f := sampleFile()
	f.Parameter = []string{"h1", "h2", "c1", "l1", "l2"}
	f.Palettes[0].Settings["desc"] = "described"
	f.Palettes[0].Settings["n"] = 7

	result := NewValidator().Validate(f)
	if !result.IsValid() {
		t.Fatalf("expected valid file, got %v", result.Error())
	}
	// p1 is undeclared in both palettes; desc and n are always allowed.
	if len(result.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", result.Warnings)
	}
	if result.Warnings[0].Message != "p1 is not listed in parameter" {
		t.Errorf("unexpected warning %q", result.Warnings[0].Message)
	}

	strict := NewValidator().WithStrictMode(true).Validate(f)
	if strict.IsValid() {
		t.Error("strict mode should turn warnings into errors")
	}
	if len(strict.Warnings) != 0 {
		t.Errorf("strict mode should not report warnings, got %v", strict.Warnings)
	}
}

func TestValidateEmptyFile(t *testing.T) {
	f := &PaletteFile{Type: "Empty", Method: "qualitative_hcl"}

	result := NewValidator().Validate(f)
	if !result.IsValid() || len(result.Warnings) != 1 {
		t.Errorf("expected one warning, got %+v", result)
	}
	if err := ValidateFileStrict(f); err == nil {
		t.Error("strict validation should reject an empty file")
	}
}

func TestValidateNoParameterList(t *testing.T) {
	f := sampleFile()
	f.Parameter = nil
	if err := ValidateFileStrict(f); err != nil {
		t.Errorf("files without a parameter list should not warn: %v", err)
	}
}

func TestValidateInvalidFixture(t *testing.T) {
	p := newTestParser(t)
	f, err := p.ParseFile("../../test/configs/invalid.conf")
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}

	result := NewValidator().Validate(f)
	if len(result.Errors) != 3 {
		t.Fatalf("expected 3 errors, got %v", result.Errors)
	}
	for _, e := range result.Errors {
		if e.Field != "palette[Too Bright]" {
			t.Errorf("unexpected field %q", e.Field)
		}
	}
	msg := result.Error().Error()
	for _, want := range []string{"c1 must be non-negative", "l2 must be in [0,100]", "p1 must be positive"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not contain %q", msg, want)
		}
	}
}

func TestValidateFileNil(t *testing.T) {
	if err := ValidateFile(nil); err == nil {
		t.Error("expected an error for nil file")
	}
	if err := ValidateFileStrict(nil); err == nil {
		t.Error("expected an error for nil file")
	}
}
