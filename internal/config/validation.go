// Package config provides configuration parsing and validation for go-colorspace.
// This file implements validation of palette definitions: setting names,
// value ranges and the parameter combinations each method accepts.
package config

import (
	"fmt"
	"strings"

	"github.com/opd-ai/go-colorspace/pkg/palette"
)

// ValidationError represents a palette file validation error.
// It contains the field name and a description of the issue.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the results of a palette file validation.
type ValidationResult struct {
	// Errors contains all validation errors found.
	Errors []ValidationError
	// Warnings contains non-fatal issues (e.g., keys missing from parameter).
	Warnings []ValidationError
}

// IsValid returns true if there are no validation errors.
func (vr *ValidationResult) IsValid() bool {
	return len(vr.Errors) == 0
}

// Error returns a combined error message if there are errors, nil otherwise.
func (vr *ValidationResult) Error() error {
	if len(vr.Errors) == 0 {
		return nil
	}

	messages := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		messages = append(messages, e.Error())
	}
	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

// AddError adds a validation error.
func (vr *ValidationResult) AddError(field, message string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: message})
}

// AddWarning adds a validation warning.
func (vr *ValidationResult) AddWarning(field, message string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Message: message})
}

// Merge combines another ValidationResult into this one.
func (vr *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	vr.Errors = append(vr.Errors, other.Errors...)
	vr.Warnings = append(vr.Warnings, other.Warnings...)
}

// Validator checks palette files before they are registered.
type Validator struct {
	// strictMode turns warnings about undeclared keys and empty files into errors.
	strictMode bool
}

// NewValidator creates a new Validator with default settings.
func NewValidator() *Validator {
	return &Validator{}
}

// WithStrictMode enables strict validation.
func (v *Validator) WithStrictMode(strict bool) *Validator {
	v.strictMode = strict
	return v
}

// keys every palette may set regardless of the parameter list.
var commonKeys = map[string]bool{"desc": true, "n": true, "fixup": true, "rev": true, "alpha": true}

// Validate performs validation of a PaletteFile.
func (v *Validator) Validate(f *PaletteFile) *ValidationResult {
	result := &ValidationResult{}

	if strings.TrimSpace(f.Type) == "" {
		result.AddError("type", "must not be empty")
	}
	kind, ok := palette.ParseKind(f.Method)
	if !ok {
		result.AddError("method", fmt.Sprintf("unknown palette method %q", f.Method))
	}

	declared := make(map[string]bool, len(f.Parameter))
	for _, key := range f.Parameter {
		if !palette.IsKey(key) {
			result.AddError("parameter", fmt.Sprintf("unknown setting %q", key))
		}
		declared[key] = true
	}

	if len(f.Palettes) == 0 {
		v.warn(result, "palettes", "file defines no palettes")
	}

	seen := make(map[string]bool, len(f.Palettes))
	for _, d := range f.Palettes {
		field := fmt.Sprintf("palette[%s]", d.Name)
		if strings.TrimSpace(d.Name) == "" {
			result.AddError("palette", "missing name")
			continue
		}
		folded := strings.ToLower(d.Name)
		if seen[folded] {
			result.AddError(field, "duplicate palette name")
		}
		seen[folded] = true

		before := len(result.Errors)
		v.validateSettings(field, d.Settings, kind, declared, result)
		if ok && len(result.Errors) == before {
			if _, err := d.Build(f.Method); err != nil {
				result.AddError(field, err.Error())
			}
		}
	}

	return result
}

// warn records a warning, or an error in strict mode.
func (v *Validator) warn(result *ValidationResult, field, message string) {
	if v.strictMode {
		result.AddError(field, message)
		return
	}
	result.AddWarning(field, message)
}

func (v *Validator) validateSettings(field string, s map[string]any, kind palette.Kind, declared map[string]bool, result *ValidationResult) {
	for key, val := range s {
		if !palette.IsKey(key) {
			result.AddError(field, fmt.Sprintf("unknown setting %q", key))
			continue
		}
		if len(declared) > 0 && !declared[key] && !commonKeys[key] {
			v.warn(result, field, fmt.Sprintf("%s is not listed in parameter", key))
		}

		x, numeric := toNumber(val)
		if !numeric {
			continue
		}
		switch key {
		case "c1", "c2", "cmax":
			if x < 0 {
				result.AddError(field, fmt.Sprintf("%s must be non-negative, got %v", key, x))
			}
		case "l1", "l2":
			if x < 0 || x > 100 {
				result.AddError(field, fmt.Sprintf("%s must be in [0,100], got %v", key, x))
			}
		case "p1", "p2":
			if x <= 0 {
				result.AddError(field, fmt.Sprintf("%s must be positive, got %v", key, x))
			}
		}
	}

	if _, hasCMax := s["cmax"]; hasCMax {
		if _, hasC2 := s["c2"]; !hasC2 {
			result.AddError(field, "cmax requires c2")
		}
		if kind != 0 && kind != palette.Sequential {
			result.AddError(field, "cmax is only supported by sequential palettes")
		}
	}
}

func toNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

// ValidateFile is a convenience function to validate a PaletteFile with default settings.
// Returns nil if the file is valid, or an error describing validation failures.
func ValidateFile(f *PaletteFile) error {
	if f == nil {
		return fmt.Errorf("palette file is nil")
	}
	return NewValidator().Validate(f).Error()
}

// ValidateFileStrict validates a PaletteFile with strict mode enabled.
func ValidateFileStrict(f *PaletteFile) error {
	if f == nil {
		return fmt.Errorf("palette file is nil")
	}
	return NewValidator().WithStrictMode(true).Validate(f).Error()
}
