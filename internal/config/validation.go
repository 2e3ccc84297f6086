package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/conneroisu/pathreg/internal/errors"
	"github.com/conneroisu/pathreg/internal/logging"
	"github.com/conneroisu/pathreg/internal/registry"
	"github.com/conneroisu/pathreg/internal/template"
	"github.com/conneroisu/pathreg/internal/validation"
)

// ValidationError represents a configuration validation error with suggestions
type ValidationError struct {
	Field       string      `json:"field"`
	Value       interface{} `json:"value,omitempty"`
	Message     string      `json:"message"`
	Code        string      `json:"code,omitempty"`
	Suggestions []string    `json:"suggestions,omitempty"`
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the result of configuration validation
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
}

// HasErrors returns true if there are any validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings
func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Warnings) > 0
}

// String returns a formatted string of all validation issues
func (vr *ValidationResult) String() string {
	var builder strings.Builder

	if len(vr.Errors) > 0 {
		builder.WriteString("❌ Validation Errors:\n")
		for _, err := range vr.Errors {
			builder.WriteString(fmt.Sprintf("  • %s: %s\n", err.Field, err.Message))
			for _, suggestion := range err.Suggestions {
				builder.WriteString(fmt.Sprintf("    💡 %s\n", suggestion))
			}
		}
		builder.WriteString("\n")
	}

	if len(vr.Warnings) > 0 {
		builder.WriteString("⚠️  Validation Warnings:\n")
		for _, warning := range vr.Warnings {
			builder.WriteString(fmt.Sprintf("  • %s: %s\n", warning.Field, warning.Message))
			for _, suggestion := range warning.Suggestions {
				builder.WriteString(fmt.Sprintf("    💡 %s\n", suggestion))
			}
		}
	}

	return builder.String()
}

func (vr *ValidationResult) addError(field string, value interface{}, err error, suggestions ...string) {
	vr.Errors = append(vr.Errors, ValidationError{
		Field:       field,
		Value:       value,
		Message:     err.Error(),
		Code:        errors.CodeOf(err),
		Suggestions: suggestions,
	})
}

func (vr *ValidationResult) addWarning(field string, value interface{}, message string, suggestions ...string) {
	vr.Warnings = append(vr.Warnings, ValidationError{
		Field:       field,
		Value:       value,
		Message:     message,
		Suggestions: suggestions,
	})
}

// ValidateConfigWithDetails performs comprehensive validation with detailed
// feedback. It checks every field without touching the filesystem.
func ValidateConfigWithDetails(config *Config) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	mode, modeErr := registry.ParseMode(config.Mode)
	if modeErr != nil {
		result.addError("mode", config.Mode, modeErr, "Use 'release' or 'debug'")
	}

	validateProjectConfigDetails(&config.Project, mode, result)
	ids := validatePathsDetails(config.Paths, result)
	validateOverridesDetails(config.Overrides, ids, mode, result)
	validateLoggingConfigDetails(&config.Logging, result)

	// Set overall validity
	result.Valid = !result.HasErrors()

	return result
}

func validateProjectConfigDetails(config *ProjectConfig, mode registry.Mode, result *ValidationResult) {
	segments := []struct {
		field string
		value string
		hint  string
	}{
		{"project.studio", config.Studio, "Set project.studio to your studio or organization name"},
		{"project.name", config.Name, "Set project.name to the game or application name"},
		{"project.app_id", config.AppID, "Set project.app_id to a short identifier such as 'MyGame'"},
	}
	for _, s := range segments {
		if _, err := validation.ValidateSegment(s.value); err != nil {
			result.addError(s.field, s.value, err,
				s.hint,
				"Avoid separators, '.', '..', reserved device names and the characters <>:\"/\\|?*",
			)
		}
	}

	if config.BaseDir != "" && filepath.IsAbs(config.BaseDir) {
		clean := filepath.Clean(config.BaseDir)
		if filepath.Dir(clean) == clean {
			result.addError("project.base_dir", config.BaseDir,
				errors.NewConfigError(errors.ErrCodeInvalidBase, "base directory cannot be the filesystem root"),
				"Leave base_dir empty to use the executable directory",
			)
		}
	}

	if config.BaseOverride != "" {
		if !filepath.IsAbs(config.BaseOverride) {
			result.addError("project.base_override", config.BaseOverride,
				errors.NewConfigError(errors.ErrCodeInvalidBase, "base override must be an absolute path"),
			)
		}
		if !mode.IsDebug() {
			result.addWarning("project.base_override", config.BaseOverride,
				"base override is ignored in release mode",
				"Set mode to 'debug' to use the override",
			)
		}
	}
}

// validatePathsDetails validates the path list and returns the set of
// identifiers defined.
func validatePathsDetails(paths []PathConfig, result *ValidationResult) map[string]bool {
	ids := make(map[string]bool, len(paths))

	if len(paths) == 0 {
		result.addWarning("paths", nil, "no paths defined - the registry will be empty",
			"Add entries like '- {id: SaveDir, template: saves}'",
		)
		return ids
	}

	for i, p := range paths {
		field := fmt.Sprintf("paths[%d]", i)

		if p.ID == "" {
			result.addError(field+".id", p.ID,
				errors.NewConfigError(errors.ErrCodeEmptyID, "identifier cannot be empty"),
			)
		} else if ids[p.ID] {
			result.addError(field+".id", p.ID,
				errors.ErrDuplicateIDFor(p.ID),
				"Each identifier may be defined once; rename or remove the duplicate",
			)
		}
		ids[p.ID] = true

		if _, err := template.Parse(p.Template); err != nil {
			result.addError(field+".template", p.Template, err, errors.SuggestionTitles(err)...)
		}
	}

	return ids
}

func validateOverridesDetails(overrides []PathConfig, ids map[string]bool, mode registry.Mode, result *ValidationResult) {
	if len(overrides) == 0 {
		return
	}

	if !mode.IsDebug() {
		result.addWarning("overrides", len(overrides),
			"overrides are ignored in release mode",
			"Set mode to 'debug' to apply them",
		)
	}

	for i, o := range overrides {
		field := fmt.Sprintf("overrides[%d]", i)

		if !ids[o.ID] {
			result.addError(field+".id", o.ID,
				errors.ErrUnknownIDFor(o.ID),
				"Overrides must refer to an identifier listed under paths",
			)
		}
		if _, err := template.Parse(o.Template); err != nil {
			result.addError(field+".template", o.Template, err, errors.SuggestionTitles(err)...)
		}
	}
}

func validateLoggingConfigDetails(config *LoggingConfig, result *ValidationResult) {
	if _, err := logging.ParseLevel(config.Level); err != nil {
		result.addError("logging.level", config.Level, err, "Use one of: debug, info, warn, error")
	}

	switch config.Format {
	case "", "text", "json":
	default:
		result.addError("logging.format", config.Format,
			fmt.Errorf("unknown log format %q", config.Format),
			"Use 'text' or 'json'",
		)
	}
}
