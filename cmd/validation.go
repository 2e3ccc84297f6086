package cmd

import (
	"fmt"
	"strings"

	"github.com/conneroisu/pathreg/internal/template"
)

// parseAssignments turns name=value arguments into placeholder values.
// Values are passed through untouched; the registry validates them once
// substituted.
func parseAssignments(args []string) (template.Values, error) {
	values := make(template.Values, len(args))
	for _, arg := range args {
		if err := validateAssignment(arg); err != nil {
			return nil, fmt.Errorf("invalid argument '%s': %w", arg, err)
		}

		name, value, _ := strings.Cut(arg, "=")
		if _, dup := values[name]; dup {
			return nil, fmt.Errorf("invalid argument '%s': placeholder %s given more than once", arg, name)
		}
		values[name] = value
	}
	return values, nil
}

// validateAssignment checks the shape of a single name=value argument.
func validateAssignment(arg string) error {
	name, _, ok := strings.Cut(arg, "=")
	if !ok {
		return fmt.Errorf("expected name=value")
	}
	if name == "" {
		return fmt.Errorf("placeholder name cannot be empty")
	}
	if strings.ContainsAny(name, "{}/ ") {
		return fmt.Errorf("placeholder name contains invalid characters")
	}
	return nil
}
