package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Output formats accepted by the --format flags.
const (
	formatText  = "text"
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatTable = "table"
)

// AddFormatFlag registers --format/-f on cmd, rejecting values outside allowed
// while the flags are parsed.
func AddFormatFlag(cmd *cobra.Command, target *string, allowed ...string) {
	cmd.Flags().StringVarP(target, "format", "f", allowed[0],
		fmt.Sprintf("Output format (%s)", strings.Join(allowed, ", ")))
	AddChoiceValidation(cmd.Flags(), "format", "format", allowed...)
}

// AddChoiceValidation restricts a flag to allowed. Matching ignores case and
// the flag stores the spelling from allowed, so callers can compare values
// exactly.
func AddChoiceValidation(flags *pflag.FlagSet, flagName, what string, allowed ...string) {
	AddFlagValidation(flags, flagName, ValidateChoice(what, allowed...))
	if v, ok := flagValue(flags, flagName); ok {
		v.normalize = func(val string) string { return canonicalChoice(val, allowed) }
	}
}

// AddFlagValidation adds validation for a specific flag
func AddFlagValidation(flags *pflag.FlagSet, flagName string, validator func(string) error) {
	flag := flags.Lookup(flagName)
	if flag == nil {
		return
	}

	// Store original value setter
	originalSet := flag.Value.Set

	// Create wrapper that validates
	flag.Value = &validatingValue{
		Value:       flag.Value,
		validator:   validator,
		originalSet: originalSet,
	}
}

func flagValue(flags *pflag.FlagSet, flagName string) (*validatingValue, bool) {
	flag := flags.Lookup(flagName)
	if flag == nil {
		return nil, false
	}
	v, ok := flag.Value.(*validatingValue)
	return v, ok
}

type validatingValue struct {
	pflag.Value
	validator   func(string) error
	normalize   func(string) string
	originalSet func(string) error
}

func (v *validatingValue) Set(val string) error {
	if v.validator != nil {
		if err := v.validator(val); err != nil {
			return err
		}
	}
	if v.normalize != nil {
		val = v.normalize(val)
	}
	return v.originalSet(val)
}

// canonicalChoice returns the entry of allowed matching val, ignoring case.
func canonicalChoice(val string, allowed []string) string {
	for _, a := range allowed {
		if strings.EqualFold(val, a) {
			return a
		}
	}
	return val
}

// ValidateChoice returns a validator accepting only the listed values,
// compared case-insensitively.
func ValidateChoice(what string, allowed ...string) func(string) error {
	return func(val string) error {
		for _, a := range allowed {
			if strings.EqualFold(val, a) {
				return nil
			}
		}
		return fmt.Errorf("invalid %s %q, must be one of: %s", what, val, strings.Join(allowed, ", "))
	}
}
