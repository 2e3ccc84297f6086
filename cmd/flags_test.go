package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/pathreg/internal/template"
)

func TestValidateChoice(t *testing.T) {
	validate := ValidateChoice("format", "text", "json")

	assert.NoError(t, validate("text"))
	assert.NoError(t, validate("JSON"))

	err := validate("xml")
	require.Error(t, err)
	assert.Equal(t, `invalid format "xml", must be one of: text, json`, err.Error())
}

func TestAddFlagValidation(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var format string
	flags.StringVar(&format, "format", "text", "")
	AddFlagValidation(flags, "format", ValidateChoice("format", "text", "json"))

	require.NoError(t, flags.Parse([]string{"--format", "json"}))
	assert.Equal(t, "json", format)

	assert.Error(t, flags.Parse([]string{"--format", "xml"}))
	assert.Equal(t, "json", format, "rejected values are not stored")

	// Unknown flags are ignored.
	AddFlagValidation(flags, "missing", ValidateChoice("x"))
}

func TestAddFormatFlag(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	var format string
	AddFormatFlag(cmd, &format, formatTable, formatJSON, formatYAML)

	flag := cmd.Flags().Lookup("format")
	require.NotNil(t, flag)
	assert.Equal(t, "f", flag.Shorthand)
	assert.Equal(t, formatTable, format)

	require.NoError(t, cmd.Flags().Parse([]string{"-f", "yaml"}))
	assert.Equal(t, formatYAML, format)
	assert.Error(t, cmd.Flags().Parse([]string{"-f", "csv"}))

	require.NoError(t, cmd.Flags().Parse([]string{"-f", "JSON"}))
	assert.Equal(t, formatJSON, format, "values are stored in their canonical spelling")
}

func TestAddChoiceValidation(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var mode string
	flags.StringVar(&mode, "mode", "release", "")
	AddChoiceValidation(flags, "mode", "mode", "release", "debug")

	require.NoError(t, flags.Parse([]string{"--mode", "Debug"}))
	assert.Equal(t, "debug", mode)

	err := flags.Parse([]string{"--mode", "staging"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid mode "staging"`)
	assert.Equal(t, "debug", mode)

	// Unknown flags are ignored.
	AddChoiceValidation(flags, "missing", "x", "a")
}

func TestPersistentFlagValidation(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("mode")
	require.NotNil(t, flag)

	assert.Error(t, flag.Value.Set("staging"))
	assert.Equal(t, "release", flag.Value.String())
}

func TestParseAssignments(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		want     template.Values
		contains string
	}{
		{name: "none", args: nil, want: template.Values{}},
		{name: "single", args: []string{"id=forest"}, want: template.Values{"id": "forest"}},
		{name: "empty value", args: []string{"id="}, want: template.Values{"id": ""}},
		{name: "value with equals", args: []string{"q=a=b"}, want: template.Values{"q": "a=b"}},
		{name: "value passed through", args: []string{"slot=../x"}, want: template.Values{"slot": "../x"}},
		{name: "missing equals", args: []string{"forest"}, contains: "expected name=value"},
		{name: "empty name", args: []string{"=x"}, contains: "name cannot be empty"},
		{name: "braces in name", args: []string{"{id}=x"}, contains: "invalid characters"},
		{name: "duplicate", args: []string{"id=a", "id=b"}, contains: "more than once"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAssignments(tt.args)
			if tt.contains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.contains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
