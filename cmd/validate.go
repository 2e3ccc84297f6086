package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/conneroisu/pathreg/internal/config"
	"github.com/conneroisu/pathreg/internal/registry"
)

var validateFormat string

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:     "validate",
	Aliases: []string{"v"},
	Short:   "Validate the configuration and every path template",
	Long: `Validate the configuration without stopping at the first problem:

- Project root segments (studio, project name, app id)
- Every path template and debug override
- Duplicate or unknown identifiers
- Mode and logging settings

When the configuration itself is valid the registry is built as well, so
failures only visible at registration time are reported too.

Examples:
  pathreg validate                # Human readable report
  pathreg validate --format json  # Output results as JSON`,
	Args: cobra.NoArgs,
	RunE: runValidateCommand,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	AddFormatFlag(validateCmd, &validateFormat, formatText, formatJSON)
}

type validateReport struct {
	*config.ValidationResult
	Paths          int      `json:"paths"`
	RegistryErrors []string `json:"registry_errors,omitempty"`

	registry *registry.Registry
}

func (r *validateReport) failures() int {
	return len(r.Errors) + len(r.RegistryErrors)
}

func runValidateCommand(cmd *cobra.Command, args []string) error {
	report, err := validateCurrentConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch validateFormat {
	case formatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			return err
		}
	default:
		printValidateReport(out, report)
	}

	if n := report.failures(); n > 0 {
		return fmt.Errorf("configuration has %d error(s)", n)
	}
	return nil
}

// validateCurrentConfig checks the configuration held by viper and, when it
// is valid, builds the registry from it.
func validateCurrentConfig(logOut io.Writer) (*validateReport, error) {
	cfg, err := config.Decode()
	if err != nil {
		return nil, err
	}

	report := &validateReport{ValidationResult: config.ValidateConfigWithDetails(cfg)}
	if report.HasErrors() {
		return report, nil
	}

	exeDir, err := executableDir()
	if err != nil {
		return nil, err
	}

	r, err := cfg.NewRegistry(exeDir, newLogger(cfg, logOut))
	if r != nil {
		report.Paths = r.Count()
		report.registry = r
	}
	if err != nil {
		var merr *multierror.Error
		if errors.As(err, &merr) {
			for _, e := range merr.Errors {
				report.RegistryErrors = append(report.RegistryErrors, e.Error())
			}
		} else {
			report.RegistryErrors = append(report.RegistryErrors, err.Error())
		}
		report.Valid = false
	}

	return report, nil
}

func printValidateReport(out io.Writer, report *validateReport) {
	fmt.Fprint(out, report.ValidationResult.String())

	if len(report.RegistryErrors) > 0 {
		fmt.Fprintln(out, "❌ Registry Errors:")
		for _, e := range report.RegistryErrors {
			fmt.Fprintf(out, "  • %s\n", e)
		}
		fmt.Fprintln(out)
	}

	if report.failures() == 0 {
		fmt.Fprintf(out, "✅ Configuration is valid (%d paths registered)\n", report.Paths)
	}
}
