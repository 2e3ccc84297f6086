package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/pathreg/internal/errors"
	"github.com/conneroisu/pathreg/internal/validation"
)

var checkFormat string

var checkCmd = &cobra.Command{
	Use:   "check <segment...>",
	Short: "Check whether values are safe path segments",
	Long: `Check each argument as a single path segment, the same way placeholder
values are checked before they are substituted. Valid segments are printed
in their normalized (NFC) form.

Examples:
  pathreg check "Slot 1" dungeon_01   # Both valid
  pathreg check .. CON "a/b"          # All rejected
  pathreg check cafe -f json          # Output as JSON`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	AddFormatFlag(checkCmd, &checkFormat, formatText, formatJSON)
}

type checkResult struct {
	Input      string `json:"input"`
	Valid      bool   `json:"valid"`
	Normalized string `json:"normalized,omitempty"`
	Code       string `json:"code,omitempty"`
	Error      string `json:"error,omitempty"`
}

func checkSegments(args []string) ([]checkResult, int) {
	results := make([]checkResult, len(args))
	invalid := 0
	for i, arg := range args {
		normalized, err := validation.ValidateSegment(arg)
		if err != nil {
			invalid++
			results[i] = checkResult{Input: arg, Code: errors.CodeOf(err), Error: err.Error()}
			continue
		}
		results[i] = checkResult{Input: arg, Valid: true, Normalized: normalized}
	}
	return results, invalid
}

func runCheck(cmd *cobra.Command, args []string) error {
	results, invalid := checkSegments(args)

	out := cmd.OutOrStdout()
	switch checkFormat {
	case formatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}
	default:
		for _, r := range results {
			if r.Valid {
				fmt.Fprintf(out, "✅ %q → %q\n", r.Input, r.Normalized)
			} else {
				fmt.Fprintf(out, "❌ %q: %s\n", r.Input, r.Error)
			}
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d segment(s) invalid", invalid, len(args))
	}
	return nil
}
