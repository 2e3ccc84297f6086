package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/pathreg/internal/errors"
	"github.com/conneroisu/pathreg/internal/registry"
)

var resolveFormat string

var resolveCmd = &cobra.Command{
	Use:     "resolve <id> [name=value...]",
	Aliases: []string{"r"},
	Short:   "Resolve a registered path",
	Long: `Resolve a registered path to an absolute path under the project root.
Placeholders in the path's template are filled from name=value arguments;
each substituted value is validated like any other path segment.

Examples:
  pathreg resolve SaveDir                     # Static path
  pathreg resolve LevelData id=dungeon_01     # Fill {id}
  pathreg resolve LevelData id=x -f json      # Output as JSON`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	AddFormatFlag(resolveCmd, &resolveFormat, formatText, formatJSON)
}

type resolveOutput struct {
	ID       string   `json:"id"`
	Template string   `json:"template"`
	Relative string   `json:"relative"`
	Path     string   `json:"path"`
	Unused   []string `json:"unused,omitempty"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	values, err := parseAssignments(args[1:])
	if err != nil {
		return err
	}

	s, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	id := registry.ID(args[0])
	resolved, err := s.registry.Resolve(id, values)
	if err != nil {
		return errors.Enhance(fmt.Errorf("failed to resolve %s: %w", id, err))
	}

	entry, _ := s.registry.Lookup(id)
	tmpl := entry.Effective()
	unused := tmpl.Unused(values)
	if len(unused) > 0 {
		s.logger.Warn(cmd.Context(), nil, "Ignoring values with no matching placeholder",
			"id", string(id), "names", unused)
	}

	out := cmd.OutOrStdout()
	switch resolveFormat {
	case formatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(resolveOutput{
			ID:       string(id),
			Template: tmpl.Source(),
			Relative: resolved.Relative(),
			Path:     resolved.String(),
			Unused:   unused,
		})
	default:
		_, err := fmt.Fprintln(out, resolved.String())
		return err
	}
}
