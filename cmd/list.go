package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/pathreg/internal/registry"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l"},
	Short:   "List all registered paths",
	Long: `List every registered path in registration order with its template.
Static paths also show the absolute path they resolve to.

Examples:
  pathreg list                    # List paths in table format
  pathreg list -f json            # Output as JSON
  pathreg list --format yaml      # Output as YAML`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listFormat string

func init() {
	rootCmd.AddCommand(listCmd)

	AddFormatFlag(listCmd, &listFormat, formatTable, formatJSON, formatYAML)
}

type listItem struct {
	ID           string   `json:"id" yaml:"id"`
	Template     string   `json:"template" yaml:"template"`
	Placeholders []string `json:"placeholders,omitempty" yaml:"placeholders,omitempty"`
	Overridden   bool     `json:"overridden,omitempty" yaml:"overridden,omitempty"`
	Path         string   `json:"path,omitempty" yaml:"path,omitempty"`
}

type listOutput struct {
	Root  string     `json:"root" yaml:"root"`
	Mode  string     `json:"mode" yaml:"mode"`
	Paths []listItem `json:"paths" yaml:"paths"`
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	output := buildListOutput(s.registry)

	out := cmd.OutOrStdout()
	switch listFormat {
	case formatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(output)
	case formatYAML:
		encoder := yaml.NewEncoder(out)
		defer encoder.Close()
		return encoder.Encode(output)
	default:
		return outputTable(out, output)
	}
}

func buildListOutput(r *registry.Registry) listOutput {
	entries := r.Entries()
	output := listOutput{
		Root:  r.Root().Dir(),
		Mode:  r.Mode().String(),
		Paths: make([]listItem, 0, len(entries)),
	}

	for _, e := range entries {
		tmpl := e.Effective()
		item := listItem{
			ID:           string(e.ID),
			Template:     tmpl.Source(),
			Placeholders: tmpl.Placeholders(),
			Overridden:   e.Override != nil,
		}
		if p, ok := r.GetStatic(e.ID); ok {
			item.Path = p.String()
		}
		output.Paths = append(output.Paths, item)
	}

	return output
}

func outputTable(out io.Writer, output listOutput) error {
	if len(output.Paths) == 0 {
		_, err := fmt.Fprintln(out, "No paths registered.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Root: %s (%s)\n\n", output.Root, output.Mode)
	fmt.Fprintln(w, "ID\tTEMPLATE\tPATH")
	fmt.Fprintln(w, "--\t--------\t----")

	for _, item := range output.Paths {
		tmpl := item.Template
		if item.Overridden {
			tmpl += " (override)"
		}
		path := item.Path
		if path == "" {
			path = "<" + strings.Join(item.Placeholders, ", ") + ">"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", item.ID, tmpl, path)
	}

	fmt.Fprintf(w, "\nTotal: %d paths\n", len(output.Paths))

	return w.Flush()
}
