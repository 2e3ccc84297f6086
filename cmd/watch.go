package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/pathreg/internal/config"
	"github.com/conneroisu/pathreg/internal/logging"
	"github.com/conneroisu/pathreg/internal/registry"
	"github.com/conneroisu/pathreg/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"w"},
	Short:   "Re-validate the configuration whenever it changes",
	Long: `Watch the configuration file and re-validate it on every change.
Each reload rebuilds the registry and reports which paths were added,
removed, or changed since the previous valid configuration.

Examples:
  pathreg watch                        # Watch .pathreg.yml
  pathreg watch --config game.yml      # Watch a specific file`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	file := viper.ConfigFileUsed()
	if file == "" {
		return errors.New("watch requires a config file (use --config or create .pathreg.yml)")
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	var logger logging.Logger = logging.Discard()
	if cfg, err := config.Decode(); err == nil {
		logger = newLogger(cfg, cmd.ErrOrStderr())
	}

	fileWatcher, err := watcher.NewFileWatcher(watcher.DefaultDelay, logger)
	if err != nil {
		return err
	}
	defer fileWatcher.Stop()

	if err := fileWatcher.AddFile(file); err != nil {
		return fmt.Errorf("failed to watch %s: %w", file, err)
	}
	fileWatcher.AddFilter(watcher.NoEditorTempFilter)

	w := newConfigWatcher(out, cmd.ErrOrStderr())
	fileWatcher.AddHandler(w.onChange)
	w.reload()

	if err := fileWatcher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}

	fmt.Fprintf(out, "👀 Watching %s for changes... (Press Ctrl+C to stop)\n", file)

	<-ctx.Done()
	fmt.Fprintln(out, "\n🛑 Stopping config watcher...")

	return nil
}

// configWatcher re-validates the configuration and remembers the templates
// of the last valid registry so reloads can be reported as a diff.
type configWatcher struct {
	out    io.Writer
	logOut io.Writer

	mutex    sync.Mutex
	previous map[registry.ID]string
}

func newConfigWatcher(out, logOut io.Writer) *configWatcher {
	return &configWatcher{out: out, logOut: logOut}
}

// onChange re-reads the config file after a debounced batch of changes.
func (w *configWatcher) onChange(events []watcher.ChangeEvent) error {
	for _, e := range events {
		fmt.Fprintf(w.out, "📁 Config %s: %s\n", e.Type, e.Path)
	}

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(w.out, "❌ failed to read config: %v\n", err)
		return err
	}
	w.reload()
	return nil
}

// reload validates the current configuration and reports the outcome. It
// returns whether the configuration was valid.
func (w *configWatcher) reload() bool {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	report, err := validateCurrentConfig(w.logOut)
	if err != nil {
		fmt.Fprintf(w.out, "❌ %v\n", err)
		return false
	}
	if report.failures() > 0 {
		printValidateReport(w.out, report)
		return false
	}

	current := templatesOf(report.registry)
	changes := diffTemplates(w.previous, current)
	w.previous = current

	for _, c := range changes {
		fmt.Fprintf(w.out, "   %s\n", c)
	}
	fmt.Fprintf(w.out, "✅ Configuration is valid (%d paths registered)\n", report.Paths)
	return true
}

func templatesOf(r *registry.Registry) map[registry.ID]string {
	templates := make(map[registry.ID]string)
	if r == nil {
		return templates
	}
	for _, e := range r.Entries() {
		templates[e.ID] = e.Effective().Source()
	}
	return templates
}

// diffTemplates describes the differences between two id → template maps,
// sorted by id. A nil previous map means there is nothing to compare with.
func diffTemplates(previous, current map[registry.ID]string) []string {
	if previous == nil {
		return nil
	}

	ids := make([]string, 0, len(previous)+len(current))
	seen := make(map[registry.ID]bool, len(previous)+len(current))
	for _, m := range []map[registry.ID]string{previous, current} {
		for id := range m {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, string(id))
			}
		}
	}
	sort.Strings(ids)

	var changes []string
	for _, s := range ids {
		id := registry.ID(s)
		before, hadBefore := previous[id]
		after, hasAfter := current[id]
		switch {
		case !hadBefore:
			changes = append(changes, fmt.Sprintf("+ %s: %s", id, after))
		case !hasAfter:
			changes = append(changes, fmt.Sprintf("- %s: %s", id, before))
		case before != after:
			changes = append(changes, fmt.Sprintf("~ %s: %s → %s", id, before, after))
		}
	}
	return changes
}
