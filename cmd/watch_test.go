package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/pathreg/internal/registry"
	"github.com/conneroisu/pathreg/internal/watcher"
)

const watchConfigV2 = `mode: release
project:
  base_dir: %q
  studio: MyStudio
  name: MyGame
  app_id: ExampleApp
paths:
  - id: SaveDir
    template: saves_v2
  - id: Screenshots
    template: screenshots
logging:
  level: error
`

func TestDiffTemplates(t *testing.T) {
	previous := map[registry.ID]string{"A": "a", "B": "b", "C": "c"}
	current := map[registry.ID]string{"A": "a", "B": "b2", "D": "d"}

	assert.Equal(t, []string{
		"~ B: b → b2",
		"- C: c",
		"+ D: d",
	}, diffTemplates(previous, current))

	assert.Nil(t, diffTemplates(nil, current), "first load has nothing to compare with")
	assert.Empty(t, diffTemplates(current, current))
}

func TestConfigWatcherReload(t *testing.T) {
	_, file := useConfig(t, testConfig)

	var out bytes.Buffer
	w := newConfigWatcher(&out, io.Discard)

	require.True(t, w.reload())
	assert.Contains(t, out.String(), "(4 paths registered)")
	assert.NotContains(t, out.String(), "+ ")

	base := viper.GetString("project.base_dir")
	require.NoError(t, os.WriteFile(file, []byte(fmt.Sprintf(watchConfigV2, base)), 0o644))

	out.Reset()
	require.NoError(t, w.onChange([]watcher.ChangeEvent{{Type: watcher.EventTypeModified, Path: file}}))

	report := out.String()
	assert.Contains(t, report, "Config modified: "+file)
	assert.Contains(t, report, "~ SaveDir: saves → saves_v2")
	assert.Contains(t, report, "+ Screenshots: screenshots")
	assert.Contains(t, report, "- LevelData: cache/levels/{id}.map")
	assert.Contains(t, report, "- Config: debug/settings.ini")
	assert.Contains(t, report, "(2 paths registered)")
}

func TestConfigWatcherKeepsLastValid(t *testing.T) {
	_, file := useConfig(t, testConfig)

	var out bytes.Buffer
	w := newConfigWatcher(&out, io.Discard)
	require.True(t, w.reload())

	base := viper.GetString("project.base_dir")
	broken := fmt.Sprintf("project:\n  base_dir: %q\n  studio: MyStudio\n  name: MyGame\n  app_id: NUL\n", base)
	require.NoError(t, os.WriteFile(file, []byte(broken), 0o644))
	require.NoError(t, viper.ReadInConfig())

	out.Reset()
	assert.False(t, w.reload())
	assert.Contains(t, out.String(), "project.app_id")

	// Restoring the original file reports no changes against the last
	// valid configuration.
	require.NoError(t, os.WriteFile(file, []byte(fmt.Sprintf(testConfig, base)), 0o644))
	require.NoError(t, viper.ReadInConfig())

	out.Reset()
	require.True(t, w.reload())
	assert.NotContains(t, out.String(), "~ ")
	assert.NotContains(t, out.String(), "- ")
}

func TestConfigWatcherReportsReadErrors(t *testing.T) {
	_, file := useConfig(t, testConfig)

	var out bytes.Buffer
	w := newConfigWatcher(&out, io.Discard)
	require.True(t, w.reload())

	require.NoError(t, os.WriteFile(file, []byte("paths: [unclosed\n"), 0o644))

	out.Reset()
	err := w.onChange([]watcher.ChangeEvent{{Type: watcher.EventTypeModified, Path: file}})
	require.Error(t, err)
	assert.Contains(t, out.String(), "failed to read config")
}

func TestRunWatchRequiresConfigFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	err := runWatch(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a config file")
}
