package testutils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/pathreg/internal/config"
	"github.com/conneroisu/pathreg/internal/logging"
	"github.com/conneroisu/pathreg/internal/registry"
)

// Project identity used by every helper.
const (
	TestStudio = "MyStudio"
	TestName   = "MyGame"
	TestAppID  = "ExampleApp"
)

// CreateTempBase creates a temporary base directory with symlinks resolved,
// so paths compare equal on systems where the temp dir is a link.
func CreateTempBase(t *testing.T) string {
	t.Helper()

	base, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return base
}

// ProjectRoot returns the project root the helpers build under base.
func ProjectRoot(base string) string {
	return filepath.Join(base, TestStudio, TestName)
}

// CreateTestConfig creates a debug-mode configuration with a static path,
// a placeholder path, a whole-segment placeholder and one override.
func CreateTestConfig(base string) *config.Config {
	return &config.Config{
		Mode: "debug",
		Project: config.ProjectConfig{
			BaseDir: base,
			Studio:  TestStudio,
			Name:    TestName,
			AppID:   TestAppID,
		},
		Paths: []config.PathConfig{
			{ID: "SaveDir", Template: "saves"},
			{ID: "LevelData", Template: "cache/levels/{id}.map"},
			{ID: "Config", Template: "config/settings.ini"},
			{ID: "SlotDir", Template: "saves/{slot}"},
		},
		Overrides: []config.PathConfig{
			{ID: "Config", Template: "debug/settings.ini"},
		},
		Logging: config.LoggingConfig{
			Level:  "error",
			Format: config.DefaultLogFormat,
		},
	}
}

// WriteConfigFile writes cfg as YAML to a .pathreg.yml in dir and returns
// the file path.
func WriteConfigFile(t *testing.T, dir string, cfg *config.Config) string {
	t.Helper()

	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	file := filepath.Join(dir, ".pathreg.yml")
	require.NoError(t, os.WriteFile(file, data, 0o644))
	return file
}

// CreateTestRegistry builds the registry described by CreateTestConfig in a
// fresh base directory.
func CreateTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	cfg := CreateTestConfig(CreateTempBase(t))
	r, err := cfg.NewRegistry("", logging.Discard())
	require.NoError(t, err)
	return r
}

// SegmentTestCases are hostile placeholder values grouped by the check
// that must reject them.
var SegmentTestCases = struct {
	Traversal        []string
	IllegalCharacter []string
	ReservedName     []string
}{
	Traversal: []string{
		".",
		"..",
	},
	IllegalCharacter: []string{
		"../../../etc/passwd",
		"..\\..\\windows\\system32",
		"a/b",
		"C:",
		"slot|rm",
		"what?",
		"star*",
		"<script>",
		"quote\"d",
		"nul\x00byte",
		"line\nbreak",
		"next\u0085line",
		"save\xff",
		"trailing.",
		"trailing ",
	},
	ReservedName: []string{
		"CON",
		"con",
		"Nul.txt",
		"com1",
		"LPT9.log",
	},
}

// WaitForFileChange waits for a file to be modified (useful for testing file watchers)
func WaitForFileChange(
	t *testing.T,
	filePath string,
	originalModTime time.Time,
	timeout time.Duration,
) {
	t.Helper()

	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		info, err := os.Stat(filePath)
		if err == nil && info.ModTime().After(originalModTime) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("File %s was not modified within %v", filePath, timeout)
}
