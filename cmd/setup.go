package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/conneroisu/pathreg/internal/config"
	"github.com/conneroisu/pathreg/internal/logging"
	"github.com/conneroisu/pathreg/internal/registry"
)

// executableDir is the directory relative base directories are joined to.
// Tests replace it.
var executableDir = func() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// newLogger builds the CLI logger from the logging section. Logs always go
// to w so that command output on stdout stays machine readable.
func newLogger(cfg *config.Config, w io.Writer) logging.Logger {
	level, err := cfg.LogLevel()
	if err != nil {
		level = logging.LevelInfo
	}

	return logging.NewLogger(&logging.LoggerConfig{
		Level:     level,
		Format:    cfg.Logging.Format,
		Output:    w,
		Component: "pathreg",
	})
}

// session is what most commands need: the validated configuration, a
// logger, and the registry built from both.
type session struct {
	config   *config.Config
	logger   logging.Logger
	registry *registry.Registry
}

// openSession loads the configuration and builds the registry. Any
// registration failure is fatal here; the validate command reports them
// individually instead.
func openSession(logOut io.Writer) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger(cfg, logOut)

	exeDir, err := executableDir()
	if err != nil {
		return nil, err
	}

	r, err := cfg.NewRegistry(exeDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build path registry: %w", err)
	}

	return &session{config: cfg, logger: logger, registry: r}, nil
}
