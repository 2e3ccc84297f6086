// Package config provides configuration management for pathreg using Viper
// for loading from files, environment variables, and command-line flags.
//
// The configuration names the project root (base directory, studio, project
// and app identifier), the ordered list of path definitions, optional debug
// overrides, and logging settings. Environment variables use the PATHREG_
// prefix, for example PATHREG_PROJECT_STUDIO.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"

	"github.com/conneroisu/pathreg/internal/errors"
	"github.com/conneroisu/pathreg/internal/logging"
	"github.com/conneroisu/pathreg/internal/registry"
)

// Default values applied by Load.
const (
	DefaultMode      = "release"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

type Config struct {
	Mode      string        `mapstructure:"mode" yaml:"mode" json:"mode"`
	Project   ProjectConfig `mapstructure:"project" yaml:"project" json:"project"`
	Paths     []PathConfig  `mapstructure:"paths" yaml:"paths" json:"paths"`
	Overrides []PathConfig  `mapstructure:"overrides" yaml:"overrides,omitempty" json:"overrides,omitempty"`
	Logging   LoggingConfig `mapstructure:"logging" yaml:"logging" json:"logging"`
}

type ProjectConfig struct {
	// BaseDir is the directory the studio folder lives in. Empty means the
	// directory of the running executable; relative paths are joined to it.
	BaseDir      string `mapstructure:"base_dir" yaml:"base_dir" json:"base_dir"`
	Studio       string `mapstructure:"studio" yaml:"studio" json:"studio"`
	Name         string `mapstructure:"name" yaml:"name" json:"name"`
	AppID        string `mapstructure:"app_id" yaml:"app_id" json:"app_id"`
	BaseOverride string `mapstructure:"base_override" yaml:"base_override,omitempty" json:"base_override,omitempty"`
}

type PathConfig struct {
	ID       string `mapstructure:"id" yaml:"id" json:"id"`
	Template string `mapstructure:"template" yaml:"template" json:"template"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "PATHREG"

// BindEnv makes viper read PATHREG_<SECTION>_<KEY> variables and registers
// the defaults they override.
func BindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
	SetDefaults()
}

// SetDefaults registers every scalar key with viper so that environment
// variables are picked up by Unmarshal.
func SetDefaults() {
	viper.SetDefault("mode", DefaultMode)
	viper.SetDefault("project.base_dir", "")
	viper.SetDefault("project.studio", "")
	viper.SetDefault("project.name", "")
	viper.SetDefault("project.app_id", "")
	viper.SetDefault("project.base_override", "")
	viper.SetDefault("logging.level", DefaultLogLevel)
	viper.SetDefault("logging.format", DefaultLogFormat)
}

// Load decodes and validates the configuration held by viper.
func Load() (*Config, error) {
	config, err := Decode()
	if err != nil {
		return nil, err
	}

	// Validate configuration values
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// Decode unmarshals the configuration and applies defaults without
// validating it.
func Decode() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, errors.WrapConfig(err, "failed to decode configuration")
	}

	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(config *Config) {
	if config.Mode == "" {
		config.Mode = DefaultMode
	}
	if config.Logging.Level == "" {
		config.Logging.Level = DefaultLogLevel
	}
	if config.Logging.Format == "" {
		config.Logging.Format = DefaultLogFormat
	}
}

// validateConfig returns every validation error aggregated into one.
func validateConfig(config *Config) error {
	result := ValidateConfigWithDetails(config)
	if !result.HasErrors() {
		return nil
	}

	var merr *multierror.Error
	for i := range result.Errors {
		merr = multierror.Append(merr, &result.Errors[i])
	}
	return errors.WrapConfig(merr.ErrorOrNil(), "invalid configuration")
}

// RegistryMode returns the parsed mode.
func (c *Config) RegistryMode() (registry.Mode, error) {
	return registry.ParseMode(c.Mode)
}

// LogLevel returns the parsed logging level.
func (c *Config) LogLevel() (logging.LogLevel, error) {
	return logging.ParseLevel(c.Logging.Level)
}

// AbsoluteBase resolves Project.BaseDir against exeDir.
func (c *Config) AbsoluteBase(exeDir string) (string, error) {
	base := c.Project.BaseDir
	switch {
	case base == "":
		base = exeDir
	case !filepath.IsAbs(base):
		base = filepath.Join(exeDir, base)
	}

	if !filepath.IsAbs(base) {
		return "", errors.NewConfigError(
			errors.ErrCodeConfigInvalid,
			fmt.Sprintf("base directory %q is not absolute", base),
		).WithContext("field", "project.base_dir")
	}
	return filepath.Clean(base), nil
}

// Definitions converts Paths into registry definitions, preserving order.
func (c *Config) Definitions() []registry.Definition {
	return toDefinitions(c.Paths)
}

// OverrideDefinitions converts Overrides into registry definitions.
func (c *Config) OverrideDefinitions() []registry.Definition {
	return toDefinitions(c.Overrides)
}

func toDefinitions(paths []PathConfig) []registry.Definition {
	defs := make([]registry.Definition, len(paths))
	for i, p := range paths {
		defs[i] = registry.Definition{ID: registry.ID(p.ID), Template: p.Template}
	}
	return defs
}

// NewRegistry builds a registry from the configuration: the root is created,
// every path registered and, in debug mode, every override applied.
// Registration failures are aggregated; the registry is still returned with
// the definitions that succeeded.
func (c *Config) NewRegistry(exeDir string, logger logging.Logger) (*registry.Registry, error) {
	mode, err := c.RegistryMode()
	if err != nil {
		return nil, errors.WrapConfig(err, "invalid mode")
	}

	base, err := c.AbsoluteBase(exeDir)
	if err != nil {
		return nil, err
	}

	opts := []registry.Option{registry.WithMode(mode), registry.WithLogger(logger)}
	if c.Project.BaseOverride != "" {
		opts = append(opts, registry.WithBaseOverride(c.Project.BaseOverride))
	}

	r, err := registry.New(base, c.Project.Studio, c.Project.Name, c.Project.AppID, opts...)
	if err != nil {
		return nil, err
	}

	var result *multierror.Error
	if err := r.RegisterAll(c.Definitions()); err != nil {
		result = multierror.Append(result, err)
	}
	if mode.IsDebug() && len(c.Overrides) > 0 {
		if err := r.OverrideAll(c.OverrideDefinitions()); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return r, result.ErrorOrNil()
}
