// Package cmd provides the command-line interface for pathreg with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --mode, --log-level, --log-format) - highest priority
//	2. PATHREG_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (PATHREG_MODE, PATHREG_PROJECT_STUDIO, etc.)
//	4. Configuration files (.pathreg.yml) - lowest priority
//
// Environment Variables:
//
//	PATHREG_CONFIG_FILE: Path to custom configuration file
//	PATHREG_MODE: release or debug
//	PATHREG_PROJECT_BASE_DIR: Directory holding the studio folder
//	PATHREG_LOGGING_LEVEL: Log level
//	And the rest following the PATHREG_<SECTION>_<OPTION> pattern
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/pathreg/internal/config"
)

// ConfigFileEnv names the environment variable holding a config file path.
const ConfigFileEnv = "PATHREG_CONFIG_FILE"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pathreg",
	Short: "A registry of safe, project-relative application paths",
	Long: `pathreg resolves named application paths (save folders, caches, config
files) under a project root of <base>/<studio>/<project>. Every path comes
from a template whose segments are validated, so no value can escape the
root, name a reserved device, or use characters the filesystem rejects.

Quick Start:
  pathreg list                          List every registered path
  pathreg resolve SaveDir               Print a static path
  pathreg resolve LevelData id=dungeon  Fill a template's placeholders
  pathreg validate                      Report every configuration problem
  pathreg check "My Save"               Validate individual path segments
  pathreg watch                         Re-validate when the config changes

Command Aliases:
  resolve (r), list (l), validate (v), watch (w)`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is .pathreg.yml, can also use "+ConfigFileEnv+" env var)")
	flags.String("mode", config.DefaultMode, "registry mode (release, debug)")
	flags.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.String("log-format", config.DefaultLogFormat, "log format (text, json)")

	AddChoiceValidation(flags, "mode", "mode", "release", "debug")
	AddChoiceValidation(flags, "log-level", "log level", "debug", "info", "warn", "warning", "error")
	AddChoiceValidation(flags, "log-format", "log format", "text", "json")

	bindPersistentFlags()
}

// bindPersistentFlags maps the persistent flags onto their config keys.
func bindPersistentFlags() {
	flags := rootCmd.PersistentFlags()
	_ = viper.BindPFlag("mode", flags.Lookup("mode"))
	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", flags.Lookup("log-format"))
}

// initConfig initializes the configuration system.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. PATHREG_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .pathreg.yml in current directory
//
// A missing default file is not an error; the registry is then built from
// flags and environment variables alone.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv(ConfigFileEnv); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pathreg")
	}

	config.BindEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: failed to read config file: %v\n", err)
		}
	}
}
