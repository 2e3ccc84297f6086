package config

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
)

// FuzzLoadConfig tests configuration loading with malformed YAML. Load must
// either fail or return a configuration that passes validation.
func FuzzLoadConfig(f *testing.F) {
	f.Add(sampleConfig)
	f.Add(`project:
  studio: ..
  name: x
  app_id: y`)
	f.Add(`paths:
  - id: A
    template: "{"`)
	f.Add(`paths: not-a-list`)
	f.Add(`malformed: yaml: content`)
	f.Add(``)

	f.Fuzz(func(t *testing.T, content string) {
		if len(content) > 10000 {
			t.Skip("config too large")
		}

		viper.Reset()
		defer viper.Reset()

		viper.SetConfigType("yaml")
		if err := viper.ReadConfig(bytes.NewBufferString(content)); err != nil {
			return
		}

		cfg, err := Load()
		if err != nil {
			return
		}
		if result := ValidateConfigWithDetails(cfg); result.HasErrors() {
			t.Errorf("Load accepted an invalid configuration:\n%s", result.String())
		}
	})
}
