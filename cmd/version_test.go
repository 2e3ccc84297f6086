package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/pathreg/internal/version"
)

func TestVersionCommand(t *testing.T) {
	setFlag(t, &version.Version, "v1.4.0")
	setFlag(t, &version.GitCommit, "0123456789abcdef")
	setFlag(t, &version.BuildTime, "2026-02-03T04:05:06Z")
	setFlag(t, &versionFormat, formatText)

	t.Run("default", func(t *testing.T) {
		out, err := run(runVersionCommand)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "pathreg v1.4.0 (0123456)"), out)
		assert.Contains(t, out, "Built: 2026-02-03 04:05:06 UTC")
		assert.Contains(t, out, "Platform: ")
	})

	t.Run("short", func(t *testing.T) {
		setFlag(t, &versionShort, true)
		out, err := run(runVersionCommand)
		require.NoError(t, err)
		assert.Equal(t, "v1.4.0 (0123456)\n", out)
	})

	t.Run("detailed", func(t *testing.T) {
		setFlag(t, &versionDetailed, true)
		out, err := run(runVersionCommand)
		require.NoError(t, err)
		assert.Contains(t, out, "Commit: 0123456789abcdef")
		assert.Contains(t, out, "Build type: release")
	})

	t.Run("json", func(t *testing.T) {
		setFlag(t, &versionFormat, formatJSON)
		out, err := run(runVersionCommand)
		require.NoError(t, err)

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "v1.4.0", got["version"])
		assert.Equal(t, "0123456789abcdef", got["git_commit"])
		assert.Equal(t, true, got["is_release"])
	})

	t.Run("json flag in upper case", func(t *testing.T) {
		setFlag(t, &versionFormat, formatText)
		require.NoError(t, versionCmd.Flags().Set("format", "JSON"))

		out, err := run(runVersionCommand)
		require.NoError(t, err)
		assert.True(t, json.Valid([]byte(out)), out)
	})

	t.Run("unsupported format", func(t *testing.T) {
		setFlag(t, &versionFormat, "xml")
		_, err := run(runVersionCommand)
		assert.Error(t, err)
	})
}
