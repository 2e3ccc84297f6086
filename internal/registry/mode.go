package registry

import (
	"fmt"
	"strings"
)

// Mode selects whether development-only features are enabled.
type Mode string

const (
	// ModeRelease disables overrides and base path replacement.
	ModeRelease Mode = "release"
	// ModeDebug enables the override table and WithBaseOverride.
	ModeDebug Mode = "debug"
)

// ParseMode parses "release" or "debug". The empty string means release.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeRelease:
		return ModeRelease, nil
	case ModeDebug:
		return ModeDebug, nil
	default:
		return ModeRelease, fmt.Errorf("unknown mode %q (want release or debug)", s)
	}
}

// String returns the string representation of the mode
func (m Mode) String() string {
	if m == "" {
		return string(ModeRelease)
	}
	return string(m)
}

// IsDebug reports whether m is ModeDebug.
func (m Mode) IsDebug() bool { return m == ModeDebug }
