package validation

import (
	"unicode"

	"golang.org/x/text/cases"
)

// MaxSegmentLength is the longest segment, in bytes, accepted on every
// supported filesystem.
const MaxSegmentLength = 255

// forbiddenChars may not appear inside a single segment. Control characters
// (Unicode category Cc) are rejected separately.
const forbiddenChars = `<>:"/\|?*`

// reservedNames are device names that Windows refuses as file or directory
// names regardless of extension.
var reservedNames = []string{
	"CON", "PRN", "AUX", "NUL",
	"COM1", "COM2", "COM3", "COM4", "COM5", "COM6", "COM7", "COM8", "COM9",
	"LPT1", "LPT2", "LPT3", "LPT4", "LPT5", "LPT6", "LPT7", "LPT8", "LPT9",
}

// reservedFolded holds reservedNames case-folded for lookup.
var reservedFolded = func() map[string]struct{} {
	m := make(map[string]struct{}, len(reservedNames))
	for _, name := range reservedNames {
		m[fold(name)] = struct{}{}
	}
	return m
}()

// fold case-folds s. A Caser keeps state, so one is built per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// ReservedNames returns a copy of the reserved device name list.
func ReservedNames() []string {
	names := make([]string, len(reservedNames))
	copy(names, reservedNames)
	return names
}

// ForbiddenChars returns the set of characters rejected inside a segment,
// excluding control characters.
func ForbiddenChars() string {
	return forbiddenChars
}

// isControl reports C0 and C1 control characters and DEL.
func isControl(r rune) bool {
	return unicode.IsControl(r)
}

func isForbidden(r rune) bool {
	if isControl(r) {
		return true
	}
	for _, c := range forbiddenChars {
		if r == c {
			return true
		}
	}
	return false
}
