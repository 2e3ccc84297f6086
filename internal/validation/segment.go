// Package validation provides cross-platform validation of single path
// segments.
//
// The rules are the union of the constraints of every supported target
// filesystem and never depend on the platform the code runs on, so a segment
// accepted here is valid wherever the resulting path is later read.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/conneroisu/pathreg/internal/errors"
)

// NormalizeSegment returns s in Unicode Normalization Form C.
func NormalizeSegment(s string) string {
	return norm.NFC.String(s)
}

// ValidateSegment validates a single path component and returns it in NFC.
//
// Checks run in a fixed order: UTF-8 encoding, emptiness, traversal tokens,
// length, illegal characters, trailing space or period, reserved device
// names.
func ValidateSegment(raw string) (string, error) {
	if !utf8.ValidString(raw) {
		return "", errors.NewValidationError(
			errors.ErrCodeIllegalCharacter,
			"segment is not valid UTF-8",
		).WithSegment(-1, raw)
	}

	segment := NormalizeSegment(raw)

	if segment == "" {
		return "", errors.NewValidationError(errors.ErrCodeEmptySegment, "segment cannot be empty").
			WithSegment(-1, raw)
	}

	if segment == "." || segment == ".." {
		return "", errors.NewValidationError(errors.ErrCodeTraversal, "relative navigation is not allowed").
			WithSegment(-1, segment)
	}

	if len(segment) > MaxSegmentLength {
		return "", errors.NewValidationError(
			errors.ErrCodeSegmentTooLong,
			fmt.Sprintf("segment is %d bytes, limit is %d", len(segment), MaxSegmentLength),
		).WithSegment(-1, segment)
	}

	if r, ok := ForbiddenRune(segment); ok {
		return "", errors.NewValidationError(
			errors.ErrCodeIllegalCharacter,
			fmt.Sprintf("segment contains illegal character %q", r),
		).WithSegment(-1, segment).WithContext("rune", string(r))
	}

	if strings.HasSuffix(segment, " ") || strings.HasSuffix(segment, ".") {
		return "", errors.NewValidationError(
			errors.ErrCodeIllegalCharacter,
			"segment cannot end with a space or a period",
		).WithSegment(-1, segment)
	}

	if IsReservedName(segment) {
		return "", errors.NewValidationError(
			errors.ErrCodeReservedName,
			"segment is a reserved device name",
		).WithSegment(-1, segment)
	}

	return segment, nil
}

// ForbiddenRune reports the first character of s that may not appear in a
// segment.
func ForbiddenRune(s string) (rune, bool) {
	for _, r := range s {
		if isForbidden(r) {
			return r, true
		}
	}
	return 0, false
}

// IsReservedName reports whether name, ignoring one trailing extension and
// letter case, is a reserved device name.
func IsReservedName(name string) bool {
	base := name
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		base = name[:i]
	}
	_, reserved := reservedFolded[fold(base)]
	return reserved
}
