package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeTemplate   ErrorType = "template"
	ErrorTypeRegistry   ErrorType = "registry"
	ErrorTypeResolve    ErrorType = "resolve"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// Error codes. Codes are stable and safe to match on.
const (
	ErrCodeEmptySegment     = "ERR_EMPTY_SEGMENT"
	ErrCodeTraversal        = "ERR_TRAVERSAL"
	ErrCodeIllegalCharacter = "ERR_ILLEGAL_CHARACTER"
	ErrCodeReservedName     = "ERR_RESERVED_NAME"
	ErrCodeSegmentTooLong   = "ERR_SEGMENT_TOO_LONG"
	ErrCodeHomeRelative     = "ERR_HOME_RELATIVE"

	ErrCodeEmptyTemplate         = "ERR_EMPTY_TEMPLATE"
	ErrCodeAbsoluteTemplate      = "ERR_ABSOLUTE_TEMPLATE"
	ErrCodeMalformedPlaceholder  = "ERR_MALFORMED_PLACEHOLDER"
	ErrCodeDuplicatePlaceholder  = "ERR_DUPLICATE_PLACEHOLDER"
	ErrCodeMissingPlaceholderVal = "ERR_MISSING_PLACEHOLDER_VALUE"

	ErrCodeEmptyID           = "ERR_EMPTY_ID"
	ErrCodeDuplicateID       = "ERR_DUPLICATE_ID"
	ErrCodeUnknownID         = "ERR_UNKNOWN_ID"
	ErrCodeNotStatic         = "ERR_NOT_STATIC"
	ErrCodeInvalidBase       = "ERR_INVALID_BASE"
	ErrCodeOverridesDisabled = "ERR_OVERRIDES_DISABLED"

	ErrCodeConfigInvalid = "ERR_CONFIG_INVALID"
	ErrCodeInternalError = "ERR_INTERNAL"
)

// PathError is the structured error returned by every path operation.
//
// Index is the zero-based position of the offending segment inside its
// template, or -1 when the error is not tied to a segment.
type PathError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	ID          string
	Template    string
	Segment     string
	Index       int
	Placeholder string
	Context     map[string]interface{}
}

// Error implements the error interface.
func (e *PathError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.ID != "" {
		parts = append(parts, "id:"+e.ID)
	}

	if e.Template != "" {
		parts = append(parts, fmt.Sprintf("template:%q", e.Template))
	}

	if e.Index >= 0 {
		parts = append(parts, fmt.Sprintf("segment %d (%q)", e.Index, e.Segment))
	} else if e.Segment != "" {
		parts = append(parts, fmt.Sprintf("segment %q", e.Segment))
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *PathError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *PathError) Is(target error) bool {
	var t *PathError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *PathError) WithContext(key string, value interface{}) *PathError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithID records the registry identifier the error belongs to.
func (e *PathError) WithID(id string) *PathError {
	e.ID = id

	return e
}

// WithTemplate records the template source the error was produced from.
func (e *PathError) WithTemplate(template string) *PathError {
	e.Template = template

	return e
}

// WithSegment records the offending segment and its position.
func (e *PathError) WithSegment(index int, segment string) *PathError {
	e.Index = index
	e.Segment = segment

	return e
}

// WithPlaceholder records the placeholder name involved in the error.
func (e *PathError) WithPlaceholder(name string) *PathError {
	e.Placeholder = name

	return e
}

func newPathError(errType ErrorType, code, message string) *PathError {
	return &PathError{
		Type:    errType,
		Code:    code,
		Message: message,
		Index:   -1,
	}
}

// Error creation functions

// NewValidationError creates a segment validation error.
func NewValidationError(code, message string) *PathError {
	return newPathError(ErrorTypeValidation, code, message)
}

// NewTemplateError creates a template syntax error.
func NewTemplateError(code, message string) *PathError {
	return newPathError(ErrorTypeTemplate, code, message)
}

// NewRegistryError creates a registry error.
func NewRegistryError(code, message string) *PathError {
	return newPathError(ErrorTypeRegistry, code, message)
}

// NewResolveError creates a resolution error.
func NewResolveError(code, message string) *PathError {
	return newPathError(ErrorTypeResolve, code, message)
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *PathError {
	return newPathError(ErrorTypeConfig, code, message)
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *PathError {
	e := newPathError(ErrorTypeInternal, code, message)
	e.Cause = cause

	return e
}

// Sentinels for errors.Is. They are never returned directly and must not be
// mutated.
var (
	ErrEmptySegment     = &PathError{Type: ErrorTypeValidation, Code: ErrCodeEmptySegment, Index: -1}
	ErrTraversal        = &PathError{Type: ErrorTypeValidation, Code: ErrCodeTraversal, Index: -1}
	ErrIllegalCharacter = &PathError{Type: ErrorTypeValidation, Code: ErrCodeIllegalCharacter, Index: -1}
	ErrReservedName     = &PathError{Type: ErrorTypeValidation, Code: ErrCodeReservedName, Index: -1}
	ErrSegmentTooLong   = &PathError{Type: ErrorTypeValidation, Code: ErrCodeSegmentTooLong, Index: -1}
	ErrHomeRelative     = &PathError{Type: ErrorTypeValidation, Code: ErrCodeHomeRelative, Index: -1}

	ErrEmptyTemplate         = &PathError{Type: ErrorTypeTemplate, Code: ErrCodeEmptyTemplate, Index: -1}
	ErrAbsoluteTemplate      = &PathError{Type: ErrorTypeTemplate, Code: ErrCodeAbsoluteTemplate, Index: -1}
	ErrMalformedPlaceholder  = &PathError{Type: ErrorTypeTemplate, Code: ErrCodeMalformedPlaceholder, Index: -1}
	ErrDuplicatePlaceholder  = &PathError{Type: ErrorTypeTemplate, Code: ErrCodeDuplicatePlaceholder, Index: -1}
	ErrMissingPlaceholderVal = &PathError{Type: ErrorTypeResolve, Code: ErrCodeMissingPlaceholderVal, Index: -1}

	ErrEmptyID           = &PathError{Type: ErrorTypeRegistry, Code: ErrCodeEmptyID, Index: -1}
	ErrDuplicateID       = &PathError{Type: ErrorTypeRegistry, Code: ErrCodeDuplicateID, Index: -1}
	ErrUnknownID         = &PathError{Type: ErrorTypeRegistry, Code: ErrCodeUnknownID, Index: -1}
	ErrNotStatic         = &PathError{Type: ErrorTypeRegistry, Code: ErrCodeNotStatic, Index: -1}
	ErrInvalidBase       = &PathError{Type: ErrorTypeRegistry, Code: ErrCodeInvalidBase, Index: -1}
	ErrOverridesDisabled = &PathError{Type: ErrorTypeRegistry, Code: ErrCodeOverridesDisabled, Index: -1}
)

// Error recovery and handling utilities

// IsValidationError checks if an error came from the segment validator.
func IsValidationError(err error) bool {
	return TypeOf(err) == ErrorTypeValidation
}

// IsTemplateError checks if an error is a template syntax error.
func IsTemplateError(err error) bool {
	return TypeOf(err) == ErrorTypeTemplate
}

// TypeOf returns the category of the first PathError in the chain, or "".
func TypeOf(err error) ErrorType {
	var pe *PathError
	if errors.As(err, &pe) {
		return pe.Type
	}

	return ""
}

// CodeOf returns the code of the first PathError in the chain, or "".
func CodeOf(err error) string {
	var pe *PathError
	if errors.As(err, &pe) {
		return pe.Code
	}

	return ""
}

// Helper functions for common errors

// ErrUnknownIDFor creates an unknown identifier error.
func ErrUnknownIDFor(id string) *PathError {
	return NewRegistryError(ErrCodeUnknownID, "no path registered for identifier").WithID(id)
}

// ErrDuplicateIDFor creates a duplicate identifier error.
func ErrDuplicateIDFor(id string) *PathError {
	return NewRegistryError(ErrCodeDuplicateID, "identifier already registered").WithID(id)
}

// ErrMissingValueFor creates a missing placeholder value error.
func ErrMissingValueFor(placeholder string) *PathError {
	return NewResolveError(
		ErrCodeMissingPlaceholderVal,
		"no value supplied for placeholder {"+placeholder+"}",
	).WithPlaceholder(placeholder)
}
